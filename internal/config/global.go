package config

// DefaultDataDir is the built-in default for GlobalOptions.DataDir. An empty
// DataDir and an explicit DefaultDataDir are treated identically by the merge
// engine.
const DefaultDataDir = "/var/lib/pipeweld"

// GlobalOptions holds process-wide settings attached once per builder. They
// are reconciled field by field across merges rather than overwritten; see
// Builder.Append.
type GlobalOptions struct {
	DataDir   string    `json:"data_dir,omitempty"`
	LogSchema LogSchema `json:"log_schema"`
}

// ResolvedDataDir returns the effective data directory, applying the default.
func (g GlobalOptions) ResolvedDataDir() string {
	if g.DataDir == "" {
		return DefaultDataDir
	}
	return g.DataDir
}
