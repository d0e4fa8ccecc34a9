package component

import "context"

// DataType describes the kind of events a component consumes or produces.
// It is a bit set so a component can accept both logs and metrics.
type DataType uint8

const (
	Log    DataType = 1 << iota // log events
	Metric                      // metric events

	Any = Log | Metric
)

// Intersects reports whether the two data types share at least one kind.
func (d DataType) Intersects(other DataType) bool {
	return d&other != 0
}

// String returns the fragment-facing name of the data type.
func (d DataType) String() string {
	switch d {
	case Log:
		return "Log"
	case Metric:
		return "Metric"
	case Any:
		return "Any"
	default:
		return "Unknown"
	}
}

// Config is the contract shared by every pluggable component configuration.
// Concrete implementations must be JSON-serializable: the builder's
// duplication path round-trips every registered component through JSON,
// and any field that cannot survive that trip is silently lost.
type Config interface {
	// ComponentType returns the registered type identifier, e.g. "console".
	ComponentType() string
}

// SourceConfig is the configuration of a source plugin. Sources are graph
// roots; they declare no inputs.
type SourceConfig interface {
	Config
	// OutputType is the kind of events the source emits.
	OutputType() DataType
}

// TransformConfig is the configuration of a transform plugin.
type TransformConfig interface {
	Config
	// InputType is the kind of events the transform accepts.
	InputType() DataType
	// OutputType is the kind of events the transform emits.
	OutputType() DataType
}

// SinkConfig is the configuration of a sink plugin.
type SinkConfig interface {
	Config
	// InputType is the kind of events the sink accepts.
	InputType() DataType
}

// EnrichmentTableConfig is the configuration of an enrichment table plugin.
// Tables are graph roots consulted by transforms at runtime; the config core
// only stores them by key.
type EnrichmentTableConfig interface {
	Config
}

// ProviderConfig is the configuration of a dynamic configuration provider.
// At most one provider is attached to a builder.
type ProviderConfig interface {
	Config
	// Build constructs the provider described by this configuration.
	Build(ctx context.Context) (Provider, error)
}

// Provider fetches a configuration fragment from an external system.
type Provider interface {
	// Fetch retrieves one raw configuration fragment.
	Fetch(ctx context.Context) ([]byte, error)
	// FragmentFormat names the syntax of fetched fragments ("toml", "yaml",
	// "json" or "hcl").
	FragmentFormat() string
}
