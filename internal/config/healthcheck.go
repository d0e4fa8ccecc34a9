package config

// HealthcheckOptions controls sink healthchecking. Healthchecks are on by
// default; any fragment may turn them off for the whole assembled
// configuration, and requiring healthy sinks is sticky once any fragment
// enables it.
type HealthcheckOptions struct {
	Enabled        bool `json:"enabled"`
	RequireHealthy bool `json:"require_healthy"`
}

// DefaultHealthcheckOptions returns the built-in healthcheck settings.
func DefaultHealthcheckOptions() HealthcheckOptions {
	return HealthcheckOptions{Enabled: true}
}

// Merge folds other into h. A fragment that explicitly disables healthchecks
// disables them globally; require_healthy wins once set anywhere.
func (h *HealthcheckOptions) Merge(other HealthcheckOptions) {
	h.Enabled = h.Enabled && other.Enabled
	h.RequireHealthy = h.RequireHealthy || other.RequireHealthy
}
