// Package demologs registers the demo_logs source, a generator of synthetic
// log events for trying out topologies without real traffic.
package demologs

import "github.com/vk/pipeweld/internal/component"

func init() {
	component.Default.RegisterSource("demo_logs", func() component.SourceConfig {
		return &Config{Format: "json", IntervalSecs: 1}
	})
}

// Config configures the demo_logs source.
type Config struct {
	// Format selects the shape of the generated lines: "json", "syslog" or
	// "apache_common".
	Format string `json:"format,omitempty"`
	// IntervalSecs is the delay between generated events, in seconds.
	IntervalSecs float64 `json:"interval,omitempty"`
	// Count limits how many events are generated; zero means unbounded.
	Count int `json:"count,omitempty"`
}

func (c *Config) ComponentType() string          { return "demo_logs" }
func (c *Config) OutputType() component.DataType { return component.Log }
