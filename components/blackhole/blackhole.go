// Package blackhole registers the blackhole sink, which discards every event
// it receives. Useful as a placeholder while wiring up a topology.
package blackhole

import "github.com/vk/pipeweld/internal/component"

func init() {
	component.Default.RegisterSink("blackhole", func() component.SinkConfig {
		return &Config{}
	})
}

// Config configures the blackhole sink.
type Config struct {
	// PrintIntervalSecs reports the discard rate at this cadence; zero
	// disables the report.
	PrintIntervalSecs int `json:"print_interval_secs,omitempty"`
}

func (c *Config) ComponentType() string         { return "blackhole" }
func (c *Config) InputType() component.DataType { return component.Any }
