// Package console registers the console sink, which writes encoded events to
// standard output or standard error.
package console

import "github.com/vk/pipeweld/internal/component"

func init() {
	component.Default.RegisterSink("console", func() component.SinkConfig {
		return &Config{Target: "stdout", Encoding: Encoding{Codec: "json"}}
	})
}

// Encoding selects how events are serialized before writing.
type Encoding struct {
	Codec string `json:"codec"`
}

// Config configures the console sink.
type Config struct {
	// Target is "stdout" or "stderr".
	Target   string   `json:"target,omitempty"`
	Encoding Encoding `json:"encoding"`
}

func (c *Config) ComponentType() string         { return "console" }
func (c *Config) InputType() component.DataType { return component.Any }
