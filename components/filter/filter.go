// Package filter registers the filter transform, which drops events that do
// not satisfy a condition.
package filter

import "github.com/vk/pipeweld/internal/component"

func init() {
	component.Default.RegisterTransform("filter", func() component.TransformConfig {
		return &Config{}
	})
}

// Config configures the filter transform.
type Config struct {
	// Condition is the predicate an event must satisfy to pass through.
	Condition string `json:"condition"`
}

func (c *Config) ComponentType() string          { return "filter" }
func (c *Config) InputType() component.DataType  { return component.Any }
func (c *Config) OutputType() component.DataType { return component.Any }
