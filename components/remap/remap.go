// Package remap registers the remap transform, which reshapes events with a
// user-supplied program.
package remap

import "github.com/vk/pipeweld/internal/component"

func init() {
	component.Default.RegisterTransform("remap", func() component.TransformConfig {
		return &Config{}
	})
}

// Config configures the remap transform. Exactly one of Source and File is
// expected; compile-time validation does not enforce it because the program
// is only parsed when the topology starts.
type Config struct {
	// Source is the remap program inline.
	Source string `json:"source,omitempty"`
	// File points at a file containing the remap program.
	File string `json:"file,omitempty"`
	// DropOnError discards events whose remap program fails instead of
	// forwarding them unchanged.
	DropOnError bool `json:"drop_on_error,omitempty"`
}

func (c *Config) ComponentType() string          { return "remap" }
func (c *Config) InputType() component.DataType  { return component.Any }
func (c *Config) OutputType() component.DataType { return component.Any }
