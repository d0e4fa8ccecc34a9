// Package testutil registers minimal no-op component types used by tests
// across packages. Production component types live under components/.
package testutil

import (
	"context"
	"sync"

	"github.com/vk/pipeweld/internal/component"
)

var registerOnce sync.Once

// RegisterNoopComponents registers the no-op component types into the default
// registry. Safe to call from any number of tests in one binary.
func RegisterNoopComponents() {
	registerOnce.Do(func() {
		component.Default.RegisterSource("noop_source", func() component.SourceConfig {
			return &NoopSource{}
		})
		component.Default.RegisterSource("noop_metrics_source", func() component.SourceConfig {
			return &NoopMetricsSource{}
		})
		component.Default.RegisterTransform("noop_transform", func() component.TransformConfig {
			return &NoopTransform{}
		})
		component.Default.RegisterSink("noop_sink", func() component.SinkConfig {
			return &NoopSink{}
		})
		component.Default.RegisterSink("noop_log_sink", func() component.SinkConfig {
			return &NoopLogSink{}
		})
		component.Default.RegisterEnrichmentTable("noop_table", func() component.EnrichmentTableConfig {
			return &NoopTable{}
		})
		component.Default.RegisterProvider("noop_provider", func() component.ProviderConfig {
			return &NoopProvider{}
		})
	})
}

// NoopSource emits log events and does nothing else.
type NoopSource struct {
	Format string `json:"format,omitempty"`
}

func (s *NoopSource) ComponentType() string          { return "noop_source" }
func (s *NoopSource) OutputType() component.DataType { return component.Log }

// NoopMetricsSource emits metric events; used to provoke data type mismatches.
type NoopMetricsSource struct{}

func (s *NoopMetricsSource) ComponentType() string          { return "noop_metrics_source" }
func (s *NoopMetricsSource) OutputType() component.DataType { return component.Metric }

// NoopTransform passes log events through.
type NoopTransform struct {
	Source string `json:"source,omitempty"`
}

func (t *NoopTransform) ComponentType() string          { return "noop_transform" }
func (t *NoopTransform) InputType() component.DataType  { return component.Log }
func (t *NoopTransform) OutputType() component.DataType { return component.Log }

// NoopSink accepts anything.
type NoopSink struct {
	Codec string `json:"codec,omitempty"`
}

func (s *NoopSink) ComponentType() string         { return "noop_sink" }
func (s *NoopSink) InputType() component.DataType { return component.Any }

// NoopLogSink accepts only log events.
type NoopLogSink struct{}

func (s *NoopLogSink) ComponentType() string         { return "noop_log_sink" }
func (s *NoopLogSink) InputType() component.DataType { return component.Log }

// NoopTable is an empty enrichment table.
type NoopTable struct {
	Path string `json:"path,omitempty"`
}

func (t *NoopTable) ComponentType() string { return "noop_table" }

// NoopProvider serves a fixed fragment from memory, standing in for a real
// remote provider in tests.
type NoopProvider struct {
	Fragment string `json:"fragment,omitempty"`
	Syntax   string `json:"syntax,omitempty"`
}

func (p *NoopProvider) ComponentType() string { return "noop_provider" }

func (p *NoopProvider) Build(ctx context.Context) (component.Provider, error) {
	return &noopFetcher{fragment: p.Fragment, syntax: p.Syntax}, nil
}

type noopFetcher struct {
	fragment string
	syntax   string
}

func (f *noopFetcher) Fetch(ctx context.Context) ([]byte, error) {
	return []byte(f.fragment), nil
}

func (f *noopFetcher) FragmentFormat() string {
	if f.syntax == "" {
		return "json"
	}
	return f.syntax
}
