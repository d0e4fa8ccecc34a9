package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/vk/pipeweld/internal/component"
	"github.com/vk/pipeweld/internal/componentid"
	"github.com/vk/pipeweld/internal/ctxlog"
	"github.com/vk/pipeweld/internal/ordered"
)

// Builder is the mutable intermediate representation of an entire pipeline
// configuration before compilation: one instance per fragment, or the merged
// result of many. Builders are exclusively owned and never shared between
// goroutines; re-compilation constructs a fresh builder lineage instead of
// mutating state behind a compiled Config.
type Builder struct {
	Global       GlobalOptions
	API          APIOptions
	Healthchecks HealthcheckOptions

	EnrichmentTables *ordered.Map[componentid.ID, *EnrichmentTableOuter]
	Sources          *ordered.Map[componentid.ID, *SourceOuter]
	Sinks            *ordered.Map[componentid.ID, *SinkOuter]
	Transforms       *ordered.Map[componentid.ID, *TransformOuter]

	Tests     []TestDefinition
	Provider  component.ProviderConfig
	Pipelines Pipelines
}

// NewBuilder creates an empty builder with defaults applied.
func NewBuilder() *Builder {
	return &Builder{
		Healthchecks:     DefaultHealthcheckOptions(),
		EnrichmentTables: ordered.New[componentid.ID, *EnrichmentTableOuter](),
		Sources:          ordered.New[componentid.ID, *SourceOuter](),
		Sinks:            ordered.New[componentid.ID, *SinkOuter](),
		Transforms:       ordered.New[componentid.ID, *TransformOuter](),
		Pipelines:        NewPipelines(),
	}
}

// NewBuilderFromConfig converts an already-compiled configuration back into
// an editable builder. Entity collections and global options are carried over
// verbatim; the provider slot and pending pipelines are reset, since both are
// pre-compile constructs that a compiled configuration no longer has.
func NewBuilderFromConfig(c *Config) *Builder {
	return &Builder{
		Global:           c.Global,
		API:              c.API,
		Healthchecks:     c.Healthchecks,
		EnrichmentTables: c.EnrichmentTables.Clone(),
		Sources:          c.Sources.Clone(),
		Sinks:            c.Sinks.Clone(),
		Transforms:       c.Transforms.Clone(),
		Tests:            append([]TestDefinition(nil), c.Tests...),
		Provider:         nil,
		Pipelines:        NewPipelines(),
	}
}

// AddEnrichmentTable inserts an enrichment table under a global id. Insertion
// is unconditional: the last writer wins, and conflict detection is left to
// the merge engine and the compile step.
func (b *Builder) AddEnrichmentTable(name string, table component.EnrichmentTableConfig) {
	b.EnrichmentTables.Set(componentid.Global(name), &EnrichmentTableOuter{Inner: table})
}

// AddSource inserts a source under a global id, last writer wins.
func (b *Builder) AddSource(id string, source component.SourceConfig) {
	b.Sources.Set(componentid.Global(id), &SourceOuter{Inner: source})
}

// AddSink inserts a sink under a global id, translating each raw input name
// into a global component id. Last writer wins.
func (b *Builder) AddSink(id string, inputs []string, sink component.SinkConfig) {
	b.Sinks.Set(componentid.Global(id), &SinkOuter{
		Inputs: globalInputs(inputs),
		Inner:  sink,
	})
}

// AddTransform inserts a transform under a global id, translating each raw
// input name into a global component id. Last writer wins.
func (b *Builder) AddTransform(id string, inputs []string, transform component.TransformConfig) {
	b.Transforms.Set(componentid.Global(id), &TransformOuter{
		Inputs: globalInputs(inputs),
		Inner:  transform,
	})
}

// SetPipelines replaces the pending pipeline-macro set wholesale.
func (b *Builder) SetPipelines(pipelines Pipelines) {
	b.Pipelines = pipelines
}

// SetProvider attaches the dynamic configuration provider. At most one per
// builder.
func (b *Builder) SetProvider(provider component.ProviderConfig) {
	b.Provider = provider
}

func globalInputs(names []string) []componentid.ID {
	ids := make([]componentid.ID, len(names))
	for i, name := range names {
		ids[i] = componentid.Global(name)
	}
	return ids
}

// Clone duplicates the builder by round-tripping it through JSON. Component
// configurations are trait objects whose concrete shape only the plugin
// registry knows, so a field-by-field copy cannot be produced generically;
// the round trip is semantically lossless for every field representable in
// JSON, which registered component kinds are required to guarantee. A
// serialization failure is a contract violation surfaced as a hard error,
// not a user-configuration diagnostic.
func (b *Builder) Clone() (*Builder, error) {
	encoded, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("clone: serializing builder: %w", err)
	}
	clone := NewBuilder()
	if err := json.Unmarshal(encoded, clone); err != nil {
		return nil, fmt.Errorf("clone: deserializing builder: %w", err)
	}
	return clone, nil
}

// Build expands pending pipelines, validates the topology, and freezes it
// into a runtime Config. On success, non-fatal warnings from compilation are
// logged and only the configuration is returned; on failure the full ordered
// error list is returned and the builder should be discarded.
func (b *Builder) Build(ctx context.Context) (*Config, []string) {
	cfg, warnings, errors := b.BuildWithWarnings()
	if len(errors) > 0 {
		return nil, errors
	}

	logger := ctxlog.FromContext(ctx)
	for _, warning := range warnings {
		logger.Warn(warning)
	}
	return cfg, nil
}

// BuildWithWarnings is Build for callers that want to handle the non-fatal
// warnings themselves.
func (b *Builder) BuildWithWarnings() (*Config, []string, []string) {
	return compile(b)
}

// MarshalJSON implements json.Marshaler. Entity collections are written in
// insertion order; empty optional sections are omitted.
func (b *Builder) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true

	writeRaw := func(name string, raw []byte) {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		fmt.Fprintf(&buf, "%q:", name)
		buf.Write(raw)
	}
	write := func(name string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		writeRaw(name, raw)
		return nil
	}

	if b.Global.DataDir != "" {
		if err := write("data_dir", b.Global.DataDir); err != nil {
			return nil, err
		}
	}
	if b.Global.LogSchema != (LogSchema{}) {
		if err := write("log_schema", b.Global.LogSchema); err != nil {
			return nil, err
		}
	}
	if b.API != (APIOptions{}) {
		if err := write("api", b.API); err != nil {
			return nil, err
		}
	}
	if err := write("healthchecks", b.Healthchecks); err != nil {
		return nil, err
	}

	collections := []struct {
		name string
		raw  func() ([]byte, error)
	}{
		{"enrichment_tables", func() ([]byte, error) {
			return marshalOrderedObject(b.EnrichmentTables, componentid.ID.String)
		}},
		{"sources", func() ([]byte, error) {
			return marshalOrderedObject(b.Sources, componentid.ID.String)
		}},
		{"sinks", func() ([]byte, error) {
			return marshalOrderedObject(b.Sinks, componentid.ID.String)
		}},
		{"transforms", func() ([]byte, error) {
			return marshalOrderedObject(b.Transforms, componentid.ID.String)
		}},
	}
	for _, c := range collections {
		raw, err := c.raw()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.name, err)
		}
		writeRaw(c.name, raw)
	}

	if len(b.Tests) > 0 {
		if err := write("tests", b.Tests); err != nil {
			return nil, err
		}
	}
	if b.Provider != nil {
		raw, err := marshalProvider(b.Provider)
		if err != nil {
			return nil, fmt.Errorf("provider: %w", err)
		}
		writeRaw("provider", raw)
	}
	if b.Pipelines.Len() > 0 {
		if err := write("pipelines", b.Pipelines); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. This is the single decode path
// for every fragment syntax: internal/format normalizes TOML, YAML and HCL
// to the same JSON value tree first. Unknown top-level fields are rejected.
func (b *Builder) UnmarshalJSON(data []byte) error {
	if b.Sources == nil {
		*b = *NewBuilder()
	}

	return decodeOrderedObject(data, func(key string, raw json.RawMessage) error {
		switch key {
		case "data_dir":
			return sectionErr(key, json.Unmarshal(raw, &b.Global.DataDir))
		case "log_schema":
			return sectionErr(key, json.Unmarshal(raw, &b.Global.LogSchema))
		case "api":
			return sectionErr(key, json.Unmarshal(raw, &b.API))
		case "healthchecks":
			return sectionErr(key, json.Unmarshal(raw, &b.Healthchecks))
		case "enrichment_tables":
			return sectionErr(key, decodeCollection(raw, b.EnrichmentTables))
		case "sources":
			return sectionErr(key, decodeCollection(raw, b.Sources))
		case "sinks":
			return sectionErr(key, decodeCollection(raw, b.Sinks))
		case "transforms":
			return sectionErr(key, decodeCollection(raw, b.Transforms))
		case "tests":
			return sectionErr(key, json.Unmarshal(raw, &b.Tests))
		case "provider":
			provider, err := unmarshalProvider(raw)
			if err != nil {
				return sectionErr(key, err)
			}
			b.Provider = provider
			return nil
		case "pipelines":
			return sectionErr(key, json.Unmarshal(raw, &b.Pipelines))
		default:
			return fmt.Errorf("unknown configuration field %q", key)
		}
	})
}

func sectionErr(section string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", section, err)
	}
	return nil
}

// decodeCollection fills an entity collection from a JSON object, preserving
// document order and resolving each entry's type tag against the registry.
func decodeCollection[V any, PV interface {
	*V
	json.Unmarshaler
}](data []byte, into *ordered.Map[componentid.ID, *V]) error {
	return decodeOrderedObject(data, func(key string, raw json.RawMessage) error {
		id, err := componentid.Parse(key)
		if err != nil {
			return err
		}
		outer := PV(new(V))
		if err := outer.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		into.Set(id, (*V)(outer))
		return nil
	})
}
