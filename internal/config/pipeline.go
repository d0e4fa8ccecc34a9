package config

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/vk/pipeweld/internal/componentid"
	"github.com/vk/pipeweld/internal/ordered"
)

// PipelineTransform is one locally-scoped transform inside a pipeline macro:
// a full transform definition plus the unscoped names of the downstream
// transforms or sinks its output feeds. The expansion engine turns each
// declared output into a new input edge on the named entity.
type PipelineTransform struct {
	Transform *TransformOuter
	Outputs   []string
}

// MarshalJSON flattens the wrapped transform's fields together with the
// "outputs" list.
func (pt PipelineTransform) MarshalJSON() ([]byte, error) {
	encoded, err := json.Marshal(pt.Transform)
	if err != nil {
		return nil, err
	}
	tree, err := asValueTree(encoded)
	if err != nil {
		return nil, err
	}
	tree["outputs"] = pt.Outputs
	return json.Marshal(tree)
}

// UnmarshalJSON implements json.Unmarshaler.
func (pt *PipelineTransform) UnmarshalJSON(data []byte) error {
	var head struct {
		Outputs []string `json:"outputs"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	outer := &TransformOuter{}
	if err := outer.UnmarshalJSON(data); err != nil {
		return err
	}
	pt.Transform = outer
	pt.Outputs = head.Outputs
	return nil
}

// Pipeline is a named macro: a group of transforms addressed by local name.
// Purely declarative; it has no runtime identity once expanded.
type Pipeline struct {
	Transforms map[string]PipelineTransform `json:"transforms"`
}

// Pipelines maps pipeline name to Pipeline, preserving declaration order.
type Pipelines struct {
	m *ordered.Map[string, Pipeline]
}

// NewPipelines creates an empty pipeline set.
func NewPipelines() Pipelines {
	return Pipelines{m: ordered.New[string, Pipeline]()}
}

// Set adds or replaces the named pipeline.
func (p *Pipelines) Set(name string, pipeline Pipeline) {
	if p.m == nil {
		p.m = ordered.New[string, Pipeline]()
	}
	p.m.Set(name, pipeline)
}

// Len returns the number of pending pipelines.
func (p Pipelines) Len() int {
	return p.m.Len()
}

// Names returns the pipeline names in declaration order.
func (p Pipelines) Names() []string {
	return p.m.Keys()
}

// Get returns the named pipeline.
func (p Pipelines) Get(name string) (Pipeline, bool) {
	return p.m.Get(name)
}

// MarshalJSON implements json.Marshaler, keeping declaration order.
func (p Pipelines) MarshalJSON() ([]byte, error) {
	if p.m == nil {
		return []byte("{}"), nil
	}
	return marshalOrderedObject(p.m, func(name string) string { return name })
}

// UnmarshalJSON implements json.Unmarshaler, keeping document order.
func (p *Pipelines) UnmarshalJSON(data []byte) error {
	p.m = ordered.New[string, Pipeline]()
	return decodeOrderedObject(data, func(name string, raw json.RawMessage) error {
		var pipeline Pipeline
		if err := json.Unmarshal(raw, &pipeline); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		p.m.Set(name, pipeline)
		return nil
	})
}

// ScopedTransform is one flattened pipeline transform: the scoped identity it
// will occupy in the global transform namespace, the transform itself, and
// its declared output targets.
type ScopedTransform struct {
	ID        componentid.ID
	Transform *TransformOuter
	Outputs   []string
}

// IntoScoped flattens every pipeline into a deterministic sequence of scoped
// transforms: pipeline-declaration order, then local-name order within each
// pipeline.
func (p Pipelines) IntoScoped() []ScopedTransform {
	var out []ScopedTransform
	for _, pipelineName := range p.m.Keys() {
		pipeline, _ := p.m.Get(pipelineName)

		locals := make([]string, 0, len(pipeline.Transforms))
		for local := range pipeline.Transforms {
			locals = append(locals, local)
		}
		sort.Strings(locals)

		for _, local := range locals {
			pt := pipeline.Transforms[local]
			out = append(out, ScopedTransform{
				ID:        componentid.Scoped(pipelineName, local),
				Transform: pt.Transform,
				Outputs:   pt.Outputs,
			})
		}
	}
	return out
}

// MergePipelines flattens the pending pipeline macros into the global
// transform namespace and wires their declared outputs as new input edges on
// existing transforms and sinks. It returns the ordered list of problems
// found; processing never stops at the first one.
//
// A local name colliding with an existing global transform or source rejects
// that one transform (its outputs are not wired) and moves on. An output name
// matching no transform or sink is reported and the remaining outputs are
// still wired; the transform is inserted regardless, as a dead end, rather
// than silently dropped.
func (b *Builder) MergePipelines() []string {
	var errors []string

	// Sinks are deliberately absent: only transforms and sources can be
	// shadowed by pipeline-introduced transforms.
	used := make(map[string]struct{})
	for _, id := range b.Transforms.Keys() {
		if id.IsGlobal() {
			used[id.Name()] = struct{}{}
		}
	}
	for _, id := range b.Sources.Keys() {
		if id.IsGlobal() {
			used[id.Name()] = struct{}{}
		}
	}

	for _, scoped := range b.Pipelines.IntoScoped() {
		if _, taken := used[scoped.ID.Name()]; taken {
			errors = append(errors, fmt.Sprintf("Component ID '%s' is already used.", scoped.ID.Name()))
			continue
		}
		for _, output := range scoped.Outputs {
			target := componentid.Global(output)
			if transform, ok := b.Transforms.Get(target); ok {
				transform.Inputs = append(transform.Inputs, scoped.ID)
			} else if sink, ok := b.Sinks.Get(target); ok {
				sink.Inputs = append(sink.Inputs, scoped.ID)
			} else {
				errors = append(errors, fmt.Sprintf("Couldn't find transform or sink '%s'", output))
			}
		}
		b.Transforms.Set(scoped.ID, scoped.Transform)
	}

	// Pipelines are a pre-compile construct only. The provider slot does not
	// survive expansion either; see the open-question notes in DESIGN.md.
	b.Pipelines = NewPipelines()
	b.Provider = nil

	return errors
}
