package config

import (
	"fmt"

	"github.com/vk/pipeweld/internal/component"
	"github.com/vk/pipeweld/internal/componentid"
)

// compile validates the fully merged builder and freezes it into a Config.
// It returns the configuration plus non-fatal warnings, or the accumulated
// list of fatal errors. Pending pipeline macros are expanded first, so their
// diagnostics surface in the same pass as everything else.
func compile(builder *Builder) (*Config, []string, []string) {
	errors := builder.MergePipelines()

	if builder.Sources.Len() == 0 {
		errors = append(errors, "No sources defined in the config.")
	}
	if builder.Sinks.Len() == 0 {
		errors = append(errors, "No sinks defined in the config.")
	}

	errors = append(errors, checkInputs(builder)...)
	errors = append(errors, detectCycles(builder)...)

	if len(errors) > 0 {
		return nil, nil, errors
	}

	warnings := warnUnconsumed(builder)

	return &Config{
		Global:           builder.Global,
		API:              builder.API,
		Healthchecks:     builder.Healthchecks,
		EnrichmentTables: builder.EnrichmentTables,
		Sources:          builder.Sources,
		Sinks:            builder.Sinks,
		Transforms:       builder.Transforms,
		Tests:            builder.Tests,
	}, warnings, nil
}

// checkInputs verifies that every sink and transform has at least one input,
// that each input edge resolves to an existing source or transform, and that
// the data types on both ends of each edge are compatible.
func checkInputs(b *Builder) []string {
	var errors []string

	outputTypeOf := func(id componentid.ID) (component.DataType, bool) {
		if source, ok := b.Sources.Get(id); ok {
			return source.Inner.OutputType(), true
		}
		if transform, ok := b.Transforms.Get(id); ok {
			return transform.Inner.OutputType(), true
		}
		return 0, false
	}

	check := func(kind string, id componentid.ID, inputs []componentid.ID, inputType component.DataType) {
		if len(inputs) == 0 {
			errors = append(errors, fmt.Sprintf("%s %q has no inputs", kind, id))
			return
		}
		for _, input := range inputs {
			upstream, ok := outputTypeOf(input)
			if !ok {
				errors = append(errors, fmt.Sprintf(
					"Input %q for %s %q doesn't match any components.", input, kind, id))
				continue
			}
			if !upstream.Intersects(inputType) {
				errors = append(errors, fmt.Sprintf(
					"Data type mismatch between %q (%s) and %q (%s)", input, upstream, id, inputType))
			}
		}
	}

	for _, id := range b.Transforms.Keys() {
		transform, _ := b.Transforms.Get(id)
		check("transform", id, transform.Inputs, transform.Inner.InputType())
	}
	for _, id := range b.Sinks.Keys() {
		sink, _ := b.Sinks.Get(id)
		check("sink", id, sink.Inputs, sink.Inner.InputType())
	}

	return errors
}

// detectCycles walks the transform graph with a DFS. Sources are roots and
// sinks have no outgoing edges, so only transform-to-transform edges can
// close a loop. The first cycle found is reported; overlapping cycles would
// otherwise produce noise for the same authoring mistake.
func detectCycles(b *Builder) []string {
	var errors []string

	visiting := make(map[componentid.ID]bool)
	visited := make(map[componentid.ID]bool)

	var visit func(id componentid.ID) bool
	visit = func(id componentid.ID) bool {
		visiting[id] = true
		transform, _ := b.Transforms.Get(id)
		for _, input := range transform.Inputs {
			if !b.Transforms.Has(input) {
				continue
			}
			if visiting[input] {
				errors = append(errors, fmt.Sprintf("cycle detected involving '%s'", input))
				return true
			}
			if !visited[input] {
				if visit(input) {
					return true
				}
			}
		}
		delete(visiting, id)
		visited[id] = true
		return false
	}

	for _, id := range b.Transforms.Keys() {
		if !visited[id] {
			if visit(id) {
				break
			}
		}
	}

	return errors
}

// warnUnconsumed reports sources and transforms whose output feeds nothing.
// Dead-end components are legal (pipeline expansion can produce them on
// purpose), so this is a warning, not an error.
func warnUnconsumed(b *Builder) []string {
	consumed := make(map[componentid.ID]struct{})
	for _, id := range b.Transforms.Keys() {
		transform, _ := b.Transforms.Get(id)
		for _, input := range transform.Inputs {
			consumed[input] = struct{}{}
		}
	}
	for _, id := range b.Sinks.Keys() {
		sink, _ := b.Sinks.Get(id)
		for _, input := range sink.Inputs {
			consumed[input] = struct{}{}
		}
	}

	var warnings []string
	for _, id := range b.Sources.Keys() {
		if _, ok := consumed[id]; !ok {
			warnings = append(warnings, fmt.Sprintf("Source %q has no consumers", id))
		}
	}
	for _, id := range b.Transforms.Keys() {
		if _, ok := consumed[id]; !ok {
			warnings = append(warnings, fmt.Sprintf("Transform %q has no consumers", id))
		}
	}
	return warnings
}
