package config

import "fmt"

// Append folds a fragment builder into b, with per-section conflict policy.
// It returns the ordered list of every problem found, empty on success.
//
// The scalar sections (API options, provider, data directory, log schema,
// healthchecks) are folded unconditionally, even when the call ultimately
// fails; the four identity-keyed entity collections and the test list are
// folded atomically, all or nothing. This asymmetry is intentional and
// load-bearing for observable behavior: on failure the caller discards b.
func (b *Builder) Append(with *Builder) []string {
	var errors []string

	if err := b.API.Merge(with.API); err != nil {
		errors = append(errors, err.Error())
	}

	// The fragment's provider always replaces the accumulator's, even when
	// the fragment has none. See DESIGN.md: flagged open question, preserved
	// for compatibility.
	b.Provider = with.Provider

	if b.Global.DataDir == "" || b.Global.DataDir == DefaultDataDir {
		b.Global.DataDir = with.Global.DataDir
	} else if with.Global.DataDir != "" && with.Global.DataDir != DefaultDataDir &&
		b.Global.DataDir != with.Global.DataDir {
		// Two fragments setting conflicting data directories is an error.
		errors = append(errors, "conflicting values for 'data_dir' found")
	}

	errors = append(errors, b.Global.LogSchema.Merge(&with.Global.LogSchema)...)

	b.Healthchecks.Merge(with.Healthchecks)

	for _, key := range with.EnrichmentTables.Keys() {
		if b.EnrichmentTables.Has(key) {
			errors = append(errors, fmt.Sprintf("duplicate enrichment_table name found: %s", key))
		}
	}
	for _, key := range with.Sources.Keys() {
		if b.Sources.Has(key) {
			errors = append(errors, fmt.Sprintf("duplicate source id found: %s", key))
		}
	}
	for _, key := range with.Sinks.Keys() {
		if b.Sinks.Has(key) {
			errors = append(errors, fmt.Sprintf("duplicate sink id found: %s", key))
		}
	}
	for _, key := range with.Transforms.Keys() {
		if b.Transforms.Has(key) {
			errors = append(errors, fmt.Sprintf("duplicate transform id found: %s", key))
		}
	}
	for _, withTest := range with.Tests {
		for _, test := range b.Tests {
			if test.Name == withTest.Name {
				errors = append(errors, fmt.Sprintf("duplicate test name found: %s", withTest.Name))
				break
			}
		}
	}
	if len(errors) > 0 {
		return errors
	}

	b.EnrichmentTables.Extend(with.EnrichmentTables)
	b.Sources.Extend(with.Sources)
	b.Sinks.Extend(with.Sinks)
	b.Transforms.Extend(with.Transforms)
	b.Tests = append(b.Tests, with.Tests...)

	return nil
}
