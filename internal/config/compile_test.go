package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/pipeweld/internal/componentid"
)

func TestCompile_MinimalTopology(t *testing.T) {
	b := builderFromJSON(t, `{
		"sources": {"logs": {"type": "noop_source"}},
		"sinks": {"print": {"type": "noop_sink", "inputs": ["logs"]}}
	}`)

	cfg, warnings, errs := b.BuildWithWarnings()
	require.Empty(t, errs)
	assert.Empty(t, warnings)
	require.NotNil(t, cfg)
	assert.Equal(t, []componentid.ID{componentid.Global("logs")}, cfg.Sources.Keys())
	assert.Equal(t, []componentid.ID{componentid.Global("print")}, cfg.Sinks.Keys())
}

func TestCompile_EmptyBuilder(t *testing.T) {
	_, _, errs := NewBuilder().BuildWithWarnings()
	assert.Equal(t, []string{
		"No sources defined in the config.",
		"No sinks defined in the config.",
	}, errs)
}

func TestCompile_UnresolvedInput(t *testing.T) {
	b := builderFromJSON(t, `{
		"sources": {"logs": {"type": "noop_source"}},
		"sinks": {"print": {"type": "noop_sink", "inputs": ["ghost"]}}
	}`)

	_, _, errs := b.BuildWithWarnings()
	require.Equal(t, []string{
		`Input "ghost" for sink "print" doesn't match any components.`,
	}, errs)
}

func TestCompile_ComponentWithNoInputs(t *testing.T) {
	b := builderFromJSON(t, `{
		"sources": {"logs": {"type": "noop_source"}},
		"transforms": {"parse": {"type": "noop_transform"}},
		"sinks": {"print": {"type": "noop_sink"}}
	}`)

	_, _, errs := b.BuildWithWarnings()
	require.Equal(t, []string{
		`transform "parse" has no inputs`,
		`sink "print" has no inputs`,
	}, errs)
}

func TestCompile_DataTypeMismatch(t *testing.T) {
	b := builderFromJSON(t, `{
		"sources": {"metrics": {"type": "noop_metrics_source"}},
		"sinks": {"logfile": {"type": "noop_log_sink", "inputs": ["metrics"]}}
	}`)

	_, _, errs := b.BuildWithWarnings()
	require.Equal(t, []string{
		`Data type mismatch between "metrics" (Metric) and "logfile" (Log)`,
	}, errs)
}

func TestCompile_AnySinkAcceptsBothDataTypes(t *testing.T) {
	b := builderFromJSON(t, `{
		"sources": {
			"logs": {"type": "noop_source"},
			"metrics": {"type": "noop_metrics_source"}
		},
		"sinks": {"print": {"type": "noop_sink", "inputs": ["logs", "metrics"]}}
	}`)

	_, _, errs := b.BuildWithWarnings()
	assert.Empty(t, errs)
}

func TestCompile_CycleDetected(t *testing.T) {
	b := builderFromJSON(t, `{
		"sources": {"logs": {"type": "noop_source"}},
		"transforms": {
			"a": {"type": "noop_transform", "inputs": ["logs", "b"]},
			"b": {"type": "noop_transform", "inputs": ["a"]}
		},
		"sinks": {"print": {"type": "noop_sink", "inputs": ["b"]}}
	}`)

	_, _, errs := b.BuildWithWarnings()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "cycle detected involving")
}

func TestCompile_SelfCycle(t *testing.T) {
	b := builderFromJSON(t, `{
		"sources": {"logs": {"type": "noop_source"}},
		"transforms": {"loop": {"type": "noop_transform", "inputs": ["loop"]}},
		"sinks": {"print": {"type": "noop_sink", "inputs": ["logs"]}}
	}`)

	_, _, errs := b.BuildWithWarnings()
	require.Equal(t, []string{"cycle detected involving 'loop'"}, errs)
}

func TestCompile_PipelineErrorsSurfaceWithValidation(t *testing.T) {
	// A pipeline collision and a missing sink are reported in one pass.
	b := builderFromJSON(t, `{
		"sources": {"logs": {"type": "noop_source"}},
		"pipelines": {"foo": {"transforms": {"logs": {
			"type": "noop_transform", "inputs": ["logs"], "outputs": []
		}}}}
	}`)

	_, _, errs := b.BuildWithWarnings()
	assert.Equal(t, []string{
		"Component ID 'logs' is already used.",
		"No sinks defined in the config.",
	}, errs)
}

func TestCompile_WarnsOnUnconsumedComponents(t *testing.T) {
	b := builderFromJSON(t, `{
		"sources": {
			"logs": {"type": "noop_source"},
			"idle": {"type": "noop_source"}
		},
		"transforms": {"deadend": {"type": "noop_transform", "inputs": ["logs"]}},
		"sinks": {"print": {"type": "noop_sink", "inputs": ["logs"]}}
	}`)

	cfg, warnings, errs := b.BuildWithWarnings()
	require.Empty(t, errs)
	require.NotNil(t, cfg)
	assert.Equal(t, []string{
		`Source "idle" has no consumers`,
		`Transform "deadend" has no consumers`,
	}, warnings)
}

func TestCompile_ScopedIDInDiagnostics(t *testing.T) {
	// Pipeline-scoped transforms keep their qualified name in diagnostics.
	b := builderFromJSON(t, `{
		"sources": {"logs": {"type": "noop_source"}},
		"sinks": {"print": {"type": "noop_sink", "inputs": ["logs"]}},
		"pipelines": {"foo": {"transforms": {"bar": {
			"type": "noop_transform", "inputs": ["logs"], "outputs": []
		}}}}
	}`)

	_, warnings, errs := b.BuildWithWarnings()
	require.Empty(t, errs)
	assert.Contains(t, warnings, `Transform "foo/bar" has no consumers`)
}

func TestBuild_ReturnsConfigAndLogsWarnings(t *testing.T) {
	b := builderFromJSON(t, `{
		"sources": {"logs": {"type": "noop_source"}, "idle": {"type": "noop_source"}},
		"sinks": {"print": {"type": "noop_sink", "inputs": ["logs"]}}
	}`)

	cfg, errs := b.Build(context.Background())
	require.Empty(t, errs)
	require.NotNil(t, cfg)

	failing := builderFromJSON(t, `{"sources": {"logs": {"type": "noop_source"}}}`)
	cfg, errs = failing.Build(context.Background())
	assert.Nil(t, cfg)
	assert.Equal(t, []string{"No sinks defined in the config."}, errs)
}
