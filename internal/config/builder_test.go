package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/pipeweld/internal/componentid"
	"github.com/vk/pipeweld/internal/testutil"
)

// builderFromJSON stands in for a deserialized fragment, the way tests in
// this package construct their inputs.
func builderFromJSON(t *testing.T, input string) *Builder {
	t.Helper()
	testutil.RegisterNoopComponents()
	b := NewBuilder()
	require.NoError(t, json.Unmarshal([]byte(input), b))
	return b
}

func TestBuilder_ProgrammaticAPI(t *testing.T) {
	testutil.RegisterNoopComponents()
	b := NewBuilder()

	b.AddSource("logs", &testutil.NoopSource{Format: "syslog"})
	b.AddTransform("parse", []string{"logs"}, &testutil.NoopTransform{})
	b.AddSink("print", []string{"parse"}, &testutil.NoopSink{Codec: "json"})
	b.AddEnrichmentTable("geo", &testutil.NoopTable{Path: "/tmp/geo.csv"})

	assert.Equal(t, []componentid.ID{componentid.Global("logs")}, b.Sources.Keys())
	sink, ok := b.Sinks.Get(componentid.Global("print"))
	require.True(t, ok)
	assert.Equal(t, []componentid.ID{componentid.Global("parse")}, sink.Inputs)

	// Insertion is unconditional: the last writer wins.
	b.AddSource("logs", &testutil.NoopSource{Format: "json"})
	assert.Equal(t, 1, b.Sources.Len())
	source, _ := b.Sources.Get(componentid.Global("logs"))
	assert.Equal(t, "json", source.Inner.(*testutil.NoopSource).Format)
}

func TestBuilder_FragmentDecode(t *testing.T) {
	b := builderFromJSON(t, `{
		"data_dir": "/tmp/pw",
		"log_schema": {"message_key": "msg"},
		"sources": {"logs": {"type": "noop_source", "format": "syslog"}},
		"sinks": {"print": {"type": "noop_sink", "inputs": ["logs"], "codec": "json"}}
	}`)

	assert.Equal(t, "/tmp/pw", b.Global.DataDir)
	assert.Equal(t, "msg", b.Global.LogSchema.MessageKey)
	assert.True(t, b.Healthchecks.Enabled, "defaults survive partial decode")

	sink, ok := b.Sinks.Get(componentid.Global("print"))
	require.True(t, ok)
	assert.Equal(t, []componentid.ID{componentid.Global("logs")}, sink.Inputs)
	assert.Equal(t, "noop_sink", sink.Inner.ComponentType())
}

func TestBuilder_DecodeRejectsUnknownField(t *testing.T) {
	testutil.RegisterNoopComponents()
	b := NewBuilder()
	err := json.Unmarshal([]byte(`{"sourcez": {}}`), b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown configuration field "sourcez"`)
}

func TestBuilder_DecodeRejectsUnknownComponentType(t *testing.T) {
	testutil.RegisterNoopComponents()
	b := NewBuilder()
	err := json.Unmarshal([]byte(`{"sources": {"logs": {"type": "nope"}}}`), b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown source type "nope"`)

	err = json.Unmarshal([]byte(`{"sources": {"logs": {"format": "syslog"}}}`), NewBuilder())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing a 'type' field")
}

func TestBuilder_CollectionsPreserveDocumentOrder(t *testing.T) {
	b := builderFromJSON(t, `{
		"sources": {
			"zeta": {"type": "noop_source"},
			"alpha": {"type": "noop_source"},
			"mid": {"type": "noop_source"}
		}
	}`)

	want := []componentid.ID{
		componentid.Global("zeta"),
		componentid.Global("alpha"),
		componentid.Global("mid"),
	}
	assert.Equal(t, want, b.Sources.Keys())
}

func TestBuilder_Clone(t *testing.T) {
	b := builderFromJSON(t, `{
		"data_dir": "/tmp/pw",
		"sources": {"logs": {"type": "noop_source", "format": "syslog"}},
		"transforms": {"parse": {"type": "noop_transform", "inputs": ["logs"], "source": "."}},
		"sinks": {"print": {"type": "noop_sink", "inputs": ["parse"]}},
		"tests": [{"name": "smoke"}],
		"provider": {"type": "noop_provider", "fragment": "{}"},
		"pipelines": {"foo": {"transforms": {"bar": {
			"type": "noop_transform", "inputs": ["logs"], "outputs": ["print"]
		}}}}
	}`)

	clone, err := b.Clone()
	require.NoError(t, err)

	assert.Equal(t, b.Global, clone.Global)
	assert.Equal(t, b.Sources.Keys(), clone.Sources.Keys())
	assert.Equal(t, b.Tests, clone.Tests)
	require.NotNil(t, clone.Provider)
	assert.Equal(t, "noop_provider", clone.Provider.ComponentType())
	assert.Equal(t, 1, clone.Pipelines.Len())

	// The duplicate is independent: mutating it leaves the original alone.
	clone.AddSource("extra", &testutil.NoopSource{})
	assert.Equal(t, 1, b.Sources.Len())
	assert.Equal(t, 2, clone.Sources.Len())

	original, _ := b.Transforms.Get(componentid.Global("parse"))
	cloned, _ := clone.Transforms.Get(componentid.Global("parse"))
	require.NotSame(t, original, cloned)
	assert.Equal(t, original.Inputs, cloned.Inputs)
	assert.Equal(t, "noop_transform", cloned.Inner.ComponentType())
}

func TestBuilder_ScopedInputSurvivesCloneRoundTrip(t *testing.T) {
	b := builderFromJSON(t, `{
		"sources": {"logs": {"type": "noop_source"}},
		"sinks": {"print": {"type": "noop_sink", "inputs": ["logs"]}},
		"pipelines": {"foo": {"transforms": {"bar": {
			"type": "noop_transform", "inputs": ["logs"], "outputs": ["print"]
		}}}}
	}`)
	require.Empty(t, b.MergePipelines())

	clone, err := b.Clone()
	require.NoError(t, err)

	sink, ok := clone.Sinks.Get(componentid.Global("print"))
	require.True(t, ok)
	assert.Contains(t, sink.Inputs, componentid.Scoped("foo", "bar"))
}

func TestNewBuilderFromConfig(t *testing.T) {
	b := builderFromJSON(t, `{
		"data_dir": "/tmp/pw",
		"sources": {"logs": {"type": "noop_source"}},
		"sinks": {"print": {"type": "noop_sink", "inputs": ["logs"]}},
		"tests": [{"name": "smoke"}],
		"provider": {"type": "noop_provider"}
	}`)

	cfg, _, errs := b.BuildWithWarnings()
	require.Empty(t, errs)

	edit := NewBuilderFromConfig(cfg)
	assert.Equal(t, cfg.Global, edit.Global)
	assert.Equal(t, cfg.Sources.Keys(), edit.Sources.Keys())
	assert.Equal(t, cfg.Tests, edit.Tests)
	assert.Nil(t, edit.Provider, "provider is a pre-compile construct")
	assert.Equal(t, 0, edit.Pipelines.Len(), "pipelines are a pre-compile construct")
}
