package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/pipeweld/internal/componentid"
	"github.com/vk/pipeweld/internal/testutil"
)

func TestAppend_EmptyFragmentIsIdempotent(t *testing.T) {
	b := builderFromJSON(t, `{
		"data_dir": "/tmp/pw",
		"sources": {"logs": {"type": "noop_source"}},
		"sinks": {"print": {"type": "noop_sink", "inputs": ["logs"]}},
		"tests": [{"name": "smoke"}]
	}`)

	require.Empty(t, b.Append(NewBuilder()))

	assert.Equal(t, "/tmp/pw", b.Global.DataDir)
	assert.Equal(t, []componentid.ID{componentid.Global("logs")}, b.Sources.Keys())
	assert.Equal(t, []componentid.ID{componentid.Global("print")}, b.Sinks.Keys())
	assert.Len(t, b.Tests, 1)
	assert.True(t, b.Healthchecks.Enabled)
}

func TestAppend_MergesDisjointFragments(t *testing.T) {
	a := builderFromJSON(t, `{"sources": {"logs": {"type": "noop_source"}}}`)
	b := builderFromJSON(t, `{
		"transforms": {"parse": {"type": "noop_transform", "inputs": ["logs"]}},
		"sinks": {"print": {"type": "noop_sink", "inputs": ["parse"]}}
	}`)

	require.Empty(t, a.Append(b))

	// Accumulator entries first, fragment entries appended after.
	assert.Equal(t, 1, a.Sources.Len())
	assert.Equal(t, 1, a.Transforms.Len())
	assert.Equal(t, 1, a.Sinks.Len())
}

func TestAppend_DuplicateKeysAreAtomicAcrossAllCollections(t *testing.T) {
	a := builderFromJSON(t, `{
		"enrichment_tables": {"geo": {"type": "noop_table"}},
		"sources": {"logs": {"type": "noop_source"}},
		"sinks": {"print": {"type": "noop_sink", "inputs": ["logs"]}},
		"tests": [{"name": "smoke"}]
	}`)
	b := builderFromJSON(t, `{
		"sources": {"logs": {"type": "noop_source"}, "extra": {"type": "noop_source"}},
		"transforms": {"parse": {"type": "noop_transform", "inputs": ["logs"]}},
		"sinks": {"print": {"type": "noop_sink", "inputs": ["logs"]}},
		"tests": [{"name": "smoke"}]
	}`)

	errs := a.Append(b)
	require.Equal(t, []string{
		"duplicate source id found: logs",
		"duplicate sink id found: print",
		"duplicate test name found: smoke",
	}, errs)

	// None of the identity-keyed collections changed, including the ones
	// that had no conflict of their own.
	assert.Equal(t, 1, a.Sources.Len())
	assert.Equal(t, 0, a.Transforms.Len())
	assert.Equal(t, 1, a.Sinks.Len())
	assert.Equal(t, 1, a.EnrichmentTables.Len())
	assert.Len(t, a.Tests, 1)
}

func TestAppend_DuplicateEnrichmentTableMessage(t *testing.T) {
	a := builderFromJSON(t, `{"enrichment_tables": {"geo": {"type": "noop_table"}}}`)
	b := builderFromJSON(t, `{"enrichment_tables": {"geo": {"type": "noop_table"}}}`)

	errs := a.Append(b)
	require.Equal(t, []string{"duplicate enrichment_table name found: geo"}, errs)
}

func TestAppend_DataDirPolicy(t *testing.T) {
	testCases := []struct {
		name       string
		self       string
		with       string
		expectDir  string
		expectErrs []string
	}{
		{
			name:      "unset adopts fragment value",
			self:      "",
			with:      "/data/a",
			expectDir: "/data/a",
		},
		{
			name:      "default adopts fragment value",
			self:      DefaultDataDir,
			with:      "/data/a",
			expectDir: "/data/a",
		},
		{
			name:      "custom kept when fragment unset",
			self:      "/data/a",
			with:      "",
			expectDir: "/data/a",
		},
		{
			name:      "custom kept when fragment has default",
			self:      "/data/a",
			with:      DefaultDataDir,
			expectDir: "/data/a",
		},
		{
			name:       "two custom values conflict",
			self:       "/data/a",
			with:       "/data/b",
			expectDir:  "/data/a",
			expectErrs: []string{"conflicting values for 'data_dir' found"},
		},
		{
			name:      "equal custom values agree",
			self:      "/data/a",
			with:      "/data/a",
			expectDir: "/data/a",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewBuilder()
			a.Global.DataDir = tc.self
			b := NewBuilder()
			b.Global.DataDir = tc.with

			errs := a.Append(b)
			assert.Equal(t, tc.expectErrs, errs)
			assert.Equal(t, tc.expectDir, a.Global.DataDir)
		})
	}
}

func TestAppend_LogSchemaConflictsAccumulate(t *testing.T) {
	a := NewBuilder()
	a.Global.LogSchema = LogSchema{MessageKey: "msg_a", HostKey: "host_a"}
	b := NewBuilder()
	b.Global.LogSchema = LogSchema{MessageKey: "msg_b", HostKey: "host_b", TimestampKey: "ts"}

	errs := a.Append(b)
	require.Equal(t, []string{
		"conflicting values for 'log_schema.message_key' found",
		"conflicting values for 'log_schema.host_key' found",
	}, errs)

	// The non-conflicting field still merged, even though the call failed.
	assert.Equal(t, "ts", a.Global.LogSchema.TimestampKey)
}

func TestAppend_ScalarFieldsFoldEvenWhenAppendFails(t *testing.T) {
	a := builderFromJSON(t, `{"sources": {"logs": {"type": "noop_source"}}}`)
	b := builderFromJSON(t, `{
		"data_dir": "/data/b",
		"healthchecks": {"enabled": false},
		"sources": {"logs": {"type": "noop_source"}}
	}`)

	errs := a.Append(b)
	require.Equal(t, []string{"duplicate source id found: logs"}, errs)

	// Early, independently-policied fields were already folded.
	assert.Equal(t, "/data/b", a.Global.DataDir)
	assert.False(t, a.Healthchecks.Enabled)
}

func TestAppend_ProviderAlwaysReplaced(t *testing.T) {
	testutil.RegisterNoopComponents()

	a := NewBuilder()
	a.SetProvider(&testutil.NoopProvider{Fragment: "original"})

	// A fragment with no provider still overwrites, discarding the earlier
	// one. See the open-question note in DESIGN.md.
	require.Empty(t, a.Append(NewBuilder()))
	assert.Nil(t, a.Provider)

	b := NewBuilder()
	b.SetProvider(&testutil.NoopProvider{Fragment: "replacement"})
	require.Empty(t, a.Append(b))
	require.NotNil(t, a.Provider)
	assert.Equal(t, "replacement", a.Provider.(*testutil.NoopProvider).Fragment)
}

func TestAppend_HealthcheckAndAPIMerge(t *testing.T) {
	a := NewBuilder()
	a.API = APIOptions{Address: "127.0.0.1:8686"}

	b := NewBuilder()
	b.Healthchecks.RequireHealthy = true
	b.API = APIOptions{Enabled: true, Address: "127.0.0.1:9999"}

	errs := a.Append(b)
	require.Equal(t, []string{"conflicting values for 'api.address' found"}, errs)

	// Healthchecks merged anyway: require_healthy is sticky, enabled still on.
	assert.True(t, a.Healthchecks.Enabled)
	assert.True(t, a.Healthchecks.RequireHealthy)
	// The API address conflict did not stop the enabled flag from folding.
	assert.True(t, a.API.Enabled)
	assert.Equal(t, "127.0.0.1:8686", a.API.Address)
}
