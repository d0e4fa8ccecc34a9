package httpprovider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_FetchesFragment(t *testing.T) {
	fragment := `{"sources": {"logs": {"type": "demo_logs"}}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(fragment))
	}))
	defer server.Close()

	cfg := &Config{URL: server.URL, Format: "json", TimeoutSecs: 5}
	provider, err := cfg.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "json", provider.FragmentFormat())

	got, err := provider.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fragment, string(got))
}

func TestProvider_RejectsNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	cfg := &Config{URL: server.URL}
	provider, err := cfg.Build(context.Background())
	require.NoError(t, err)

	_, err = provider.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestConfig_RequiresURL(t *testing.T) {
	_, err := (&Config{}).Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a 'url'")
}

func TestProvider_DefaultFormat(t *testing.T) {
	p := &provider{}
	assert.Equal(t, "toml", p.FragmentFormat())
}
