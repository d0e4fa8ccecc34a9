// Package httpprovider registers the http provider, which fetches a
// configuration fragment from a remote endpoint.
package httpprovider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vk/pipeweld/internal/component"
)

func init() {
	component.Default.RegisterProvider("http", func() component.ProviderConfig {
		return &Config{Format: "toml", PollIntervalSecs: 30, TimeoutSecs: 15}
	})
}

// Config configures the http provider.
type Config struct {
	// URL is the endpoint serving the fragment. Required.
	URL string `json:"url"`
	// Format names the syntax the endpoint serves: "toml", "yaml", "json" or
	// "hcl".
	Format string `json:"format,omitempty"`
	// PollIntervalSecs is how often the endpoint is re-fetched when watching
	// for configuration changes.
	PollIntervalSecs float64 `json:"poll_interval_secs,omitempty"`
	// TimeoutSecs bounds each fetch.
	TimeoutSecs float64 `json:"timeout_secs,omitempty"`
}

func (c *Config) ComponentType() string { return "http" }

// Build validates the configuration and constructs the fetching provider.
func (c *Config) Build(ctx context.Context) (component.Provider, error) {
	if c.URL == "" {
		return nil, fmt.Errorf("the http provider requires a 'url'")
	}

	client := &http.Client{
		Timeout: time.Duration(c.TimeoutSecs * float64(time.Second)),
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	return &provider{url: c.URL, format: c.Format, client: client}, nil
}

type provider struct {
	url    string
	format string
	client *http.Client
}

// Fetch retrieves one raw fragment from the endpoint.
func (p *provider) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building config request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching config from %s: %w", p.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetching config from %s: unexpected status %s", p.url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (p *provider) FragmentFormat() string {
	if p.format == "" {
		return "toml"
	}
	return p.format
}
