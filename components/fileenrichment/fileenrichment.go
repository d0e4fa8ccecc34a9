// Package fileenrichment registers the file enrichment table, which loads a
// delimited file into memory for lookups from transforms.
package fileenrichment

import "github.com/vk/pipeweld/internal/component"

func init() {
	component.Default.RegisterEnrichmentTable("file", func() component.EnrichmentTableConfig {
		return &Config{Delimiter: ",", IncludeHeaders: true}
	})
}

// Config configures the file enrichment table.
type Config struct {
	// Path is the file to load, relative paths resolved against data_dir.
	Path string `json:"path"`
	// Delimiter separates columns; defaults to a comma.
	Delimiter string `json:"delimiter,omitempty"`
	// IncludeHeaders treats the first row as column names.
	IncludeHeaders bool `json:"include_headers"`
	// Schema overrides the inferred column types, column name to type name.
	Schema map[string]string `json:"schema,omitempty"`
}

func (c *Config) ComponentType() string { return "file" }
