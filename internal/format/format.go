// Package format deserializes configuration fragments. Every supported
// syntax is normalized into one JSON value tree, preserving document order,
// so the builder has a single decode path regardless of what the fragment
// was written in.
package format

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/pipeweld/internal/config"
)

// Format is a fragment syntax.
type Format string

const (
	TOML Format = "toml"
	YAML Format = "yaml"
	JSON Format = "json"
	HCL  Format = "hcl"
)

var extensions = map[string]Format{
	".toml": TOML,
	".yaml": YAML,
	".yml":  YAML,
	".json": JSON,
	".hcl":  HCL,
}

// Extensions returns every file extension a fragment may carry, dot included.
func Extensions() []string {
	return []string{".toml", ".yaml", ".yml", ".json", ".hcl"}
}

// FromPath determines the fragment format from a file path's extension.
func FromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("could not determine config format from file path %q", path)
}

// FromName resolves a format by name, e.g. the syntax a provider declares for
// the fragments it serves.
func FromName(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case TOML:
		return TOML, nil
	case YAML:
		return YAML, nil
	case JSON:
		return JSON, nil
	case HCL:
		return HCL, nil
	}
	return "", fmt.Errorf("unknown config format %q", name)
}

// Deserialize parses one fragment into a fresh builder. Non-JSON syntaxes are
// normalized to a JSON tree first; the builder only ever decodes JSON.
func Deserialize(data []byte, f Format) (*config.Builder, error) {
	encoded, err := normalize(data, f)
	if err != nil {
		return nil, err
	}

	builder := config.NewBuilder()
	if err := json.Unmarshal(encoded, builder); err != nil {
		return nil, err
	}
	return builder, nil
}

func normalize(data []byte, f Format) ([]byte, error) {
	switch f {
	case JSON:
		return data, nil
	case TOML:
		tree, err := tomlToTree(data)
		if err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
		return json.Marshal(tree)
	case YAML:
		tree, err := yamlToTree(data)
		if err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
		return json.Marshal(tree)
	case HCL:
		tree, err := hclToTree(data)
		if err != nil {
			return nil, fmt.Errorf("parsing HCL: %w", err)
		}
		return json.Marshal(tree)
	}
	return nil, fmt.Errorf("unknown config format %q", string(f))
}
