package format

import (
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// tomlToTree parses a TOML fragment into an order-preserving tree. The
// decoder hands back plain maps, so document order is reconstructed from the
// metadata key list afterwards.
func tomlToTree(data []byte) (*object, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}

	order := make(map[string]int)
	for i, key := range md.Keys() {
		p := pathKey(key, "")
		if _, ok := order[p]; !ok {
			order[p] = i
		}
	}

	return tomlObject(raw, nil, order), nil
}

// pathKey joins a key path with a separator no TOML key can contain.
func pathKey(path []string, name string) string {
	joined := strings.Join(path, "\x00")
	if name == "" {
		return joined
	}
	if joined == "" {
		return name
	}
	return joined + "\x00" + name
}

func tomlObject(m map[string]any, path []string, order map[string]int) *object {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		oi, oki := order[pathKey(path, names[i])]
		oj, okj := order[pathKey(path, names[j])]
		if oki && okj && oi != oj {
			return oi < oj
		}
		if oki != okj {
			return oki
		}
		return names[i] < names[j]
	})

	out := newObject()
	for _, name := range names {
		out.set(name, tomlValue(m[name], append(path, name), order))
	}
	return out
}

func tomlValue(v any, path []string, order map[string]int) any {
	switch value := v.(type) {
	case map[string]any:
		return tomlObject(value, path, order)
	case []map[string]any:
		out := make([]any, len(value))
		for i, elem := range value {
			out[i] = tomlObject(elem, path, order)
		}
		return out
	case []any:
		out := make([]any, len(value))
		for i, elem := range value {
			out[i] = tomlValue(elem, path, order)
		}
		return out
	default:
		return v
	}
}
