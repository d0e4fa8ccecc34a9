package componentid

import (
	"fmt"
	"strings"
)

// Separator splits the owning pipeline from the local name in the canonical
// string form of a scoped ID.
const Separator = "/"

// ID is the structured identity of a pipeline component. The zero value is
// not a valid ID; use Global or Scoped. ID is comparable and usable as a map
// key; equality covers the full qualified value.
type ID struct {
	pipeline string
	name     string
}

// Global creates an ID in the global namespace.
func Global(name string) ID {
	return ID{name: name}
}

// Scoped creates an ID local to the named pipeline.
func Scoped(pipeline, name string) ID {
	return ID{pipeline: pipeline, name: name}
}

// Name returns the local (unqualified) name of the component.
func (id ID) Name() string {
	return id.name
}

// Pipeline returns the owning pipeline name and whether the ID is scoped.
func (id ID) Pipeline() (string, bool) {
	return id.pipeline, id.pipeline != ""
}

// IsGlobal reports whether the ID lives in the global namespace.
func (id ID) IsGlobal() bool {
	return id.pipeline == ""
}

// String serializes the ID into its canonical string representation.
func (id ID) String() string {
	if id.pipeline == "" {
		return id.name
	}
	return id.pipeline + Separator + id.name
}

// Parse creates an ID from its canonical string representation.
func Parse(raw string) (ID, error) {
	if raw == "" {
		return ID{}, fmt.Errorf("component id cannot be empty")
	}

	parts := strings.Split(raw, Separator)
	switch len(parts) {
	case 1:
		return Global(parts[0]), nil
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return ID{}, fmt.Errorf("invalid component id %q: empty segment", raw)
		}
		return Scoped(parts[0], parts[1]), nil
	default:
		return ID{}, fmt.Errorf("invalid component id %q: at most one %q allowed", raw, Separator)
	}
}

// MarshalText implements encoding.TextMarshaler so IDs can key JSON objects.
func (id ID) MarshalText() ([]byte, error) {
	if id.name == "" {
		return nil, fmt.Errorf("cannot serialize zero component id")
	}
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
