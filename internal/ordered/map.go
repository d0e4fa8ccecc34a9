// Package ordered provides a generic insertion-ordered map.
//
// Every entity collection in the config builder preserves declaration order:
// diagnostics and graph construction must be deterministic across runs, and
// Go's built-in map iteration order is randomized. Updating an existing key
// keeps its original position; only genuinely new keys append.
package ordered

// Map is an insertion-ordered map. The zero value is not usable; call New.
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// New creates an empty ordered map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{values: make(map[K]V)}
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Get returns the value stored under key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[key]
	return ok
}

// Set stores value under key. A new key appends to the insertion order; an
// existing key keeps its position and only the value is replaced.
func (m *Map[K, V]) Set(key K, value V) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (m *Map[K, V]) Keys() []K {
	if m == nil {
		return nil
	}
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Extend appends every entry of other, in other's insertion order. Keys
// already present keep their position and take other's value.
func (m *Map[K, V]) Extend(other *Map[K, V]) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		m.Set(k, other.values[k])
	}
}

// Clone returns a shallow copy preserving insertion order.
func (m *Map[K, V]) Clone() *Map[K, V] {
	out := New[K, V]()
	if m == nil {
		return out
	}
	out.Extend(m)
	return out
}
