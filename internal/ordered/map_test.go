package ordered

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_InsertionOrder(t *testing.T) {
	m := New[string, int]()
	m.Set("c", 1)
	m.Set("a", 2)
	m.Set("b", 3)

	assert.Equal(t, []string{"c", "a", "b"}, m.Keys())
	assert.Equal(t, 3, m.Len())

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestMap_UpdateKeepsPosition(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 10)

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, _ := m.Get("a")
	assert.Equal(t, 10, v)
	assert.Equal(t, 2, m.Len())
}

func TestMap_Extend(t *testing.T) {
	a := New[string, int]()
	a.Set("x", 1)
	a.Set("y", 2)

	b := New[string, int]()
	b.Set("z", 3)
	b.Set("w", 4)

	a.Extend(b)
	assert.Equal(t, []string{"x", "y", "z", "w"}, a.Keys())

	// Extending with nil is a no-op.
	a.Extend(nil)
	assert.Equal(t, 4, a.Len())
}

func TestMap_Clone(t *testing.T) {
	a := New[string, int]()
	a.Set("x", 1)
	a.Set("y", 2)

	b := a.Clone()
	b.Set("z", 3)

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, []string{"x", "y"}, a.Keys())
}

func TestMap_NilReceiverReads(t *testing.T) {
	var m *Map[string, int]
	assert.Equal(t, 0, m.Len())
	assert.False(t, m.Has("a"))
	_, ok := m.Get("a")
	assert.False(t, ok)
	assert.Nil(t, m.Keys())
}
