package syncmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LanternTeam/Lantern/pkg/syncmap"
)

func TestMapBasicOperations(t *testing.T) {
	t.Parallel()

	var m syncmap.Map[string, int]

	m.Store("a", 1)
	m.Store("b", 2)

	assert.Equal(t, 2, m.Count())
	assert.True(t, m.Has("a"))

	v, ok := m.Load("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	m.Delete("a")
	assert.False(t, m.Has("a"))
	assert.Equal(t, 1, m.Count())
}

func TestMapLoadOrStore(t *testing.T) {
	t.Parallel()

	var m syncmap.Map[string, int]

	v, loaded := m.LoadOrStore("a", 1)
	assert.False(t, loaded)
	assert.Equal(t, 1, v)

	v, loaded = m.LoadOrStore("a", 2)
	assert.True(t, loaded)
	assert.Equal(t, 1, v)

	assert.Equal(t, 1, m.Count())
}

func TestMapRangeStopsOnFalse(t *testing.T) {
	t.Parallel()

	var m syncmap.Map[int, int]

	for i := 0; i < 10; i++ {
		m.Store(i, i)
	}

	var seen int

	m.Range(func(_, _ int) bool {
		seen++

		return false
	})

	assert.Equal(t, 1, seen)
}

func TestMapClearResetsCount(t *testing.T) {
	t.Parallel()

	var m syncmap.Map[string, int]

	m.Store("a", 1)
	m.Store("b", 2)
	m.Clear()

	assert.Zero(t, m.Count())
	assert.Empty(t, m.Keys())
}
