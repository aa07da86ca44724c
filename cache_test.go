package lantern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	lantern "github.com/LanternTeam/Lantern"
)

func TestCacheLoadOrCreate(t *testing.T) {
	t.Parallel()

	cache := lantern.NewCache[int, string](8)

	var created int

	value := cache.LoadOrCreate(1, func() string {
		created++

		return "first"
	})
	assert.Equal(t, "first", value)

	value = cache.LoadOrCreate(1, func() string {
		created++

		return "second"
	})
	assert.Equal(t, "first", value)
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, cache.Count())
}

func TestCacheRangeStopsOnTrue(t *testing.T) {
	t.Parallel()

	cache := lantern.NewCache[int, int](8)

	for i := 0; i < 10; i++ {
		cache.Store(i, i)
	}

	var seen int

	cache.Range(func(_, _ int) bool {
		seen++

		return true
	})

	assert.Equal(t, 1, seen)
}

func TestCacheZeroValueSafe(t *testing.T) {
	t.Parallel()

	var cache lantern.Cache[int, string]

	_, ok := cache.Load(1)
	assert.False(t, ok)
	assert.Zero(t, cache.Count())

	cache.Delete(1)
	cache.Clear()
}
