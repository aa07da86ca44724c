package lantern

import csmap "github.com/mhmtszr/concurrent-swiss-map"

// A single key to value cache.
type Cache[K comparable, V any] struct {
	inner *csmap.CsMap[K, V]
	size  uint64
}

func NewCache[K comparable, V any](size uint64) Cache[K, V] {
	return Cache[K, V]{
		size: size,
	}
}

func (c *Cache[K, V]) Load(key K) (value V, ok bool) {
	if c.inner == nil {
		return
	}

	return c.inner.Load(key)
}

func (c *Cache[K, V]) Store(key K, value V) {
	if c.inner == nil {
		c.inner = csmap.Create(
			csmap.WithSize[K, V](c.size),
		)
	}

	c.inner.Store(key, value)
}

func (c *Cache[K, V]) Delete(key K) {
	if c.inner == nil {
		return
	}

	c.inner.Delete(key)
}

// LoadOrCreate returns the value for the key, constructing it via fn when
// absent. Concurrent callers racing on the same key all receive whichever
// value won the insert.
func (c *Cache[K, V]) LoadOrCreate(key K, fn func() V) V {
	if value, ok := c.Load(key); ok {
		return value
	}

	c.SetIfAbsent(key, fn())

	value, _ := c.Load(key)

	return value
}

// Update runs a function on a value in the cache, storing the returned value.
func (c *Cache[K, V]) Update(key K, fn func(value V) V) (value V, ok bool) {
	if c.inner == nil {
		return
	}

	value, ok = c.inner.Load(key)
	if !ok {
		return
	}

	value = fn(value)

	c.inner.Store(key, value)

	return
}

// Range calls fn for every entry. If the callback returns true iteration
// stops.
func (c *Cache[K, V]) Range(fn func(key K, value V) bool) {
	if c.inner == nil {
		return
	}

	c.inner.Range(fn)
}

func (c *Cache[K, V]) Count() int {
	if c.inner == nil {
		return 0
	}

	return c.inner.Count()
}

func (c *Cache[K, V]) Clear() {
	if c.inner == nil {
		return
	}

	c.inner.Clear()
}

func (c *Cache[K, V]) SetIfAbsent(key K, value V) {
	if c.inner == nil {
		c.inner = csmap.Create(
			csmap.WithSize[K, V](c.size),
		)
	}

	c.inner.SetIfAbsent(key, value)
}
