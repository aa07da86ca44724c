package syncmap

import (
	"sync"
	"sync/atomic"
)

// Map is a type-safe wrapper around sync.Map with an O(1) counter.
type Map[K comparable, V any] struct {
	m     sync.Map
	count atomic.Int64
}

// Store stores the value for the key.
func (m *Map[K, V]) Store(key K, value V) {
	_, loaded := m.m.Load(key)
	m.m.Store(key, value)

	if !loaded {
		m.count.Add(1)
	}
}

// Load loads the value for the key.
func (m *Map[K, V]) Load(key K) (V, bool) {
	value, ok := m.m.Load(key)
	if !ok {
		var zero V

		return zero, false
	}

	return value.(V), true
}

// Has reports whether the key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.m.Load(key)

	return ok
}

// Delete deletes the value for the key.
func (m *Map[K, V]) Delete(key K) {
	_, loaded := m.m.LoadAndDelete(key)
	if loaded {
		m.count.Add(-1)
	}
}

// LoadAndDelete loads and deletes the value for the key.
func (m *Map[K, V]) LoadAndDelete(key K) (V, bool) {
	value, ok := m.m.LoadAndDelete(key)
	if !ok {
		var zero V

		return zero, false
	}

	m.count.Add(-1)

	return value.(V), true
}

// LoadOrStore loads the value for the key if it exists, otherwise stores and
// returns the given value.
func (m *Map[K, V]) LoadOrStore(key K, value V) (V, bool) {
	actual, loaded := m.m.LoadOrStore(key, value)
	if !loaded {
		m.count.Add(1)
	}

	return actual.(V), loaded
}

// Range calls f for each key-value pair in the map. Iteration stops when f
// returns false.
func (m *Map[K, V]) Range(f func(key K, value V) bool) {
	m.m.Range(func(key, value interface{}) bool {
		return f(key.(K), value.(V))
	})
}

// Keys returns a snapshot of the keys in the map.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.Count())

	m.m.Range(func(key, _ interface{}) bool {
		keys = append(keys, key.(K))

		return true
	})

	return keys
}

// Clear removes every entry from the map.
func (m *Map[K, V]) Clear() {
	m.m.Range(func(key, _ interface{}) bool {
		m.m.Delete(key)

		return true
	})
	m.count.Store(0)
}

// Count returns the number of items in the map.
func (m *Map[K, V]) Count() int {
	return int(m.count.Load())
}
