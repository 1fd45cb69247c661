// Package kv provides a generic thread-safe key-value cache.
package kv

import "sync"

// Store is a thread-safe key-value cache. Values are only ever added by Set or
// by a successful load.
type Store[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]V
}

// New creates an empty store.
func New[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{
		data: make(map[K]V),
	}
}

// Get retrieves a value by key.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// Set stores a value by key.
func (s *Store[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// GetOrLoad returns the cached value for key, calling load on a miss. Failed
// loads are not cached. Concurrent misses for the same key may each call load;
// the last successful result wins.
func (s *Store[K, V]) GetOrLoad(key K, load func() (V, error)) (V, error) {
	if v, ok := s.Get(key); ok {
		return v, nil
	}

	v, err := load()
	if err != nil {
		var zero V
		return zero, err
	}

	s.Set(key, v)
	return v, nil
}
