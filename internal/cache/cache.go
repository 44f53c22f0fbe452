// Package cache provides a small in-memory LRU cache with TTL.
//
// Caches here are a perf optimization only: derived views are always
// recomputable from the record store, and cache keys embed the store
// version so stale entries can never be served after a mutation.
package cache

// Cache defines a generic cache interface
type Cache[T any] interface {
	// Get retrieves a value from the cache
	Get(key string) (T, bool)

	// Set stores a value in the cache
	Set(key string, data T)

	// Delete removes a key from the cache
	Delete(key string)

	// Size returns the current number of items in the cache
	Size() int
}

// Cleaner interface for caches that support cleanup
type Cleaner interface {
	CleanExpired() int
}
