package pure

import "github.com/hashicorp/golang-lru/v2/simplelru"

// LRU is a fixed-capacity cache that evicts the least recently used entry.
// Get and Put are O(1).
//
// Keys that are not equal to themselves (a floating-point NaN, or an array or
// struct holding one) can never be found again, so Put does not cache them.
//
// LRU is not safe for concurrent use; Binding serializes access to it.
// The zero value is not valid, use NewLRU.
type LRU[K comparable, V any] struct {
	items *simplelru.LRU[K, V]
	cap   int
}

// NewLRU creates a cache holding at most capacity entries.
// It fails with a *ConfigError if capacity is not positive.
func NewLRU[K comparable, V any](capacity int) (*LRU[K, V], error) {
	if capacity <= 0 {
		return nil, &ConfigError{Size: capacity}
	}
	items, err := simplelru.NewLRU[K, V](capacity, nil)
	if err != nil {
		return nil, &ConfigError{Size: capacity}
	}
	return &LRU[K, V]{items: items, cap: capacity}, nil
}

// Get returns the value for key and marks it most recently used.
// A miss changes nothing.
func (l *LRU[K, V]) Get(key K) (value V, ok bool) {
	return l.items.Get(key)
}

// Peek returns the value for key without touching its recency.
func (l *LRU[K, V]) Peek(key K) (value V, ok bool) {
	return l.items.Peek(key)
}

// Contains reports whether key is cached, without touching its recency.
func (l *LRU[K, V]) Contains(key K) bool {
	return l.items.Contains(key)
}

// Put inserts or overwrites key and marks it most recently used.
// Inserting a new key into a full cache evicts the oldest entry;
// evicted reports whether that happened.
func (l *LRU[K, V]) Put(key K, value V) (evicted bool) {
	if !selfEqual(key) {
		return false
	}
	return l.items.Add(key, value)
}

// Remove drops key and reports whether it was present.
func (l *LRU[K, V]) Remove(key K) bool {
	return l.items.Remove(key)
}

// Oldest returns the entry that the next eviction would drop.
func (l *LRU[K, V]) Oldest() (key K, value V, ok bool) {
	return l.items.GetOldest()
}

// Keys returns the cached keys from oldest to newest.
func (l *LRU[K, V]) Keys() []K {
	return l.items.Keys()
}

// Len returns the number of cached entries.
func (l *LRU[K, V]) Len() int { return l.items.Len() }

// Cap returns the capacity fixed at construction.
func (l *LRU[K, V]) Cap() int { return l.cap }

// Purge drops every entry.
func (l *LRU[K, V]) Purge() {
	l.items.Purge()
}

// selfEqual is false only for keys holding a NaN.
func selfEqual[K comparable](key K) bool {
	return key == key
}
