// Package pure holds the memoization primitives: a bounded LRU cache, a lazy
// singleton, and the per-function binding that ties them to a call protocol.
package pure

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Cloner is implemented by results that need a deep copy
// before being handed to another caller.
type Cloner[T any] interface {
	Clone() T
}

// Duplicate returns v.Clone() if v implements Cloner[T], v itself otherwise.
func Duplicate[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}

// Stats is a snapshot of a binding's counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Stores    uint64
	Evictions uint64
}

// Binding pairs one function with its own LRU cache and lock.
//
// The lock is held only while the cache is read or written, never while the
// function body runs, so the body may call back into the same binding.
// Concurrent misses on one key all run the body and the last store wins.
type Binding[K comparable, V any] struct {
	name     string
	id       string
	logger   *zap.Logger
	observer Observer

	mu       sync.Mutex
	cache    *LRU[K, V]
	poisoned bool
	cause    any

	hits, misses, stores, evictions atomic.Uint64
}

// NewBinding creates the binding for the function identified by name.
// It fails with a *ConfigError if the configured size is not positive.
func NewBinding[K comparable, V any](name string, opts ...Option) (*Binding[K, V], error) {
	cfg := NewConfig(opts...)
	if err := cfg.validate(name); err != nil {
		return nil, err
	}
	cache, err := NewLRU[K, V](cfg.Size)
	if err != nil {
		return nil, err
	}
	id := uuid.New().String()
	b := &Binding[K, V]{
		name: name,
		id:   id,
		logger: cfg.Logger.Named("purememo").With(
			zap.String("binding", name),
			zap.String("binding_id", id),
		),
		observer: cfg.Observer,
		cache:    cache,
	}
	b.logger.Debug("created binding", zap.Int("size", cfg.Size))
	return b, nil
}

// Call runs the memoization protocol for one invocation:
// a cached result for key is duplicated and returned without running body;
// otherwise body runs unlocked and its result is stored before returning.
func (b *Binding[K, V]) Call(key K, body func() V) V {
	if v, ok := b.Lookup(key); ok {
		return v
	}
	v := body()
	b.Store(key, v)
	return v
}

// Lookup returns a duplicate of the cached result for key and
// marks it most recently used.
func (b *Binding[K, V]) Lookup(key K) (V, bool) {
	v, ok := b.lookup(key)
	if ok {
		b.hits.Add(1)
		b.observer.OnHit(b.name)
	} else {
		b.misses.Add(1)
		b.observer.OnMiss(b.name)
	}
	return v, ok
}

// Store caches a duplicate of v under key, evicting the least recently used
// entry if the cache is full.
func (b *Binding[K, V]) Store(key K, v V) {
	evicted := b.store(key, v)
	b.stores.Add(1)
	b.observer.OnStore(b.name)
	if evicted {
		b.evictions.Add(1)
		b.observer.OnEvict(b.name)
		if ce := b.logger.Check(zapcore.DebugLevel, "evicted least recently used entry"); ce != nil {
			ce.Write(zap.Uint64("evictions", b.evictions.Load()))
		}
	}
}

// Len returns the number of cached results.
func (b *Binding[K, V]) Len() int {
	b.acquire()
	defer b.release()
	return b.cache.Len()
}

// Cap returns the configured size.
func (b *Binding[K, V]) Cap() int {
	return b.cache.Cap()
}

// Name returns the function identity this binding serves.
func (b *Binding[K, V]) Name() string { return b.name }

// ID returns the unique id assigned at construction.
func (b *Binding[K, V]) ID() string { return b.id }

// Stats returns the current counters.
func (b *Binding[K, V]) Stats() Stats {
	return Stats{
		Hits:      b.hits.Load(),
		Misses:    b.misses.Load(),
		Stores:    b.stores.Load(),
		Evictions: b.evictions.Load(),
	}
}

// Poisoned reports whether a panic escaped while the lock was held.
func (b *Binding[K, V]) Poisoned() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.poisoned
}

func (b *Binding[K, V]) lookup(key K) (v V, ok bool) {
	b.acquire()
	defer b.release()
	if v, ok = b.cache.Get(key); ok {
		v = Duplicate(v)
	}
	return v, ok
}

func (b *Binding[K, V]) store(key K, v V) bool {
	b.acquire()
	defer b.release()
	return b.cache.Put(key, Duplicate(v))
}

// acquire locks b, panicking with a *PoisonError if b is poisoned.
func (b *Binding[K, V]) acquire() {
	b.mu.Lock()
	if b.poisoned {
		cause := b.cause
		b.mu.Unlock()
		panic(&PoisonError{Binding: b.name, Cause: cause})
	}
}

// release must be deferred right after acquire.
// A panic unwinding through the critical section poisons b before unlocking.
func (b *Binding[K, V]) release() {
	if r := recover(); r != nil {
		b.poisoned = true
		b.cause = r
		b.mu.Unlock()
		b.logger.Error("binding poisoned", zap.Any("cause", r))
		panic(r)
	}
	b.mu.Unlock()
}
