package pure

import (
	"sync"
	"sync/atomic"
)

// Lazy defers construction of a value until its first Get.
//
// The initializer runs exactly once, no matter how many goroutines race on the
// first Get; all of them observe the same value. Calling Get from inside the
// initializer blocks forever.
//
// The zero value is not valid, use NewLazy.
type Lazy[T any] struct {
	name  string
	once  sync.Once
	init  func() T
	value T
	done  atomic.Bool

	// set when init panicked; read only after once.Do returns
	poisoned bool
	cause    any
}

// NewLazy returns a Lazy that builds its value with init.
func NewLazy[T any](init func() T) *Lazy[T] {
	return NewLazyNamed("", init)
}

// NewLazyNamed is NewLazy for a value that serves name;
// a *PoisonError raised by Get carries it.
func NewLazyNamed[T any](name string, init func() T) *Lazy[T] {
	if init == nil {
		panic("NewLazy: nil initializer")
	}
	return &Lazy[T]{name: name, init: init}
}

// Get returns the value, constructing it on first use.
//
// If the initializer panicked, the first caller sees that panic and every
// later caller panics with a *PoisonError.
func (l *Lazy[T]) Get() T {
	if l.done.Load() {
		return l.value
	}
	l.once.Do(l.construct)
	if l.poisoned {
		panic(&PoisonError{Binding: l.name, Cause: l.cause})
	}
	return l.value
}

// Initialized reports whether the value has been constructed.
func (l *Lazy[T]) Initialized() bool {
	return l.done.Load()
}

func (l *Lazy[T]) construct() {
	defer func() {
		if r := recover(); r != nil {
			l.poisoned = true
			l.cause = r
			panic(r)
		}
	}()
	l.value = l.init()
	l.init = nil
	l.done.Store(true)
}

// Obtain runs init through a fresh Lazy and returns its value.
func Obtain[T any](init func() T) T {
	return NewLazy(init).Get()
}

type lazyResult[T any] struct {
	value T
	err   error
}

// LazyErr is a Lazy whose initializer can fail.
// A failed construction is remembered and never retried.
type LazyErr[T any] struct {
	lazy *Lazy[lazyResult[T]]
}

// NewLazyErr returns a LazyErr that builds its value with init.
func NewLazyErr[T any](init func() (T, error)) *LazyErr[T] {
	return NewLazyErrNamed("", init)
}

// NewLazyErrNamed is NewLazyErr for a value that serves name.
func NewLazyErrNamed[T any](name string, init func() (T, error)) *LazyErr[T] {
	if init == nil {
		panic("NewLazyErr: nil initializer")
	}
	return &LazyErr[T]{
		lazy: NewLazyNamed(name, func() lazyResult[T] {
			v, err := init()
			return lazyResult[T]{value: v, err: err}
		}),
	}
}

// Get returns the constructed value or the construction error.
func (l *LazyErr[T]) Get() (T, error) {
	res := l.lazy.Get()
	return res.value, res.err
}

// Initialized reports whether construction has been attempted.
func (l *LazyErr[T]) Initialized() bool {
	return l.lazy.Initialized()
}
