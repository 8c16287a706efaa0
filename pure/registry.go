package pure

import (
	"fmt"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/on-the-ground/purememo/shared/helper"
)

const numRegistryShards = 16

// Registry owns the bindings of a set of functions, one per function identity.
// Bindings are built lazily on the first Bind for a name and live as long as
// the registry.
type Registry struct {
	defaults []Option
	shards   [numRegistryShards]registryShard
}

type registryShard struct {
	mu      sync.Mutex
	entries map[string]*LazyErr[any]
}

// NewRegistry returns an empty registry. opts are applied to every binding
// before the options passed to Bind.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{defaults: opts}
	for i := range r.shards {
		r.shards[i].entries = make(map[string]*LazyErr[any])
	}
	return r
}

// Bind returns the binding registered under name, creating it on first use.
//
// Construction happens once per name; a construction error is remembered and
// returned to every later caller. Asking for a name already bound with other
// key or value types fails with a *TypeConstraintError.
func Bind[K comparable, V any](r *Registry, name string, opts ...Option) (*Binding[K, V], error) {
	shard := r.shardOf(name)

	shard.mu.Lock()
	lazy, ok := shard.entries[name]
	if !ok {
		all := append(slices.Clip(r.defaults), opts...)
		lazy = NewLazyErrNamed(name, func() (any, error) {
			b, err := NewBinding[K, V](name, all...)
			if err != nil {
				return nil, err
			}
			return b, nil
		})
		shard.entries[name] = lazy
	}
	shard.mu.Unlock()

	raw, err := lazy.Get()
	if err != nil {
		return nil, err
	}
	b, err := helper.AssertType[*Binding[K, V]](raw)
	if err != nil {
		return nil, &TypeConstraintError{
			Func:     name,
			Position: "binding",
			Type:     fmt.Sprintf("%T", (*Binding[K, V])(nil)),
			Reason:   err.Error(),
		}
	}
	return b, nil
}

// Names returns the registered function identities in sorted order.
func (r *Registry) Names() []string {
	var names []string
	for i := range r.shards {
		shard := &r.shards[i]
		shard.mu.Lock()
		for name := range shard.entries {
			names = append(names, name)
		}
		shard.mu.Unlock()
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered function identities.
func (r *Registry) Len() int {
	n := 0
	for i := range r.shards {
		shard := &r.shards[i]
		shard.mu.Lock()
		n += len(shard.entries)
		shard.mu.Unlock()
	}
	return n
}

func (r *Registry) shardOf(name string) *registryShard {
	return &r.shards[xxhash.Sum64String(name)%numRegistryShards]
}
