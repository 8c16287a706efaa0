package purefn

import (
	"reflect"
	"runtime"

	"go.uber.org/zap"

	"github.com/on-the-ground/purememo/pure"
)

type config struct {
	fn       reflect.Value
	name     string
	registry *pure.Registry
	binding  []pure.Option
}

// Option configures how a function is tableized.
type Option func(*config)

// WithSize sets how many argument tuples are remembered (default pure.DefaultSize).
func WithSize(size int) Option {
	return func(c *config) {
		c.binding = append(c.binding, pure.WithSize(size))
	}
}

// WithName overrides the function identity, which defaults to the
// runtime name of the wrapped function.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithLogger sets the binding's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.binding = append(c.binding, pure.WithLogger(logger))
	}
}

// WithObserver sets the binding's observer.
func WithObserver(observer pure.Observer) Option {
	return func(c *config) {
		c.binding = append(c.binding, pure.WithObserver(observer))
	}
}

// WithRegistry binds through r, so every wrap of the same function identity
// shares one cache. Without it each wrap owns a private binding.
func WithRegistry(r *pure.Registry) Option {
	return func(c *config) {
		c.registry = r
	}
}

// wraps makes fn, not the adapter built around it, the function whose
// name and signature the binding is checked against.
func wraps(fn any) Option {
	return func(c *config) {
		c.fn = reflect.ValueOf(fn)
	}
}

func newConfig(fn reflect.Value, opts []Option) config {
	cfg := config{fn: fn}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.name == "" {
		cfg.name = funcName(cfg.fn)
	}
	return cfg
}

func funcName(fn reflect.Value) string {
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return "<nil>"
	}
	if f := runtime.FuncForPC(fn.Pointer()); f != nil {
		return f.Name()
	}
	return fn.Type().String()
}

func bind[K comparable, V any](cfg config) (*pure.Binding[K, V], error) {
	if cfg.registry != nil {
		return pure.Bind[K, V](cfg.registry, cfg.name, cfg.binding...)
	}
	return pure.NewBinding[K, V](cfg.name, cfg.binding...)
}

// mustBind runs the same signature checks as Memoize before binding,
// panicking with the *pure.TypeConstraintError or *pure.ConfigError.
func mustBind[K comparable, V any](fn any, opts []Option) *pure.Binding[K, V] {
	cfg := newConfig(reflect.ValueOf(fn), opts)
	if err := CheckSignature(cfg.name, cfg.fn.Type()); err != nil {
		panic(err)
	}
	b, err := bind[K, V](cfg)
	if err != nil {
		panic(err)
	}
	return b
}
