package pure

import "go.uber.org/zap"

// DefaultSize is the capacity of a binding created without WithSize.
const DefaultSize = 1000

// Config holds the settings of a single binding.
type Config struct {
	Size     int // default: DefaultSize
	Logger   *zap.Logger
	Observer Observer
}

// Option customizes a Config.
type Option func(*Config)

// WithSize sets the maximum number of cached argument tuples.
// A non-positive size is rejected with a *ConfigError when the binding is built.
func WithSize(size int) Option {
	return func(c *Config) {
		c.Size = size
	}
}

// WithLogger sets the logger used for lifecycle, eviction and poisoning events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithObserver sets the hook notified about hits, misses, stores and evictions.
func WithObserver(observer Observer) Option {
	return func(c *Config) {
		c.Observer = observer
	}
}

// NewConfig applies opts over the defaults. Nil logger and observer
// are replaced with no-op implementations; the size is left for validation.
func NewConfig(opts ...Option) Config {
	cfg := Config{Size: DefaultSize}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Observer == nil {
		cfg.Observer = NopObserver{}
	}
	return cfg
}

func (c Config) validate(name string) error {
	if c.Size <= 0 {
		return &ConfigError{Name: name, Size: c.Size}
	}
	return nil
}

// Observer is notified after each protocol step, outside the binding's lock.
// Implementations must be safe for concurrent use.
type Observer interface {
	OnHit(binding string)
	OnMiss(binding string)
	OnStore(binding string)
	OnEvict(binding string)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) OnHit(string)   {}
func (NopObserver) OnMiss(string)  {}
func (NopObserver) OnStore(string) {}
func (NopObserver) OnEvict(string) {}
