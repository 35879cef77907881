package conv

import "github.com/cwbudde/algo-xcorr/dsp/fft2d"

// Config holds the planning configuration of an engine.
type Config struct {
	// Backend builds the transforms when no Cache is set.
	Backend fft2d.Backend
	// Cache, when set, supplies shared plans and takes precedence over Backend.
	Cache *fft2d.PlanCache
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{Backend: fft2d.DefaultBackend()}
}

// WithBackend selects the transform backend. Nil is ignored.
func WithBackend(backend fft2d.Backend) Option {
	return func(cfg *Config) {
		if backend != nil {
			cfg.Backend = backend
		}
	}
}

// WithPlanCache makes the engine take its plans from cache.
func WithPlanCache(cache *fft2d.PlanCache) Option {
	return func(cfg *Config) {
		cfg.Cache = cache
	}
}

// ApplyOptions applies options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Planners returns the forward and backward planners the config selects.
func (cfg Config) Planners() (forward, backward fft2d.Planner) {
	if cfg.Cache != nil {
		return cfg.Cache.Planner(fft2d.ForwardRealToComplex), cfg.Cache.Planner(fft2d.BackwardComplexToReal)
	}
	return fft2d.Planners(cfg.Backend)
}
