package core

import "go.uber.org/zap"

// Option configures a Registry.
type Option func(*config)

// WithLiteralScalarPreconditions wraps a scalar "preconditions" value as a
// one-element sequence holding that value.
//
// Without it, a scalar is replaced by a one-element sequence holding a copy of
// the row's own args, which is how existing contract tables behave.
func WithLiteralScalarPreconditions() Option {
	return func(c *config) {
		c.literalScalars = true
	}
}

// WithLogger sets the logger used for debug output. The default discards
// everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

type config struct {
	logger         *zap.Logger
	literalScalars bool
}

func newConfig(opts []Option) config {
	cfg := config{logger: zap.NewNop()}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
