package problem

import (
	"github.com/sgostarter/i/l"

	"github.com/san-kum/ivp/internal/equation"
)

type options struct {
	logger   l.Wrapper
	equation []equation.Option
}

type Option func(*options)

func WithLogger(logger l.Wrapper) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEquation passes equation options (invariants, parameters,
// periodicity, secondary roles) to the per-variant constructors.
func WithEquation(opts ...equation.Option) Option {
	return func(o *options) {
		o.equation = append(o.equation, opts...)
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = l.NewNopLoggerWrapper()
	}
	return o
}
