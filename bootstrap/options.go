package bootstrap

import (
	"io"
	"time"

	"github.com/kbukum/scopekit/di"
	"github.com/kbukum/scopekit/logger"
)

// Option configures the App during creation.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	registry        *di.Registry
	gracefulTimeout *time.Duration
	summaryOut      io.Writer
	keepDefault     bool
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger. Without it the global logger is
// initialized from the config's Logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithRegistry uses r instead of building one from the Registry section.
func WithRegistry(r *di.Registry) Option {
	return func(o *appOptions) {
		o.registry = r
	}
}

// WithGracefulTimeout sets the maximum duration for graceful shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}

// WithSummaryOutput redirects the startup summary. Pass io.Discard to
// silence it.
func WithSummaryOutput(w io.Writer) Option {
	return func(o *appOptions) {
		o.summaryOut = w
	}
}

// WithoutDefaultRegistry leaves di.Default untouched.
func WithoutDefaultRegistry() Option {
	return func(o *appOptions) {
		o.keepDefault = true
	}
}
