package di

import (
	"context"
	"sync"
)

var (
	defaultMu       sync.Mutex
	defaultRegistry *Registry
)

// Default returns the process-wide registry, creating it on first use.
func Default() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultRegistry == nil {
		defaultRegistry = New()
	}
	return defaultRegistry
}

// SetDefault replaces the process-wide registry. Passing nil makes the
// next Default call create a fresh one.
func SetDefault(r *Registry) {
	defaultMu.Lock()
	defaultRegistry = r
	defaultMu.Unlock()
}

type registryContextKey struct{}

// WithRegistry returns a copy of ctx carrying r.
func WithRegistry(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, registryContextKey{}, r)
}

// FromContext returns the registry carried by ctx, or Default.
func FromContext(ctx context.Context) *Registry {
	if r, ok := ctx.Value(registryContextKey{}).(*Registry); ok && r != nil {
		return r
	}
	return Default()
}
