package di

import (
	"fmt"

	"github.com/kbukum/scopekit/errors"
)

// RegisterOption customizes a typed registration.
type RegisterOption func(*registration)

type registration struct {
	label Label
	scope Scope
}

// At registers under label instead of the unlabeled slot.
func At(label Label) RegisterOption {
	return func(reg *registration) { reg.label = label }
}

// In retains resolved instances in scope. Without it, registrations use
// None and every resolve invokes the factory.
func In(scope Scope) RegisterOption {
	return func(reg *registration) { reg.scope = scope }
}

// Register installs factory as the provider of T.
func Register[T any](r *Registry, factory func() T, opts ...RegisterOption) {
	reg := registration{scope: None}
	for _, opt := range opts {
		opt(&reg)
	}

	var f Factory
	if factory != nil {
		f = func() any { return factory() }
	}
	r.RegisterFactory(KeyOf[T](reg.label), f, reg.scope)
}

// RegisterValue registers a factory that always returns value.
func RegisterValue[T any](r *Registry, value T, opts ...RegisterOption) {
	Register(r, func() T { return value }, opts...)
}

// Resolve returns the instance of T registered under label.
//
// Returns an AppError with code NO_PROVIDER when nothing is registered and
// TYPE_MISMATCH when the factory produced a value that is not a T.
func Resolve[T any](r *Registry, label ...Label) (T, error) {
	var zero T
	key := KeyOf[T](label...)
	v, err := r.resolve(key, key.Type)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, errors.TypeMismatch(key.TypeName(), typeName(v), string(key.Label))
	}
	return t, nil
}

// TryResolve is Resolve with the error reduced to a bool.
func TryResolve[T any](r *Registry, label ...Label) (T, bool) {
	v, err := Resolve[T](r, label...)
	return v, err == nil
}

// MustResolve resolves T or panics. Use it only while wiring a program.
func MustResolve[T any](r *Registry, label ...Label) T {
	v, err := Resolve[T](r, label...)
	if err != nil {
		panic(fmt.Sprintf("di: %v", err))
	}
	return v
}

// Unregister removes the provider of T registered under label.
func Unregister[T any](r *Registry, label ...Label) {
	r.UnregisterKey(KeyOf[T](label...))
}

// IsRegistered reports whether a provider of T exists under label.
func IsRegistered[T any](r *Registry, label ...Label) bool {
	return r.Has(KeyOf[T](label...))
}
