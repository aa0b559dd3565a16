package di

import (
	"sync"

	"github.com/kbukum/scopekit/errors"
)

// Injected holds a dependency resolved when it was created.
type Injected[T any] struct {
	value T
}

// Inject resolves T immediately. A failed resolve is reported as
// INJECTION_FAILED wrapping the underlying error.
func Inject[T any](r *Registry, label ...Label) (*Injected[T], error) {
	v, err := Resolve[T](r, label...)
	if err != nil {
		return nil, errors.InjectionFailed(KeyOf[T](label...).String(), err)
	}
	return &Injected[T]{value: v}, nil
}

// Value returns the injected instance.
func (i *Injected[T]) Value() T {
	return i.value
}

// Lazy resolves T on first use and remembers the outcome, including a
// failure. Later registry changes are not observed.
type Lazy[T any] struct {
	r     *Registry
	label []Label

	once  sync.Once
	value T
	err   error
}

// NewLazy returns an accessor that resolves T from r on first Get.
func NewLazy[T any](r *Registry, label ...Label) *Lazy[T] {
	return &Lazy[T]{r: r, label: label}
}

// Get returns the resolved instance. Only the first call touches the
// registry.
func (l *Lazy[T]) Get() (T, error) {
	l.once.Do(func() {
		v, err := Resolve[T](l.r, l.label...)
		if err != nil {
			l.err = errors.InjectionFailed(KeyOf[T](l.label...).String(), err)
			return
		}
		l.value = v
	})
	return l.value, l.err
}
