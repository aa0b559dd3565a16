package di

import (
	"context"
	"reflect"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/scopekit/errors"
	"github.com/kbukum/scopekit/logger"
	"github.com/kbukum/scopekit/observability"
)

// Factory produces a service instance.
type Factory func() any

type record struct {
	factory Factory
	scope   Scope
}

// RegistrationInfo is a read-only snapshot of one registration.
type RegistrationInfo struct {
	Key      Key
	Scope    Scope
	Retained bool
}

// Registry maps keys to factories and retains instances per scope.
// All methods are safe for concurrent use.
type Registry struct {
	name        string
	log         *logger.Logger
	metrics     *observability.RegistryMetrics
	tracer      trace.Tracer
	logFailures bool

	lock     recursiveMutex
	records  map[Key]*record
	retained map[Scope]map[Key]any
}

// Option configures a Registry.
type Option func(*Registry)

// WithName sets the registry name used in logs and metric attributes.
func WithName(name string) Option {
	return func(r *Registry) { r.name = name }
}

// WithLogger sets the logger. Defaults to the "di" component logger.
func WithLogger(l *logger.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// WithMetrics reports resolves, factory calls and resets to m.
func WithMetrics(m *observability.RegistryMetrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// WithTracer wraps every factory invocation in a span.
func WithTracer(t trace.Tracer) Option {
	return func(r *Registry) { r.tracer = t }
}

// WithoutFailureLogs stops resolve failures from being logged.
func WithoutFailureLogs() Option {
	return func(r *Registry) { r.logFailures = false }
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		name:        "default",
		logFailures: true,
		records:     make(map[Key]*record),
		retained:    make(map[Scope]map[Key]any),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.Get("di")
	}
	r.log = r.log.WithFields(logger.Fields(logger.FieldRegistry, r.name))
	return r
}

// Name returns the registry name.
func (r *Registry) Name() string {
	return r.name
}

// RegisterFactory installs factory for key, replacing any previous
// registration. Instances retained for key are dropped from every scope.
func (r *Registry) RegisterFactory(key Key, factory Factory, scope Scope) {
	if factory == nil {
		factory = func() any { return nil }
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	_, existed := r.records[key]
	r.records[key] = &record{factory: factory, scope: scope}
	r.purge(key)
	if !existed {
		r.metrics.AddRegistrations(context.Background(), r.name, 1)
	}

	r.log.Debug("provider registered", keyFields(key, scope, "replaced", existed))
}

// ResolveKey returns the instance for key without checking its type.
func (r *Registry) ResolveKey(key Key) (any, error) {
	return r.resolve(key, nil)
}

// resolve looks up key and checks the result against want. A nil want
// accepts any value.
func (r *Registry) resolve(key Key, want reflect.Type) (any, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	ctx := context.Background()
	rec, ok := r.records[key]
	if !ok {
		err := errors.NoProvider(key.TypeName(), string(key.Label))
		r.fail(ctx, key, observability.OutcomeNoProvider, err)
		return nil, err
	}

	if bucket := r.retained[rec.scope]; bucket != nil {
		if v, ok := bucket[key]; ok && assignable(v, want) {
			r.metrics.RecordResolve(ctx, r.name, observability.OutcomeRetained)
			return v, nil
		}
	}

	v := r.invoke(ctx, key, rec)
	if !assignable(v, want) {
		err := errors.TypeMismatch(want.String(), typeName(v), string(key.Label))
		r.fail(ctx, key, observability.OutcomeTypeMismatch, err)
		return nil, err
	}

	// The factory may have re-registered or unregistered key through a
	// nested call; only the registration that produced v may retain it.
	if !rec.scope.IsNone() && r.records[key] == rec {
		bucket := r.retained[rec.scope]
		if bucket == nil {
			bucket = make(map[Key]any)
			r.retained[rec.scope] = bucket
		}
		bucket[key] = v
	}

	r.metrics.RecordResolve(ctx, r.name, observability.OutcomeCreated)
	return v, nil
}

func (r *Registry) invoke(ctx context.Context, key Key, rec *record) any {
	if r.tracer != nil {
		var span trace.Span
		ctx, span = r.tracer.Start(ctx, observability.SpanFactory, trace.WithAttributes(
			attribute.String(observability.AttrRegistry, r.name),
			attribute.String(observability.AttrServiceType, key.TypeName()),
			attribute.String(observability.AttrLabel, string(key.Label)),
			attribute.String(observability.AttrScope, rec.scope.Name()),
		))
		defer span.End()
	}

	start := time.Now()
	v := rec.factory()
	elapsed := time.Since(start)

	r.metrics.RecordFactoryCall(ctx, r.name, rec.scope.Name(), elapsed)
	r.log.Debug("factory invoked", keyFields(key, rec.scope), logger.DurationFields("factory", elapsed))
	return v
}

func (r *Registry) fail(ctx context.Context, key Key, outcome string, err error) {
	r.metrics.RecordResolve(ctx, r.name, outcome)
	if r.logFailures {
		r.log.WithError(err).Warn("resolve failed", keyFields(key, None))
	}
}

// UnregisterKey removes the registration for key and every instance
// retained for it. Unknown keys are ignored.
func (r *Registry) UnregisterKey(key Key) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.records[key]; ok {
		delete(r.records, key)
		r.metrics.AddRegistrations(context.Background(), r.name, -1)
	}
	r.purge(key)

	r.log.Debug("provider unregistered", keyFields(key, None))
}

// UnregisterAll removes every registration and every retained instance.
func (r *Registry) UnregisterAll() {
	r.lock.Lock()
	defer r.lock.Unlock()

	n := len(r.records)
	r.records = make(map[Key]*record)
	r.retained = make(map[Scope]map[Key]any)
	r.metrics.AddRegistrations(context.Background(), r.name, -int64(n))

	r.log.Debug("all providers unregistered", logger.Fields(logger.FieldCount, n))
}

// Reset drops the instances retained in scope. Registrations are kept, so
// the next resolve of a key in scope invokes its factory again.
func (r *Registry) Reset(scope Scope) {
	if scope.IsNone() {
		return
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	r.reset(scope)
}

func (r *Registry) reset(scope Scope) {
	bucket, ok := r.retained[scope]
	if !ok {
		return
	}
	n := len(bucket)
	delete(r.retained, scope)
	r.metrics.RecordReset(context.Background(), r.name, scope.Name())

	r.log.Debug("scope reset", logger.Fields(
		logger.FieldScope, scope.String(),
		logger.FieldCount, n,
	))
}

// ResetByName resets every known scope with the given name and returns
// how many scopes matched.
func (r *Registry) ResetByName(name string) int {
	r.lock.Lock()
	defer r.lock.Unlock()

	n := 0
	for _, s := range r.scopes() {
		if s.Name() == name {
			r.reset(s)
			n++
		}
	}
	return n
}

// Has reports whether key has a registration.
func (r *Registry) Has(key Key) bool {
	r.lock.Lock()
	defer r.lock.Unlock()

	_, ok := r.records[key]
	return ok
}

// Registrations returns a snapshot of all registrations sorted by key.
func (r *Registry) Registrations() []RegistrationInfo {
	r.lock.Lock()
	defer r.lock.Unlock()

	out := make([]RegistrationInfo, 0, len(r.records))
	for key, rec := range r.records {
		_, retained := r.retained[rec.scope][key]
		out = append(out, RegistrationInfo{Key: key, Scope: rec.scope, Retained: retained})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key.String() < out[j].Key.String()
	})
	return out
}

// Scopes returns the retaining scopes referenced by registrations or
// retained instances, sorted by name.
func (r *Registry) Scopes() []Scope {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.scopes()
}

func (r *Registry) scopes() []Scope {
	seen := make(map[Scope]struct{})
	for _, rec := range r.records {
		if !rec.scope.IsNone() {
			seen[rec.scope] = struct{}{}
		}
	}
	for s := range r.retained {
		seen[s] = struct{}{}
	}

	out := make([]Scope, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name() != out[j].Name() {
			return out[i].Name() < out[j].Name()
		}
		return out[i].id.String() < out[j].id.String()
	})
	return out
}

// purge removes key from every scope bucket. Caller holds the lock.
func (r *Registry) purge(key Key) {
	for scope, bucket := range r.retained {
		delete(bucket, key)
		if len(bucket) == 0 {
			delete(r.retained, scope)
		}
	}
}

// assignable reports whether v can be returned as want. Concrete types
// must match exactly so the typed accessors can assert v back to want.
func assignable(v any, want reflect.Type) bool {
	if want == nil {
		return true
	}
	if want.Kind() == reflect.Interface {
		return v == nil || reflect.TypeOf(v).Implements(want)
	}
	return v != nil && reflect.TypeOf(v) == want
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}

func keyFields(key Key, scope Scope, kv ...interface{}) map[string]interface{} {
	f := logger.Fields(kv...)
	f[logger.FieldServiceType] = key.TypeName()
	if key.Label != NoLabel {
		f[logger.FieldLabel] = string(key.Label)
	}
	if !scope.IsNone() {
		f[logger.FieldScope] = scope.String()
	}
	return f
}
