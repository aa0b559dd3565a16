package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Resolve outcomes recorded on di.resolve.total.
const (
	OutcomeRetained     = "retained"
	OutcomeCreated      = "created"
	OutcomeNoProvider   = "no_provider"
	OutcomeTypeMismatch = "type_mismatch"
)

// Instrument names.
const (
	MetricResolveTotal    = "di.resolve.total"
	MetricFactoryTotal    = "di.factory.invocations"
	MetricFactoryDuration = "di.factory.duration"
	MetricRegistrations   = "di.registrations"
	MetricScopeResets     = "di.scope.resets"
)

// RegistryMetrics holds the instruments a registry reports to.
// A nil *RegistryMetrics is valid and records nothing.
type RegistryMetrics struct {
	resolveTotal    metric.Int64Counter
	factoryTotal    metric.Int64Counter
	factoryDuration metric.Float64Histogram
	registrations   metric.Int64UpDownCounter
	scopeResets     metric.Int64Counter
}

// NewRegistryMetrics creates registry instruments on the given meter.
func NewRegistryMetrics(meter metric.Meter) (*RegistryMetrics, error) {
	resolveTotal, err := meter.Int64Counter(MetricResolveTotal,
		metric.WithDescription("Resolve calls by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricResolveTotal, err)
	}

	factoryTotal, err := meter.Int64Counter(MetricFactoryTotal,
		metric.WithDescription("Factory invocations by scope"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricFactoryTotal, err)
	}

	factoryDuration, err := meter.Float64Histogram(MetricFactoryDuration,
		metric.WithDescription("Duration of factory invocations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricFactoryDuration, err)
	}

	registrations, err := meter.Int64UpDownCounter(MetricRegistrations,
		metric.WithDescription("Number of active registrations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricRegistrations, err)
	}

	scopeResets, err := meter.Int64Counter(MetricScopeResets,
		metric.WithDescription("Scope resets"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricScopeResets, err)
	}

	return &RegistryMetrics{
		resolveTotal:    resolveTotal,
		factoryTotal:    factoryTotal,
		factoryDuration: factoryDuration,
		registrations:   registrations,
		scopeResets:     scopeResets,
	}, nil
}

// RecordResolve counts one resolve call with its outcome.
func (m *RegistryMetrics) RecordResolve(ctx context.Context, registry, outcome string) {
	if m == nil {
		return
	}
	m.resolveTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("registry", registry),
		attribute.String("outcome", outcome),
	))
}

// RecordFactoryCall counts one factory invocation and its duration.
func (m *RegistryMetrics) RecordFactoryCall(ctx context.Context, registry, scope string, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("registry", registry),
		attribute.String("scope", scope),
	)
	m.factoryTotal.Add(ctx, 1, attrs)
	m.factoryDuration.Record(ctx, d.Seconds(), attrs)
}

// AddRegistrations adjusts the active registration gauge.
func (m *RegistryMetrics) AddRegistrations(ctx context.Context, registry string, delta int64) {
	if m == nil || delta == 0 {
		return
	}
	m.registrations.Add(ctx, delta, metric.WithAttributes(
		attribute.String("registry", registry),
	))
}

// RecordReset counts one scope reset.
func (m *RegistryMetrics) RecordReset(ctx context.Context, registry, scope string) {
	if m == nil {
		return
	}
	m.scopeResets.Add(ctx, 1, metric.WithAttributes(
		attribute.String("registry", registry),
		attribute.String("scope", scope),
	))
}
