package di

import (
	"fmt"

	"github.com/kbukum/scopekit/observability"
	"github.com/kbukum/scopekit/validation"
)

// Config holds registry settings loaded from the service configuration.
type Config struct {
	// Name identifies the registry in logs and metrics.
	Name string `yaml:"name" mapstructure:"name" validate:"required"`
	// QuietFailures disables the warn log on failed resolves.
	QuietFailures bool `yaml:"quiet_failures" mapstructure:"quiet_failures"`
	// Metrics reports registry instruments on the global meter provider.
	Metrics bool `yaml:"metrics" mapstructure:"metrics"`
	// Tracing wraps factory invocations in spans from the global tracer provider.
	Tracing bool `yaml:"tracing" mapstructure:"tracing"`
}

// ApplyDefaults sets default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "default"
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

// NewFromConfig creates a registry from cfg. Options are applied after
// the ones derived from cfg.
func NewFromConfig(cfg Config, opts ...Option) (*Registry, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := []Option{WithName(cfg.Name)}
	if cfg.QuietFailures {
		base = append(base, WithoutFailureLogs())
	}
	if cfg.Metrics {
		m, err := observability.NewRegistryMetrics(observability.Meter(observability.TracerName))
		if err != nil {
			return nil, fmt.Errorf("creating registry metrics: %w", err)
		}
		base = append(base, WithMetrics(m))
	}
	if cfg.Tracing {
		base = append(base, WithTracer(observability.Tracer(observability.TracerName)))
	}
	return New(append(base, opts...)...), nil
}
