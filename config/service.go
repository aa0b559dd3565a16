package config

import (
	"github.com/kbukum/scopekit/di"
	"github.com/kbukum/scopekit/errors"
	"github.com/kbukum/scopekit/logger"
	"github.com/kbukum/scopekit/observability"
	"github.com/kbukum/scopekit/validation"
)

// ServiceConfig is the configuration every scopekit service loads.
// Services with more settings embed it:
//
//	type OrdersConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Warehouse string `yaml:"warehouse" mapstructure:"warehouse"`
//	}
type ServiceConfig struct {
	Name        string               `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string               `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string               `yaml:"version" mapstructure:"version"`
	Debug       bool                 `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config        `yaml:"logging" mapstructure:"logging"`
	Registry    di.Config            `yaml:"registry" mapstructure:"registry"`
	Telemetry   observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// GetServiceConfig returns c. Embedding structs inherit it.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults fills unset fields and propagates the service identity
// into the nested sections.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Version == "" {
		c.Version = "dev"
	}

	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()

	if c.Registry.Name == "" {
		c.Registry.Name = c.Name
	}
	c.Registry.ApplyDefaults()

	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = c.Name
	}
	if c.Telemetry.ServiceVersion == "" {
		c.Telemetry.ServiceVersion = c.Version
	}
	if c.Telemetry.Environment == "" {
		c.Telemetry.Environment = c.Environment
	}
	c.Telemetry.ApplyDefaults()
}

// Validate checks struct tags on every section, then the logging rules.
func (c *ServiceConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return errors.InvalidConfig("logging", err.Error()).WithCause(err)
	}
	return nil
}
