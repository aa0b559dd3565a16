// Package config loads service configuration for scopekit applications.
//
// Values come from a YAML file, a .env file and the process environment, in
// increasing order of precedence. Environment variables carry the service
// prefix and use underscores for nesting:
//
//	ORDERS_REGISTRY_NAME=orders      -> registry.name
//	ORDERS_TELEMETRY_SAMPLE_RATE=0.2 -> telemetry.sample_rate
//
// # Usage
//
//	var cfg config.ServiceConfig
//	if err := config.Load("orders", &cfg); err != nil { ... }
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil { ... }
package config
