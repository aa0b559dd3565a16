// Package observability wires OpenTelemetry metrics and tracing for
// scopekit registries.
//
// Exporters are only created when an OTLP endpoint is configured:
//
//	cfg := observability.DefaultConfig("my-service")
//	cfg.Endpoint = "localhost:4318"
//	mp, err := observability.InitMeter(ctx, cfg)
//	defer mp.Shutdown(ctx)
//
// Registry instruments are created from any meter, including the global one:
//
//	metrics, err := observability.NewRegistryMetrics(observability.Meter("scopekit"))
//	reg := di.New(di.WithMetrics(metrics))
package observability
