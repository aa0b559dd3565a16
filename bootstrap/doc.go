// Package bootstrap runs the lifecycle of a scopekit service.
//
// NewApp validates the configuration, initializes logging and builds the
// dependency registry. Run and RunTask then start telemetry, run the
// startup hooks and configure callbacks, print a summary of the registry
// and finally shut everything down on a signal or when the task ends.
//
// # Quick Start
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
//	    di.Register(a.Registry, openDB, di.In(di.App))
//	    return nil
//	})
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package bootstrap
