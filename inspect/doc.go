// Package inspect exposes a registry over HTTP for diagnostics.
//
// Mount the handlers on any gin router group:
//
//	inspect.Mount(router.Group("/debug/di"), registry, log)
//
// Routes:
//
//	GET    /info              build and registry summary
//	GET    /registrations     every registration with its scope and retention state
//	GET    /scopes            retaining scopes known to the registry
//	DELETE /scopes/:name      reset every scope with that name
//
// Resetting a scope only drops retained instances; registrations stay.
package inspect
