// Package di provides a scope-aware dependency registry.
//
// Factories are registered under a key made of the produced type and an
// optional label, together with the scope their instances are retained in.
// Resolving a key either invokes the factory again (scope None) or returns
// the instance retained for the key in the registration's scope.
//
// # Registration
//
//	reg := di.New()
//	di.Register(reg, func() *Store { return NewStore() }, di.In(di.App))
//	di.Register(reg, func() string { return "s3cr3t" }, di.At("api_key"))
//
// # Resolution
//
//	store, err := di.Resolve[*Store](reg)
//	apiKey, ok := di.TryResolve[string](reg, "api_key")
//
// # Scopes
//
// None never retains and App lives for the whole process. Narrower
// lifetimes are minted with NewScope and cleared with Reset:
//
//	session := di.NewScope("session")
//	di.Register(reg, newToken, di.In(session))
//	...
//	reg.Reset(session) // next resolve creates a new token
//
// Every operation runs under one lock that the owning goroutine may take
// again, so factories can resolve their own dependencies from the same
// registry.
package di
