// Package container provides a small dependency-resolution container and a
// service provider system.
//
// # Overview
//
// Contracts are reflect.Type keys, usually interfaces. Each contract has at
// most one registration describing how to produce it: a fixed instance, a
// factory, or an implementation with candidate constructors. Resolution
// builds the object graph recursively, caches singletons and fails fast on
// unregistered contracts, missing constructors and circular dependencies.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&MyProvider{})
//  3. Boot: registry.Boot(), after which everything can be resolved
//  4. Resolve components
//
// # Registrations
//
//	// Transient: new instance every Resolve
//	container.BindTransient[Clock](c, container.Implement[*SystemClock]())
//
//	// Singleton: created once, reused
//	container.BindSingleton[Repository](c,
//	    container.Implement[*SQLRepository](container.Func(NewSQLRepository, "db", "table")),
//	    container.Parameters{"table": "documents"},
//	)
//
//	// Pre-built value
//	container.BindInstance[*config.Config](c, cfg)
//
//	// Factory: opaque to cycle detection
//	container.BindFactory[*zap.Logger](c, container.Singleton,
//	    func(c *container.Container) (*zap.Logger, error) { return zap.NewProduction() })
//
// # Constructors
//
// Func adapts a Go function; since Go drops parameter names, they are listed
// explicitly so Parameters can target them. Struct injects tagged fields.
// When an implementation has several constructors, the one with the most
// parameters wins and the first one wins ties.
//
// # Resolving
//
//	repo, err := container.Resolve[Repository](c)
//
//	// Explicit arguments override registration-time Parameters
//	codec, err := container.Resolve[*EnumCodec](c, container.Parameters{"enumType": t})
//
// # Errors
//
// Every failure is a *ResolutionError. Kind is the immediate failure,
// RootCause the innermost one:
//
//	if container.RootCauseOf(err) == container.CircularDependency { ... }
//	if errors.Is(err, container.ErrNotRegistered) { ... }
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(c *container.Container) error {
//	    return container.BindSingleton[Mailer](c, container.Implement[*SMTPMailer]())
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
package container
