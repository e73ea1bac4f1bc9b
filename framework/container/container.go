package container

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container owns the registrations and the singleton cache, and builds
// object graphs on demand.
//
// Registration is expected to finish before resolution starts. Registrations
// and cached singletons sit behind their own accessors so concurrent readers
// stay safe; racing first resolutions of a singleton may run its constructor
// twice but every caller gets the first stored instance.
type Container struct {
	id     string
	logger *zap.Logger

	mu            sync.RWMutex
	registrations map[reflect.Type]*Registration

	instances *instanceStore

	hooksMu        sync.RWMutex
	afterResolving []func(contract reflect.Type, instance any)
}

// Option configures a Container.
type Option func(*Container)

// WithLogger makes the container log registrations and singleton
// constructions at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		id:            uuid.NewString(),
		logger:        zap.NewNop(),
		registrations: make(map[reflect.Type]*Registration),
		instances:     newInstanceStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("container", c.id))
	return c
}

// ID identifies the container in logs and inspection output.
func (c *Container) ID() string { return c.id }

// ── Registration ──────────────────────────────────────────────────────────────

// RegisterTransient registers impl for contract; every Resolve builds a new
// instance. params are explicit constructor arguments by parameter name.
//
//	c.RegisterTransient(container.ContractOf[Clock](), container.Implement[*SystemClock]())
func (c *Container) RegisterTransient(contract reflect.Type, impl *Implementation, params ...Parameters) error {
	return c.register(contract, newTypeRegistration(contract, impl, Transient, Parameters(nil).merge(params...)))
}

// RegisterSingleton registers impl for contract; the first Resolve builds the
// instance and every later one returns it.
//
//	c.RegisterSingleton(
//	    container.ContractOf[Repository](),
//	    container.Implement[*SQLRepository](container.Func(NewSQLRepository, "dsn")),
//	    container.Parameters{"dsn": "file::memory:"},
//	)
func (c *Container) RegisterSingleton(contract reflect.Type, impl *Implementation, params ...Parameters) error {
	return c.register(contract, newTypeRegistration(contract, impl, Singleton, Parameters(nil).merge(params...)))
}

// RegisterInstance registers a pre-built value for contract.
func (c *Container) RegisterInstance(contract reflect.Type, instance any) error {
	return c.register(contract, newInstanceRegistration(contract, instance))
}

// RegisterFactory registers a factory for contract. A singleton factory runs
// at most once; a transient one runs once per Resolve and never before.
func (c *Container) RegisterFactory(contract reflect.Type, lifetime Lifetime, factory Factory) error {
	return c.register(contract, newFactoryRegistration(contract, lifetime, factory))
}

func (c *Container) register(contract reflect.Type, reg *Registration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.registrations[contract]; exists {
		return alreadyRegistered(contract)
	}
	c.registrations[contract] = reg

	c.logger.Debug("component registered",
		zap.Stringer("contract", contract),
		zap.Stringer("implementation", reg.implementation),
		zap.Stringer("lifetime", reg.lifetime),
		zap.Stringer("strategy", reg.strategy))
	return nil
}

// Lookup returns the registration of contract, if any.
func (c *Container) Lookup(contract reflect.Type) (*Registration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	reg, ok := c.registrations[contract]
	return reg, ok
}

// ── Resolution ────────────────────────────────────────────────────────────────

// pendingSet holds the contracts under construction within one top-level
// Resolve call.
type pendingSet map[reflect.Type]struct{}

// Resolve returns an instance satisfying contract. params are explicit
// arguments for the contract's own constructor and take precedence over
// those given at registration; they do not reach nested dependencies.
func (c *Container) Resolve(contract reflect.Type, params ...Parameters) (any, error) {
	value, err := c.resolve(contract, Parameters(nil).merge(params...), nil)
	if err != nil {
		return nil, err
	}
	if !value.IsValid() {
		return nil, nil
	}
	return value.Interface(), nil
}

func (c *Container) resolve(contract reflect.Type, override Parameters, pending pendingSet) (reflect.Value, error) {
	reg, ok := c.Lookup(contract)
	if !ok {
		return reflect.Value{}, notRegistered(contract)
	}

	if reg.lifetime == Singleton {
		if instance, ok := c.instances.load(contract); ok {
			return c.resolved(contract, instance), nil
		}
	}

	var (
		instance any
		err      error
	)
	switch reg.strategy {
	case StrategyInstance:
		instance = reg.instance
	case StrategyFactory:
		instance, err = c.invokeFactory(contract, reg)
	default:
		instance, err = c.construct(contract, reg, override, pending)
	}
	if err != nil {
		return reflect.Value{}, err
	}

	if reg.lifetime == Singleton {
		instance = c.instances.save(contract, instance)
		if reg.strategy != StrategyInstance {
			c.logger.Debug("singleton constructed",
				zap.Stringer("contract", contract),
				zap.Stringer("implementation", reg.implementation))
		}
	}
	return c.resolved(contract, instance), nil
}

// invokeFactory runs a factory outside of cycle tracking.
func (c *Container) invokeFactory(contract reflect.Type, reg *Registration) (any, error) {
	instance, err := reg.factory(c)
	if err != nil {
		return nil, constructionFailed(contract, err)
	}
	if instance == nil {
		if !nillable(contract) {
			return nil, constructionFailed(contract, fmt.Errorf("factory returned nil"))
		}
		return nil, nil
	}
	if typ := reflect.TypeOf(instance); !typ.AssignableTo(contract) {
		return nil, constructionFailed(contract, fmt.Errorf("factory returned %s", typ))
	}
	return instance, nil
}

// construct selects a constructor and resolves its parameters.
func (c *Container) construct(contract reflect.Type, reg *Registration, override Parameters, pending pendingSet) (any, error) {
	ctor := reg.impl.selectConstructor()
	if ctor == nil {
		return nil, constructorNotFound(contract, reg.implementation)
	}

	if pending == nil {
		pending = make(pendingSet)
	}
	pending[contract] = struct{}{}
	defer delete(pending, contract)

	params := reg.parameters
	if len(override) > 0 {
		params = params.merge(override)
	}

	ctorParams := ctor.Params()
	args := make([]reflect.Value, len(ctorParams))
	for i, param := range ctorParams {
		if value, ok := params.lookup(param); ok {
			args[i] = value
			continue
		}

		if _, ok := pending[param.Contract]; ok {
			return nil, circularDependency(contract, param.Contract)
		}

		value, err := c.resolve(param.Contract, nil, pending)
		if err != nil {
			return nil, dependencyResolution(contract, param.Contract, err)
		}
		args[i] = value
	}

	value, err := ctor.Invoke(args)
	if err != nil {
		return nil, constructionFailed(contract, err)
	}
	if !value.IsValid() {
		return nil, nil
	}
	return value.Interface(), nil
}

// resolved fires the after-resolving callbacks and boxes instance for
// parameter passing.
func (c *Container) resolved(contract reflect.Type, instance any) reflect.Value {
	c.hooksMu.RLock()
	callbacks := c.afterResolving
	c.hooksMu.RUnlock()
	for _, cb := range callbacks {
		cb(contract, instance)
	}

	if instance == nil {
		return reflect.Zero(contract)
	}
	return reflect.ValueOf(instance)
}

// ── Callbacks ─────────────────────────────────────────────────────────────────

// AfterResolving registers a callback fired after every successful
// resolution, nested ones and singleton cache hits included.
func (c *Container) AfterResolving(cb func(contract reflect.Type, instance any)) {
	c.hooksMu.Lock()
	defer c.hooksMu.Unlock()
	c.afterResolving = append(c.afterResolving, cb)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Has reports whether contract has a registration.
func (c *Container) Has(contract reflect.Type) bool {
	_, ok := c.Lookup(contract)
	return ok
}

// Binding describes one registration for debugging and inspection.
type Binding struct {
	Contract       string `json:"contract" yaml:"contract"`
	Implementation string `json:"implementation" yaml:"implementation"`
	Lifetime       string `json:"lifetime" yaml:"lifetime"`
	Strategy       string `json:"strategy" yaml:"strategy"`
	Resolved       bool   `json:"resolved" yaml:"resolved"`
}

// Bindings returns every registration, sorted by contract name.
func (c *Container) Bindings() []Binding {
	c.mu.RLock()
	out := make([]Binding, 0, len(c.registrations))
	for contract, reg := range c.registrations {
		_, cached := c.instances.load(contract)
		out = append(out, Binding{
			Contract:       contract.String(),
			Implementation: reg.implementation.String(),
			Lifetime:       reg.lifetime.String(),
			Strategy:       reg.strategy.String(),
			Resolved:       cached,
		})
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Contract < out[j].Contract })
	return out
}

// ── Singleton cache ───────────────────────────────────────────────────────────

// instanceStore is the single accessor for cached singletons.
type instanceStore struct {
	mu    sync.RWMutex
	items map[reflect.Type]any
}

func newInstanceStore() *instanceStore {
	return &instanceStore{items: make(map[reflect.Type]any)}
}

func (s *instanceStore) load(contract reflect.Type) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	instance, ok := s.items[contract]
	return instance, ok
}

// save stores instance unless one is already cached, and returns the cached one.
func (s *instanceStore) save(contract reflect.Type, instance any) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.items[contract]; ok {
		return existing
	}
	s.items[contract] = instance
	return instance
}
