package container

import (
	"fmt"
	"maps"
	"reflect"
)

// Parameters is a bag of explicit constructor arguments keyed by parameter
// name. A value is used when its name matches a constructor parameter and it
// is assignable to that parameter's contract; otherwise the parameter is
// resolved through the container as usual.
type Parameters map[string]any

// lookup returns the value to pass for p, if the bag has a usable one.
func (p Parameters) lookup(param Param) (reflect.Value, bool) {
	if param.Name == "" {
		return reflect.Value{}, false
	}
	value, ok := p[param.Name]
	if !ok {
		return reflect.Value{}, false
	}
	if value == nil {
		if nillable(param.Contract) {
			return reflect.Zero(param.Contract), true
		}
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(value)
	if !rv.Type().AssignableTo(param.Contract) {
		return reflect.Value{}, false
	}
	return rv, true
}

// merge returns p overridden by each of others, left to right.
func (p Parameters) merge(others ...Parameters) Parameters {
	out := make(Parameters, len(p))
	maps.Copy(out, p)
	for _, other := range others {
		maps.Copy(out, other)
	}
	return out
}

// Factory builds an instance on its own. Factories are opaque to the
// container: their inner Resolve calls start new top-level resolutions and
// are not part of cycle detection.
type Factory func(c *Container) (any, error)

// Strategy names how a registration produces instances.
type Strategy int

const (
	StrategyConstructor Strategy = iota
	StrategyFactory
	StrategyInstance
)

func (s Strategy) String() string {
	switch s {
	case StrategyInstance:
		return "instance"
	case StrategyFactory:
		return "factory"
	default:
		return "constructor"
	}
}

// ── Registration ──────────────────────────────────────────────────────────────

// Registration is the immutable recipe for producing a contract.
type Registration struct {
	implementation reflect.Type
	lifetime       Lifetime
	strategy       Strategy

	instance any
	factory  Factory
	impl     *Implementation

	parameters Parameters
}

// newTypeRegistration builds a constructor-strategy registration. An
// implementation that cannot satisfy contract is a programming error.
func newTypeRegistration(contract reflect.Type, impl *Implementation, lifetime Lifetime, params Parameters) *Registration {
	if impl == nil {
		panic(fmt.Sprintf("container: nil implementation for %s", contract))
	}
	if !impl.typ.AssignableTo(contract) {
		panic(fmt.Sprintf("container: %s does not implement %s", impl.typ, contract))
	}
	return &Registration{
		implementation: impl.typ,
		lifetime:       lifetime,
		strategy:       StrategyConstructor,
		impl:           impl,
		parameters:     Parameters(nil).merge(params),
	}
}

// newInstanceRegistration builds a fixed-instance registration. An instance
// that cannot satisfy contract is a programming error.
func newInstanceRegistration(contract reflect.Type, instance any) *Registration {
	var implementation reflect.Type
	if instance == nil {
		if !nillable(contract) {
			panic(fmt.Sprintf("container: nil instance for %s", contract))
		}
		implementation = contract
	} else {
		implementation = reflect.TypeOf(instance)
		if !implementation.AssignableTo(contract) {
			panic(fmt.Sprintf("container: instance of %s does not implement %s", implementation, contract))
		}
	}
	return &Registration{
		implementation: implementation,
		lifetime:       Singleton,
		strategy:       StrategyInstance,
		instance:       instance,
	}
}

// newFactoryRegistration builds a factory-strategy registration.
func newFactoryRegistration(contract reflect.Type, lifetime Lifetime, factory Factory) *Registration {
	if factory == nil {
		panic(fmt.Sprintf("container: nil factory for %s", contract))
	}
	return &Registration{
		implementation: contract,
		lifetime:       lifetime,
		strategy:       StrategyFactory,
		factory:        factory,
	}
}

// Implementation returns the concrete type produced by the registration.
func (r *Registration) Implementation() reflect.Type { return r.implementation }

// Lifetime returns the registered lifetime.
func (r *Registration) Lifetime() Lifetime { return r.lifetime }

// Strategy returns the authoritative construction strategy.
func (r *Registration) Strategy() Strategy { return r.strategy }

// Parameters returns a copy of the registration-time parameter bag.
func (r *Registration) Parameters() Parameters { return r.parameters.merge() }

func nillable(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}
