package container

import (
	"fmt"
	"reflect"
)

// ContractOf returns the contract identifier of T. Use an interface type for
// abstractions: ContractOf[Repository]().
func ContractOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// BindTransient registers impl as the transient implementation of I.
func BindTransient[I any](c *Container, impl *Implementation, params ...Parameters) error {
	return c.RegisterTransient(ContractOf[I](), impl, params...)
}

// BindSingleton registers impl as the singleton implementation of I.
func BindSingleton[I any](c *Container, impl *Implementation, params ...Parameters) error {
	return c.RegisterSingleton(ContractOf[I](), impl, params...)
}

// BindInstance registers a pre-built value for I.
//
//	container.BindInstance[*config.Config](c, cfg)
func BindInstance[I any](c *Container, instance I) error {
	return c.RegisterInstance(ContractOf[I](), instance)
}

// BindFactory registers a typed factory for I.
//
//	container.BindFactory[*zap.Logger](c, container.Singleton, func(c *container.Container) (*zap.Logger, error) {
//	    return zap.NewProduction()
//	})
func BindFactory[I any](c *Container, lifetime Lifetime, factory func(c *Container) (I, error)) error {
	if factory == nil {
		return c.RegisterFactory(ContractOf[I](), lifetime, nil)
	}
	return c.RegisterFactory(ContractOf[I](), lifetime, func(c *Container) (any, error) {
		return factory(c)
	})
}

// Resolve resolves T through l and type-asserts the result.
//
//	repo, err := container.Resolve[Repository](c)
func Resolve[T any](l Locator, params ...Parameters) (T, error) {
	var zero T
	instance, err := l.Resolve(ContractOf[T](), params...)
	if err != nil {
		return zero, err
	}
	if instance == nil {
		return zero, nil
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("container: Resolve[%s]: resolved to %T", ContractOf[T](), instance)
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on failure. Meant for composition
// roots, where any resolution failure is fatal.
func MustResolve[T any](l Locator, params ...Parameters) T {
	typed, err := Resolve[T](l, params...)
	if err != nil {
		panic(err)
	}
	return typed
}
