package container

import "reflect"

// Locator resolves contracts. Components that need to pick their
// dependencies at runtime depend on Locator instead of the Container.
type Locator interface {
	Resolve(contract reflect.Type, params ...Parameters) (any, error)
}

// ServiceLocator exposes one Container as an injectable Locator.
type ServiceLocator struct {
	container *Container
}

// NewServiceLocator wraps c and registers the locator as the fixed instance
// of the Locator contract, so components may depend on it.
func NewServiceLocator(c *Container) (*ServiceLocator, error) {
	l := &ServiceLocator{container: c}
	if err := BindInstance[Locator](c, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Container returns the wrapped container, for registrations.
func (l *ServiceLocator) Container() *Container { return l.container }

// Resolve delegates to the wrapped container.
func (l *ServiceLocator) Resolve(contract reflect.Type, params ...Parameters) (any, error) {
	return l.container.Resolve(contract, params...)
}
