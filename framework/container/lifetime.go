package container

// Lifetime controls how often a registration produces a new instance.
type Lifetime int

const (
	// Transient registrations build a fresh instance on every Resolve.
	Transient Lifetime = iota

	// Singleton registrations build at most one instance per container.
	Singleton
)

func (l Lifetime) String() string {
	switch l {
	case Transient:
		return "transient"
	case Singleton:
		return "singleton"
	default:
		return "unknown"
	}
}
