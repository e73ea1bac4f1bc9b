package container

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrorKind classifies a ResolutionError.
type ErrorKind int

const (
	// AlreadyRegistered: a second registration for the same contract.
	AlreadyRegistered ErrorKind = iota + 1

	// NotRegistered: resolution of a contract nobody registered.
	NotRegistered

	// ConstructorNotFound: the implementation has no usable constructor.
	ConstructorNotFound

	// DependencyResolution wraps a failure raised while resolving a nested dependency.
	DependencyResolution

	// CircularDependency: a contract transitively depends on itself within one Resolve call.
	CircularDependency

	// ConstructionFailed: a constructor or factory returned an error or an unusable value.
	ConstructionFailed
)

func (k ErrorKind) String() string {
	switch k {
	case AlreadyRegistered:
		return "AlreadyRegistered"
	case NotRegistered:
		return "NotRegistered"
	case ConstructorNotFound:
		return "ConstructorNotFound"
	case DependencyResolution:
		return "DependencyResolution"
	case CircularDependency:
		return "CircularDependency"
	case ConstructionFailed:
		return "ConstructionFailed"
	default:
		return "None"
	}
}

// Sentinels for errors.Is. Matching is by Kind, at any wrapping depth.
var (
	ErrAlreadyRegistered    = &ResolutionError{Kind: AlreadyRegistered, RootCause: AlreadyRegistered}
	ErrNotRegistered        = &ResolutionError{Kind: NotRegistered, RootCause: NotRegistered}
	ErrConstructorNotFound  = &ResolutionError{Kind: ConstructorNotFound, RootCause: ConstructorNotFound}
	ErrDependencyResolution = &ResolutionError{Kind: DependencyResolution}
	ErrCircularDependency   = &ResolutionError{Kind: CircularDependency, RootCause: CircularDependency}
	ErrConstructionFailed   = &ResolutionError{Kind: ConstructionFailed, RootCause: ConstructionFailed}
)

// ResolutionError is the only error type raised by the container.
//
// Kind is the immediate failure; RootCause is the innermost originating
// kind, carried up unchanged through every DependencyResolution layer.
type ResolutionError struct {
	Kind      ErrorKind
	RootCause ErrorKind

	// Contract is the contract whose registration or resolution failed.
	Contract reflect.Type

	// Dependency is the nested contract involved, when there is one.
	Dependency reflect.Type

	// Err is the wrapped inner failure.
	Err error

	msg string
}

func (e *ResolutionError) Error() string {
	msg := e.msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return "container: " + msg + ": " + strings.TrimPrefix(e.Err.Error(), "container: ")
	}
	return "container: " + msg
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Is matches any ResolutionError of the same Kind.
//
//	errors.Is(err, container.ErrCircularDependency)
func (e *ResolutionError) Is(target error) bool {
	t, ok := target.(*ResolutionError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// RootCauseOf returns the innermost kind of a container failure, or zero if
// err does not come from the container.
func RootCauseOf(err error) ErrorKind {
	var re *ResolutionError
	if errors.As(err, &re) {
		return re.RootCause
	}
	return 0
}

// ── constructors ──────────────────────────────────────────────────────────────

func alreadyRegistered(contract reflect.Type) *ResolutionError {
	return &ResolutionError{
		Kind:      AlreadyRegistered,
		RootCause: AlreadyRegistered,
		Contract:  contract,
		msg:       fmt.Sprintf("%s was already registered", contract),
	}
}

func notRegistered(contract reflect.Type) *ResolutionError {
	return &ResolutionError{
		Kind:      NotRegistered,
		RootCause: NotRegistered,
		Contract:  contract,
		msg:       fmt.Sprintf("unable to resolve %s: not registered", contract),
	}
}

func constructorNotFound(contract, implementation reflect.Type) *ResolutionError {
	return &ResolutionError{
		Kind:      ConstructorNotFound,
		RootCause: ConstructorNotFound,
		Contract:  contract,
		msg:       fmt.Sprintf("no usable constructor for %s (implementation %s)", contract, implementation),
	}
}

func circularDependency(contract, dependency reflect.Type) *ResolutionError {
	return &ResolutionError{
		Kind:       CircularDependency,
		RootCause:  CircularDependency,
		Contract:   contract,
		Dependency: dependency,
		msg:        fmt.Sprintf("circular dependency detected within %s on %s", contract, dependency),
	}
}

func dependencyResolution(contract, dependency reflect.Type, inner error) *ResolutionError {
	return &ResolutionError{
		Kind:       DependencyResolution,
		RootCause:  RootCauseOf(inner),
		Contract:   contract,
		Dependency: dependency,
		Err:        inner,
		msg:        fmt.Sprintf("unable to resolve dependencies for %s", contract),
	}
}

// constructionFailed keeps the root cause of a container failure returned by
// a factory or constructor that resolved through the container itself.
func constructionFailed(contract reflect.Type, inner error) *ResolutionError {
	root := ConstructionFailed
	var re *ResolutionError
	if errors.As(inner, &re) {
		root = re.RootCause
	}
	return &ResolutionError{
		Kind:      ConstructionFailed,
		RootCause: root,
		Contract:  contract,
		Err:       inner,
		msg:       fmt.Sprintf("unable to construct %s", contract),
	}
}
