package container

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ── Constructor abstraction ───────────────────────────────────────────────────

// Param describes one constructor input.
//
// Name is used to match explicit Parameters; an empty Name only ever
// resolves through the container.
type Param struct {
	Name     string
	Contract reflect.Type
}

// Constructor is how the container builds an implementation. The
// resolution algorithm only sees this interface, so every form of
// introspection (plain functions, struct field injection) lives behind it.
type Constructor interface {
	// Params lists the inputs in declaration order.
	Params() []Param

	// Produces is the type of the built value, or nil if the
	// constructor is unusable.
	Produces() reflect.Type

	// Invoke builds a value from arguments matching Params.
	Invoke(args []reflect.Value) (reflect.Value, error)
}

// errorType contains reflection type for error variable.
var errorType = reflect.TypeOf((*error)(nil)).Elem()

// ── Func ──────────────────────────────────────────────────────────────────────

// funcConstructor adapts a Go function.
type funcConstructor struct {
	fn       reflect.Value
	params   []Param
	produces reflect.Type
	outError bool
	err      error
}

// Func adapts fn into a Constructor. fn must look like
//
//	func(deps...) T
//	func(deps...) (T, error)
//
// Go does not keep parameter names at runtime, so names lists them in
// declaration order; extra parameters stay unnamed.
//
//	container.Func(NewRepository, "db", "tableName")
//
// An invalid fn yields a constructor that is never selected.
func Func(fn any, names ...string) Constructor {
	c := &funcConstructor{}
	if fn == nil {
		c.err = errors.New("nil func")
		return c
	}

	typ := reflect.TypeOf(fn)
	if typ.Kind() != reflect.Func {
		c.err = fmt.Errorf("not a function: %s", typ)
		return c
	}
	if typ.IsVariadic() {
		c.err = fmt.Errorf("variadic functions are not supported: %s", typ)
		return c
	}

	switch {
	case typ.NumOut() == 1 && typ.Out(0) != errorType:
	case typ.NumOut() == 2 && typ.Out(1) == errorType && typ.Out(0) != errorType:
		c.outError = true
	default:
		c.err = fmt.Errorf("unexpected signature: %s", typ)
		return c
	}

	c.fn = reflect.ValueOf(fn)
	c.produces = typ.Out(0)
	c.params = make([]Param, typ.NumIn())
	for i := range c.params {
		c.params[i].Contract = typ.In(i)
		if i < len(names) {
			c.params[i].Name = names[i]
		}
	}
	return c
}

func (c *funcConstructor) Params() []Param { return c.params }

func (c *funcConstructor) Produces() reflect.Type { return c.produces }

func (c *funcConstructor) Invoke(args []reflect.Value) (reflect.Value, error) {
	if c.err != nil {
		return reflect.Value{}, c.err
	}
	out := c.fn.Call(args)
	if c.outError && !out[1].IsNil() {
		return reflect.Value{}, out[1].Interface().(error)
	}
	return out[0], nil
}

func (c *funcConstructor) String() string {
	if c.err != nil {
		return "invalid func: " + c.err.Error()
	}
	return describe(c.params, c.produces)
}

// ── Struct ────────────────────────────────────────────────────────────────────

// structConstructor builds *T by assigning tagged fields.
type structConstructor struct {
	typ    reflect.Type
	fields []int
	params []Param
}

// Struct returns a Constructor building *T, injecting every exported field
// tagged `inject`. The tag value names the parameter; an empty tag uses the
// field name.
//
//	type Service struct {
//	    Repo  Repository `inject:""`
//	    Table string     `inject:"table"`
//	}
//	container.Implement[*Service](container.Struct[Service]())
func Struct[T any]() Constructor {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	c := &structConstructor{typ: typ}
	if typ.Kind() != reflect.Struct {
		return c
	}
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		name, ok := field.Tag.Lookup("inject")
		if !ok || !field.IsExported() {
			continue
		}
		if name == "" {
			name = field.Name
		}
		c.fields = append(c.fields, i)
		c.params = append(c.params, Param{Name: name, Contract: field.Type})
	}
	return c
}

func (c *structConstructor) Params() []Param { return c.params }

func (c *structConstructor) Produces() reflect.Type {
	if c.typ.Kind() != reflect.Struct {
		return nil
	}
	return reflect.PointerTo(c.typ)
}

func (c *structConstructor) Invoke(args []reflect.Value) (reflect.Value, error) {
	if c.typ.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("not a struct: %s", c.typ)
	}
	ptr := reflect.New(c.typ)
	for i, index := range c.fields {
		ptr.Elem().Field(index).Set(args[i])
	}
	return ptr, nil
}

func (c *structConstructor) String() string {
	return describe(c.params, c.Produces())
}

// ── zero-value constructor ────────────────────────────────────────────────────

// zeroConstructor stands in for a parameterless constructor of struct and
// pointer-to-struct implementations.
type zeroConstructor struct {
	typ reflect.Type
}

func newZeroConstructor(typ reflect.Type) Constructor {
	switch {
	case typ.Kind() == reflect.Struct:
	case typ.Kind() == reflect.Pointer && typ.Elem().Kind() == reflect.Struct:
	default:
		return nil
	}
	return &zeroConstructor{typ: typ}
}

func (c *zeroConstructor) Params() []Param { return nil }

func (c *zeroConstructor) Produces() reflect.Type { return c.typ }

func (c *zeroConstructor) Invoke(_ []reflect.Value) (reflect.Value, error) {
	if c.typ.Kind() == reflect.Pointer {
		return reflect.New(c.typ.Elem()), nil
	}
	return reflect.New(c.typ).Elem(), nil
}

func (c *zeroConstructor) String() string {
	return describe(nil, c.typ)
}

// ── Implementation ────────────────────────────────────────────────────────────

// Implementation names a concrete type and the constructors able to build it.
type Implementation struct {
	typ          reflect.Type
	constructors []Constructor
}

// Implement describes implementation T. Without constructors, struct and
// pointer-to-struct types get a zero-value constructor; any other type has
// none and fails to resolve with ConstructorNotFound.
//
//	container.Implement[*Store](container.Func(NewStore, "dsn"))
//	container.Implement[*Clock]()
func Implement[T any](constructors ...Constructor) *Implementation {
	return NewImplementation(reflect.TypeOf((*T)(nil)).Elem(), constructors...)
}

// NewImplementation is the reflect.Type form of Implement.
func NewImplementation(typ reflect.Type, constructors ...Constructor) *Implementation {
	if len(constructors) == 0 {
		if zero := newZeroConstructor(typ); zero != nil {
			constructors = []Constructor{zero}
		}
	}
	return &Implementation{typ: typ, constructors: constructors}
}

// Type returns the implementation type.
func (i *Implementation) Type() reflect.Type { return i.typ }

// Constructors returns the candidate constructors in declaration order.
func (i *Implementation) Constructors() []Constructor { return i.constructors }

// selectConstructor picks the usable constructor with the most parameters.
// The first one encountered wins ties.
func (i *Implementation) selectConstructor() Constructor {
	var selected Constructor
	count := -1
	for _, ctor := range i.constructors {
		if ctor == nil {
			continue
		}
		produces := ctor.Produces()
		if produces == nil || !produces.AssignableTo(i.typ) {
			continue
		}
		if n := len(ctor.Params()); n > count {
			selected, count = ctor, n
		}
	}
	return selected
}

func describe(params []Param, produces reflect.Type) string {
	parts := make([]string, len(params))
	for i, p := range params {
		if p.Name != "" {
			parts[i] = p.Name + " " + p.Contract.String()
		} else {
			parts[i] = p.Contract.String()
		}
	}
	out := "<nil>"
	if produces != nil {
		out = produces.String()
	}
	return "func(" + strings.Join(parts, ", ") + ") " + out
}
