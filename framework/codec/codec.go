// Package codec converts typed Go values to and from their stored string
// form.
//
// Every codec is a container component: Register adds the builtin codecs as
// transients and a Factory singleton that picks the codec for a Go type.
//
//	c := container.New()
//	if err := codec.Register(c); err != nil { ... }
//
//	f := container.MustResolve[*codec.Factory](c)
//	cd, err := f.For(reflect.TypeOf((*int32)(nil)).Elem())
//	s, _ := cd.Encode(int32(-5)) // "02147483643"
//
// Numeric codecs use a lexicographic encoding, so stored strings sort in
// the same order as the values they hold.
package codec

import (
	"errors"
	"fmt"
)

// Codec converts between a Go value and its stored string.
type Codec interface {
	// Encode returns the stored form of value.
	Encode(value any) (string, error)

	// Decode parses a stored string back into a value.
	Decode(s string) (any, error)

	// Sortable reports whether stored strings sort like the values.
	Sortable() bool
}

var (
	// ErrTypeNotSupported is returned when no codec handles a Go type.
	ErrTypeNotSupported = errors.New("codec: type not supported")

	// ErrMalformed is returned when a stored string cannot be decoded.
	ErrMalformed = errors.New("codec: malformed value")
)

// unexpected reports a value of the wrong type handed to Encode.
func unexpected(want string, value any) error {
	return fmt.Errorf("codec: expected %s, got %T", want, value)
}
