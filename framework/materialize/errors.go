package materialize

import (
	"errors"
	"fmt"
)

var (
	// ErrNotStruct is returned when mapping anything but a struct or a
	// pointer to one.
	ErrNotStruct = errors.New("materialize: not a struct type")

	// ErrDuplicateField is returned when two fields share a stored name.
	ErrDuplicateField = errors.New("materialize: duplicate field name")

	// ErrMultipleIdentities is returned when more than one field is tagged id.
	ErrMultipleIdentities = errors.New("materialize: more than one identity field")

	// ErrInvalidTag is returned for a doc tag option that cannot be parsed.
	ErrInvalidTag = errors.New("materialize: invalid doc tag")

	// ErrNotSortable is returned when a field tagged sort has a codec whose
	// encoding does not preserve order.
	ErrNotSortable = errors.New("materialize: field codec is not sortable")

	// ErrTypeMismatch is returned when an entity does not match its mapping.
	ErrTypeMismatch = errors.New("materialize: entity does not match mapping")
)

// DecodeError reports a stored value that could not be decoded into its field.
type DecodeError struct {
	Field string
	Value string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("materialize: field %q: cannot decode %q: %v", e.Field, e.Value, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
