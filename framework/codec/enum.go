package codec

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
)

var (
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// EnumCodec stores values of a named string or integer type, such as
//
//	type Status int
//	const (
//	    Draft Status = iota
//	    Published
//	)
//
// A type implementing encoding.TextMarshaler, with a pointer implementing
// encoding.TextUnmarshaler, is stored as its text. Any other one is stored
// as its underlying value, integers in lex form.
type EnumCodec struct {
	typ     reflect.Type
	textual bool
}

// NewEnumCodec returns the codec for enumType. The container supplies
// enumType as an explicit parameter:
//
//	container.Resolve[*codec.EnumCodec](c, container.Parameters{"enumType": t})
func NewEnumCodec(enumType reflect.Type) (*EnumCodec, error) {
	if enumType == nil {
		return nil, errors.New("codec: nil enum type")
	}
	if enumType.Name() == "" {
		return nil, fmt.Errorf("%w: %s is not a named type", ErrTypeNotSupported, enumType)
	}

	c := &EnumCodec{typ: enumType}
	if enumType.Implements(textMarshalerType) && reflect.PointerTo(enumType).Implements(textUnmarshalerType) {
		c.textual = true
		return c, nil
	}
	if !enumKind(enumType.Kind()) {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotSupported, enumType)
	}
	return c, nil
}

// Type returns the enum type handled by c.
func (c *EnumCodec) Type() reflect.Type { return c.typ }

func (c *EnumCodec) Encode(value any) (string, error) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.Type() != c.typ {
		return "", unexpected(c.typ.String(), value)
	}

	if c.textual {
		text, err := value.(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return "", fmt.Errorf("codec: marshal %s: %w", c.typ, err)
		}
		return string(text), nil
	}

	switch {
	case rv.Kind() == reflect.String:
		return rv.String(), nil
	case rv.CanInt():
		return EncodeInt(rv.Int(), c.typ.Bits()), nil
	default:
		return EncodeUint(rv.Uint(), c.typ.Bits()), nil
	}
}

func (c *EnumCodec) Decode(s string) (any, error) {
	ptr := reflect.New(c.typ)

	if c.textual {
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return nil, fmt.Errorf("%w: %q is not a %s: %v", ErrMalformed, s, c.typ, err)
		}
		return ptr.Elem().Interface(), nil
	}

	elem := ptr.Elem()
	switch {
	case elem.Kind() == reflect.String:
		elem.SetString(s)
	case elem.CanInt():
		n, err := DecodeInt(s, c.typ.Bits())
		if err != nil {
			return nil, err
		}
		elem.SetInt(n)
	default:
		n, err := DecodeUint(s, c.typ.Bits())
		if err != nil {
			return nil, err
		}
		elem.SetUint(n)
	}
	return elem.Interface(), nil
}

// Sortable is false for textual enums, whose names need not sort like the
// values.
func (c *EnumCodec) Sortable() bool { return !c.textual }

func enumKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}
