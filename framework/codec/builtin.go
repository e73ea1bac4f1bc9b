package codec

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"golang.org/x/exp/constraints"
)

// ── Bool / String ─────────────────────────────────────────────────────────────

// BoolCodec stores booleans as "false" and "true".
type BoolCodec struct{}

func (c *BoolCodec) Encode(value any) (string, error) {
	v, ok := value.(bool)
	if !ok {
		return "", unexpected("bool", value)
	}
	return strconv.FormatBool(v), nil
}

func (c *BoolCodec) Decode(s string) (any, error) {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a bool", ErrMalformed, s)
	}
	return v, nil
}

func (c *BoolCodec) Sortable() bool { return true }

// StringCodec stores strings as they are.
type StringCodec struct{}

func (c *StringCodec) Encode(value any) (string, error) {
	v, ok := value.(string)
	if !ok {
		return "", unexpected("string", value)
	}
	return v, nil
}

func (c *StringCodec) Decode(s string) (any, error) { return s, nil }

func (c *StringCodec) Sortable() bool { return true }

// ── Numbers ───────────────────────────────────────────────────────────────────

// SignedCodec stores signed integers with EncodeInt.
type SignedCodec[T constraints.Signed] struct{}

func (c *SignedCodec[T]) Encode(value any) (string, error) {
	v, ok := value.(T)
	if !ok {
		return "", unexpected(reflect.TypeOf((*T)(nil)).Elem().String(), value)
	}
	return EncodeInt(int64(v), bitsOf[T]()), nil
}

func (c *SignedCodec[T]) Decode(s string) (any, error) {
	n, err := DecodeInt(s, bitsOf[T]())
	if err != nil {
		return nil, err
	}
	return T(n), nil
}

func (c *SignedCodec[T]) Sortable() bool { return true }

// UnsignedCodec stores unsigned integers with EncodeUint.
type UnsignedCodec[T constraints.Unsigned] struct{}

func (c *UnsignedCodec[T]) Encode(value any) (string, error) {
	v, ok := value.(T)
	if !ok {
		return "", unexpected(reflect.TypeOf((*T)(nil)).Elem().String(), value)
	}
	return EncodeUint(uint64(v), bitsOf[T]()), nil
}

func (c *UnsignedCodec[T]) Decode(s string) (any, error) {
	n, err := DecodeUint(s, bitsOf[T]())
	if err != nil {
		return nil, err
	}
	return T(n), nil
}

func (c *UnsignedCodec[T]) Sortable() bool { return true }

// FloatCodec stores floats with EncodeFloat. float32 values widen exactly to
// float64, so both sizes share one encoding.
type FloatCodec[T constraints.Float] struct{}

func (c *FloatCodec[T]) Encode(value any) (string, error) {
	v, ok := value.(T)
	if !ok {
		return "", unexpected(reflect.TypeOf((*T)(nil)).Elem().String(), value)
	}
	return EncodeFloat(float64(v)), nil
}

func (c *FloatCodec[T]) Decode(s string) (any, error) {
	f, err := DecodeFloat(s)
	if err != nil {
		return nil, err
	}
	return T(f), nil
}

func (c *FloatCodec[T]) Sortable() bool { return true }

func bitsOf[T any]() int { return reflect.TypeOf((*T)(nil)).Elem().Bits() }

// ── Time ──────────────────────────────────────────────────────────────────────

// TimeLayout is the fixed-width UTC layout used by TimeCodec.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

// TimeCodec stores instants in UTC with TimeLayout. Monotonic readings and
// locations are not kept.
type TimeCodec struct{}

func (c *TimeCodec) Encode(value any) (string, error) {
	v, ok := value.(time.Time)
	if !ok {
		return "", unexpected("time.Time", value)
	}
	return v.UTC().Format(TimeLayout), nil
}

func (c *TimeCodec) Decode(s string) (any, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a time: %v", ErrMalformed, s, err)
	}
	return t, nil
}

func (c *TimeCodec) Sortable() bool { return true }

// DurationCodec stores durations as lex encoded nanoseconds.
type DurationCodec struct{}

func (c *DurationCodec) Encode(value any) (string, error) {
	v, ok := value.(time.Duration)
	if !ok {
		return "", unexpected("time.Duration", value)
	}
	return EncodeInt(int64(v), 64), nil
}

func (c *DurationCodec) Decode(s string) (any, error) {
	n, err := DecodeInt(s, 64)
	if err != nil {
		return nil, err
	}
	return time.Duration(n), nil
}

func (c *DurationCodec) Sortable() bool { return true }
