package codec_test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-fluentdoc/framework/codec"
)

type Status int8

const (
	Draft Status = iota - 1
	Review
	Published
)

type Color string

// Level marshals to its name.
type Level int

const (
	Debug Level = iota
	Info
	Error
)

var levelNames = []string{"debug", "info", "error"}

func (l Level) MarshalText() ([]byte, error) {
	if l < 0 || int(l) >= len(levelNames) {
		return nil, fmt.Errorf("unknown level %d", int(l))
	}
	return []byte(levelNames[l]), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	for i, name := range levelNames {
		if strings.EqualFold(name, string(text)) {
			*l = Level(i)
			return nil
		}
	}
	return fmt.Errorf("unknown level %q", text)
}

// ── builtin codecs ────────────────────────────────────────────────────────────

func TestBuiltinCodecs_RoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 9, 13, 4, 5, 123456789, time.FixedZone("CET", 3600))

	tests := []struct {
		name   string
		codec  codec.Codec
		value  any
		stored string
		want   any
	}{
		{"bool", &codec.BoolCodec{}, true, "true", true},
		{"string", &codec.StringCodec{}, "héllo", "héllo", "héllo"},
		{"int", &codec.SignedCodec[int]{}, -2, "09223372036854775806", -2},
		{"int16", &codec.SignedCodec[int16]{}, int16(300), "100300", int16(300)},
		{"uint8", &codec.UnsignedCodec[uint8]{}, uint8(7), "007", uint8(7)},
		{"uint32", &codec.UnsignedCodec[uint32]{}, uint32(70000), "0000070000", uint32(70000)},
		{"float32", &codec.FloatCodec[float32]{}, float32(1.5), "bff8000000000000", float32(1.5)},
		{"time", &codec.TimeCodec{}, now, "2024-03-09T12:04:05.123456789Z", now.UTC()},
		{"duration", &codec.DurationCodec{}, -time.Second, "09223372035854775808", -time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored, err := tt.codec.Encode(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.stored, stored)

			back, err := tt.codec.Decode(stored)
			require.NoError(t, err)
			assert.Equal(t, tt.want, back)
			assert.True(t, tt.codec.Sortable())
		})
	}
}

func TestBuiltinCodecs_WrongValueType(t *testing.T) {
	codecs := []codec.Codec{
		&codec.BoolCodec{},
		&codec.StringCodec{},
		&codec.SignedCodec[int32]{},
		&codec.UnsignedCodec[uint]{},
		&codec.FloatCodec[float64]{},
		&codec.TimeCodec{},
		&codec.DurationCodec{},
	}

	for _, c := range codecs {
		_, err := c.Encode(struct{}{})
		assert.Error(t, err, "%T", c)
	}

	_, err := (&codec.SignedCodec[int32]{}).Encode(int64(1))
	assert.Error(t, err, "int64 is not int32")
}

func TestBuiltinCodecs_DecodeMalformed(t *testing.T) {
	_, err := (&codec.BoolCodec{}).Decode("maybe")
	assert.ErrorIs(t, err, codec.ErrMalformed)

	_, err = (&codec.TimeCodec{}).Decode("2024-03-09")
	assert.ErrorIs(t, err, codec.ErrMalformed)

	_, err = (&codec.SignedCodec[int8]{}).Decode("1128")
	assert.ErrorIs(t, err, codec.ErrMalformed)
}

func TestTimeCodec_PreservesOrder(t *testing.T) {
	c := &codec.TimeCodec{}
	base := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

	earlier, err := c.Encode(base)
	require.NoError(t, err)
	later, err := c.Encode(base.Add(time.Nanosecond))
	require.NoError(t, err)

	assert.Less(t, earlier, later)
}

// ── EnumCodec ─────────────────────────────────────────────────────────────────

func TestEnumCodec_Integer(t *testing.T) {
	c, err := codec.NewEnumCodec(reflect.TypeOf((*Status)(nil)).Elem())
	require.NoError(t, err)

	draft, err := c.Encode(Draft)
	require.NoError(t, err)
	published, err := c.Encode(Published)
	require.NoError(t, err)

	assert.Equal(t, "0127", draft)
	assert.Equal(t, "1001", published)
	assert.Less(t, draft, published)
	assert.True(t, c.Sortable())

	back, err := c.Decode(published)
	require.NoError(t, err)
	assert.Equal(t, Published, back)
}

func TestEnumCodec_String(t *testing.T) {
	c, err := codec.NewEnumCodec(reflect.TypeOf((*Color)(nil)).Elem())
	require.NoError(t, err)

	stored, err := c.Encode(Color("red"))
	require.NoError(t, err)
	assert.Equal(t, "red", stored)

	back, err := c.Decode("blue")
	require.NoError(t, err)
	assert.Equal(t, Color("blue"), back)
}

func TestEnumCodec_TextMarshaler(t *testing.T) {
	c, err := codec.NewEnumCodec(reflect.TypeOf((*Level)(nil)).Elem())
	require.NoError(t, err)
	assert.False(t, c.Sortable())

	stored, err := c.Encode(Error)
	require.NoError(t, err)
	assert.Equal(t, "error", stored)

	back, err := c.Decode("INFO")
	require.NoError(t, err)
	assert.Equal(t, Info, back)

	_, err = c.Decode("trace")
	assert.ErrorIs(t, err, codec.ErrMalformed)

	_, err = c.Encode(Level(9))
	assert.Error(t, err)
}

func TestEnumCodec_RejectsOtherTypes(t *testing.T) {
	_, err := codec.NewEnumCodec(nil)
	assert.Error(t, err)

	_, err = codec.NewEnumCodec(reflect.TypeOf((*struct{ A int })(nil)).Elem())
	assert.ErrorIs(t, err, codec.ErrTypeNotSupported)

	_, err = codec.NewEnumCodec(reflect.TypeOf((*time.Location)(nil)).Elem())
	assert.ErrorIs(t, err, codec.ErrTypeNotSupported)

	c, err := codec.NewEnumCodec(reflect.TypeOf((*Status)(nil)).Elem())
	require.NoError(t, err)
	_, err = c.Encode(int8(1))
	assert.Error(t, err, "underlying type is not the enum")
}
