package codec_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-fluentdoc/framework/codec"
	"github.com/km-arc/go-fluentdoc/framework/container"
)

func newFactory(t *testing.T) (*container.Container, *codec.Factory) {
	t.Helper()
	c := container.New()
	require.NoError(t, codec.Register(c))
	f, err := container.Resolve[*codec.Factory](c)
	require.NoError(t, err)
	return c, f
}

func TestRegister_FactoryIsSingleton(t *testing.T) {
	c, f := newFactory(t)

	assert.Same(t, f, container.MustResolve[*codec.Factory](c))
	assert.True(t, c.Has(container.ContractOf[container.Locator]()))
}

func TestRegister_KeepsExistingLocator(t *testing.T) {
	c := container.New()
	l, err := container.NewServiceLocator(c)
	require.NoError(t, err)

	require.NoError(t, codec.Register(c))
	assert.Same(t, l, container.MustResolve[container.Locator](c))
}

func TestRegister_Twice_FailsWithAlreadyRegistered(t *testing.T) {
	c := container.New()
	require.NoError(t, codec.Register(c))

	assert.ErrorIs(t, codec.Register(c), container.ErrAlreadyRegistered)
}

func TestFactory_For_NativeTypes(t *testing.T) {
	_, f := newFactory(t)

	tests := []struct {
		typ  reflect.Type
		want codec.Codec
	}{
		{reflect.TypeOf((*bool)(nil)).Elem(), &codec.BoolCodec{}},
		{reflect.TypeOf((*string)(nil)).Elem(), &codec.StringCodec{}},
		{reflect.TypeOf((*int)(nil)).Elem(), &codec.SignedCodec[int]{}},
		{reflect.TypeOf((*int8)(nil)).Elem(), &codec.SignedCodec[int8]{}},
		{reflect.TypeOf((*int64)(nil)).Elem(), &codec.SignedCodec[int64]{}},
		{reflect.TypeOf((*uint16)(nil)).Elem(), &codec.UnsignedCodec[uint16]{}},
		{reflect.TypeOf((*float32)(nil)).Elem(), &codec.FloatCodec[float32]{}},
		{reflect.TypeOf((*float64)(nil)).Elem(), &codec.FloatCodec[float64]{}},
		{reflect.TypeOf((*time.Time)(nil)).Elem(), &codec.TimeCodec{}},
		{reflect.TypeOf((*time.Duration)(nil)).Elem(), &codec.DurationCodec{}},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			got, err := f.For(tt.typ)
			require.NoError(t, err)
			assert.IsType(t, tt.want, got)
			assert.True(t, f.Supports(tt.typ))
		})
	}
}

func TestFactory_For_PointerUsesElementCodec(t *testing.T) {
	_, f := newFactory(t)

	got, err := f.For(reflect.TypeOf((***int32)(nil)).Elem())
	require.NoError(t, err)
	assert.IsType(t, &codec.SignedCodec[int32]{}, got)
}

func TestFactory_For_NamedTypesGetEnumCodec(t *testing.T) {
	_, f := newFactory(t)

	for _, typ := range []reflect.Type{
		reflect.TypeOf((*Status)(nil)).Elem(),
		reflect.TypeOf((*Color)(nil)).Elem(),
		reflect.TypeOf((*Level)(nil)).Elem(),
		reflect.TypeOf((**Level)(nil)).Elem(),
	} {
		got, err := f.For(typ)
		require.NoError(t, err, typ)

		enum, ok := got.(*codec.EnumCodec)
		require.True(t, ok, "%s: got %T", typ, got)
		assert.NotEqual(t, reflect.Pointer, enum.Type().Kind())
	}
}

func TestFactory_For_EnumCodecIsTransientPerType(t *testing.T) {
	_, f := newFactory(t)

	status, err := f.For(reflect.TypeOf((*Status)(nil)).Elem())
	require.NoError(t, err)
	color, err := f.For(reflect.TypeOf((*Color)(nil)).Elem())
	require.NoError(t, err)

	assert.Equal(t, reflect.TypeOf((*Status)(nil)).Elem(), status.(*codec.EnumCodec).Type())
	assert.Equal(t, reflect.TypeOf((*Color)(nil)).Elem(), color.(*codec.EnumCodec).Type())
}

func TestFactory_For_UnsupportedTypes(t *testing.T) {
	_, f := newFactory(t)

	for _, typ := range []reflect.Type{
		nil,
		reflect.TypeOf((*[]byte)(nil)).Elem(),
		reflect.TypeOf((*map[string]int)(nil)).Elem(),
		reflect.TypeOf((*struct{ A int })(nil)).Elem(),
		reflect.TypeOf((*time.Location)(nil)).Elem(),
		reflect.TypeOf((*complex128)(nil)).Elem(),
	} {
		_, err := f.For(typ)
		assert.ErrorIs(t, err, codec.ErrTypeNotSupported, "%v", typ)
		assert.False(t, f.Supports(typ))
	}
}

func TestEnumCodec_WithoutEnumType_FailsToResolve(t *testing.T) {
	c, _ := newFactory(t)

	_, err := container.Resolve[*codec.EnumCodec](c)
	assert.Equal(t, container.NotRegistered, container.RootCauseOf(err))
}

func TestEnumCodec_UnsupportedEnumType_FailsWithConstructionFailed(t *testing.T) {
	c, _ := newFactory(t)

	_, err := container.Resolve[*codec.EnumCodec](c, container.Parameters{"enumType": reflect.TypeOf((*struct{})(nil)).Elem()})
	assert.ErrorIs(t, err, container.ErrConstructionFailed)
	assert.ErrorIs(t, err, codec.ErrTypeNotSupported)
}
