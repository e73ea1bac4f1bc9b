package codec

import (
	"fmt"
	"reflect"
	"time"

	"github.com/km-arc/go-fluentdoc/framework/container"
)

// native pairs a Go type with the codec component that handles it.
type native struct {
	value reflect.Type
	codec reflect.Type
}

func nativeOf[V any, C Codec]() native {
	return native{value: reflect.TypeOf((*V)(nil)).Elem(), codec: reflect.TypeOf((*C)(nil)).Elem()}
}

// natives are the types handled without an EnumCodec.
var natives = []native{
	nativeOf[bool, *BoolCodec](),
	nativeOf[string, *StringCodec](),
	nativeOf[int, *SignedCodec[int]](),
	nativeOf[int8, *SignedCodec[int8]](),
	nativeOf[int16, *SignedCodec[int16]](),
	nativeOf[int32, *SignedCodec[int32]](),
	nativeOf[int64, *SignedCodec[int64]](),
	nativeOf[uint, *UnsignedCodec[uint]](),
	nativeOf[uint8, *UnsignedCodec[uint8]](),
	nativeOf[uint16, *UnsignedCodec[uint16]](),
	nativeOf[uint32, *UnsignedCodec[uint32]](),
	nativeOf[uint64, *UnsignedCodec[uint64]](),
	nativeOf[float32, *FloatCodec[float32]](),
	nativeOf[float64, *FloatCodec[float64]](),
	nativeOf[time.Time, *TimeCodec](),
	nativeOf[time.Duration, *DurationCodec](),
}

// Register adds every builtin codec to c as a transient component, the
// EnumCodec as a transient built from the "enumType" parameter, and the
// Factory as a singleton. A service locator is registered too when c has
// none yet.
func Register(c *container.Container) error {
	if !c.Has(container.ContractOf[container.Locator]()) {
		if _, err := container.NewServiceLocator(c); err != nil {
			return err
		}
	}

	for _, n := range natives {
		if err := c.RegisterTransient(n.codec, container.NewImplementation(n.codec)); err != nil {
			return fmt.Errorf("register codec for %s: %w", n.value, err)
		}
	}

	err := container.BindTransient[*EnumCodec](c, container.Implement[*EnumCodec](
		container.Func(NewEnumCodec, "enumType"),
	))
	if err != nil {
		return fmt.Errorf("register enum codec: %w", err)
	}

	return container.BindSingleton[*Factory](c, container.Implement[*Factory](
		container.Func(NewFactory, "locator"),
	))
}

// ── Factory ───────────────────────────────────────────────────────────────────

// Factory picks the codec for a Go type and resolves it through the
// locator, so every codec is built by the container.
type Factory struct {
	locator container.Locator
	natives map[reflect.Type]reflect.Type
}

// NewFactory returns a Factory resolving codecs through l.
func NewFactory(l container.Locator) *Factory {
	f := &Factory{
		locator: l,
		natives: make(map[reflect.Type]reflect.Type, len(natives)),
	}
	for _, n := range natives {
		f.natives[n.value] = n.codec
	}
	return f
}

// For returns the codec for typ. Pointer types use the codec of their
// element; named string and integer types, and types implementing
// encoding.TextMarshaler, get an EnumCodec.
func (f *Factory) For(typ reflect.Type) (Codec, error) {
	if typ == nil {
		return nil, fmt.Errorf("%w: <nil>", ErrTypeNotSupported)
	}
	known := typ
	for known.Kind() == reflect.Pointer {
		known = known.Elem()
	}

	if contract, ok := f.natives[known]; ok {
		instance, err := f.locator.Resolve(contract)
		if err != nil {
			return nil, fmt.Errorf("codec for %s: %w", typ, err)
		}
		return instance.(Codec), nil
	}

	if enumLike(known) {
		enum, err := container.Resolve[*EnumCodec](f.locator, container.Parameters{"enumType": known})
		if err != nil {
			return nil, fmt.Errorf("codec for %s: %w", typ, err)
		}
		return enum, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrTypeNotSupported, typ)
}

// Supports reports whether For would find a codec for typ.
func (f *Factory) Supports(typ reflect.Type) bool {
	if typ == nil {
		return false
	}
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	_, ok := f.natives[typ]
	return ok || enumLike(typ)
}

func enumLike(typ reflect.Type) bool {
	if typ.Name() == "" {
		return false
	}
	if typ.Implements(textMarshalerType) && reflect.PointerTo(typ).Implements(textUnmarshalerType) {
		return true
	}
	return enumKind(typ.Kind())
}
