// Package materialize turns stored documents into Go structs and back.
//
// A Document is a flat map of stored field names to encoded values. The
// Mapper reads `doc` struct tags to build a DocumentMapping, taking each
// field's codec from the codec Factory; the Materializer walks a mapping to
// hydrate a new entity or to flatten one into a Document.
//
//	m := container.MustResolve[*materialize.Materializer](c)
//	article, err := materialize.Materialize[Article](m, doc)
package materialize

import (
	"fmt"
	"reflect"

	"github.com/km-arc/go-fluentdoc/framework/container"
)

// Document is a stored record: field name to encoded value.
type Document map[string]string

// ── Activator ─────────────────────────────────────────────────────────────────

// Activator creates the entities the Materializer hydrates.
type Activator interface {
	// New returns a pointer to a new zero value of typ.
	New(typ reflect.Type) reflect.Value
}

// ReflectActivator creates entities with reflect.New.
type ReflectActivator struct{}

func (ReflectActivator) New(typ reflect.Type) reflect.Value { return reflect.New(typ) }

// ── Materializer ──────────────────────────────────────────────────────────────

// Materializer converts between Documents and entities.
type Materializer struct {
	activator Activator
	mapper    *Mapper
}

// NewMaterializer returns a Materializer creating entities with activator
// and mapping them with mapper.
func NewMaterializer(activator Activator, mapper *Mapper) *Materializer {
	return &Materializer{activator: activator, mapper: mapper}
}

// Mapper returns the mapper used by m.
func (m *Materializer) Mapper() *Mapper { return m.mapper }

// Materialize returns a new *T, T being mapping.Type, with every field
// present in doc decoded into it. Absent fields keep their zero value; an
// empty stored value leaves a pointer field nil.
func (m *Materializer) Materialize(mapping *DocumentMapping, doc Document) (any, error) {
	entity := m.activator.New(mapping.Type)
	if entity.Kind() != reflect.Pointer || entity.Type().Elem() != mapping.Type {
		return nil, fmt.Errorf("%w: activator returned %s for %s", ErrTypeMismatch, entity.Type(), mapping.Type)
	}

	for _, f := range mapping.All() {
		stored, ok := doc[f.Name]
		if !ok {
			continue
		}
		if stored == "" && f.Type.Kind() == reflect.Pointer {
			continue
		}

		decoded, err := f.Codec.Decode(stored)
		if err != nil {
			return nil, &DecodeError{Field: f.Name, Value: stored, Err: err}
		}
		if err := assign(entity.Elem().FieldByIndex(f.index), decoded); err != nil {
			return nil, &DecodeError{Field: f.Name, Value: stored, Err: err}
		}
	}
	return entity.Interface(), nil
}

// Document flattens entity, a mapping.Type value or a pointer to one.
// Nil pointer fields are omitted, and so are zero values of omitempty fields.
func (m *Materializer) Document(mapping *DocumentMapping, entity any) (Document, error) {
	rv := reflect.ValueOf(entity)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil %s", ErrTypeMismatch, rv.Type())
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Type() != mapping.Type {
		return nil, fmt.Errorf("%w: got %T, want %s", ErrTypeMismatch, entity, mapping.Type)
	}

	doc := make(Document, len(mapping.Fields)+1)
	for _, f := range mapping.All() {
		fv := rv.FieldByIndex(f.index)
		for fv.Kind() == reflect.Pointer && !fv.IsNil() {
			fv = fv.Elem()
		}
		if fv.Kind() == reflect.Pointer {
			continue
		}
		if f.OmitEmpty && fv.IsZero() {
			continue
		}

		stored, err := f.Codec.Encode(fv.Interface())
		if err != nil {
			return nil, fmt.Errorf("materialize: field %q: %w", f.Name, err)
		}
		doc[f.Name] = stored
	}
	return doc, nil
}

// assign stores value in target, allocating pointers on the way.
func assign(target reflect.Value, value any) error {
	for target.Kind() == reflect.Pointer {
		if target.IsNil() {
			target.Set(reflect.New(target.Type().Elem()))
		}
		target = target.Elem()
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || !rv.Type().AssignableTo(target.Type()) {
		return fmt.Errorf("decoded %T does not fit %s", value, target.Type())
	}
	target.Set(rv)
	return nil
}

// ── typed helpers ─────────────────────────────────────────────────────────────

// Materialize hydrates a new *T from doc.
func Materialize[T any](m *Materializer, doc Document) (*T, error) {
	mapping, err := m.mapper.Map(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	entity, err := m.Materialize(mapping, doc)
	if err != nil {
		return nil, err
	}
	typed, ok := entity.(*T)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not *%s", ErrTypeMismatch, entity, reflect.TypeOf((*T)(nil)).Elem())
	}
	return typed, nil
}

// ToDocument flattens entity.
func ToDocument[T any](m *Materializer, entity *T) (Document, error) {
	mapping, err := m.mapper.Map(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return m.Document(mapping, entity)
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register adds the Activator, the Mapper and the Materializer to c as
// singletons. The codec Factory must be registered too, see codec.Register.
func Register(c *container.Container) error {
	if err := container.BindSingleton[Activator](c, container.Implement[*ReflectActivator]()); err != nil {
		return err
	}
	err := container.BindSingleton[*Mapper](c, container.Implement[*Mapper](
		container.Func(NewMapper, "codecs"),
	))
	if err != nil {
		return err
	}
	return container.BindSingleton[*Materializer](c, container.Implement[*Materializer](
		container.Func(NewMaterializer, "activator", "mapper"),
	))
}
