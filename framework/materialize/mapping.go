package materialize

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/km-arc/go-fluentdoc/framework/codec"
)

// ── Mapping model ─────────────────────────────────────────────────────────────

// FieldMapping binds one struct field to one stored document field.
type FieldMapping struct {
	// Name is the stored field name.
	Name string

	// GoName is the struct field name.
	GoName string

	// Type is the struct field type.
	Type reflect.Type

	// OmitEmpty drops zero values when building a Document.
	OmitEmpty bool

	// Index and Store are resolved: never IndexDefault or StoreDefault.
	Index FieldIndex
	Store FieldStore

	// Sortable fields always have a sortable Codec.
	Sortable bool

	// Boost weights the field at query time; 1 unless tagged.
	Boost float64

	Codec codec.Codec

	index []int
}

// DocumentMapping describes how a struct type maps to a Document.
type DocumentMapping struct {
	// Type is the mapped struct type, never a pointer.
	Type reflect.Type

	// Defaults are the resolved type-level field defaults.
	Defaults Defaults

	// Identity is the field tagged id, or nil.
	Identity *FieldMapping

	// Fields are the other mapped fields in declaration order.
	Fields []*FieldMapping
}

// All returns the identity, if any, followed by every other field.
func (m *DocumentMapping) All() []*FieldMapping {
	if m.Identity == nil {
		return m.Fields
	}
	return append([]*FieldMapping{m.Identity}, m.Fields...)
}

// Field returns the mapping of the stored field name.
func (m *DocumentMapping) Field(name string) (*FieldMapping, bool) {
	for _, f := range m.All() {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// ── Mapper ────────────────────────────────────────────────────────────────────

// Mapper builds DocumentMappings from struct tags and caches them.
//
//	type Article struct {
//	    ID     string    `doc:"id,id,index=as_is"`
//	    Title  string    `doc:"title,boost=3,sort"`
//	    Body   string    `doc:"body,store=compressed"`
//	    Tags   string    `doc:"tags,omitempty"`
//	    Status Status                        // stored as "Status"
//	    cache  []byte                        // unexported, ignored
//	    Draft  bool      `doc:"-"`          // ignored
//	}
//
// Embedded structs without a tag contribute their exported fields, whether
// the embedded type is exported or not. Options missing from a tag come from
// the type's Defaulter, if it implements one. A field that inherits
// Sortable from the defaults but whose codec is not sortable is left
// unsortable; tagging it sort is an error.
type Mapper struct {
	codecs *codec.Factory

	mu    sync.RWMutex
	cache map[reflect.Type]*DocumentMapping
}

// NewMapper returns a Mapper taking field codecs from codecs.
func NewMapper(codecs *codec.Factory) *Mapper {
	return &Mapper{
		codecs: codecs,
		cache:  make(map[reflect.Type]*DocumentMapping),
	}
}

// Map returns the mapping of typ, a struct or a pointer to one.
func (m *Mapper) Map(typ reflect.Type) (*DocumentMapping, error) {
	if typ == nil {
		return nil, ErrNotStruct
	}
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, typ)
	}

	m.mu.RLock()
	mapping, ok := m.cache[typ]
	m.mu.RUnlock()
	if ok {
		return mapping, nil
	}

	mapping = &DocumentMapping{Type: typ, Defaults: defaultsOf(typ)}
	if err := m.collect(mapping, typ, nil, make(map[string]bool)); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.cache[typ]; ok {
		return existing, nil
	}
	m.cache[typ] = mapping
	return mapping, nil
}

func (m *Mapper) collect(mapping *DocumentMapping, typ reflect.Type, index []int, seen map[string]bool) error {
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag, tagged := field.Tag.Lookup("doc")
		if tag == "-" {
			continue
		}
		path := append(slices.Clone(index), i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct && !tagged {
			if err := m.collect(mapping, field.Type, path, seen); err != nil {
				return err
			}
			continue
		}
		if !field.IsExported() {
			continue
		}

		name, options, _ := strings.Cut(tag, ",")
		if name == "" {
			name = field.Name
		}
		if seen[name] {
			return fmt.Errorf("%w: %s.%s", ErrDuplicateField, mapping.Type, name)
		}
		seen[name] = true

		fieldCodec, err := m.codecs.For(field.Type)
		if err != nil {
			return fmt.Errorf("materialize: field %s.%s: %w", mapping.Type, field.Name, err)
		}

		opts, err := parseOptions(options)
		if err != nil {
			return fmt.Errorf("materialize: field %s.%s: %w", mapping.Type, field.Name, err)
		}

		fm := &FieldMapping{
			Name:   name,
			GoName: field.Name,
			Type:   field.Type,
			Codec:  fieldCodec,
			index:  path,
		}
		opts.apply(fm, mapping.Defaults)
		if fm.Sortable && !fieldCodec.Sortable() {
			if opts.sortable != nil {
				return fmt.Errorf("%w: %s.%s", ErrNotSortable, mapping.Type, field.Name)
			}
			fm.Sortable = false
		}

		if !opts.identity {
			mapping.Fields = append(mapping.Fields, fm)
			continue
		}
		if mapping.Identity != nil {
			return fmt.Errorf("%w: %s has %s and %s", ErrMultipleIdentities, mapping.Type, mapping.Identity.GoName, field.Name)
		}
		mapping.Identity = fm
	}
	return nil
}

var defaulterType = reflect.TypeOf((*Defaulter)(nil)).Elem()

// defaultsOf reads the Defaulter of typ, on the value or the pointer.
func defaultsOf(typ reflect.Type) Defaults {
	var d Defaults
	switch {
	case typ.Implements(defaulterType):
		d = reflect.Zero(typ).Interface().(Defaulter).MappingDefaults()
	case reflect.PointerTo(typ).Implements(defaulterType):
		d = reflect.New(typ).Interface().(Defaulter).MappingDefaults()
	}
	return d.withFallbacks()
}
