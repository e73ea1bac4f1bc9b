package materialize_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-fluentdoc/framework/materialize"
)

// Mood encodes as text, so its codec is not sortable.
type Mood int

func (m Mood) MarshalText() ([]byte, error) { return []byte(fmt.Sprintf("mood-%d", int(m))), nil }

func (m *Mood) UnmarshalText(b []byte) error {
	_, err := fmt.Sscanf(string(b), "mood-%d", (*int)(m))
	return err
}

type Post struct {
	ID      string `doc:"id,id,index=as_is"`
	Title   string `doc:"title,boost=3,sort"`
	Body    string `doc:"body,store=compressed,index=tokenized"`
	Secret  string `doc:"secret,store=no,index=no"`
	Summary string `doc:"summary,index=without_norms,nosort"`
	Mood    Mood   `doc:"mood"`
}

// Catalog sorts and indexes as-is unless a field says otherwise.
type Catalog struct {
	SKU   string `doc:"sku,id"`
	Name  string `doc:"name,index=tokenized"`
	Price int64  `doc:"price,nosort"`
	Mood  Mood   `doc:"mood"`
}

func (*Catalog) MappingDefaults() materialize.Defaults {
	return materialize.Defaults{Index: materialize.IndexAsIs, Sortable: true}
}

type base struct {
	Created int64 `doc:"created"`
	hidden  string
}

type Comment struct {
	base
	Text string `doc:"text"`
}

func field(t *testing.T, mapping *materialize.DocumentMapping, name string) *materialize.FieldMapping {
	t.Helper()
	f, ok := mapping.Field(name)
	require.True(t, ok, "field %q", name)
	return f
}

// ── options ───────────────────────────────────────────────────────────────────

func TestMapper_Options_FromTags(t *testing.T) {
	_, m := newMaterializer(t)

	mapping, err := m.Mapper().Map(reflect.TypeOf((*Post)(nil)).Elem())
	require.NoError(t, err)

	tests := []struct {
		name     string
		index    materialize.FieldIndex
		store    materialize.FieldStore
		sortable bool
		boost    float64
	}{
		{"id", materialize.IndexAsIs, materialize.StoreYes, false, 1},
		{"title", materialize.IndexTokenized, materialize.StoreYes, true, 3},
		{"body", materialize.IndexTokenized, materialize.StoreCompressed, false, 1},
		{"secret", materialize.IndexNo, materialize.StoreNo, false, 1},
		{"summary", materialize.IndexWithoutNorms, materialize.StoreYes, false, 1},
		{"mood", materialize.IndexTokenized, materialize.StoreYes, false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := field(t, mapping, tt.name)
			assert.Equal(t, tt.index, f.Index)
			assert.Equal(t, tt.store, f.Store)
			assert.Equal(t, tt.sortable, f.Sortable)
			assert.Equal(t, tt.boost, f.Boost)
		})
	}
}

func TestMapper_Options_TypeDefaults(t *testing.T) {
	_, m := newMaterializer(t)

	mapping, err := m.Mapper().Map(reflect.TypeOf((*Catalog)(nil)).Elem())
	require.NoError(t, err)

	assert.Equal(t, materialize.Defaults{
		Index:    materialize.IndexAsIs,
		Store:    materialize.StoreYes,
		Sortable: true,
	}, mapping.Defaults)

	sku := mapping.Identity
	assert.Equal(t, materialize.IndexAsIs, sku.Index)
	assert.True(t, sku.Sortable)

	name := field(t, mapping, "name")
	assert.Equal(t, materialize.IndexTokenized, name.Index)
	assert.True(t, name.Sortable)

	assert.False(t, field(t, mapping, "price").Sortable)
	assert.False(t, field(t, mapping, "mood").Sortable, "an inherited sort is dropped for a textual codec")
}

func TestMapper_Options_FallbackDefaults(t *testing.T) {
	_, m := newMaterializer(t)

	mapping, err := m.Mapper().Map(reflect.TypeOf((*Comment)(nil)).Elem())
	require.NoError(t, err)

	assert.Equal(t, materialize.Defaults{Index: materialize.IndexTokenized, Store: materialize.StoreYes}, mapping.Defaults)
}

func TestMapper_Options_Errors(t *testing.T) {
	type sortedMood struct {
		Mood Mood `doc:"mood,sort"`
	}
	type badIndex struct {
		A string `doc:"a,index=fulltext"`
	}
	type badStore struct {
		A string `doc:"a,store=maybe"`
	}
	type badBoost struct {
		A string `doc:"a,boost=-1"`
	}
	type unknownOption struct {
		A string `doc:"a,analyzer=standard"`
	}

	_, m := newMaterializer(t)

	_, err := m.Mapper().Map(reflect.TypeOf((*sortedMood)(nil)).Elem())
	assert.ErrorIs(t, err, materialize.ErrNotSortable)

	for _, typ := range []reflect.Type{
		reflect.TypeOf((*badIndex)(nil)).Elem(),
		reflect.TypeOf((*badStore)(nil)).Elem(),
		reflect.TypeOf((*badBoost)(nil)).Elem(),
		reflect.TypeOf((*unknownOption)(nil)).Elem(),
	} {
		_, err := m.Mapper().Map(typ)
		assert.ErrorIs(t, err, materialize.ErrInvalidTag, typ.String())
	}
}

func TestFieldIndexAndStore_String(t *testing.T) {
	assert.Equal(t, "as_is", materialize.IndexAsIs.String())
	assert.Equal(t, "default", materialize.IndexDefault.String())
	assert.Equal(t, "compressed", materialize.StoreCompressed.String())
	assert.Equal(t, "default", materialize.StoreDefault.String())
}

// ── embedded unexported structs ───────────────────────────────────────────────

func TestMapper_Map_EmbeddedUnexportedStruct(t *testing.T) {
	_, m := newMaterializer(t)

	mapping, err := m.Mapper().Map(reflect.TypeOf((*Comment)(nil)).Elem())
	require.NoError(t, err)

	names := make([]string, len(mapping.Fields))
	for i, f := range mapping.Fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"created", "text"}, names)
}

func TestMaterializer_EmbeddedUnexportedStruct_RoundTrip(t *testing.T) {
	_, m := newMaterializer(t)

	original := &Comment{base: base{Created: 42}, Text: "hi"}
	doc, err := materialize.ToDocument(m, original)
	require.NoError(t, err)
	assert.Contains(t, doc, "created")

	back, err := materialize.Materialize[Comment](m, doc)
	require.NoError(t, err)
	assert.Equal(t, int64(42), back.Created)
	assert.Equal(t, "hi", back.Text)
}
