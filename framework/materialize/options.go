package materialize

import (
	"fmt"
	"strconv"
	"strings"
)

// ── Index and store options ───────────────────────────────────────────────────

// FieldIndex says how a field is indexed. The zero value defers to the
// type's Defaults.
type FieldIndex int

const (
	IndexDefault FieldIndex = iota
	IndexNo
	IndexWithoutNorms
	IndexTokenized
	IndexAsIs
)

var indexNames = map[string]FieldIndex{
	"no":            IndexNo,
	"without_norms": IndexWithoutNorms,
	"tokenized":     IndexTokenized,
	"as_is":         IndexAsIs,
}

func (i FieldIndex) String() string {
	for name, v := range indexNames {
		if v == i {
			return name
		}
	}
	return "default"
}

// FieldStore says how a field value is kept. The zero value defers to the
// type's Defaults.
type FieldStore int

const (
	StoreDefault FieldStore = iota
	StoreNo
	StoreYes
	StoreCompressed
)

var storeNames = map[string]FieldStore{
	"no":         StoreNo,
	"yes":        StoreYes,
	"compressed": StoreCompressed,
}

func (s FieldStore) String() string {
	for name, v := range storeNames {
		if v == s {
			return name
		}
	}
	return "default"
}

// ── Type-level defaults ───────────────────────────────────────────────────────

// Defaults apply to every field of a type that does not set the option in
// its tag. Unset members fall back to tokenized, stored, not sortable.
type Defaults struct {
	Index    FieldIndex
	Store    FieldStore
	Sortable bool
}

// Defaulter is implemented by entity types that change the mapping defaults
// of their fields.
//
//	func (Article) MappingDefaults() materialize.Defaults {
//	    return materialize.Defaults{Index: materialize.IndexAsIs, Sortable: true}
//	}
type Defaulter interface {
	MappingDefaults() Defaults
}

func (d Defaults) withFallbacks() Defaults {
	if d.Index == IndexDefault {
		d.Index = IndexTokenized
	}
	if d.Store == StoreDefault {
		d.Store = StoreYes
	}
	return d
}

// ── Tag options ───────────────────────────────────────────────────────────────

// tagOptions are the options after the name in a doc tag:
//
//	`doc:"title,omitempty,index=as_is,store=compressed,sort,boost=2.5"`
type tagOptions struct {
	identity  bool
	omitEmpty bool
	index     FieldIndex
	store     FieldStore
	sortable  *bool
	boost     float64
}

func parseOptions(options string) (tagOptions, error) {
	opts := tagOptions{boost: 1}
	if options == "" {
		return opts, nil
	}
	for _, opt := range strings.Split(options, ",") {
		key, value, _ := strings.Cut(strings.TrimSpace(opt), "=")
		switch key {
		case "id":
			opts.identity = true
		case "omitempty":
			opts.omitEmpty = true
		case "sort", "nosort":
			sortable := key == "sort"
			opts.sortable = &sortable
		case "index":
			index, ok := indexNames[value]
			if !ok {
				return opts, fmt.Errorf("%w: index=%q", ErrInvalidTag, value)
			}
			opts.index = index
		case "store":
			store, ok := storeNames[value]
			if !ok {
				return opts, fmt.Errorf("%w: store=%q", ErrInvalidTag, value)
			}
			opts.store = store
		case "boost":
			boost, err := strconv.ParseFloat(value, 64)
			if err != nil || boost <= 0 {
				return opts, fmt.Errorf("%w: boost=%q", ErrInvalidTag, value)
			}
			opts.boost = boost
		case "":
		default:
			return opts, fmt.Errorf("%w: unknown option %q", ErrInvalidTag, key)
		}
	}
	return opts, nil
}

// apply resolves the options of fm against the type defaults d.
func (o tagOptions) apply(fm *FieldMapping, d Defaults) {
	fm.OmitEmpty = o.omitEmpty
	fm.Boost = o.boost

	fm.Index = o.index
	if fm.Index == IndexDefault {
		fm.Index = d.Index
	}
	fm.Store = o.store
	if fm.Store == StoreDefault {
		fm.Store = d.Store
	}
	fm.Sortable = d.Sortable
	if o.sortable != nil {
		fm.Sortable = *o.sortable
	}
}
