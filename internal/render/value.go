package render

import (
	"slices"

	"streamop-generator/internal/descriptor"
)

// Value is a decoded value of a described type. Which members are used
// depends on the category of the type it was decoded against:
//
//	NarrowInteger, integers, Enumerated: Int
//	double:                              Float
//	bool:                                Bool
//	string, binary:                      Str
//	OrderedSequence, Set:                Items
//	AssociativeMapping:                  Entries
//	Pair:                                Entries[0]
//	GeneratedStruct:                     Fields
type Value struct {
	Int     int64
	Float   float64
	Bool    bool
	Str     string
	Items   []Value
	Entries []Entry

	// Fields holds struct fields by declaration index; nil marks an unset
	// optional field.
	Fields []*Value
}

// Entry is one key-value pair of a mapping, in container order.
type Entry struct {
	Key Value
	Val Value
}

// Zero returns the default value of t: zero scalars, empty containers, and
// structs whose non-optional fields are zero and optional fields unset.
func Zero(t *descriptor.TypeRef) Value {
	if t.Category != descriptor.CategoryGeneratedStruct {
		return Value{}
	}

	fields := make([]*Value, len(t.Struct.Fields))

	for i, f := range t.Struct.Fields {
		if f.IsOptional() {
			continue
		}

		z := Zero(f.Type)
		fields[i] = &z
	}

	return Value{Fields: fields}
}

// Equal reports whether two values are identical.
func (v Value) Equal(o Value) bool {
	if v.Int != o.Int || v.Float != o.Float || v.Bool != o.Bool || v.Str != o.Str {
		return false
	}

	if !slices.EqualFunc(v.Items, o.Items, Value.Equal) {
		return false
	}

	if !slices.EqualFunc(v.Entries, o.Entries, func(a, b Entry) bool {
		return a.Key.Equal(b.Key) && a.Val.Equal(b.Val)
	}) {
		return false
	}

	return slices.EqualFunc(v.Fields, o.Fields, func(a, b *Value) bool {
		if a == nil || b == nil {
			return a == b
		}

		return a.Equal(*b)
	})
}
