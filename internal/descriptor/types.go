package descriptor

import (
	"strings"

	"streamop-generator/internal/common"
)

// BaseType is a built-in scalar type.
type BaseType int

const (
	BaseUnknown BaseType = iota
	BaseBool
	BaseI8
	BaseI16
	BaseI32
	BaseI64
	BaseDouble
	BaseString
	BaseBinary
)

var baseTypeNames = map[string]BaseType{
	"bool":   BaseBool,
	"byte":   BaseI8,
	"i8":     BaseI8,
	"i16":    BaseI16,
	"i32":    BaseI32,
	"i64":    BaseI64,
	"double": BaseDouble,
	"string": BaseString,
	"binary": BaseBinary,
}

// String returns the IDL spelling of the base type.
func (b BaseType) String() string {
	switch b {
	case BaseBool:
		return "bool"
	case BaseI8:
		return "i8"
	case BaseI16:
		return "i16"
	case BaseI32:
		return "i32"
	case BaseI64:
		return "i64"
	case BaseDouble:
		return "double"
	case BaseString:
		return "string"
	case BaseBinary:
		return "binary"
	default:
		return common.UnknownStr
	}
}

// IsInteger reports whether b is an integer type.
func (b BaseType) IsInteger() bool {
	switch b {
	default:
		return false
	case BaseI8, BaseI16, BaseI32, BaseI64:
		return true
	}
}

// LookupBaseType returns the base type spelled name.
func LookupBaseType(name string) (BaseType, bool) {
	b, ok := baseTypeNames[name]
	return b, ok
}

// Requiredness of a struct field.
type Requiredness int

const (
	RequirednessDefault Requiredness = iota
	RequirednessRequired
	RequirednessOptional
)

// String returns the IDL spelling of the requiredness.
func (r Requiredness) String() string {
	switch r {
	case RequirednessDefault:
		return "default"
	case RequirednessRequired:
		return "required"
	case RequirednessOptional:
		return "optional"
	default:
		return common.UnknownStr
	}
}

// TypeRef is a resolved type reference. Category is fixed at resolution time
// and decides which printer is used.
type TypeRef struct {
	Category Category

	Base   BaseType // NarrowInteger and OtherScalar
	Enum   *Enum    // Enumerated
	Struct *Struct  // GeneratedStruct

	Key   *TypeRef // Pair: first; AssociativeMapping: key type
	Elem  *TypeRef // Pair: second; OrderedSequence, Set: element; AssociativeMapping: value type
	Entry *TypeRef // AssociativeMapping: the Pair of Key and Elem

	// Typedef is the typedef name the reference was spelled with, if any.
	Typedef string
}

// String returns the IDL spelling of the reference.
func (t *TypeRef) String() string {
	if t == nil {
		return "<nil>"
	}

	if t.Typedef != "" {
		return t.Typedef
	}

	switch t.Category {
	case CategoryNarrowInteger, CategoryOtherScalar:
		return t.Base.String()
	case CategoryEnumerated:
		return t.Enum.Name
	case CategoryGeneratedStruct:
		return t.Struct.Name
	case CategoryOrderedSequence:
		return "list<" + t.Elem.String() + ">"
	case CategorySet:
		return "set<" + t.Elem.String() + ">"
	case CategoryAssociativeMapping:
		return "map<" + t.Key.String() + ", " + t.Elem.String() + ">"
	case CategoryPair:
		return "pair<" + t.Key.String() + ", " + t.Elem.String() + ">"
	default:
		return common.UnknownStr
	}
}

// Walk calls fn for t and every type nested in it, depth first.
// Map entries are visited as their Pair.
func (t *TypeRef) Walk(fn func(*TypeRef)) {
	if t == nil {
		return
	}

	fn(t)

	switch t.Category {
	case CategoryOrderedSequence, CategorySet:
		t.Elem.Walk(fn)
	case CategoryAssociativeMapping:
		t.Entry.Walk(fn)
	case CategoryPair:
		t.Key.Walk(fn)
		t.Elem.Walk(fn)
	}
}

// Field describes a struct field.
type Field struct {
	ID           int
	Name         string
	Type         *TypeRef
	Requiredness Requiredness
	Index        int // position in declaration order
}

// IsOptional reports whether the field may be unset.
func (f *Field) IsOptional() bool {
	return f.Requiredness == RequirednessOptional
}

// Struct describes a generated struct.
type Struct struct {
	Name   string
	Fields []*Field
	Doc    string
}

// Ref returns a reference to s.
func (s *Struct) Ref() *TypeRef {
	return &TypeRef{Category: CategoryGeneratedStruct, Struct: s}
}

// HasOptional reports whether any field is optional.
func (s *Struct) HasOptional() bool {
	for _, f := range s.Fields {
		if f.IsOptional() {
			return true
		}
	}

	return false
}

// Dependencies returns the structs referenced by s's fields, including
// through containers, in first-use order and without duplicates.
func (s *Struct) Dependencies() []*Struct {
	var (
		deps []*Struct
		seen = map[*Struct]bool{}
	)

	for _, f := range s.Fields {
		f.Type.Walk(func(t *TypeRef) {
			if t.Category != CategoryGeneratedStruct || seen[t.Struct] {
				return
			}

			seen[t.Struct] = true
			deps = append(deps, t.Struct)
		})
	}

	return deps
}

// EnumValue is one named enum value.
type EnumValue struct {
	Name  string
	Value int32
}

// Enum describes an enumerated type. Values keep declaration order.
type Enum struct {
	Name   string
	Values []EnumValue
	Doc    string
}

// Names returns a fresh value-to-name map. When two names share a value the
// first declared one wins.
func (e *Enum) Names() map[int32]string {
	names := make(map[int32]string, len(e.Values))

	for _, v := range e.Values {
		if _, ok := names[v.Value]; !ok {
			names[v.Value] = v.Name
		}
	}

	return names
}

// Value returns the value of the enum constant called name.
func (e *Enum) Value(name string) (int32, bool) {
	for _, v := range e.Values {
		if v.Name == name {
			return v.Value, true
		}
	}

	return 0, false
}

// Typedef is a named alias of another type.
type Typedef struct {
	Name   string
	Target *TypeRef
}

// Program is a resolved descriptor document.
type Program struct {
	Name      string
	Namespace []string
	Version   string

	Enums    []*Enum
	Typedefs []*Typedef
	Structs  []*Struct // declaration order

	// StructOrder lists Structs so that every struct follows the structs it
	// depends on. Ties keep declaration order.
	StructOrder []*Struct

	enums   map[string]*Enum
	structs map[string]*Struct
}

// Enum returns the enum called name, or nil.
func (p *Program) Enum(name string) *Enum {
	return p.enums[name]
}

// Struct returns the struct called name, or nil.
func (p *Program) Struct(name string) *Struct {
	return p.structs[name]
}

// QualifiedNamespace returns the namespace joined with sep, e.g. "::".
func (p *Program) QualifiedNamespace(sep string) string {
	return strings.Join(p.Namespace, sep)
}
