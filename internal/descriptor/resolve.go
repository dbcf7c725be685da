package descriptor

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"streamop-generator/internal/diagnostic"
	"streamop-generator/internal/suggest"
)

// Diagnostic codes reported by Resolve.
const (
	CodeUnsupportedVersion  = "unsupported_version"
	CodeInvalidIdentifier   = "invalid_identifier"
	CodeReservedWord        = "reserved_word"
	CodeDuplicateType       = "duplicate_type"
	CodeDuplicateField      = "duplicate_field"
	CodeDuplicateFieldID    = "duplicate_field_id"
	CodeDuplicateEnumName   = "duplicate_enum_name"
	CodeDuplicateEnumValue  = "duplicate_enum_value"
	CodeEmptyEnum           = "empty_enum"
	CodeEnumValueOverflow   = "enum_value_overflow"
	CodeInvalidType         = "invalid_type"
	CodeUnknownType         = "unknown_type"
	CodeInvalidRequiredness = "invalid_requiredness"
	CodeTypedefCycle        = "typedef_cycle"
	CodeStructCycle         = "struct_cycle"
	CodeUnorderedKey        = "unordered_key"
)

type declKind int

const (
	declEnum declKind = iota + 1
	declTypedef
	declStruct
)

func (k declKind) String() string {
	switch k {
	case declEnum:
		return "enum"
	case declTypedef:
		return "typedef"
	case declStruct:
		return "struct"
	default:
		return "declaration"
	}
}

// resolver holds the state of one Resolve call.
type resolver struct {
	doc   *Document
	prog  *Program
	diags diagnostic.Diagnostics

	kinds    map[string]declKind
	typedefs map[string]*TypedefDoc

	// typedef resolution state
	resolved  map[string]*TypeRef
	resolving map[string]bool
}

// Resolve validates a document and builds the resolved Program. Every type
// reference is classified into exactly one Category here.
//
// The returned Program is nil when the diagnostics contain errors.
func Resolve(doc *Document) (*Program, diagnostic.Diagnostics) {
	r := &resolver{
		doc: doc,
		prog: &Program{
			Name:    doc.Program,
			Version: doc.Version,
			enums:   map[string]*Enum{},
			structs: map[string]*Struct{},
		},
		kinds:     map[string]declKind{},
		typedefs:  map[string]*TypedefDoc{},
		resolved:  map[string]*TypeRef{},
		resolving: map[string]bool{},
	}

	r.checkHeader()
	r.declare()
	r.resolveEnums()
	r.resolveTypedefs()
	r.resolveStructs()
	r.orderStructs()

	if r.diags.HasErrors() {
		return nil, r.diags
	}

	return r.prog, r.diags
}

func (r *resolver) checkHeader() {
	version := r.doc.Version
	if version == "" {
		version = DefaultVersion
	}

	if err := CheckVersion(version); err != nil {
		r.diags.AddError(CodeUnsupportedVersion, err.Error(), "", "",
			"set version to a release matching "+SupportedVersions)
	}

	r.checkIdent(r.doc.Program, "program", "", "")

	if r.doc.Namespace != "" {
		r.prog.Namespace = strings.Split(r.doc.Namespace, ".")
		for _, part := range r.prog.Namespace {
			r.checkIdent(part, "namespace component", "", "")
		}
	}
}

// checkIdent reports invalid or reserved names. It returns false when the
// name cannot be used.
func (r *resolver) checkIdent(name, what, typeName, field string) bool {
	if !IsValidIdent(name) {
		r.diags.AddError(CodeInvalidIdentifier,
			fmt.Sprintf("%s name %q is not a valid identifier", what, name), typeName, field)

		return false
	}

	if IsReserved(name) {
		r.diags.AddError(CodeReservedWord,
			fmt.Sprintf("%s name %q is reserved", what, name), typeName, field)

		return false
	}

	return true
}

// declare registers every top-level name so references can be resolved in
// any order.
func (r *resolver) declare() {
	add := func(name string, kind declKind) bool {
		if !r.checkIdent(name, kind.String(), name, "") {
			return false
		}

		if _, isBase := LookupBaseType(name); isBase {
			r.diags.AddError(CodeReservedWord,
				fmt.Sprintf("%s name %q is a base type", kind, name), name, "")

			return false
		}

		if _, isContainer := containerArity[name]; isContainer {
			r.diags.AddError(CodeReservedWord,
				fmt.Sprintf("%s name %q is a container type", kind, name), name, "")

			return false
		}

		if prev, dup := r.kinds[name]; dup {
			r.diags.AddError(CodeDuplicateType,
				fmt.Sprintf("%s %q is already declared as a %s", kind, name, prev), name, "")

			return false
		}

		r.kinds[name] = kind

		return true
	}

	for i := range r.doc.Enums {
		ed := &r.doc.Enums[i]
		if add(ed.Name, declEnum) {
			e := &Enum{Name: ed.Name, Doc: ed.Doc}
			r.prog.Enums = append(r.prog.Enums, e)
			r.prog.enums[e.Name] = e
		}
	}

	for i := range r.doc.Typedefs {
		td := &r.doc.Typedefs[i]
		if add(td.Name, declTypedef) {
			r.typedefs[td.Name] = td
		}
	}

	for i := range r.doc.Structs {
		sd := &r.doc.Structs[i]
		if add(sd.Name, declStruct) {
			s := &Struct{Name: sd.Name, Doc: sd.Doc}
			r.prog.Structs = append(r.prog.Structs, s)
			r.prog.structs[s.Name] = s
		}
	}
}

func (r *resolver) resolveEnums() {
	for _, ed := range r.doc.Enums {
		e := r.prog.enums[ed.Name]
		if e == nil {
			continue
		}

		if len(ed.Values) == 0 {
			r.diags.AddError(CodeEmptyEnum, "enum has no values", e.Name, "")

			continue
		}

		var (
			next   int64
			names  = map[string]bool{}
			values = map[int32]string{}
		)

		for _, vd := range ed.Values {
			n := next
			if vd.Value != nil {
				n = int64(*vd.Value)
			}

			next = n + 1

			if n > math.MaxInt32 {
				r.diags.AddError(CodeEnumValueOverflow,
					fmt.Sprintf("implicit value %d of %q does not fit in int32", n, vd.Name), e.Name, vd.Name)

				continue
			}

			value := int32(n)

			if !r.checkIdent(vd.Name, "enum value", e.Name, vd.Name) {
				continue
			}

			if names[vd.Name] {
				r.diags.AddError(CodeDuplicateEnumName,
					fmt.Sprintf("enum value %q is declared twice", vd.Name), e.Name, vd.Name)

				continue
			}

			names[vd.Name] = true

			if prev, dup := values[value]; dup {
				r.diags.AddWarning(CodeDuplicateEnumValue,
					fmt.Sprintf("value %d is shared with %s; %s is printed", value, prev, prev), e.Name, vd.Name)
			} else {
				values[value] = vd.Name
			}

			e.Values = append(e.Values, EnumValue{Name: vd.Name, Value: value})
		}
	}
}

func (r *resolver) resolveTypedefs() {
	for _, td := range r.doc.Typedefs {
		if r.typedefs[td.Name] == nil {
			continue
		}

		r.resolveTypedef(td.Name)
	}
}

// resolveTypedef resolves a typedef to its target, following chains of
// typedefs and reporting cycles once. Typedefs are added to the program
// after the typedefs they refer to.
func (r *resolver) resolveTypedef(name string) *TypeRef {
	if ref, ok := r.resolved[name]; ok {
		return ref
	}

	if r.resolving[name] {
		r.diags.AddError(CodeTypedefCycle,
			fmt.Sprintf("typedef %q is part of a typedef cycle", name), name, "")
		r.resolved[name] = nil

		return nil
	}

	r.resolving[name] = true
	defer delete(r.resolving, name)

	td := r.typedefs[name]

	expr, err := ParseTypeExpr(td.Type)
	if err != nil {
		r.diags.AddError(CodeInvalidType, err.Error(), name, "")
		r.resolved[name] = nil

		return nil
	}

	ref := r.resolveExpr(expr, name, "")

	if _, done := r.resolved[name]; !done {
		r.resolved[name] = ref

		if ref != nil {
			r.prog.Typedefs = append(r.prog.Typedefs, &Typedef{Name: name, Target: ref})
		}
	}

	return r.resolved[name]
}

// resolveExpr classifies a type expression. It returns nil after reporting a
// diagnostic when the expression cannot be resolved.
func (r *resolver) resolveExpr(expr TypeExpr, typeName, field string) *TypeRef {
	switch expr.Name {
	case "list", "set":
		elem := r.resolveExpr(expr.Args[0], typeName, field)
		if elem == nil {
			return nil
		}

		if expr.Name == "set" {
			r.checkOrderedKey(elem, "set element", typeName, field)

			return &TypeRef{Category: CategorySet, Elem: elem}
		}

		return &TypeRef{Category: CategoryOrderedSequence, Elem: elem}

	case "map":
		key := r.resolveExpr(expr.Args[0], typeName, field)
		val := r.resolveExpr(expr.Args[1], typeName, field)

		if key == nil || val == nil {
			return nil
		}

		r.checkOrderedKey(key, "map key", typeName, field)

		return &TypeRef{
			Category: CategoryAssociativeMapping,
			Key:      key,
			Elem:     val,
			Entry:    &TypeRef{Category: CategoryPair, Key: key, Elem: val},
		}
	}

	if base, ok := LookupBaseType(expr.Name); ok {
		if base == BaseI8 {
			return &TypeRef{Category: CategoryNarrowInteger, Base: base}
		}

		return &TypeRef{Category: CategoryOtherScalar, Base: base}
	}

	switch r.kinds[expr.Name] {
	case declEnum:
		if e := r.prog.enums[expr.Name]; e != nil {
			return &TypeRef{Category: CategoryEnumerated, Enum: e}
		}
	case declStruct:
		if s := r.prog.structs[expr.Name]; s != nil {
			return &TypeRef{Category: CategoryGeneratedStruct, Struct: s}
		}
	case declTypedef:
		target := r.resolveTypedef(expr.Name)
		if target == nil {
			return nil
		}

		ref := *target
		ref.Typedef = expr.Name

		return &ref
	}

	var hints []string
	if hint := suggest.Hint(suggest.Suggest(expr.Name, r.knownTypeNames())); hint != "" {
		hints = append(hints, hint)
	}

	r.diags.AddError(CodeUnknownType, fmt.Sprintf("unknown type %q", expr.Name), typeName, field, hints...)

	return nil
}

// checkOrderedKey warns about set elements and map keys that the generated
// ordered containers cannot compare out of the box.
func (r *resolver) checkOrderedKey(t *TypeRef, what, typeName, field string) {
	if t.Category == CategoryGeneratedStruct || t.Category.IsContainer() {
		r.diags.AddWarning(CodeUnorderedKey,
			fmt.Sprintf("%s type %s needs a user-supplied operator<", what, t), typeName, field)
	}
}

func (r *resolver) knownTypeNames() []string {
	names := make([]string, 0, len(r.kinds)+len(baseTypeNames))

	for name := range r.kinds {
		names = append(names, name)
	}

	for name := range baseTypeNames {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

func (r *resolver) resolveStructs() {
	for _, sd := range r.doc.Structs {
		s := r.prog.structs[sd.Name]
		if s == nil {
			continue
		}

		var (
			names  = map[string]bool{}
			ids    = map[int]string{}
			autoID = -1
		)

		for _, fd := range sd.Fields {
			if !r.checkIdent(fd.Name, "field", s.Name, fd.Name) {
				continue
			}

			if names[fd.Name] {
				r.diags.AddError(CodeDuplicateField,
					fmt.Sprintf("field %q is declared twice", fd.Name), s.Name, fd.Name)

				continue
			}

			names[fd.Name] = true

			id := autoID
			if fd.ID != nil {
				id = *fd.ID
			} else {
				autoID--
			}

			if prev, dup := ids[id]; dup {
				r.diags.AddError(CodeDuplicateFieldID,
					fmt.Sprintf("field id %d is already used by %q", id, prev), s.Name, fd.Name)

				continue
			}

			ids[id] = fd.Name

			req, ok := parseRequiredness(fd.Requiredness)
			if !ok {
				r.diags.AddError(CodeInvalidRequiredness,
					fmt.Sprintf("requiredness %q is not one of default, required, optional", fd.Requiredness),
					s.Name, fd.Name)

				continue
			}

			expr, err := ParseTypeExpr(fd.Type)
			if err != nil {
				r.diags.AddError(CodeInvalidType, err.Error(), s.Name, fd.Name)

				continue
			}

			ref := r.resolveExpr(expr, s.Name, fd.Name)
			if ref == nil {
				continue
			}

			s.Fields = append(s.Fields, &Field{
				ID:           id,
				Name:         fd.Name,
				Type:         ref,
				Requiredness: req,
				Index:        len(s.Fields),
			})
		}
	}
}

func parseRequiredness(s string) (Requiredness, bool) {
	switch s {
	case "", "default":
		return RequirednessDefault, true
	case "required":
		return RequirednessRequired, true
	case "optional":
		return RequirednessOptional, true
	default:
		return RequirednessDefault, false
	}
}

// orderStructs fills Program.StructOrder. A struct may hold itself inside a
// container but not directly, and structs may not hold each other in a
// cycle.
func (r *resolver) orderStructs() {
	structs := r.prog.Structs
	index := make(map[*Struct]int, len(structs))

	for i, s := range structs {
		index[s] = i
	}

	for _, s := range structs {
		for _, f := range s.Fields {
			if f.Type.Category == CategoryGeneratedStruct && f.Type.Struct == s {
				r.diags.AddError(CodeStructCycle,
					fmt.Sprintf("struct %q contains itself by value", s.Name), s.Name, f.Name)
			}
		}
	}

	order, stuck, err := topoSort(len(structs), func(i int) []int {
		var deps []int
		for _, d := range structs[i].Dependencies() {
			deps = append(deps, index[d])
		}

		return deps
	})
	if err != nil {
		for _, i := range stuck {
			r.diags.AddError(CodeStructCycle,
				fmt.Sprintf("struct %q cannot be ordered: its dependencies form a cycle", structs[i].Name), structs[i].Name, "")
		}

		return
	}

	r.prog.StructOrder = make([]*Struct, len(order))
	for i, idx := range order {
		r.prog.StructOrder[i] = structs[idx]
	}
}

// Load reads a descriptor file and resolves it. The error covers both read
// failures and error diagnostics; warnings are returned either way.
func Load(path string) (*Program, diagnostic.Diagnostics, error) {
	doc, err := LoadFile(path)
	if err != nil {
		return nil, diagnostic.Diagnostics{}, err
	}

	prog, diags := Resolve(doc)
	if err := diags.Error(); err != nil {
		return nil, diags, errors.Wrapf(err, "%s", path)
	}

	return prog, diags, nil
}
