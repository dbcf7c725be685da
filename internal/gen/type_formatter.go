package gen

import (
	"streamop-generator/internal/common"
	"streamop-generator/internal/descriptor"
	"streamop-generator/options"
)

var baseCppTypes = map[descriptor.BaseType]string{
	descriptor.BaseBool:   "bool",
	descriptor.BaseI8:     "int8_t",
	descriptor.BaseI16:    "int16_t",
	descriptor.BaseI32:    "int32_t",
	descriptor.BaseI64:    "int64_t",
	descriptor.BaseDouble: "double",
	descriptor.BaseString: "std::string",
	descriptor.BaseBinary: "std::string",
}

// typeFormatter spells descriptor types in C++.
type typeFormatter struct {
	opts options.Options
}

// cppType returns the C++ spelling of a type reference. Typedef names are
// kept so the generated code reads like the descriptor.
func (f typeFormatter) cppType(t *descriptor.TypeRef) string {
	if t.Typedef != "" {
		return t.Typedef
	}

	switch t.Category {
	case descriptor.CategoryNarrowInteger, descriptor.CategoryOtherScalar:
		return baseCppTypes[t.Base]
	case descriptor.CategoryEnumerated:
		return f.enumType(t.Enum.Name)
	case descriptor.CategoryGeneratedStruct:
		return t.Struct.Name
	case descriptor.CategoryOrderedSequence:
		return "std::vector<" + f.cppType(t.Elem) + ">"
	case descriptor.CategorySet:
		return "std::set<" + f.cppType(t.Elem) + ">"
	case descriptor.CategoryAssociativeMapping:
		return "std::map<" + f.cppType(t.Key) + ", " + f.cppType(t.Elem) + ">"
	case descriptor.CategoryPair:
		return "std::pair<" + f.cppType(t.Key) + ", " + f.cppType(t.Elem) + ">"
	default:
		return common.UnknownStr
	}
}

// enumType returns how values of an enum are typed. Without pure_enums the
// enumerators live in a wrapper struct and the type is Name::type.
func (f typeFormatter) enumType(name string) string {
	if f.opts.Has(options.FlagPureEnums) || f.opts.Has(options.FlagEnumClass) {
		return name
	}

	return name + "::type"
}

// paramType returns the parameter type of a setter: scalars by value,
// everything else by const reference.
func (f typeFormatter) paramType(t *descriptor.TypeRef) string {
	if t.Category.IsScalar() && !isStringLike(t) {
		return "const " + f.cppType(t)
	}

	return "const " + f.cppType(t) + "&"
}

// isStringLike reports whether a scalar is held in a std::string.
func isStringLike(t *descriptor.TypeRef) bool {
	return t.Category == descriptor.CategoryOtherScalar &&
		(t.Base == descriptor.BaseString || t.Base == descriptor.BaseBinary)
}
