package options

import (
	"strings"
)

// FlagEnum is a set of generator feature toggles.
type FlagEnum int

const (
	FlagTemplateStreamOp FlagEnum = 1 << iota // template_streamop: printTo and operator<< are generic over the sink type
	FlagPrivateOptional                       // private_optional: optional fields are private, operator<< needs a friend grant
	FlagPureEnums                             // pure_enums: plain enums instead of the wrapping struct
	FlagEnumClass                             // pure_enums=enum_class: scoped enums

	FlagAll  FlagEnum = (1 << iota) - 1 // all flags combined
	FlagNone FlagEnum = 0               // no flags selected
)

// flagNames are the option-string spellings, in canonical output order.
var flagNames = []struct {
	flag FlagEnum
	name string
}{
	{FlagTemplateStreamOp, "template_streamop"},
	{FlagPrivateOptional, "private_optional"},
	{FlagPureEnums, "pure_enums"},
	{FlagEnumClass, "pure_enums=enum_class"},
}

// Has reports whether every flag in f is set.
func (f FlagEnum) Has(flag FlagEnum) bool {
	return f&flag == flag
}

// String returns the flags as a comma separated option string.
func (f FlagEnum) String() string {
	var parts []string

	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}

	return strings.Join(parts, ",")
}
