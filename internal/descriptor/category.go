package descriptor

//go:generate go tool stringer -type=Category -trimprefix=Category -output=category_string.go

// Category is the closed set of printing categories. Every resolved TypeRef
// has exactly one.
type Category int

const (
	CategoryUnknown Category = iota

	CategoryNarrowInteger      // 8-bit integer, printed as a number and never as a character
	CategoryOtherScalar        // any other base type, printed in its natural form
	CategoryEnumerated         // enum value, printed by name with a numeric fallback
	CategoryPair               // map entry, "key: value"
	CategoryOrderedSequence    // list, "[a, b]"
	CategoryAssociativeMapping // map, "{k: v, k: v}"
	CategorySet                // set, "{a, b}"
	CategoryGeneratedStruct    // struct, "Name(field: value)"

	// CategoryTotal is the number of categories, including CategoryUnknown.
	CategoryTotal = int(iota)
)

// IsContainer reports whether c holds other values.
func (c Category) IsContainer() bool {
	switch c {
	default:
		return false
	case CategoryOrderedSequence, CategoryAssociativeMapping, CategorySet:
		return true
	}
}

// IsScalar reports whether c prints without recursion.
func (c Category) IsScalar() bool {
	switch c {
	default:
		return false
	case CategoryNarrowInteger, CategoryOtherScalar, CategoryEnumerated:
		return true
	}
}
