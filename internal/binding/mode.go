package binding

import (
	"streamop-generator/internal/common"
)

// Mode selects between one fixed sink type and a sink type parameter.
type Mode int

const (
	// ModeConcrete binds printing to a single sink type.
	ModeConcrete Mode = iota
	// ModeGeneric binds printing to a sink type parameter.
	ModeGeneric
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeConcrete:
		return "concrete"
	case ModeGeneric:
		return "generic"
	default:
		return common.UnknownStr
	}
}

// Visibility describes whether a struct's optional fields are reachable from
// a free function.
type Visibility int

const (
	// VisibilityOpen means every field is public.
	VisibilityOpen Visibility = iota
	// VisibilityRestricted means optional fields are private and the free
	// operator<< needs a friend grant.
	VisibilityRestricted
)

// String returns a human-readable visibility name.
func (v Visibility) String() string {
	switch v {
	case VisibilityOpen:
		return "open"
	case VisibilityRestricted:
		return "restricted"
	default:
		return common.UnknownStr
	}
}
