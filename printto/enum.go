package printto

import (
	"maps"
	"sync"
)

// NameTable maps enum values to their display names.
//
// The table is built on first use, exactly once, and is read-only afterwards;
// it is safe for concurrent use.
type NameTable[E Integer] struct {
	names func() map[E]string
}

// NewNameTable returns a table filled by build on first lookup. The map
// returned by build is copied, later changes to it are not observed.
func NewNameTable[E Integer](build func() map[E]string) *NameTable[E] {
	return &NameTable[E]{
		names: sync.OnceValue(func() map[E]string {
			return maps.Clone(build())
		}),
	}
}

// NameTableOf returns a table holding a copy of names.
func NameTableOf[E Integer](names map[E]string) *NameTable[E] {
	return NewNameTable(func() map[E]string { return names })
}

// Name returns the registered name of v.
func (t *NameTable[E]) Name(v E) (string, bool) {
	if t == nil {
		return "", false
	}

	name, ok := t.names()[v]

	return name, ok
}

// Len returns the number of registered names.
func (t *NameTable[E]) Len() int {
	if t == nil {
		return 0
	}

	return len(t.names())
}

// Enum prints the registered name of v, or its decimal value when v has no
// name. The fallback keeps the sign of the underlying integer type.
func Enum[S Sink, E Integer](s S, v E, names *NameTable[E]) {
	if name, ok := names.Name(v); ok {
		_, _ = s.WriteString(name)
		return
	}

	_, _ = s.WriteString(formatInteger(v))
}

// EnumOf returns a printer for enum values named by names.
func EnumOf[S Sink, E Integer](names *NameTable[E]) Func[S, E] {
	return func(s S, v E) {
		Enum(s, v, names)
	}
}
