package printto

import (
	"iter"
	"maps"
	"slices"
)

// Separators and brackets of the rendering grammar.
const (
	ElemSeparator = ", "
	PairSeparator = ": "
	ListOpen      = "["
	ListClose     = "]"
	SetOpen       = "{"
	SetClose      = "}"
)

// Pair prints "first: second".
func Pair[S Sink, K, V any](s S, first K, second V, pk Func[S, K], pv Func[S, V]) {
	pk(s, first)
	_, _ = s.WriteString(PairSeparator)
	pv(s, second)
}

// Range prints the elements of seq separated by ", ", without brackets.
func Range[S Sink, T any](s S, seq iter.Seq[T], elem Func[S, T]) {
	first := true

	for v := range seq {
		if !first {
			_, _ = s.WriteString(ElemSeparator)
		}

		first = false

		elem(s, v)
	}
}

// List prints an ordered sequence as "[e1, e2]".
func List[S Sink, T any](s S, v []T, elem Func[S, T]) {
	_, _ = s.WriteString(ListOpen)
	Range(s, slices.Values(v), elem)
	_, _ = s.WriteString(ListClose)
}

// Mapping prints the key-value pairs of seq as "{k1: v1, k2: v2}" in the
// order seq yields them.
func Mapping[S Sink, K, V any](s S, seq iter.Seq2[K, V], key Func[S, K], val Func[S, V]) {
	_, _ = s.WriteString(SetOpen)

	first := true

	for k, v := range seq {
		if !first {
			_, _ = s.WriteString(ElemSeparator)
		}

		first = false

		Pair(s, k, v, key, val)
	}

	_, _ = s.WriteString(SetClose)
}

// Map prints a Go map. Entries appear in map iteration order, which is not
// sorted; use Mapping with an ordered sequence when order matters.
func Map[S Sink, K comparable, V any](s S, m map[K]V, key Func[S, K], val Func[S, V]) {
	Mapping(s, maps.All(m), key, val)
}

// Set prints the elements of seq as "{e1, e2}" in the order seq yields them.
func Set[S Sink, T any](s S, seq iter.Seq[T], elem Func[S, T]) {
	_, _ = s.WriteString(SetOpen)
	Range(s, seq, elem)
	_, _ = s.WriteString(SetClose)
}

// SetOf prints a set stored as map keys, in map iteration order.
func SetOf[S Sink, T comparable](s S, m map[T]struct{}, elem Func[S, T]) {
	Set(s, maps.Keys(m), elem)
}

// ListOf returns a printer for slices whose elements print with elem.
func ListOf[S Sink, T any](elem Func[S, T]) Func[S, []T] {
	return func(s S, v []T) {
		List(s, v, elem)
	}
}

// MapOf returns a printer for maps whose keys and values print with key and val.
func MapOf[S Sink, K comparable, V any](key Func[S, K], val Func[S, V]) Func[S, map[K]V] {
	return func(s S, m map[K]V) {
		Map(s, m, key, val)
	}
}

// SetOfFunc returns a printer for sets stored as map keys.
func SetOfFunc[S Sink, T comparable](elem Func[S, T]) Func[S, map[T]struct{}] {
	return func(s S, m map[T]struct{}) {
		SetOf(s, m, elem)
	}
}
