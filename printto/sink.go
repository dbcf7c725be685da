package printto

import "strings"

// Sink accepts text. It is satisfied by *strings.Builder, *bytes.Buffer,
// *bufio.Writer and any io.StringWriter.
type Sink interface {
	WriteString(s string) (int, error)
}

// Func prints a value of type T into a sink of type S.
type Func[S Sink, T any] func(s S, v T)

// ToString renders v with print into a fresh string.
func ToString[T any](v T, print Func[*strings.Builder, T]) string {
	var sb strings.Builder

	print(&sb, v)

	return sb.String()
}

// Stringer adapts a value and its printer to fmt.Stringer.
type Stringer[T any] struct {
	Value T
	Print Func[*strings.Builder, T]
}

// String implements fmt.Stringer.
func (s Stringer[T]) String() string {
	return ToString(s.Value, s.Print)
}
