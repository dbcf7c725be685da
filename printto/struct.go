package printto

// Null is printed in place of an unset optional field.
const Null = "<null>"

const (
	structOpen  = "("
	structClose = ")"
)

// StructWriter prints a struct as "Name(field: value, other: value)".
// Fields are printed in the order they are written.
type StructWriter[S Sink] struct {
	s      S
	fields int
}

// Struct starts printing a struct named name.
func Struct[S Sink](s S, name string) StructWriter[S] {
	_, _ = s.WriteString(name)
	_, _ = s.WriteString(structOpen)

	return StructWriter[S]{s: s}
}

// Label writes the separator and "name: " prefix of the next field and
// returns the sink the field value must be printed into.
func (w *StructWriter[S]) Label(name string) S {
	if w.fields > 0 {
		_, _ = w.s.WriteString(ElemSeparator)
	}

	w.fields++

	_, _ = w.s.WriteString(name)
	_, _ = w.s.WriteString(PairSeparator)

	return w.s
}

// Null prints an unset field.
func (w *StructWriter[S]) Null(name string) {
	_, _ = w.Label(name).WriteString(Null)
}

// Close terminates the struct.
func (w *StructWriter[S]) Close() {
	_, _ = w.s.WriteString(structClose)
}

// Field prints one field with its printer.
func Field[S Sink, T any](w *StructWriter[S], name string, v T, print Func[S, T]) {
	print(w.Label(name), v)
}

// OptionalField prints v when set is true and Null otherwise.
func OptionalField[S Sink, T any](w *StructWriter[S], name string, v T, set bool, print Func[S, T]) {
	if !set {
		w.Null(name)
		return
	}

	Field(w, name, v, print)
}
