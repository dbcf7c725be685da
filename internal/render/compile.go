package render

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"streamop-generator/internal/descriptor"
	"streamop-generator/internal/suggest"
	"streamop-generator/printto"
)

// Program holds printers for every type of a descriptor program, specialised
// for the sink type S. It is read-only after Compile and safe for concurrent
// use.
type Program[S printto.Sink] struct {
	prog    *descriptor.Program
	enums   map[*descriptor.Enum]*printto.NameTable[int32]
	structs map[*descriptor.Struct]*structPrinter[S]
}

type structPrinter[S printto.Sink] struct {
	def    *descriptor.Struct
	fields []printto.Func[S, Value]
}

// Compile builds the printers of prog for sinks of type S.
func Compile[S printto.Sink](prog *descriptor.Program) *Program[S] {
	p := &Program[S]{
		prog:    prog,
		enums:   make(map[*descriptor.Enum]*printto.NameTable[int32], len(prog.Enums)),
		structs: make(map[*descriptor.Struct]*structPrinter[S], len(prog.Structs)),
	}

	for _, e := range prog.Enums {
		p.enums[e] = printto.NewNameTable(e.Names)
	}

	// Register every struct before compiling fields so that recursive
	// references resolve to the same printer.
	for _, s := range prog.Structs {
		p.structs[s] = &structPrinter[S]{def: s}
	}

	for _, s := range prog.StructOrder {
		sp := p.structs[s]
		sp.fields = make([]printto.Func[S, Value], len(s.Fields))

		for i, f := range s.Fields {
			sp.fields[i] = p.Printer(f.Type)
		}
	}

	return p
}

// Printer returns the printer for values of type t. The printer is chosen
// from the category of t.
func (p *Program[S]) Printer(t *descriptor.TypeRef) printto.Func[S, Value] {
	switch t.Category {
	case descriptor.CategoryNarrowInteger:
		return func(s S, v Value) { printto.Int8(s, int8(v.Int)) }

	case descriptor.CategoryOtherScalar:
		return scalarPrinter[S](t.Base)

	case descriptor.CategoryEnumerated:
		names := p.enums[t.Enum]
		return func(s S, v Value) { printto.Enum(s, int32(v.Int), names) }

	case descriptor.CategoryPair:
		key, val := p.Printer(t.Key), p.Printer(t.Elem)
		return func(s S, v Value) {
			printto.Pair(s, v.Entries[0].Key, v.Entries[0].Val, key, val)
		}

	case descriptor.CategoryOrderedSequence:
		elem := p.Printer(t.Elem)
		return func(s S, v Value) { printto.List(s, v.Items, elem) }

	case descriptor.CategorySet:
		elem := p.Printer(t.Elem)
		return func(s S, v Value) { printto.Set(s, slices.Values(v.Items), elem) }

	case descriptor.CategoryAssociativeMapping:
		entry := p.entryPrinter(t.Entry)
		return func(s S, v Value) { printto.Set(s, slices.Values(v.Entries), entry) }

	case descriptor.CategoryGeneratedStruct:
		sp := p.structs[t.Struct]
		return sp.print

	default:
		return func(s S, _ Value) { printto.Text(s, "") }
	}
}

// entryPrinter prints one map entry through the Pair printer of its type.
func (p *Program[S]) entryPrinter(pair *descriptor.TypeRef) printto.Func[S, Entry] {
	key, val := p.Printer(pair.Key), p.Printer(pair.Elem)

	return func(s S, e Entry) {
		printto.Pair(s, e.Key, e.Val, key, val)
	}
}

func scalarPrinter[S printto.Sink](base descriptor.BaseType) printto.Func[S, Value] {
	switch base {
	case descriptor.BaseBool:
		return func(s S, v Value) { printto.Bool(s, v.Bool) }
	case descriptor.BaseDouble:
		return func(s S, v Value) { printto.Float(s, v.Float) }
	case descriptor.BaseString, descriptor.BaseBinary:
		return func(s S, v Value) { printto.String(s, v.Str) }
	default:
		return func(s S, v Value) { printto.Int(s, v.Int) }
	}
}

func (sp *structPrinter[S]) print(s S, v Value) {
	w := printto.Struct(s, sp.def.Name)

	for i, f := range sp.def.Fields {
		var fv Value

		set := i < len(v.Fields) && v.Fields[i] != nil
		if set {
			fv = *v.Fields[i]
		}

		printto.OptionalField(&w, f.Name, fv, set, sp.fields[i])
	}

	w.Close()
}

// Struct returns the printer of the struct called name.
func (p *Program[S]) Struct(name string) (printto.Func[S, Value], error) {
	def := p.prog.Struct(name)
	if def == nil {
		names := make([]string, len(p.prog.Structs))
		for i, s := range p.prog.Structs {
			names[i] = s.Name
		}

		err := errors.Newf("struct %q is not declared in program %s", name, p.prog.Name)
		if hint := suggest.Hint(suggest.Suggest(name, names)); hint != "" {
			err = errors.WithHint(err, hint)
		}

		return nil, err
	}

	return p.structs[def].print, nil
}

// Render decodes the YAML value document data as a value of the struct called
// name and returns its text.
func Render(prog *descriptor.Program, name string, data []byte) (string, error) {
	p := Compile[*strings.Builder](prog)

	printer, err := p.Struct(name)
	if err != nil {
		return "", err
	}

	v, err := DecodeYAML(data, prog.Struct(name).Ref())
	if err != nil {
		return "", errors.Wrapf(err, "decoding %s value", name)
	}

	return printto.ToString(v, printer), nil
}
