package gen

import (
	"strconv"
	"strings"

	"streamop-generator/internal/binding"
	"streamop-generator/internal/descriptor"
	"streamop-generator/printto"
)

// bodyBody emits the implementation unit or template body file between the
// namespace braces.
func (g *Generator) bodyBody() string {
	w := &codeWriter{}

	for _, e := range g.prog.Enums {
		g.defineEnum(w, e)
	}

	for _, s := range g.prog.StructOrder {
		g.defineStruct(w, s)
	}

	return strings.TrimRight(w.String(), "\n")
}

// helper prefixes a non-template definition. In the template body file the
// definitions are compiled in every unit including the header.
func (g *Generator) helper(head string) string {
	if g.spec.Mode == binding.ModeGeneric {
		return "inline " + head
	}

	return head
}

func (g *Generator) defineEnum(w *codeWriter, e *descriptor.Enum) {
	// Name table, built once on first use.
	w.emit("%s {", g.helper("const "+nameTableType+"& "+nameTableFunc(e)+"()"))
	w.indent()
	w.emit("static const %s names = {", nameTableType)
	w.indent()

	seen := map[int32]bool{}

	for _, v := range e.Values {
		if seen[v.Value] {
			continue
		}

		seen[v.Value] = true
		w.emit("{%d, %s},", v.Value, strconv.Quote(v.Name))
	}

	w.dedent()
	w.emit("};")
	w.emit("return names;")
	w.dedent()
	w.emit("}")
	w.blank()

	sig := g.spec.For(g.types.enumType(e.Name))

	w.lines(sig.Template(), sig.StreamOp()+" {")
	w.indent()
	w.emit("const %s& names = %s();", nameTableType, nameTableFunc(e))
	w.emit("%s::const_iterator it = names.find(static_cast<int>(obj));", nameTableType)
	w.emit("if (it != names.end()) {")
	w.indent()
	w.emit("out << it->second;")
	w.dedent()
	w.emit("} else {")
	w.indent()
	w.emit("out << static_cast<int>(obj);")
	w.dedent()
	w.emit("}")
	w.emit("return out;")
	w.dedent()
	w.emit("}")
	w.blank()

	// to_string reads the table directly so it does not depend on the sink.
	w.emit("%s {", g.helper(sig.ToStringDef()))
	w.indent()
	w.emit("const %s& names = %s();", nameTableType, nameTableFunc(e))
	w.emit("%s::const_iterator it = names.find(static_cast<int>(val));", nameTableType)
	w.emit("if (it != names.end()) {")
	w.indent()
	w.emit("return std::string(it->second);")
	w.dedent()
	w.emit("}")
	w.emit("return std::to_string(static_cast<int>(val));")
	w.dedent()
	w.emit("}")
	w.blank()
}

func (g *Generator) defineStruct(w *codeWriter, s *descriptor.Struct) {
	restricted := binding.VisibilityOf(g.opts, s) == binding.VisibilityRestricted

	for _, f := range s.Fields {
		w.emit("%s {", g.helper("void "+s.Name+"::__set_"+f.Name+"("+g.types.paramType(f.Type)+" val)"))
		w.indent()
		w.emit("this->%s = val;", f.Name)

		if tracksIsset(f) {
			w.emit("__isset.%s = true;", f.Name)
		}

		w.dedent()
		w.emit("}")
		w.blank()
	}

	if restricted {
		for _, f := range s.Fields {
			if !f.IsOptional() {
				continue
			}

			w.emit("%s {", g.helper("const "+g.types.cppType(f.Type)+"& "+s.Name+"::get_"+f.Name+"() const"))
			w.indent()
			w.emit("return this->%s;", f.Name)
			w.dedent()
			w.emit("}")
			w.blank()
		}
	}

	sig := g.spec.For(s.Name)

	w.lines(sig.Template(), sig.MemberDef()+" {")
	w.indent()
	g.printFields(w, s)
	w.dedent()
	w.emit("}")
	w.blank()

	w.lines(sig.Template(), sig.StreamOp()+" {")
	w.indent()
	w.emit("obj.printTo(out);")
	w.emit("return out;")
	w.dedent()
	w.emit("}")
	w.blank()
}

// printFields emits the body of printTo: "Name(field: value, ...)", with
// "<null>" for unset optional fields.
func (g *Generator) printFields(w *codeWriter, s *descriptor.Struct) {
	if len(s.Fields) > 0 {
		w.emit("using ::apache::thrift::printTo;")
	}

	w.emit("out << %s;", strconv.Quote(s.Name+"("))

	for i, f := range s.Fields {
		label := f.Name + printto.PairSeparator
		if i > 0 {
			label = printto.ElemSeparator + label
		}

		w.emit("out << %s;", strconv.Quote(label))

		if !f.IsOptional() {
			w.emit("%s", printValue(f))

			continue
		}

		w.emit("if (__isset.%s) {", f.Name)
		w.indent()
		w.emit("%s", printValue(f))
		w.dedent()
		w.emit("} else {")
		w.indent()
		w.emit("out << %s;", strconv.Quote(printto.Null))
		w.dedent()
		w.emit("}")
	}

	w.emit("out << \")\";")
}

// printValue is the statement that prints one field's value. Everything but
// bool goes through the printTo overload set, which dispatches on the static
// type: int8_t widens to int, containers recurse, enums and structs use
// their operator<<.
func printValue(f *descriptor.Field) string {
	if f.Type.Category == descriptor.CategoryOtherScalar && f.Type.Base == descriptor.BaseBool {
		return "out << (this->" + f.Name + " ? \"true\" : \"false\");"
	}

	return "printTo(out, this->" + f.Name + ");"
}
