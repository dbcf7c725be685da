package gen

import (
	"slices"
	"strings"

	"streamop-generator/internal/binding"
	"streamop-generator/internal/descriptor"
	"streamop-generator/options"
)

// nameTableType is the C++ type of an enum name table.
const nameTableType = "std::map<int, const char*>"

// nameTableFunc names the accessor of an enum's name table.
func nameTableFunc(e *descriptor.Enum) string {
	return "_" + e.Name + "_VALUES_TO_NAMES"
}

// issetName names the struct that tracks which fields were set.
func issetName(s *descriptor.Struct) string {
	return "_" + s.Name + "__isset"
}

// tracksIsset reports whether a field has an __isset flag.
func tracksIsset(f *descriptor.Field) bool {
	return f.Requiredness != descriptor.RequirednessRequired
}

func hasIsset(s *descriptor.Struct) bool {
	return slices.ContainsFunc(s.Fields, tracksIsset)
}

// headerBody emits the declarations header between the namespace braces.
func (g *Generator) headerBody() string {
	w := &codeWriter{}

	for _, e := range g.prog.Enums {
		g.declareEnum(w, e)
	}

	for _, s := range g.prog.Structs {
		w.emit("class %s;", s.Name)
	}

	if len(g.prog.Structs) > 0 {
		w.blank()
	}

	// Typedefs follow their targets, so forward declarations come first.
	for _, td := range g.prog.Typedefs {
		w.emit("typedef %s %s;", g.types.cppType(td.Target), td.Name)
		w.blank()
	}

	for _, s := range g.prog.StructOrder {
		g.declareStruct(w, s)
	}

	return strings.TrimRight(w.String(), "\n")
}

func (g *Generator) docComment(w *codeWriter, doc string) {
	if !g.config.GenerateComments || doc == "" {
		return
	}

	w.emit("/**")

	for line := range strings.SplitSeq(strings.TrimSpace(doc), "\n") {
		w.emit(" * %s", strings.TrimRight(line, " "))
	}

	w.emit(" */")
}

func (g *Generator) declareEnum(w *codeWriter, e *descriptor.Enum) {
	g.docComment(w, e.Doc)

	enumerators := func() {
		for i, v := range e.Values {
			sep := ","
			if i == len(e.Values)-1 {
				sep = ""
			}

			w.emit("%s = %d%s", v.Name, v.Value, sep)
		}
	}

	switch {
	case g.opts.Has(options.FlagEnumClass):
		w.emit("enum class %s : int32_t {", e.Name)
		w.indent()
		enumerators()
		w.dedent()
		w.emit("};")
	case g.opts.Has(options.FlagPureEnums):
		w.emit("enum %s {", e.Name)
		w.indent()
		enumerators()
		w.dedent()
		w.emit("};")
	default:
		w.emit("struct %s {", e.Name)
		w.indent()
		w.emit("enum type {")
		w.indent()
		enumerators()
		w.dedent()
		w.emit("};")
		w.dedent()
		w.emit("};")
	}

	w.blank()

	sig := g.spec.For(g.types.enumType(e.Name))

	w.emit("const %s& %s();", nameTableType, nameTableFunc(e))
	w.blank()
	w.lines(sig.Template(), sig.StreamOpDecl())
	w.blank()
	w.emit("%s", sig.ToStringDecl())
	w.blank()
}

func (g *Generator) declareStruct(w *codeWriter, s *descriptor.Struct) {
	restricted := binding.VisibilityOf(g.opts, s) == binding.VisibilityRestricted
	hidden := func(f *descriptor.Field) bool { return restricted && f.IsOptional() }

	if hasIsset(s) {
		w.emit("struct %s {", issetName(s))
		w.indent()

		for _, f := range s.Fields {
			if tracksIsset(f) {
				w.emit("bool %s = false;", f.Name)
			}
		}

		w.dedent()
		w.emit("};")
		w.blank()
	}

	g.docComment(w, s.Doc)
	w.emit("class %s {", s.Name)
	w.raw(" public:")
	w.indent()

	for _, f := range s.Fields {
		if !hidden(f) {
			w.emit("%s %s{};", g.types.cppType(f.Type), f.Name)
		}
	}

	if hasIsset(s) {
		w.blank()
		w.emit("%s __isset;", issetName(s))
	}

	if len(s.Fields) > 0 {
		w.blank()
	}

	for _, f := range s.Fields {
		w.emit("void __set_%s(%s val);", f.Name, g.types.paramType(f.Type))
	}

	if restricted {
		w.blank()

		for _, f := range s.Fields {
			if hidden(f) {
				w.emit("const %s& get_%s() const;", g.types.cppType(f.Type), f.Name)
			}
		}
	}

	sig := g.spec.For(s.Name)

	w.blank()
	w.lines(sig.Template(), sig.MemberDecl())
	w.dedent()

	if restricted {
		w.blank()
		w.raw(" private:")
		w.indent()

		for _, f := range s.Fields {
			if hidden(f) {
				w.emit("%s %s{};", g.types.cppType(f.Type), f.Name)
			}
		}

		w.blank()
		w.lines(binding.FriendGrant(g.spec, binding.VisibilityRestricted, s.Name)...)
		w.dedent()
	}

	w.emit("};")
	w.blank()
	w.lines(sig.Template(), sig.StreamOpDecl())
	w.blank()
}
