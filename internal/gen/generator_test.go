package gen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamop-generator/internal/binding"
	"streamop-generator/internal/descriptor"
	"streamop-generator/options"
)

const fixtureDir = "../../testdata"

func loadProgram(t *testing.T, name string) *descriptor.Program {
	t.Helper()

	prog, _, err := descriptor.Load(filepath.Join(fixtureDir, name))
	require.NoError(t, err)

	return prog
}

// generate runs one generation and returns the header and body text.
func generate(t *testing.T, fixture, opts string) (header, body string) {
	t.Helper()

	o, err := options.Parse(opts)
	require.NoError(t, err)

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(loadProgram(t, fixture), o)
	require.NoError(t, err)
	require.Len(t, files, 2)

	return string(files[0].Content), string(files[1].Content)
}

// extractClassDefinition returns the text of "class name { ... };".
func extractClassDefinition(content, name string) string {
	start := strings.Index(content, "class "+name+" {")
	if start < 0 {
		return ""
	}

	end := strings.Index(content[start:], "\n};\n")
	if end < 0 {
		return content[start:]
	}

	return content[start : start+end+len("\n};")]
}

// extractBody returns the lines between the line containing head and the
// closing brace of that definition.
func extractBody(content, head string) string {
	start := strings.Index(content, head)
	if start < 0 {
		return ""
	}

	rest := content[start:]
	open := strings.Index(rest, "{\n")
	end := strings.Index(rest, "\n}\n")

	if open < 0 || end < open {
		return ""
	}

	return rest[open+2 : end]
}

func TestGenerate_ConcreteStreamOp(t *testing.T) {
	t.Parallel()

	header, impl := generate(t, "test_template_streamop.yaml", "")

	assert.Contains(t, header, "std::ostream& operator<<(std::ostream& out, const SimpleStruct& obj);")

	classDef := extractClassDefinition(header, "SimpleStruct")
	require.NotEmpty(t, classDef)
	assert.Contains(t, classDef, "void printTo(std::ostream& out) const;")
	assert.NotContains(t, classDef, "template <typename OStream_>")

	assert.Contains(t, impl, "void SimpleStruct::printTo(std::ostream& out) const")
	assert.Contains(t, impl, "std::ostream& operator<<(std::ostream& out, const SimpleStruct& obj)")
	assert.Contains(t, impl, `#include "test_template_streamop_types.h"`)
	assert.NotContains(t, header, ".tcc")
	assert.NotContains(t, header+impl, "friend")
}

func TestGenerate_GenericStreamOp(t *testing.T) {
	t.Parallel()

	header, tcc := generate(t, "test_template_streamop.yaml", "template_streamop")

	assert.Contains(t, header, "template <typename OStream_>")
	assert.Contains(t, header, "template <typename OStream_>\nOStream_& operator<<(OStream_& out, const SimpleStruct& obj);")

	classDef := extractClassDefinition(header, "SimpleStruct")
	require.NotEmpty(t, classDef)
	assert.Contains(t, classDef, "  template <typename OStream_>\n  void printTo(OStream_& out) const;")
	assert.NotContains(t, classDef, "void printTo(std::ostream& out) const;")

	assert.Contains(t, tcc, "template <typename OStream_>")
	assert.Contains(t, tcc, "template <typename OStream_>\nvoid SimpleStruct::printTo(OStream_& out) const")
	assert.Contains(t, tcc, "template <typename OStream_>\nOStream_& operator<<(OStream_& out, const SimpleStruct& obj)")
	assert.Contains(t, tcc, "void NestedStruct::printTo(OStream_& out) const")

	// The body file is pulled in at the end of the header.
	assert.Contains(t, header, "#include \"test_template_streamop_types.tcc\"\n\n#endif // test_template_streamop_TYPES_H")

	// Non-template helpers are inline in the body file.
	assert.Contains(t, tcc, "inline void SimpleStruct::__set_id(const int32_t val) {")
}

func TestGenerate_GenericPrivateOptionalFriend(t *testing.T) {
	t.Parallel()

	header, _ := generate(t, "test_template_streamop.yaml", "template_streamop,private_optional")

	classDef := extractClassDefinition(header, "SimpleStruct")
	require.NotEmpty(t, classDef)

	assert.Contains(t, classDef, "template <typename OStream_>")
	assert.Contains(t, classDef, "friend OStream_& operator<<(OStream_& out, const SimpleStruct& obj);")
	assert.NotContains(t, classDef, "friend template <typename OStream_>")
	assert.Contains(t, classDef,
		"  template <typename OStream_>\n  friend OStream_& operator<<(OStream_& out, const SimpleStruct& obj);")

	// Only structs with optional fields are restricted.
	nested := extractClassDefinition(header, "NestedStruct")
	require.NotEmpty(t, nested)
	assert.NotContains(t, nested, "friend")
	assert.NotContains(t, nested, "private:")
}

func TestGenerate_ConcretePrivateOptional(t *testing.T) {
	t.Parallel()

	header, impl := generate(t, "test_template_streamop.yaml", "private_optional")

	classDef := extractClassDefinition(header, "SimpleStruct")
	require.NotEmpty(t, classDef)

	assert.Contains(t, classDef, "friend std::ostream& operator<<(std::ostream& out, const SimpleStruct& obj);")
	assert.Contains(t, classDef, " private:\n  std::string note{};")
	assert.Contains(t, classDef, "const std::string& get_note() const;")
	assert.NotContains(t, classDef, "template")

	// The public section does not declare the optional field.
	public, _, _ := strings.Cut(classDef, " private:")
	assert.NotContains(t, public, "std::string note{};")

	assert.Contains(t, impl, "const std::string& SimpleStruct::get_note() const {\n  return this->note;\n}")
}

func TestGenerate_BindingConflict(t *testing.T) {
	t.Parallel()

	o, err := options.Parse("template_streamop,sink_type=std::ostream")
	require.NoError(t, err)

	g := NewGenerator(DefaultGeneratorConfig())
	files, err := g.Generate(loadProgram(t, "test_template_streamop.yaml"), o)

	require.Error(t, err)
	assert.True(t, errors.Is(err, binding.ErrConflict))
	assert.Nil(t, files)
}

func TestGenerate_NilProgram(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator(DefaultGeneratorConfig()).Generate(nil, options.Options{})
	require.Error(t, err)
}

func TestGenerate_ArtifactSet(t *testing.T) {
	t.Parallel()

	prog := loadProgram(t, "ThriftTest.yaml")

	tests := []struct {
		opts  string
		names []string
		kinds []binding.ArtifactKind
	}{
		{
			"",
			[]string{"ThriftTest_types.h", "ThriftTest_types.cpp"},
			[]binding.ArtifactKind{binding.ArtifactDeclarations, binding.ArtifactImplementation},
		},
		{
			"template_streamop",
			[]string{"ThriftTest_types.h", "ThriftTest_types.tcc"},
			[]binding.ArtifactKind{binding.ArtifactDeclarations, binding.ArtifactTemplateBodies},
		},
	}

	for _, tt := range tests {
		t.Run(tt.opts, func(t *testing.T) {
			t.Parallel()

			o, err := options.Parse(tt.opts)
			require.NoError(t, err)

			g := NewGenerator(DefaultGeneratorConfig())
			files, err := g.Generate(prog, o)
			require.NoError(t, err)

			var (
				names []string
				kinds []binding.ArtifactKind
			)

			for _, f := range files {
				names = append(names, f.Filename)
				kinds = append(kinds, f.Kind)
			}

			assert.Equal(t, tt.names, names)
			assert.Equal(t, tt.kinds, kinds)
			assert.Equal(t, tt.names, g.Artifacts().Filenames())
		})
	}
}

func TestGenerate_Enums(t *testing.T) {
	t.Parallel()

	header, impl := generate(t, "ThriftTest.yaml", "")

	assert.Contains(t, header, "/**\n * Docstring for Numberz\n */\nstruct Numberz {\n  enum type {\n    ONE = 1,")
	assert.Contains(t, header, "    EIGHT = 8\n  };\n};")
	assert.Contains(t, header, "const std::map<int, const char*>& _Numberz_VALUES_TO_NAMES();")
	assert.Contains(t, header, "std::ostream& operator<<(std::ostream& out, const Numberz::type& obj);")
	assert.Contains(t, header, "std::string to_string(const Numberz::type& val);")
	assert.Contains(t, header, "std::map<Numberz::type, UserId> userMap{};")

	assert.Contains(t, impl, "static const std::map<int, const char*> names = {")
	assert.Contains(t, impl, `{1, "ONE"},`)
	assert.Contains(t, impl, `{8, "EIGHT"},`)
	assert.Contains(t, impl, "std::ostream& operator<<(std::ostream& out, const Numberz::type& obj) {")
	assert.Contains(t, impl, "out << static_cast<int>(obj);")
	assert.Contains(t, impl, "std::string to_string(const Numberz::type& val) {")
	assert.NotContains(t, impl, "inline")
}

func TestGenerate_GenericEnums(t *testing.T) {
	t.Parallel()

	header, tcc := generate(t, "ThriftTest.yaml", "template_streamop")

	assert.Contains(t, header, "template <typename OStream_>\nOStream_& operator<<(OStream_& out, const Numberz::type& obj);")
	assert.Contains(t, header, "#include <string>")
	assert.Contains(t, tcc, "inline const std::map<int, const char*>& _Numberz_VALUES_TO_NAMES() {")
	assert.Contains(t, tcc, "template <typename OStream_>\nOStream_& operator<<(OStream_& out, const Numberz::type& obj) {")
	assert.Contains(t, tcc, "inline std::string to_string(const Numberz::type& val) {")
}

func TestGenerate_EnumStyles(t *testing.T) {
	t.Parallel()

	header, _ := generate(t, "ThriftTest.yaml", "pure_enums=enum_class")
	assert.Contains(t, header, "enum class Numberz : int32_t {")
	assert.Contains(t, header, "std::map<Numberz, UserId> userMap{};")
	assert.Contains(t, header, "std::ostream& operator<<(std::ostream& out, const Numberz& obj);")
	assert.NotContains(t, header, "Numberz::type")

	header, _ = generate(t, "ThriftTest.yaml", "pure_enums")
	assert.Contains(t, header, "enum Numberz {\n  ONE = 1,")
	assert.NotContains(t, header, "enum class")
}

func TestGenerate_StructFields(t *testing.T) {
	t.Parallel()

	header, impl := generate(t, "ThriftTest.yaml", "")

	assert.Contains(t, header, "typedef int64_t UserId;")
	assert.Contains(t, header, "namespace thrift {\nnamespace test {")
	assert.Contains(t, header, "} // namespace test\n} // namespace thrift")
	assert.Contains(t, header, "#include <thrift/TPrintTo.h>")
	assert.Contains(t, header, "#ifndef ThriftTest_TYPES_H\n#define ThriftTest_TYPES_H")

	xtruct := extractClassDefinition(header, "Xtruct")
	assert.Contains(t, xtruct, "int8_t byte_thing{};")
	assert.Contains(t, xtruct, "_Xtruct__isset __isset;")
	assert.Contains(t, xtruct, "void __set_string_thing(const std::string& val);")
	assert.Contains(t, xtruct, "void __set_byte_thing(const int8_t val);")

	body := extractBody(impl, "void Xtruct::printTo(")
	assert.Equal(t, strings.Join([]string{
		`  using ::apache::thrift::printTo;`,
		`  out << "Xtruct(";`,
		`  out << "string_thing: ";`,
		`  printTo(out, this->string_thing);`,
		`  out << ", byte_thing: ";`,
		`  printTo(out, this->byte_thing);`,
		`  out << ", i32_thing: ";`,
		`  printTo(out, this->i32_thing);`,
		`  out << ", i64_thing: ";`,
		`  printTo(out, this->i64_thing);`,
		`  out << ")";`,
	}, "\n"), body)

	optional := extractBody(impl, "void OptionalSetDefaultTest::printTo(")
	assert.Contains(t, optional, "  if (__isset.with_default) {\n    printTo(out, this->with_default);\n  } else {\n    out << \"<null>\";\n  }")

	assert.Contains(t, impl, "void Xtruct::__set_byte_thing(const int8_t val) {\n  this->byte_thing = val;\n  __isset.byte_thing = true;\n}")
}

func TestGenerate_SameFieldTextInBothModes(t *testing.T) {
	t.Parallel()

	_, impl := generate(t, "ThriftTest.yaml", "")
	_, tcc := generate(t, "ThriftTest.yaml", "template_streamop")

	for _, name := range []string{"Bonk", "Xtruct", "Xtruct2", "Insanity", "OptionalSetDefaultTest", "Doubles"} {
		concrete := extractBody(impl, "void "+name+"::printTo(")
		generic := extractBody(tcc, "void "+name+"::printTo(")

		require.NotEmpty(t, concrete, name)
		assert.Equal(t, concrete, generic, name)
	}
}

func TestGenerate_StructOrder(t *testing.T) {
	t.Parallel()

	doc, err := descriptor.Parse([]byte(`
program: order
structs:
  - {name: Outer, fields: [{id: 1, name: inner, type: Inner}]}
  - {name: Inner, fields: [{id: 1, name: flag, type: bool}]}
  - {name: Empty, fields: []}
`))
	require.NoError(t, err)

	prog, diags := descriptor.Resolve(doc)
	require.NoError(t, diags.Error())

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(prog, options.Options{})
	require.NoError(t, err)

	header, impl := string(files[0].Content), string(files[1].Content)

	assert.Contains(t, header, "class Outer;\nclass Inner;\nclass Empty;")
	assert.Less(t, strings.Index(header, "class Inner {"), strings.Index(header, "class Outer {"))

	assert.Contains(t, impl, `out << (this->flag ? "true" : "false");`)
	assert.Equal(t, "  out << \"Empty(\";\n  out << \")\";", extractBody(impl, "void Empty::printTo("))
}

func TestGenerate_TypedefOrder(t *testing.T) {
	t.Parallel()

	doc, err := descriptor.Parse([]byte(`
program: aliases
typedefs:
  - {name: Outer, type: Inner}
  - {name: Inner, type: i32}
  - {name: SAlias, type: S}
structs:
  - {name: S, fields: [{id: 1, name: n, type: Outer}]}
  - {name: T, fields: [{id: 1, name: s, type: SAlias}]}
`))
	require.NoError(t, err)

	prog, diags := descriptor.Resolve(doc)
	require.NoError(t, diags.Error())

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(prog, options.Options{})
	require.NoError(t, err)

	header := string(files[0].Content)

	order := []string{
		"class S;",
		"class T;",
		"typedef int32_t Inner;",
		"typedef Inner Outer;",
		"typedef S SAlias;",
		"class S {",
		"class T {",
	}

	last := -1

	for _, line := range order {
		idx := strings.Index(header, line)
		require.GreaterOrEqual(t, idx, 0, "missing %q in:\n%s", line, header)
		assert.Greater(t, idx, last, "%q is out of order in:\n%s", line, header)

		last = idx
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	h1, b1 := generate(t, "ThriftTest.yaml", "template_streamop,private_optional")
	h2, b2 := generate(t, "ThriftTest.yaml", "template_streamop,private_optional")

	assert.Equal(t, h1, h2)
	assert.Equal(t, b1, b2)
}

func TestGenerate_CustomSink(t *testing.T) {
	t.Parallel()

	header, impl := generate(t, "ThriftTest.yaml", `sink_type=app::LogStream,sink_include="log_stream.h"`)

	assert.Contains(t, header, `#include "log_stream.h"`)
	assert.NotContains(t, header, "#include <ostream>")
	assert.Contains(t, header, "app::LogStream& operator<<(app::LogStream& out, const Xtruct& obj);")
	assert.Contains(t, impl, "void Xtruct::printTo(app::LogStream& out) const {")
}

func TestWriteFiles(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "gen-cpp")
	files := []GeneratedFile{
		{Filename: "a_types.h", Content: []byte("header")},
		{Filename: "a_types.cpp", Content: []byte("impl")},
	}

	require.NoError(t, WriteFiles(files, dir))

	got, err := os.ReadFile(filepath.Join(dir, "a_types.h"))
	require.NoError(t, err)
	assert.Equal(t, "header", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
