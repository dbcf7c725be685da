package render_test

import (
	"bufio"
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamop-generator/internal/descriptor"
	"streamop-generator/internal/render"
	"streamop-generator/printto"
)

func loadThriftTest(t *testing.T) *descriptor.Program {
	t.Helper()

	prog, _, err := descriptor.Load("../../testdata/ThriftTest.yaml")
	require.NoError(t, err)

	return prog
}

func structType(prog *descriptor.Program, name string) *descriptor.TypeRef {
	return prog.Struct(name).Ref()
}

// countingSink is a minimal sink that is neither a builder nor a writer.
type countingSink struct {
	parts []string
}

func (c *countingSink) WriteString(s string) (int, error) {
	c.parts = append(c.parts, s)
	return len(s), nil
}

func TestRender(t *testing.T) {
	t.Parallel()

	prog := loadThriftTest(t)

	tests := []struct {
		name     string
		typeName string
		value    string
		want     string
	}{
		{
			name:     "scalars",
			typeName: "Xtruct",
			value:    "{string_thing: test string, byte_thing: 65, i32_thing: 42, i64_thing: 1099511627776}",
			want:     "Xtruct(string_thing: test string, byte_thing: 65, i32_thing: 42, i64_thing: 1099511627776)",
		},
		{
			name:     "negative narrow integer",
			typeName: "Xtruct",
			value:    "{byte_thing: -3}",
			want:     "Xtruct(string_thing: , byte_thing: -3, i32_thing: 0, i64_thing: 0)",
		},
		{
			name:     "nested struct",
			typeName: "Xtruct2",
			value:    "{byte_thing: 1, struct_thing: {string_thing: x, i32_thing: 7}, i32_thing: 2}",
			want:     "Xtruct2(byte_thing: 1, struct_thing: Xtruct(string_thing: x, byte_thing: 0, i32_thing: 7, i64_thing: 0), i32_thing: 2)",
		},
		{
			name:     "map keeps document order and falls back to numbers",
			typeName: "Insanity",
			value:    "{userMap: {FIVE: 5, ONE: 1, 999: 7, -2: 8}, xtructs: []}",
			want:     "Insanity(userMap: {FIVE: 5, ONE: 1, 999: 7, -2: 8}, xtructs: [])",
		},
		{
			name:     "list of structs",
			typeName: "Insanity",
			value:    "{xtructs: [{string_thing: a}, {i32_thing: 1}]}",
			want: "Insanity(userMap: {}, xtructs: [Xtruct(string_thing: a, byte_thing: 0, i32_thing: 0, i64_thing: 0), " +
				"Xtruct(string_thing: , byte_thing: 0, i32_thing: 1, i64_thing: 0)])",
		},
		{
			name:     "unset optional",
			typeName: "OptionalSetDefaultTest",
			value:    "{}",
			want:     "OptionalSetDefaultTest(with_default: <null>)",
		},
		{
			name:     "explicit null optional",
			typeName: "OptionalSetDefaultTest",
			value:    "{with_default: null}",
			want:     "OptionalSetDefaultTest(with_default: <null>)",
		},
		{
			name:     "set optional",
			typeName: "OptionalSetDefaultTest",
			value:    "{with_default: [b, a]}",
			want:     "OptionalSetDefaultTest(with_default: {b, a})",
		},
		{
			name:     "empty document",
			typeName: "OptionalSetDefaultTest",
			value:    "",
			want:     "OptionalSetDefaultTest(with_default: <null>)",
		},
		{
			name:     "doubles and bools",
			typeName: "Doubles",
			value:    "{small: 0.1, pi: 3.14159265, flags: [true, false]}",
			want:     "Doubles(small: 0.1, pi: 3.14159, flags: [true, false])",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := render.Render(prog, tt.typeName, []byte(tt.value))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_SameTextForEverySink(t *testing.T) {
	t.Parallel()

	prog := loadThriftTest(t)

	v, err := render.DecodeYAML(
		[]byte("{userMap: {ONE: 1, TWO: 2}, xtructs: [{string_thing: test string, i32_thing: 42}]}"),
		structType(prog, "Insanity"),
	)
	require.NoError(t, err)

	builder := render.Compile[*strings.Builder](prog)
	printBuilder, err := builder.Struct("Insanity")
	require.NoError(t, err)

	want := printto.ToString(v, printBuilder)

	var buf bytes.Buffer

	bw := bufio.NewWriter(&buf)
	printWriter, err := render.Compile[*bufio.Writer](prog).Struct("Insanity")
	require.NoError(t, err)
	printWriter(bw, v)
	require.NoError(t, bw.Flush())

	sink := &countingSink{}
	printCounting, err := render.Compile[*countingSink](prog).Struct("Insanity")
	require.NoError(t, err)
	printCounting(sink, v)

	assert.Equal(t, "Insanity(userMap: {ONE: 1, TWO: 2}, xtructs: [Xtruct(string_thing: test string, byte_thing: 0, i32_thing: 42, i64_thing: 0)])", want)
	assert.Equal(t, want, buf.String())
	assert.Equal(t, want, strings.Join(sink.parts, ""))
}

func TestCompile_ConcurrentUse(t *testing.T) {
	t.Parallel()

	prog := loadThriftTest(t)
	p := render.Compile[*strings.Builder](prog)

	printer, err := p.Struct("Insanity")
	require.NoError(t, err)

	v, err := render.DecodeYAML([]byte("{userMap: {EIGHT: 8, 3: 3}}"), structType(prog, "Insanity"))
	require.NoError(t, err)

	const workers = 8

	results := make([]string, workers)

	var wg sync.WaitGroup

	for i := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			results[i] = printto.ToString(v, printer)
		}()
	}

	wg.Wait()

	for _, got := range results {
		assert.Equal(t, "Insanity(userMap: {EIGHT: 8, THREE: 3}, xtructs: [])", got)
	}
}

func TestCompile_Printer(t *testing.T) {
	t.Parallel()

	prog := loadThriftTest(t)
	p := render.Compile[*strings.Builder](prog)

	userMap := prog.Struct("Insanity").Fields[0].Type
	require.Equal(t, descriptor.CategoryAssociativeMapping, userMap.Category)

	pair := printto.ToString(render.Value{Entries: []render.Entry{{Key: render.Value{Int: 5}, Val: render.Value{Int: 50}}}}, p.Printer(userMap.Entry))
	assert.Equal(t, "FIVE: 50", pair)

	enum := printto.ToString(render.Value{Int: -7}, p.Printer(userMap.Key))
	assert.Equal(t, "-7", enum)
}

func TestRender_UnknownStruct(t *testing.T) {
	t.Parallel()

	prog := loadThriftTest(t)

	_, err := render.Render(prog, "Xtract", []byte("{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Xtract"`)
	assert.Contains(t, strings.Join(errors.GetAllHints(err), " "), "Xtruct")
}

func TestDecodeYAML_Errors(t *testing.T) {
	t.Parallel()

	prog := loadThriftTest(t)

	tests := []struct {
		name     string
		typeName string
		value    string
		wantErr  string
		wantHint string
	}{
		{name: "unknown field", typeName: "Xtruct", value: "{i32thing: 1}", wantErr: `no field "i32thing"`, wantHint: "i32_thing"},
		{name: "narrow integer overflow", typeName: "Xtruct", value: "{byte_thing: 300}", wantErr: "invalid i8"},
		{name: "i32 overflow", typeName: "Xtruct", value: "{i32_thing: 4294967296}", wantErr: "invalid i32"},
		{name: "not a number", typeName: "Xtruct", value: "{i64_thing: many}", wantErr: "invalid i64"},
		{name: "unknown enum name", typeName: "Insanity", value: "{userMap: {FOUR: 4}}", wantErr: `"FOUR" is not a Numberz value`},
		{name: "enum misspelled", typeName: "Insanity", value: "{userMap: {FIV: 4}}", wantErr: "Numberz", wantHint: "FIVE"},
		{name: "duplicate map key", typeName: "Insanity", value: "{userMap: {ONE: 1, 1: 2}}", wantErr: "duplicate map key"},
		{name: "duplicate set element", typeName: "OptionalSetDefaultTest", value: "{with_default: [a, a]}", wantErr: "duplicate set element"},
		{name: "list expected", typeName: "Insanity", value: "{xtructs: {a: 1}}", wantErr: "expected a sequence"},
		{name: "struct expected", typeName: "Xtruct2", value: "{struct_thing: [1]}", wantErr: "expected a Xtruct mapping"},
		{name: "bad bool", typeName: "Doubles", value: "{flags: [maybe]}", wantErr: "invalid bool"},
		{name: "bad double", typeName: "Doubles", value: "{pi: tau}", wantErr: "invalid double"},
		{name: "malformed YAML", typeName: "Bonk", value: "{type: [", wantErr: "failed to parse value YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := render.DecodeYAML([]byte(tt.value), structType(prog, tt.typeName))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			if tt.wantHint != "" {
				assert.Contains(t, strings.Join(errors.GetAllHints(err), " "), tt.wantHint)
			}
		})
	}
}

func TestDecodeYAML_RequiredField(t *testing.T) {
	t.Parallel()

	doc, err := descriptor.Parse([]byte(`
version: "1"
program: Req
structs:
  - name: Need
    fields:
      - {id: 1, name: must, type: i32, requiredness: required}
      - {id: 2, name: may, type: i32}
`))
	require.NoError(t, err)

	prog, diags := descriptor.Resolve(doc)
	require.False(t, diags.HasErrors())

	for _, value := range []string{"{may: 1}", "{}", "", "~"} {
		_, err = render.DecodeYAML([]byte(value), structType(prog, "Need"))
		require.Error(t, err, "value %q", value)
		assert.Contains(t, err.Error(), "required field Need.must is missing")
	}

	got, err := render.Render(prog, "Need", []byte("{must: 3}"))
	require.NoError(t, err)
	assert.Equal(t, "Need(must: 3, may: 0)", got)
}

func TestZero(t *testing.T) {
	t.Parallel()

	prog := loadThriftTest(t)

	z := render.Zero(structType(prog, "Xtruct2"))
	require.Len(t, z.Fields, 3)
	require.NotNil(t, z.Fields[1])
	assert.Len(t, z.Fields[1].Fields, 4)

	opt := render.Zero(structType(prog, "OptionalSetDefaultTest"))
	assert.Nil(t, opt.Fields[0])
	assert.True(t, opt.Equal(render.Zero(structType(prog, "OptionalSetDefaultTest"))))
	assert.False(t, z.Equal(opt))
}
