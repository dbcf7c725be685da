package descriptor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureDir = "../../testdata"

func TestParse(t *testing.T) {
	t.Parallel()

	data := `
version: "1"
program: ThriftTest
namespace: thrift.test
enums:
  - name: Numberz
    values:
      - {name: ONE, value: 1}
      - {name: TWO}
typedefs:
  - {name: UserId, type: i64}
structs:
  - name: Bonk
    doc: A message with a type
    fields:
      - {id: 1, name: message, type: string}
      - {name: type, type: i32, requiredness: optional}
`

	doc, err := Parse([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, "1", doc.Version)
	assert.Equal(t, "ThriftTest", doc.Program)
	assert.Equal(t, "thrift.test", doc.Namespace)

	require.Len(t, doc.Enums, 1)
	require.Len(t, doc.Enums[0].Values, 2)
	require.NotNil(t, doc.Enums[0].Values[0].Value)
	assert.Equal(t, int32(1), *doc.Enums[0].Values[0].Value)
	assert.Nil(t, doc.Enums[0].Values[1].Value)

	require.Len(t, doc.Typedefs, 1)
	assert.Equal(t, TypedefDoc{Name: "UserId", Type: "i64"}, doc.Typedefs[0])

	require.Len(t, doc.Structs, 1)
	bonk := doc.Structs[0]
	assert.Equal(t, "A message with a type", bonk.Doc)
	require.Len(t, bonk.Fields, 2)
	require.NotNil(t, bonk.Fields[0].ID)
	assert.Equal(t, 1, *bonk.Fields[0].ID)
	assert.Nil(t, bonk.Fields[1].ID)
	assert.Equal(t, "optional", bonk.Fields[1].Requiredness)
}

func TestParse_DefaultVersion(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte("program: p\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultVersion, doc.Version)
}

func TestParse_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("program: p\nstructz: []\n"))
	require.Error(t, err)

	_, err = ParseTOML([]byte("program = \"p\"\nstructz = []\n"))
	require.Error(t, err)

	_, err = ParseJSON([]byte(`{"program": "p", "structz": []}`))
	require.Error(t, err)
}

func TestParseFormats_Agree(t *testing.T) {
	t.Parallel()

	fromYAML, err := LoadFile(filepath.Join(fixtureDir, "test_template_streamop.yaml"))
	require.NoError(t, err)

	fromTOML, err := LoadFile(filepath.Join(fixtureDir, "test_template_streamop.toml"))
	require.NoError(t, err)

	fromJSON, err := LoadFile(filepath.Join(fixtureDir, "test_template_streamop.json"))
	require.NoError(t, err)

	assert.Equal(t, fromYAML, fromTOML, "yaml:\n%s\ntoml:\n%s", spew.Sdump(fromYAML), spew.Sdump(fromTOML))
	assert.Equal(t, fromYAML, fromJSON, "yaml:\n%s\njson:\n%s", spew.Sdump(fromYAML), spew.Sdump(fromJSON))
}

func TestLoadFile_ProgramFromFileName(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "shapes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("structs: []\n"), 0o600))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "shapes", doc.Program)
	assert.Equal(t, DefaultVersion, doc.Version)
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read descriptor file")
}

func TestFormatForPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, FormatYAML, FormatForPath("a.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("a.yml"))
	assert.Equal(t, FormatYAML, FormatForPath("a"))
	assert.Equal(t, FormatTOML, FormatForPath("a.TOML"))
	assert.Equal(t, FormatJSON, FormatForPath("dir.d/a.json"))
}

func TestMarshal_RoundTrip(t *testing.T) {
	t.Parallel()

	doc, err := LoadFile(filepath.Join(fixtureDir, "ThriftTest.yaml"))
	require.NoError(t, err)

	data, err := Marshal(doc)
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}
