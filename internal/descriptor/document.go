package descriptor

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultVersion is assumed when a document omits its version.
const DefaultVersion = "1"

// Document is the on-disk form of a descriptor, as produced by the IDL
// front end. It is resolved into a Program by Resolve.
type Document struct {
	Version   string       `yaml:"version,omitempty"   toml:"version,omitempty"   json:"version,omitempty"`
	Program   string       `yaml:"program"             toml:"program"             json:"program"`
	Namespace string       `yaml:"namespace,omitempty" toml:"namespace,omitempty" json:"namespace,omitempty"`
	Enums     []EnumDoc    `yaml:"enums,omitempty"     toml:"enums,omitempty"     json:"enums,omitempty"`
	Typedefs  []TypedefDoc `yaml:"typedefs,omitempty"  toml:"typedefs,omitempty"  json:"typedefs,omitempty"`
	Structs   []StructDoc  `yaml:"structs,omitempty"   toml:"structs,omitempty"   json:"structs,omitempty"`
}

// EnumDoc declares an enumerated type.
type EnumDoc struct {
	Name   string         `yaml:"name"          toml:"name"          json:"name"`
	Doc    string         `yaml:"doc,omitempty" toml:"doc,omitempty" json:"doc,omitempty"`
	Values []EnumValueDoc `yaml:"values"        toml:"values"        json:"values"`
}

// EnumValueDoc declares one enum constant. A missing value is one more than
// the previous constant, starting at zero.
type EnumValueDoc struct {
	Name  string `yaml:"name"            toml:"name"            json:"name"`
	Value *int32 `yaml:"value,omitempty" toml:"value,omitempty" json:"value,omitempty"`
}

// TypedefDoc declares a type alias.
type TypedefDoc struct {
	Name string `yaml:"name" toml:"name" json:"name"`
	Type string `yaml:"type" toml:"type" json:"type"`
}

// StructDoc declares a struct.
type StructDoc struct {
	Name   string     `yaml:"name"          toml:"name"          json:"name"`
	Doc    string     `yaml:"doc,omitempty" toml:"doc,omitempty" json:"doc,omitempty"`
	Fields []FieldDoc `yaml:"fields"        toml:"fields"        json:"fields"`
}

// FieldDoc declares a struct field. A missing id is assigned automatically,
// counting down from -1.
type FieldDoc struct {
	ID           *int   `yaml:"id,omitempty"           toml:"id,omitempty"           json:"id,omitempty"`
	Name         string `yaml:"name"                   toml:"name"                   json:"name"`
	Type         string `yaml:"type"                   toml:"type"                   json:"type"`
	Requiredness string `yaml:"requiredness,omitempty" toml:"requiredness,omitempty" json:"requiredness,omitempty"`
}

// Format identifies a descriptor document encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
	FormatJSON
)

// FormatForPath picks the format from a file extension. Unknown extensions
// are read as YAML.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// LoadFile reads and parses a descriptor document from path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read descriptor file %s", path)
	}

	doc, err := ParseFormat(data, FormatForPath(path))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	if doc.Program == "" {
		doc.Program = programFromPath(path)
	}

	return doc, nil
}

// ParseFormat parses data in the given format.
func ParseFormat(data []byte, format Format) (*Document, error) {
	switch format {
	case FormatTOML:
		return ParseTOML(data)
	case FormatJSON:
		return ParseJSON(data)
	default:
		return Parse(data)
	}
}

// Parse parses YAML data into a Document.
func Parse(data []byte) (*Document, error) {
	var doc Document

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse descriptor YAML")
	}

	applyDefaults(&doc)

	return &doc, nil
}

// ParseTOML parses TOML data into a Document.
func ParseTOML(data []byte) (*Document, error) {
	var doc Document

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse descriptor TOML")
	}

	applyDefaults(&doc)

	return &doc, nil
}

// ParseJSON parses JSON data into a Document.
func ParseJSON(data []byte) (*Document, error) {
	var doc Document

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse descriptor JSON")
	}

	applyDefaults(&doc)

	return &doc, nil
}

// Marshal serializes a Document to YAML.
func Marshal(doc *Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(doc *Document) {
	if doc.Version == "" {
		doc.Version = DefaultVersion
	}
}

// programFromPath returns the file stem of path, which names the program
// when the document does not.
func programFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
