package render

import (
	"math"
	"strconv"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"streamop-generator/internal/descriptor"
	"streamop-generator/internal/suggest"
)

// DecodeYAML decodes a YAML value document against t. Mapping keys keep the
// order they have in the document.
func DecodeYAML(data []byte, t *descriptor.TypeRef) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, errors.Wrap(err, "failed to parse value YAML")
	}

	if doc.Kind == 0 {
		doc.Kind = yaml.DocumentNode
	}

	return Decode(&doc, t)
}

// Decode decodes a YAML node against t.
func Decode(node *yaml.Node, t *descriptor.TypeRef) (Value, error) {
	d := decoder{}
	return d.decode(node, t, "$")
}

type decoder struct{}

func (d decoder) decode(node *yaml.Node, t *descriptor.TypeRef, path string) (Value, error) {
	for node.Kind == yaml.DocumentNode || node.Kind == yaml.AliasNode {
		if node.Kind == yaml.AliasNode {
			node = node.Alias
		} else if len(node.Content) > 0 {
			node = node.Content[0]
		} else {
			return d.empty(t, path)
		}
	}

	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" && t.Category == descriptor.CategoryGeneratedStruct {
		return d.empty(t, path)
	}

	switch t.Category {
	case descriptor.CategoryNarrowInteger, descriptor.CategoryOtherScalar:
		return d.scalar(node, t, path)
	case descriptor.CategoryEnumerated:
		return d.enum(node, t.Enum, path)
	case descriptor.CategoryOrderedSequence, descriptor.CategorySet:
		return d.sequence(node, t, path)
	case descriptor.CategoryAssociativeMapping:
		return d.mapping(node, t, path)
	case descriptor.CategoryGeneratedStruct:
		return d.structure(node, t.Struct, path)
	default:
		return Value{}, errors.Newf("%s: cannot decode a value of type %s", path, t)
	}
}

// empty decodes an empty document or a null struct. A struct is decoded as
// an empty mapping so that required fields are still checked.
func (d decoder) empty(t *descriptor.TypeRef, path string) (Value, error) {
	if t.Category == descriptor.CategoryGeneratedStruct {
		return d.structure(&yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}, t.Struct, path)
	}

	return Zero(t), nil
}

func (d decoder) expect(node *yaml.Node, kind yaml.Kind, what, path string) error {
	if node.Kind != kind {
		return errors.Newf("%s: expected %s at line %d", path, what, node.Line)
	}

	return nil
}

var intBits = map[descriptor.BaseType]int{
	descriptor.BaseI8:  8,
	descriptor.BaseI16: 16,
	descriptor.BaseI32: 32,
	descriptor.BaseI64: 64,
}

func (d decoder) scalar(node *yaml.Node, t *descriptor.TypeRef, path string) (Value, error) {
	if err := d.expect(node, yaml.ScalarNode, t.Base.String(), path); err != nil {
		return Value{}, err
	}

	switch t.Base {
	case descriptor.BaseI8, descriptor.BaseI16, descriptor.BaseI32, descriptor.BaseI64:
		n, err := strconv.ParseInt(node.Value, 0, intBits[t.Base])
		if err != nil {
			return Value{}, errors.Wrapf(err, "%s: invalid %s at line %d", path, t.Base, node.Line)
		}

		return Value{Int: n}, nil

	case descriptor.BaseDouble:
		f, err := parseFloat(node.Value)
		if err != nil {
			return Value{}, errors.Wrapf(err, "%s: invalid double at line %d", path, node.Line)
		}

		return Value{Float: f}, nil

	case descriptor.BaseBool:
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, errors.Wrapf(err, "%s: invalid bool at line %d", path, node.Line)
		}

		return Value{Bool: b}, nil

	default:
		return Value{Str: node.Value}, nil
	}
}

// parseFloat accepts Go float syntax plus the YAML spellings of the special
// values.
func parseFloat(s string) (float64, error) {
	switch s {
	case ".nan", ".NaN", ".NAN":
		return math.NaN(), nil
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF":
		return math.Inf(1), nil
	case "-.inf", "-.Inf", "-.INF":
		return math.Inf(-1), nil
	}

	return strconv.ParseFloat(s, 64)
}

// enum accepts a constant name or any 32-bit integer; integers without a
// name print as numbers.
func (d decoder) enum(node *yaml.Node, e *descriptor.Enum, path string) (Value, error) {
	if err := d.expect(node, yaml.ScalarNode, "a "+e.Name+" value", path); err != nil {
		return Value{}, err
	}

	if v, ok := e.Value(node.Value); ok {
		return Value{Int: int64(v)}, nil
	}

	n, err := strconv.ParseInt(node.Value, 0, 32)
	if err != nil {
		names := make([]string, len(e.Values))
		for i, v := range e.Values {
			names[i] = v.Name
		}

		err := errors.Newf("%s: %q is not a %s value (line %d)", path, node.Value, e.Name, node.Line)
		if hint := suggest.Hint(suggest.Suggest(node.Value, names)); hint != "" {
			err = errors.WithHint(err, hint)
		}

		return Value{}, err
	}

	return Value{Int: n}, nil
}

func (d decoder) sequence(node *yaml.Node, t *descriptor.TypeRef, path string) (Value, error) {
	if err := d.expect(node, yaml.SequenceNode, "a sequence", path); err != nil {
		return Value{}, err
	}

	items := make([]Value, 0, len(node.Content))

	for i, child := range node.Content {
		item, err := d.decode(child, t.Elem, path+"["+strconv.Itoa(i)+"]")
		if err != nil {
			return Value{}, err
		}

		if t.Category == descriptor.CategorySet && containsValue(items, item) {
			return Value{}, errors.Newf("%s[%d]: duplicate set element at line %d", path, i, child.Line)
		}

		items = append(items, item)
	}

	return Value{Items: items}, nil
}

func (d decoder) mapping(node *yaml.Node, t *descriptor.TypeRef, path string) (Value, error) {
	if err := d.expect(node, yaml.MappingNode, "a mapping", path); err != nil {
		return Value{}, err
	}

	entries := make([]Entry, 0, len(node.Content)/2)
	keys := make([]Value, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		at := path + "[" + keyNode.Value + "]"

		key, err := d.decode(keyNode, t.Key, at)
		if err != nil {
			return Value{}, err
		}

		if containsValue(keys, key) {
			return Value{}, errors.Newf("%s: duplicate map key at line %d", at, keyNode.Line)
		}

		val, err := d.decode(valNode, t.Elem, at)
		if err != nil {
			return Value{}, err
		}

		keys = append(keys, key)
		entries = append(entries, Entry{Key: key, Val: val})
	}

	return Value{Entries: entries}, nil
}

func (d decoder) structure(node *yaml.Node, s *descriptor.Struct, path string) (Value, error) {
	if err := d.expect(node, yaml.MappingNode, "a "+s.Name+" mapping", path); err != nil {
		return Value{}, err
	}

	byName := make(map[string]*descriptor.Field, len(s.Fields))
	names := make([]string, len(s.Fields))

	for i, f := range s.Fields {
		byName[f.Name] = f
		names[i] = f.Name
	}

	fields := make([]*Value, len(s.Fields))

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		at := path + "." + keyNode.Value

		f, ok := byName[keyNode.Value]
		if !ok {
			err := errors.Newf("%s: %s has no field %q (line %d)", path, s.Name, keyNode.Value, keyNode.Line)
			if hint := suggest.Hint(suggest.Suggest(keyNode.Value, names)); hint != "" {
				err = errors.WithHint(err, hint)
			}

			return Value{}, err
		}

		if fields[f.Index] != nil {
			return Value{}, errors.Newf("%s: field set twice at line %d", at, keyNode.Line)
		}

		// An explicit null leaves an optional field unset.
		if valNode.Tag == "!!null" && f.IsOptional() {
			continue
		}

		v, err := d.decode(valNode, f.Type, at)
		if err != nil {
			return Value{}, err
		}

		fields[f.Index] = &v
	}

	for i, f := range s.Fields {
		if fields[i] != nil || f.IsOptional() {
			continue
		}

		if f.Requiredness == descriptor.RequirednessRequired {
			return Value{}, errors.Newf("%s: required field %s.%s is missing", path, s.Name, f.Name)
		}

		z := Zero(f.Type)
		fields[i] = &z
	}

	return Value{Fields: fields}, nil
}

func containsValue(vs []Value, v Value) bool {
	for _, o := range vs {
		if o.Equal(v) {
			return true
		}
	}

	return false
}
