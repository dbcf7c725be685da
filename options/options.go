package options

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"streamop-generator/internal/suggest"
)

// Option keys accepted in an option string.
const (
	KeyTemplateStreamOp = "template_streamop"
	KeyPrivateOptional  = "private_optional"
	KeyPureEnums        = "pure_enums"
	KeySinkType         = "sink_type"
	KeySinkParam        = "sink_param"
	KeySinkInclude      = "sink_include"

	enumClassValue = "enum_class"
)

// Options is the frozen configuration of one generation run.
//
// SinkType and SinkParam are explicit overrides; empty means "use the
// default of the selected binding mode".
type Options struct {
	Flags       FlagEnum
	SinkType    string
	SinkParam   string
	SinkInclude string
}

// Has reports whether flag is enabled.
func (o Options) Has(flag FlagEnum) bool {
	return o.Flags.Has(flag)
}

// With returns a copy of o with flag enabled.
func (o Options) With(flag FlagEnum) Options {
	o.Flags |= flag
	return o
}

// String returns the canonical option string for o.
func (o Options) String() string {
	var parts []string

	if f := o.Flags.String(); f != "" {
		parts = append(parts, f)
	}

	if o.SinkType != "" {
		parts = append(parts, KeySinkType+"="+o.SinkType)
	}

	if o.SinkParam != "" {
		parts = append(parts, KeySinkParam+"="+o.SinkParam)
	}

	if o.SinkInclude != "" {
		parts = append(parts, KeySinkInclude+"="+o.SinkInclude)
	}

	return strings.Join(parts, ",")
}

// Parse reads a comma separated option string such as
// "template_streamop,private_optional,pure_enums=enum_class".
// Unknown keys and malformed values are errors.
func Parse(s string) (Options, error) {
	var o Options

	err := o.Merge(s)

	return o, err
}

// Merge applies the options in s on top of o.
func (o *Options) Merge(s string) error {
	for raw := range strings.SplitSeq(s, ",") {
		item := strings.TrimSpace(raw)
		if item == "" {
			continue
		}

		key, value, hasValue := strings.Cut(item, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case KeyTemplateStreamOp, KeyPrivateOptional:
			if hasValue {
				return errors.Newf("option %q takes no value", key)
			}

			if key == KeyTemplateStreamOp {
				o.Flags |= FlagTemplateStreamOp
			} else {
				o.Flags |= FlagPrivateOptional
			}

		case KeyPureEnums:
			if err := o.SetPureEnums(value); err != nil {
				return err
			}

		case KeySinkType, KeySinkParam, KeySinkInclude:
			if value == "" {
				return errors.Newf("option %q requires a value", key)
			}

			switch key {
			case KeySinkType:
				o.SinkType = value
			case KeySinkParam:
				o.SinkParam = value
			default:
				o.SinkInclude = value
			}

		default:
			err := errors.Newf("unknown option %q", key)
			if hint := suggest.Hint(suggest.Suggest(key, Known())); hint != "" {
				err = errors.WithHint(err, hint)
			}

			return errors.WithHintf(err, "known options: %s", strings.Join(Known(), ", "))
		}
	}

	return nil
}

// SetPureEnums applies a pure_enums value: "" for plain enums, "enum_class"
// for scoped enums.
func (o *Options) SetPureEnums(value string) error {
	o.Flags &^= FlagPureEnums | FlagEnumClass

	switch value {
	case "":
		o.Flags |= FlagPureEnums
	case enumClassValue:
		o.Flags |= FlagEnumClass
	default:
		return errors.Newf("option %s: unsupported value %q (want %q or no value)",
			KeyPureEnums, value, enumClassValue)
	}

	return nil
}

// Known returns the accepted option keys, sorted.
func Known() []string {
	keys := []string{
		KeyTemplateStreamOp, KeyPrivateOptional, KeyPureEnums,
		KeySinkType, KeySinkParam, KeySinkInclude,
	}
	slices.Sort(keys)

	return keys
}
