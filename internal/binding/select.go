package binding

import (
	"strings"

	"github.com/cockroachdb/errors"

	"streamop-generator/internal/descriptor"
	"streamop-generator/options"
)

// Sink defaults.
const (
	DefaultSinkType    = "std::ostream"
	DefaultSinkParam   = "OStream_"
	DefaultSinkInclude = "<ostream>"
)

// ErrConflict marks option combinations that cannot produce one binding.
var ErrConflict = errors.New("conflicting binding options")

// Spec is the binding chosen for one generation run. Every struct and enum
// in the run inherits it.
type Spec struct {
	Mode Mode

	// SinkType is the concrete sink type. Set only in ModeConcrete.
	SinkType string
	// SinkParam is the template parameter name. Set only in ModeGeneric.
	SinkParam string
	// SinkInclude is the header that declares the sink type, e.g. "<ostream>"
	// or "\"my_stream.h\"". Empty in ModeGeneric unless requested.
	SinkInclude string
}

// Select chooses the binding for a run. It is pure and total: absent
// template_streamop selects ModeConcrete with DefaultSinkType, present
// selects ModeGeneric with DefaultSinkParam. Overrides that contradict the
// chosen mode are rejected with ErrConflict; nothing may be generated then.
func Select(o options.Options) (Spec, error) {
	if o.Has(options.FlagTemplateStreamOp) {
		if o.SinkType != "" {
			return Spec{}, errors.WithHintf(
				errors.Wrapf(ErrConflict, "%s=%s names a concrete sink but %s asks for a sink parameter",
					options.KeySinkType, o.SinkType, options.KeyTemplateStreamOp),
				"drop %s or %s; use %s to rename the parameter",
				options.KeySinkType, options.KeyTemplateStreamOp, options.KeySinkParam)
		}

		param := o.SinkParam
		if param == "" {
			param = DefaultSinkParam
		}

		if !descriptor.IsValidIdent(param) || descriptor.IsReserved(param) {
			return Spec{}, errors.Wrapf(ErrConflict, "%s=%s is not a usable template parameter name",
				options.KeySinkParam, param)
		}

		return Spec{
			Mode:        ModeGeneric,
			SinkParam:   param,
			SinkInclude: o.SinkInclude,
		}, nil
	}

	if o.SinkParam != "" {
		return Spec{}, errors.WithHintf(
			errors.Wrapf(ErrConflict, "%s=%s needs %s",
				options.KeySinkParam, o.SinkParam, options.KeyTemplateStreamOp),
			"add %s, or use %s to change the concrete sink",
			options.KeyTemplateStreamOp, options.KeySinkType)
	}

	sinkType := o.SinkType
	if sinkType == "" {
		sinkType = DefaultSinkType
	}

	if !isQualifiedName(sinkType) {
		return Spec{}, errors.Wrapf(ErrConflict, "%s=%s is not a C++ type name", options.KeySinkType, sinkType)
	}

	include := o.SinkInclude
	if include == "" && sinkType == DefaultSinkType {
		include = DefaultSinkInclude
	}

	return Spec{
		Mode:        ModeConcrete,
		SinkType:    sinkType,
		SinkInclude: include,
	}, nil
}

// SinkRef is the type the sink is referred to by in signatures.
func (s Spec) SinkRef() string {
	if s.Mode == ModeGeneric {
		return s.SinkParam
	}

	return s.SinkType
}

// TemplateLine is the line that introduces a generic binding, or "" for a
// concrete one.
func (s Spec) TemplateLine() string {
	if s.Mode != ModeGeneric {
		return ""
	}

	return "template <typename " + s.SinkParam + ">"
}

// String describes the spec, e.g. "generic<OStream_>".
func (s Spec) String() string {
	return s.Mode.String() + "<" + s.SinkRef() + ">"
}

// VisibilityOf reports the visibility of a struct under the given options:
// restricted when private_optional is set and the struct has an optional
// field.
func VisibilityOf(o options.Options, s *descriptor.Struct) Visibility {
	if o.Has(options.FlagPrivateOptional) && s.HasOptional() {
		return VisibilityRestricted
	}

	return VisibilityOpen
}

// isQualifiedName accepts names such as "std::ostream", "::my::Sink" and
// "Sink".
func isQualifiedName(s string) bool {
	s = strings.TrimPrefix(s, "::")
	if s == "" {
		return false
	}

	for part := range strings.SplitSeq(s, "::") {
		if !descriptor.IsValidIdent(part) {
			return false
		}
	}

	return true
}
