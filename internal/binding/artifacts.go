package binding

import "streamop-generator/internal/common"

// ArtifactKind is the role of a generated file.
type ArtifactKind int

const (
	// ArtifactDeclarations holds types, prototypes and template declarations.
	ArtifactDeclarations ArtifactKind = iota
	// ArtifactImplementation holds compiled bodies (ModeConcrete).
	ArtifactImplementation
	// ArtifactTemplateBodies holds out-of-line template bodies, included by
	// the declarations header (ModeGeneric).
	ArtifactTemplateBodies
)

// String returns a human-readable kind name.
func (k ArtifactKind) String() string {
	switch k {
	case ArtifactDeclarations:
		return "declarations"
	case ArtifactImplementation:
		return "implementation"
	case ArtifactTemplateBodies:
		return "template bodies"
	default:
		return common.UnknownStr
	}
}

// Artifact is one file of an artifact set.
type Artifact struct {
	Kind     ArtifactKind
	Filename string
}

// ArtifactSet is the set of files one generation run writes. It depends on
// the mode alone; there are no per-type overrides.
type ArtifactSet struct {
	Mode         Mode
	Declarations Artifact
	Body         Artifact
}

// Artifacts returns the artifact set for a program under spec:
//
//	Concrete: <program>_types.h + <program>_types.cpp
//	Generic:  <program>_types.h + <program>_types.tcc
func Artifacts(spec Spec, program string) ArtifactSet {
	base := program + "_types"

	set := ArtifactSet{
		Mode:         spec.Mode,
		Declarations: Artifact{Kind: ArtifactDeclarations, Filename: base + ".h"},
		Body:         Artifact{Kind: ArtifactImplementation, Filename: base + ".cpp"},
	}

	if spec.Mode == ModeGeneric {
		set.Body = Artifact{Kind: ArtifactTemplateBodies, Filename: base + ".tcc"}
	}

	return set
}

// All returns the artifacts in write order.
func (a ArtifactSet) All() []Artifact {
	return []Artifact{a.Declarations, a.Body}
}

// Filenames returns the file names in write order.
func (a ArtifactSet) Filenames() []string {
	return []string{a.Declarations.Filename, a.Body.Filename}
}

// IncludesBody reports whether the declarations header must include the
// body file at its end.
func (a ArtifactSet) IncludesBody() bool {
	return a.Body.Kind == ArtifactTemplateBodies
}
