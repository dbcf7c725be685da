package gen

import (
	"bytes"
	"slices"
	"text/template"

	"github.com/cockroachdb/errors"

	"streamop-generator/internal/binding"
	"streamop-generator/internal/descriptor"
	"streamop-generator/options"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// GenerateComments copies descriptor docs into the generated code.
	GenerateComments bool
	// RuntimeInclude is the header that declares apache::thrift::printTo.
	RuntimeInclude string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		OutputDir:        "./gen-cpp",
		GenerateComments: true,
		RuntimeInclude:   "<thrift/TPrintTo.h>",
	}
}

// Generator generates C++ print bindings from a resolved program.
// A Generator serves one run at a time.
type Generator struct {
	config GeneratorConfig

	// per-run state, reset by Generate
	prog      *descriptor.Program
	opts      options.Options
	spec      binding.Spec
	artifacts binding.ArtifactSet
	types     typeFormatter
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated C++ source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "ThriftTest_types.h").
	Filename string
	// Kind is the role of the file in the artifact set.
	Kind binding.ArtifactKind
	// Content is the generated source.
	Content []byte
}

// Generate generates the artifact set for prog under opts. A binding
// configuration error aborts the run before anything is produced.
func (g *Generator) Generate(prog *descriptor.Program, opts options.Options) ([]GeneratedFile, error) {
	if prog == nil {
		return nil, errors.New("no program to generate")
	}

	spec, err := binding.Select(opts)
	if err != nil {
		return nil, errors.Wrap(err, "selecting print binding")
	}

	g.prog = prog
	g.opts = opts
	g.spec = spec
	g.artifacts = binding.Artifacts(spec, prog.Name)
	g.types = typeFormatter{opts: opts}

	header, err := g.render(g.headerData())
	if err != nil {
		return nil, errors.Wrapf(err, "generating %s", g.artifacts.Declarations.Filename)
	}

	body, err := g.render(g.bodyData())
	if err != nil {
		return nil, errors.Wrapf(err, "generating %s", g.artifacts.Body.Filename)
	}

	return []GeneratedFile{
		{Filename: g.artifacts.Declarations.Filename, Kind: g.artifacts.Declarations.Kind, Content: header},
		{Filename: g.artifacts.Body.Filename, Kind: g.artifacts.Body.Kind, Content: body},
	}, nil
}

// Spec returns the binding chosen by the last Generate call.
func (g *Generator) Spec() binding.Spec {
	return g.spec
}

// Artifacts returns the artifact set of the last Generate call.
func (g *Generator) Artifacts() binding.ArtifactSet {
	return g.artifacts
}

// fileData is the skeleton shared by every generated file.
type fileData struct {
	Guard            string
	Includes         []string
	Namespace        []string
	Body             string
	TrailingIncludes []string
}

// NamespaceClose lists the namespace components innermost first.
func (d fileData) NamespaceClose() []string {
	closing := slices.Clone(d.Namespace)
	slices.Reverse(closing)

	return closing
}

func (g *Generator) render(data fileData) ([]byte, error) {
	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "executing template")
	}

	return buf.Bytes(), nil
}

func (g *Generator) headerData() fileData {
	includes := []string{"<cstdint>", "<map>", "<set>", "<string>", "<vector>"}

	if g.spec.SinkInclude != "" && !slices.Contains(includes, g.spec.SinkInclude) {
		includes = append(includes, g.spec.SinkInclude)
	}

	includes = append(includes, g.config.RuntimeInclude)

	data := fileData{
		Guard:     g.prog.Name + "_TYPES_H",
		Includes:  includes,
		Namespace: g.prog.Namespace,
		Body:      g.headerBody(),
	}

	if g.artifacts.IncludesBody() {
		data.TrailingIncludes = []string{quote(g.artifacts.Body.Filename)}
	}

	return data
}

func (g *Generator) bodyData() fileData {
	data := fileData{
		Includes:  []string{quote(g.artifacts.Declarations.Filename)},
		Namespace: g.prog.Namespace,
		Body:      g.bodyBody(),
	}

	if g.spec.Mode == binding.ModeGeneric {
		data.Guard = g.prog.Name + "_TYPES_TCC"
	}

	return data
}

func quote(s string) string {
	return `"` + s + `"`
}

var fileTemplate = template.Must(template.New("file").Parse(`/**
 * Autogenerated by streamop-generator
 *
 * DO NOT EDIT UNLESS YOU ARE SURE THAT YOU KNOW WHAT YOU ARE DOING
 *  @generated
 */
{{if .Guard}}#ifndef {{.Guard}}
#define {{.Guard}}

{{end}}{{range .Includes}}#include {{.}}
{{end}}
{{range .Namespace}}namespace {{.}} {
{{end}}
{{.Body}}
{{range .NamespaceClose}}} // namespace {{.}}
{{end}}{{range .TrailingIncludes}}
#include {{.}}
{{end}}{{if .Guard}}
#endif // {{.Guard}}
{{end}}`))
