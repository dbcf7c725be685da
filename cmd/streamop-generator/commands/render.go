package commands

import (
	"bufio"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"streamop-generator/internal/binding"
	"streamop-generator/internal/descriptor"
	"streamop-generator/internal/render"
	"streamop-generator/printto"
)

func newRenderCmd(configFile *string) *cobra.Command {
	var typeName, valuePath string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print a value with the text grammar of the generated bindings",
		Long: `Decode a YAML value document as an instance of a descriptor struct and print
it with the grammar the generated operator<< uses.

Enum values may be given by name or number. Unset optional fields print as
<null>.

Two things differ from the compiled C++ output: map entries and set elements
keep the order of the document (std::map and std::set print sorted by key),
and bools inside containers print true/false (the C++ runtime prints 1/0).

Use --value - to read the value from standard input.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, *configFile)
			if err != nil {
				return err
			}

			opts, err := cfg.GenerationOptions()
			if err != nil {
				return err
			}

			spec, err := binding.Select(opts)
			if err != nil {
				return err
			}

			prog, err := loadProgram(cfg.Input)
			if err != nil {
				return err
			}

			data, err := readValue(cmd, valuePath)
			if err != nil {
				return err
			}

			return renderValue(cmd.OutOrStdout(), spec, prog, typeName, data)
		},
	}

	addOptionFlags(cmd)
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "Struct to render")
	cmd.Flags().StringVar(&valuePath, "value", "-", "YAML value document, - for stdin")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func readValue(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return data, errors.Wrap(err, "failed to read value from stdin")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read value file %s", path)
	}

	return data, nil
}

// renderValue prints with a sink matching the binding mode: a buffered writer
// for generic bindings, the writer itself for concrete ones. Both produce the
// same text.
func renderValue(out io.Writer, spec binding.Spec, prog *descriptor.Program, typeName string, data []byte) error {
	if spec.Mode == binding.ModeGeneric {
		bw := bufio.NewWriter(out)

		if err := renderWith(bw, prog, typeName, data); err != nil {
			return err
		}

		return errors.Wrap(bw.Flush(), "failed to write output")
	}

	if sw, ok := out.(io.StringWriter); ok {
		return renderWith(sw, prog, typeName, data)
	}

	bw := bufio.NewWriter(out)

	if err := renderWith[io.StringWriter](bw, prog, typeName, data); err != nil {
		return err
	}

	return errors.Wrap(bw.Flush(), "failed to write output")
}

func renderWith[S printto.Sink](sink S, prog *descriptor.Program, typeName string, data []byte) error {
	printer, err := render.Compile[S](prog).Struct(typeName)
	if err != nil {
		return err
	}

	v, err := render.DecodeYAML(data, prog.Struct(typeName).Ref())
	if err != nil {
		return errors.Wrapf(err, "decoding %s value", typeName)
	}

	printer(sink, v)

	_, err = sink.WriteString("\n")

	return errors.Wrap(err, "failed to write output")
}
