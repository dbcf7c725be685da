// Package commands holds the cobra commands of streamop-generator.
package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"streamop-generator/internal/config"
	"streamop-generator/internal/descriptor"
	"streamop-generator/internal/diagnostic"
	"streamop-generator/internal/logger"
)

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()

	err := root.Execute()

	logger.Cleanup()

	if err != nil {
		printError(err)
		return 1
	}

	return 0
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "streamop-generator",
		Short: "Generate C++ print bindings from Thrift type descriptors",
		Long: `streamop-generator turns resolved Thrift type descriptors into C++ print
bindings: a printTo member and an operator<< for every struct, and
operator<< plus to_string for every enum.

Bindings are either concrete (std::ostream, .h + .cpp) or generic over the
stream type (template_streamop, .h + .tcc).

Settings come from flags, STREAMOP_* environment variables and an optional
streamop.{toml,yaml,json} config file, in that order of precedence.

Examples:
  streamop-generator gen -i ThriftTest.yaml -o gen-cpp
  streamop-generator gen -i ThriftTest.yaml --options template_streamop,private_optional
  streamop-generator render -i ThriftTest.yaml --type Xtruct --value xtruct.yaml
  streamop-generator check -i ThriftTest.yaml --template-streamop`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ./streamop.{toml,yaml,json} if present)")
	root.PersistentFlags().Bool("log-json", false, "Log as JSON")
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newGenCmd(&configFile),
		newRenderCmd(&configFile),
		newCheckCmd(&configFile),
	)

	return root
}

// addOptionFlags registers the flags that make up generator options.
func addOptionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("input", "i", "", "Descriptor document (.yaml, .toml or .json)")
	f.String("options", "", "Option string, e.g. template_streamop,private_optional,pure_enums=enum_class")
	f.Bool("template-streamop", false, "Make printTo and operator<< generic over the stream type")
	f.Bool("private-optional", false, "Make optional fields private and grant operator<< friendship")
	f.String("pure-enums", "", `Enum style: "plain" or "enum_class"`)
	f.String("sink-type", "", "Concrete stream type (default std::ostream)")
	f.String("sink-param", "", "Stream template parameter name (default OStream_)")
	f.String("sink-include", "", "Header declaring the stream type")
}

// loadConfig merges config file, environment and the flags of cmd and sets up
// logging accordingly.
func loadConfig(cmd *cobra.Command, configFile string) (*config.Config, error) {
	v := config.New()

	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}

	cfg, err := config.Load(v, configFile)
	if err != nil {
		return nil, err
	}

	if err := logger.Initialize(cfg.LogJSON, cfg.Verbose); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}

	if cfg.File != "" {
		logger.Debugw("config loaded", "file", cfg.File)
	}

	if cfg.Input == "" {
		return nil, errors.WithHint(errors.New("no descriptor document given"),
			"pass --input or set input in the config file")
	}

	return cfg, nil
}

// loadProgram loads and resolves the descriptor document, printing its
// diagnostics.
func loadProgram(path string) (*descriptor.Program, error) {
	prog, diags, err := descriptor.Load(path)

	printDiagnostics(diags)

	if err != nil {
		if diags.HasErrors() {
			return nil, errors.Newf("%s: %d error(s) in descriptor", path, len(diags.Errors))
		}

		return nil, err
	}

	logger.Debugw("descriptor resolved",
		"program", prog.Name,
		"enums", len(prog.Enums),
		"structs", len(prog.Structs))

	return prog, nil
}

func printDiagnostics(diags diagnostic.Diagnostics) {
	for _, d := range diags.Warnings {
		pterm.Warning.Println(d.String())
	}

	for _, d := range diags.Errors {
		pterm.Error.Println(d.String())

		for _, s := range d.Suggestions {
			pterm.Info.Println(s)
		}
	}
}

func printError(err error) {
	pterm.Error.Println(err.Error())

	if hint := errors.FlattenHints(err); hint != "" {
		pterm.Info.Println(hint)
	}
}
