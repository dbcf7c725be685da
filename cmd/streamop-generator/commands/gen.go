package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"streamop-generator/internal/config"
	"streamop-generator/internal/gen"
	"streamop-generator/internal/logger"
	"streamop-generator/internal/watch"
)

func newGenCmd(configFile *string) *cobra.Command {
	var watchFiles bool

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate C++ print bindings",
		Long: `Generate the C++ print bindings of a descriptor document.

Concrete bindings produce <program>_types.h and <program>_types.cpp.
With template_streamop the bindings are generic over the stream type and
produce <program>_types.h and <program>_types.tcc.

A configuration conflict, such as a concrete sink type together with
template_streamop, aborts the run before any file is written.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, *configFile)
			if err != nil {
				return err
			}

			if err := generate(cfg); err != nil {
				if !watchFiles {
					return err
				}

				printError(err)
			}

			if !watchFiles {
				return nil
			}

			return watchAndGenerate(cmd, cfg, *configFile)
		},
	}

	addOptionFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "Output directory (default ./gen-cpp)")
	cmd.Flags().String("runtime-include", "", "Header declaring apache::thrift::printTo (default <thrift/TPrintTo.h>)")
	cmd.Flags().Bool("comments", true, "Copy descriptor docs into the generated code")
	cmd.Flags().BoolVarP(&watchFiles, "watch", "w", false, "Regenerate whenever the descriptor or config file changes")

	return cmd
}

// generate runs one generation and writes its artifact set.
func generate(cfg *config.Config) error {
	log := logger.Component("gen")

	opts, err := cfg.GenerationOptions()
	if err != nil {
		return err
	}

	prog, err := loadProgram(cfg.Input)
	if err != nil {
		return err
	}

	g := gen.NewGenerator(cfg.GeneratorConfig())

	files, err := g.Generate(prog, opts)
	if err != nil {
		return err
	}

	log.Debugw("binding selected", "spec", g.Spec().String(), "options", opts.String())

	if err := gen.WriteFiles(files, cfg.Output); err != nil {
		return err
	}

	for _, f := range files {
		log.Infow("wrote file", "file", f.Filename, "kind", f.Kind.String(), "bytes", len(f.Content))
	}

	pterm.Success.Printfln("Generated %d files for %s (%s) in %s",
		len(files), prog.Name, g.Spec().String(), cfg.Output)

	return nil
}

func watchAndGenerate(cmd *cobra.Command, cfg *config.Config, configFile string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	files := []string{cfg.Input}
	if cfg.File != "" {
		files = append(files, cfg.File)
	}

	w, err := watch.New(files, watch.DefaultDebounce)
	if err != nil {
		return errors.Wrap(err, "failed to start watching")
	}

	pterm.Info.Printfln("Watching %d file(s), press Ctrl+C to stop", len(files))

	return w.Run(ctx, func(_ context.Context, changed []string) error {
		logger.Infow("regenerating", "changed", changed)

		next, err := loadConfig(cmd, configFile)
		if err != nil {
			return err
		}

		return generate(next)
	})
}
