package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"streamop-generator/internal/binding"
)

func newCheckCmd(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a descriptor document and generator options",
		Long: `Resolve a descriptor document, validate the generator options against it and
list the files gen would produce. Nothing is written.`,
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

			restricted := 0

			for _, s := range prog.Structs {
				if binding.VisibilityOf(opts, s) == binding.VisibilityRestricted {
					restricted++
				}
			}

			artifacts := binding.Artifacts(spec, prog.Name)

			data := pterm.TableData{{"File", "Role"}}
			for _, a := range artifacts.All() {
				data = append(data, []string{a.Filename, a.Kind.String()})
			}

			pterm.Success.Printfln("%s: %d enums, %d typedefs, %d structs (%d with friend grants), binding %s",
				prog.Name, len(prog.Enums), len(prog.Typedefs), len(prog.Structs), restricted, spec.String())

			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		},
	}

	addOptionFlags(cmd)

	return cmd
}
