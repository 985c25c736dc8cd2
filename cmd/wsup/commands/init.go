package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/wsup/cmd/wsup/handlers"
)

// Init returns the command for interactively creating a configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "wsup.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a workstation configuration",
		Long: `Interactively create a workstation configuration file.

The wizard asks for the project, region, workstation name, machine type,
image and the principal that should be allowed to use the workstation.
Everything else is written with its default and can be edited later.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "wsup.yaml", "Output file path")

	return cmd
}
