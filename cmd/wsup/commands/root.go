// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the wsup CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wsup",
		Short: "Bring up a Cloud Workstation from a single config",
		// main prints the error and sets the exit code.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.AddCommand(Init())
	cmd.AddCommand(Apply())
	cmd.AddCommand(Status())
	cmd.AddCommand(Launch())
	cmd.AddCommand(Version())

	return cmd
}
