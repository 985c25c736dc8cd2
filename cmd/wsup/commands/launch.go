package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/imamik/wsup/cmd/wsup/handlers"
)

// Launch returns the command that installs and supervises the IDE inside
// a workstation image.
func Launch() *cobra.Command {
	var opts handlers.LaunchOptions

	cmd := &cobra.Command{
		Use:   "launch --url URL --binary PATH [-- args...]",
		Short: "Install and run the IDE, restarting it on failure",
		Long: `Download an IDE archive, unpack it and keep its binary running.

The archive is only downloaded when the binary is not installed yet. When
the process exits with an error it is relaunched after --delay, up to
--attempts times.

Examples:
  wsup launch --url https://example.com/ide.tar.gz --binary bin/ide.sh -- --port 80`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Args = args
			return handlers.Launch(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.URL, "url", "", "URL of the IDE archive or binary")
	cmd.Flags().StringVar(&opts.Binary, "binary", "", "Path of the executable inside the install directory")
	cmd.Flags().StringVar(&opts.InstallDir, "install-dir", "/opt/ide", "Directory the archive is unpacked into")
	cmd.Flags().IntVar(&opts.Attempts, "attempts", 5, "Maximum number of launches")
	cmd.Flags().DurationVar(&opts.Delay, "delay", 5*time.Second, "Pause before a relaunch")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")
	_ = cmd.MarkFlagRequired("binary")

	return cmd
}
