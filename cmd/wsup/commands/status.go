package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/imamik/wsup/cmd/wsup/handlers"
)

// Status returns the command that describes the workstation hierarchy.
func Status() *cobra.Command {
	var opts handlers.StatusOptions

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the cluster, config and workstation state",
		Long: `Show whether the cluster, config and workstation exist, and the
workstation's state and host.

Use --watch to refresh on an interval. On a terminal this opens a live
view (press q to quit); otherwise one line is printed per interval.

Examples:
  wsup status
  wsup status -o json
  wsup status --watch --interval 10s`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: wsup.yaml)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", handlers.OutputText, "Output format: text, json or yaml")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Refresh continuously")
	cmd.Flags().DurationVar(&opts.Interval, "interval", 5*time.Second, "Refresh interval for --watch")

	return cmd
}
