package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/wsup/cmd/wsup/handlers"
)

// Apply returns the command that reconciles the workstation hierarchy.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: search for wsup.yaml)
//	--skip-build: Use the configured image without building it
//	--no-wait: Do not wait for the workstation to reach RUNNING after start
//	--no-verify: Skip the HTTP reachability probe
//	--metrics-file: Write metrics in textfile format on exit
//	--verbose, -v: Log poll cycles and progress
//
// Environment variables:
//
//	PROJECT_ID, REGION, WORKSTATION_NAME, ...: see 'wsup init'
//	GOOGLE_APPLICATION_CREDENTIALS: Application Default Credentials
func Apply() *cobra.Command {
	var opts handlers.ApplyOptions

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create or update the workstation",
		Long: `Create or update the workstation cluster, config and instance.

Missing resources are created. An existing config is updated with the
current image, ports and service account, and an existing workstation is
restarted so it picks the new config up.

If no config file is specified, wsup.yaml is searched for from the
current directory upwards. Every value can also come from the environment.

Examples:
  # Reconcile using wsup.yaml
  wsup apply

  # Use a prebuilt image and do not wait for RUNNING
  wsup apply --skip-build --no-wait

  # Reconcile with a specific config file
  wsup apply -c team.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: wsup.yaml)")
	cmd.Flags().BoolVar(&opts.SkipBuild, "skip-build", false, "Skip the image build")
	cmd.Flags().BoolVar(&opts.NoWait, "no-wait", false, "Do not wait for the workstation to reach RUNNING")
	cmd.Flags().BoolVar(&opts.NoVerify, "no-verify", false, "Skip the reachability probe")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write metrics to this file in textfile format")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}
