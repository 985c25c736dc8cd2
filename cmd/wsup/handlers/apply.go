package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/wsup/internal/config"
	"github.com/imamik/wsup/internal/provisioning"
)

// ApplyOptions carries the apply command flags.
type ApplyOptions struct {
	ConfigPath  string
	SkipBuild   bool
	NoWait      bool
	NoVerify    bool
	MetricsFile string
	Verbose     bool
}

// overrides maps the flags onto config keys. Only flags that were set
// override the file and environment.
func (o ApplyOptions) overrides() map[string]any {
	out := map[string]any{}
	if o.SkipBuild {
		out["build.enabled"] = false
	}
	if o.NoWait {
		out["reconcile.waitForRunning"] = false
	}
	if o.NoVerify {
		out["reconcile.verify"] = false
	}
	return out
}

// Apply reconciles the cluster, config and workstation to the configured
// state and prints the resulting endpoint.
//
// The workflow:
//  1. Loads and validates the configuration (file, environment, flags)
//  2. Connects to the Google Cloud APIs
//  3. Runs the infrastructure, image, compute and access phases
//  4. Prints the workstation endpoint
//
// When a metrics file is given, metrics are written even if the reconcile
// fails.
func Apply(ctx context.Context, opts ApplyOptions) (err error) {
	log, sync := newLogger(opts.Verbose)
	defer sync()

	if opts.MetricsFile != "" {
		defer func() {
			if werr := writeMetrics(opts.MetricsFile); werr != nil {
				log.Error(werr, "failed to write metrics")
			}
		}()
	}

	cfg, client, err := connect(ctx, config.LoadOptions{Path: opts.ConfigPath, Overrides: opts.overrides()})
	if err != nil {
		return err
	}
	defer client.Close()

	log.Info("reconciling workstation",
		"project", cfg.Project,
		"region", cfg.Region,
		"cluster", cfg.Cluster.Name,
		"workstation", cfg.Workstation.Name)

	reconciler := newReconciler(client, cfg, provisioning.NewLogObserver(log))
	endpoint, err := reconciler.Reconcile(ctx)
	if err != nil {
		return fmt.Errorf("reconcile failed: %w", err)
	}

	printEndpoint(endpoint)
	return nil
}

func printEndpoint(ep *provisioning.Endpoint) {
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "Workstation %s is %s\n", ep.Workstation, displayState(ep.State))
	if ep.Host != "" {
		fmt.Fprintf(stdout, "  Host:      %s\n", ep.Host)
	}
	if ep.URL != "" {
		fmt.Fprintf(stdout, "  URL:       %s\n", ep.URL)
		reach := "no"
		if ep.Reachable {
			reach = "yes"
		}
		fmt.Fprintf(stdout, "  Reachable: %s\n", reach)
	}
}
