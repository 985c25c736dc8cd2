// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/mattn/go-isatty"

	"github.com/imamik/wsup/internal/config"
	"github.com/imamik/wsup/internal/logging"
	"github.com/imamik/wsup/internal/metrics"
	"github.com/imamik/wsup/internal/orchestration"
	"github.com/imamik/wsup/internal/platform/gcp"
	"github.com/imamik/wsup/internal/provisioning"
)

// RemoteClient is the control-plane client used by the handlers.
type RemoteClient interface {
	gcp.RemoteClient
	Close() error
}

// Reconciler interface for testing - matches orchestration.Reconciler.
type Reconciler interface {
	Reconcile(ctx context.Context) (*provisioning.Endpoint, error)
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfig assembles the configuration from file, env and flags.
	loadConfig = config.Load

	// newClient dials the Google Cloud APIs.
	newClient = func(ctx context.Context, timeouts *config.Timeouts) (RemoteClient, error) {
		c, err := gcp.NewRealClient(ctx, gcp.WithTimeouts(timeouts))
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	// newReconciler creates the hierarchy reconciler.
	newReconciler = func(client gcp.RemoteClient, cfg *config.Config, observer provisioning.Observer) Reconciler {
		return orchestration.NewReconciler(client, cfg, orchestration.WithObserver(observer))
	}

	// newLogger builds the CLI logger.
	newLogger = func(verbose bool) (logr.Logger, func()) {
		return logging.New(logging.Options{Verbose: verbose})
	}

	// writeMetrics dumps the metrics registry in textfile format.
	writeMetrics = metrics.WriteToTextfile

	// isInteractiveTTY reports whether stdout is a terminal.
	isInteractiveTTY = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	// stdout receives command output.
	stdout io.Writer = os.Stdout
)

// connect loads the configuration and dials the client.
func connect(ctx context.Context, opts config.LoadOptions) (*config.Config, RemoteClient, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	client, err := newClient(ctx, config.LoadTimeouts())
	if err != nil {
		return nil, nil, err
	}
	return cfg, client, nil
}
