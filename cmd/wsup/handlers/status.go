package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/imamik/wsup/internal/config"
	"github.com/imamik/wsup/internal/orchestration"
	"github.com/imamik/wsup/internal/ui/tui"
)

// Output formats of the status command.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

const defaultWatchInterval = 5 * time.Second

// StatusOptions carries the status command flags.
type StatusOptions struct {
	ConfigPath string
	Output     string
	Watch      bool
	Interval   time.Duration
}

var (
	// describe reads the hierarchy.
	describe = orchestration.Describe

	// runWatchTUI runs the interactive watch.
	runWatchTUI = tui.RunWatch
)

// Status describes the cluster, config and workstation and prints the
// result once, or repeatedly with Watch.
func Status(ctx context.Context, opts StatusOptions) error {
	format, err := parseOutput(opts.Output)
	if err != nil {
		return err
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultWatchInterval
	}

	cfg, client, err := connect(ctx, config.LoadOptions{Path: opts.ConfigPath})
	if err != nil {
		return err
	}
	defer client.Close()

	fetch := func(ctx context.Context) (*orchestration.Status, error) {
		return describe(ctx, client, cfg)
	}

	if opts.Watch {
		if format == OutputText && isInteractiveTTY() {
			return runWatchTUI(ctx, fetch, cfg.Workstation.Name, cfg.Region, interval)
		}
		return statusWatch(ctx, fetch, format, interval)
	}

	st, err := fetch(ctx)
	if st != nil {
		if rerr := renderStatus(stdout, st, format, isInteractiveTTY()); rerr != nil {
			return rerr
		}
	}
	if err != nil {
		return fmt.Errorf("failed to describe workstation: %w", err)
	}
	return nil
}

// statusWatch prints one line (or document) per interval until ctx is
// cancelled. Describe failures are printed and do not end the watch.
func statusWatch(ctx context.Context, fetch tui.FetchFunc, format string, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		st, err := fetch(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if st != nil {
			if rerr := renderWatchLine(stdout, st, format); rerr != nil {
				return rerr
			}
		}
		if err != nil {
			fmt.Fprintf(stdout, "Error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func parseOutput(output string) (string, error) {
	switch output {
	case "", OutputText:
		return OutputText, nil
	case OutputJSON, OutputYAML:
		return output, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want text, json or yaml)", output)
	}
}
