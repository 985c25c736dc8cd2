package handlers

import (
	"context"
	"os"
	"time"

	"github.com/imamik/wsup/internal/launcher"
)

// LaunchOptions carries the launch command flags.
type LaunchOptions struct {
	URL        string
	Binary     string
	InstallDir string
	Attempts   int
	Delay      time.Duration
	Args       []string
	Verbose    bool
}

// runLauncher installs and supervises the IDE.
var runLauncher = func(ctx context.Context, l *launcher.Launcher) error {
	return l.Run(ctx)
}

// Launch installs the IDE archive if needed and keeps its process running.
func Launch(ctx context.Context, opts LaunchOptions) error {
	log, sync := newLogger(opts.Verbose)
	defer sync()

	l := &launcher.Launcher{
		URL:         opts.URL,
		InstallDir:  opts.InstallDir,
		Binary:      opts.Binary,
		Args:        opts.Args,
		MaxAttempts: opts.Attempts,
		Delay:       opts.Delay,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Log:         log.WithName("launcher"),
	}
	return runLauncher(ctx, l)
}
