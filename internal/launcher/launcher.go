package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/wsup/internal/util/retry"
)

// ErrExhausted is returned when the process failed on every attempt.
var ErrExhausted = errors.New("launch attempts exhausted")

const (
	defaultMaxAttempts      = 5
	defaultDelay            = 5 * time.Second
	defaultDownloadAttempts = 5
)

// Launcher downloads an IDE archive and keeps its binary running.
type Launcher struct {
	// URL of a .tar.gz archive or of the bare binary.
	URL string

	// InstallDir receives the unpacked archive.
	InstallDir string

	// Binary is the executable's path inside InstallDir.
	Binary string

	Args []string

	// MaxAttempts bounds how often the process is started. Defaults to 5.
	MaxAttempts int

	// Delay is the pause before a relaunch and the initial download backoff.
	Delay time.Duration

	// Env is appended to the current environment.
	Env []string

	HTTPClient *http.Client
	Stdout     io.Writer
	Stderr     io.Writer
	Log        logr.Logger
}

// BinaryPath returns the absolute location of the executable.
func (l *Launcher) BinaryPath() string {
	return filepath.Join(l.InstallDir, filepath.Clean(l.Binary))
}

// Run installs the binary if it is not present yet, then starts it until it
// exits cleanly. It returns nil after a clean exit, ctx.Err() when
// cancelled and an error wrapping ErrExhausted when attempts run out.
func (l *Launcher) Run(ctx context.Context) error {
	if err := l.validate(); err != nil {
		return err
	}

	if err := l.Install(ctx); err != nil {
		return err
	}

	return l.supervise(ctx)
}

func (l *Launcher) validate() error {
	if l.InstallDir == "" {
		return errors.New("install directory is required")
	}
	if l.Binary == "" {
		return errors.New("binary path is required")
	}
	if !isWithin(l.InstallDir, l.BinaryPath()) {
		return fmt.Errorf("binary path %q escapes the install directory", l.Binary)
	}
	return nil
}

// Install downloads and unpacks the archive unless the binary exists.
func (l *Launcher) Install(ctx context.Context) error {
	bin := l.BinaryPath()
	if info, err := os.Stat(bin); err == nil && !info.IsDir() {
		l.Log.V(1).Info("binary already installed, skipping download", "path", bin)
		return nil
	}
	if l.URL == "" {
		return fmt.Errorf("binary %s is not installed and no download URL is set", bin)
	}

	if err := os.MkdirAll(l.InstallDir, 0o755); err != nil {
		return fmt.Errorf("failed to create install directory: %w", err)
	}

	path, err := l.download(ctx)
	if err != nil {
		return err
	}
	defer os.Remove(path)

	if err := l.unpack(path, bin); err != nil {
		return err
	}
	if err := os.Chmod(bin, 0o755); err != nil {
		return fmt.Errorf("failed to mark %s executable: %w", bin, err)
	}

	l.Log.Info("installed IDE", "path", bin)
	return nil
}

func (l *Launcher) unpack(archive, bin string) error {
	f, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer f.Close()

	gz, err := isGzip(f)
	if err != nil {
		return fmt.Errorf("failed to inspect download: %w", err)
	}

	if !gz {
		if err := os.MkdirAll(filepath.Dir(bin), 0o755); err != nil {
			return err
		}
		return copyFile(f, bin, 0o755)
	}

	if err := extractTarGz(f, l.InstallDir); err != nil {
		return fmt.Errorf("failed to extract %s: %w", l.URL, err)
	}
	if _, err := os.Stat(bin); err != nil {
		return fmt.Errorf("binary %s not found in archive", l.Binary)
	}
	return nil
}

func (l *Launcher) supervise(ctx context.Context) error {
	attempts := l.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	delay := l.Delay
	if delay <= 0 {
		delay = defaultDelay
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		launchAttempts.Inc()
		l.Log.Info("starting IDE", "binary", l.Binary, "attempt", attempt, "maxAttempts", attempts)

		err := l.start(ctx)
		if err == nil {
			l.Log.Info("IDE exited cleanly")
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		lastErr = err
		launchFailures.Inc()
		l.Log.Error(err, "IDE exited", "attempt", attempt)
		if attempt == attempts {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrExhausted, attempts, lastErr)
}

func (l *Launcher) start(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, l.BinaryPath(), l.Args...)
	cmd.Dir = l.InstallDir
	cmd.Env = append(os.Environ(), l.Env...)
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	return cmd.Run()
}

func (l *Launcher) download(ctx context.Context) (string, error) {
	hc := l.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	initial := l.Delay
	if initial <= 0 {
		initial = time.Second
	}

	tmp, err := os.CreateTemp(l.InstallDir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("failed to create download file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()

	fetch := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
		if err != nil {
			return retry.Fatal(err)
		}
		resp, err := hc.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return retry.Fatal(fmt.Errorf("GET %s returned HTTP %d", l.URL, resp.StatusCode))
		case resp.StatusCode < 200 || resp.StatusCode > 299:
			return fmt.Errorf("GET %s returned HTTP %d", l.URL, resp.StatusCode)
		}

		out, err := os.Create(path)
		if err != nil {
			return retry.Fatal(err)
		}
		if _, err := io.Copy(out, resp.Body); err != nil {
			out.Close()
			return fmt.Errorf("failed to read body of %s: %w", l.URL, err)
		}
		return out.Close()
	}

	err = retry.WithExponentialBackoff(ctx, fetch,
		retry.WithMaxRetries(defaultDownloadAttempts-1),
		retry.WithInitialDelay(initial),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			l.Log.Info("download failed, retrying", "attempt", attempt, "delay", delay, "error", err.Error())
		}),
	)
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to download %s: %w", l.URL, err)
	}
	return path, nil
}
