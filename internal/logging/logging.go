// Package logging builds the logr.Logger used by the wsup CLI.
package logging

import (
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls the CLI logger.
type Options struct {
	// Verbose enables V(1) messages (poll cycles, progress).
	Verbose bool

	// Output defaults to stderr.
	Output io.Writer
}

// New returns a console logger with ISO8601 timestamps, backed by zap.
// The returned sync func flushes buffered entries and should be deferred.
func New(opts Options) (logr.Logger, func()) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.CallerKey = ""
	encCfg.StacktraceKey = ""

	// logr V(1) maps to zap level -1.
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.Verbose {
		level.SetLevel(zapcore.Level(-1))
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(out), level)
	zl := zap.New(core)

	return zapr.NewLogger(zl), func() { _ = zl.Sync() }
}
