package nova

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/mattn/go-isatty"
)

// LevelFatal marks errors that end the run. It sorts above slog.LevelError.
const LevelFatal = slog.Level(12)

// nopHandler is a slog.Handler that silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the package logger. Accessed atomically so that
// SetLogger can race with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger sets the logger used by components that were not given one with
// WithLogger. By default nova produces no log output. Pass nil to restore
// that.
//
// Log levels used by nova:
//   - [slog.LevelDebug]: frame statistics, platform details
//   - [slog.LevelInfo]: lifecycle (window created, run started/stopped), object traces
//   - [slog.LevelWarn]: recoverable platform issues
//   - [slog.LevelError]: cosmetic failures (icon, screenshot), assertion failures
//   - [LevelFatal]: errors that end the run
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the package logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// NewConsoleLogger returns a logger writing to f at the given level. It uses
// a text handler when f is a terminal and a JSON handler otherwise, so piped
// output stays machine-readable.
func NewConsoleLogger(f *os.File, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level, ReplaceAttr: replaceLevel}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return slog.New(slog.NewTextHandler(f, opts))
	}
	return slog.New(slog.NewJSONHandler(f, opts))
}

// replaceLevel names LevelFatal "FATAL" in handler output.
func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelFatal {
			a.Value = slog.StringValue("FATAL")
		}
	}
	return a
}
