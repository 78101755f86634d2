// Package logging sets up the leveled stderr logger shared by the CLI,
// the store and the TUI.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Options holds configuration for the logger.
type Options struct {
	Level           log.Level
	ReportTimestamp bool
	Prefix          string
}

// DefaultOptions returns quiet defaults: only warnings and errors show.
func DefaultOptions() Options {
	return Options{
		Level:  log.WarnLevel,
		Prefix: "todo",
	}
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	})
}

// Setup configures the default logger on stderr and returns it.
func Setup(level string) *log.Logger {
	opts := DefaultOptions()
	opts.Level = ParseLevel(level)
	l := New(os.Stderr, opts)
	log.SetDefault(l)
	return l
}

// ParseLevel maps a config string to a level. Unknown values yield warn.
func ParseLevel(s string) log.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning", "":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}
