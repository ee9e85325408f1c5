// Package logging configures the structured logger shared by congram's
// components. Logs go to stderr so stdout stays free for rendered output.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Config configures the logger.
type Config struct {
	// Level is the minimum level to output: debug, info, warn or error.
	Level string
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
	// Prefix is prepended to all log messages.
	Prefix string
	// Timestamps enables a timestamp on every line.
	Timestamps bool
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Output: os.Stderr,
		Prefix: "congram",
	}
}

// ParseLevel parses a level name. Unknown names map to info.
func ParseLevel(s string) log.Level {
	switch strings.ToLower(s) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ValidLevel returns true if s names a supported level.
func ValidLevel(s string) bool {
	switch strings.ToLower(s) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// New creates a logger from cfg.
func New(cfg Config) *log.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	return log.NewWithOptions(cfg.Output, log.Options{
		Level:           ParseLevel(cfg.Level),
		Prefix:          cfg.Prefix,
		ReportTimestamp: cfg.Timestamps,
		TimeFormat:      time.TimeOnly,
	})
}

// WithComponent returns a child logger tagged with a component name.
func WithComponent(l *log.Logger, component string) *log.Logger {
	return l.With("component", component)
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
