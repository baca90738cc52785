// Package logging builds the structured slog loggers used by the micrograd CLI.
//
// Output goes to stderr by default so that rendered graphs on stdout stay
// machine-readable:
//
//	logger := logging.New(logging.Config{Level: logging.LevelDebug, Service: "micrograd"})
//	logger.Info("backward complete", "mode", "topological")
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level represents log severity levels, ordered by severity.
type Level int

const (
	// LevelDebug is for development troubleshooting.
	LevelDebug Level = iota
	// LevelInfo is for normal operational messages.
	LevelInfo
	// LevelWarn is for potentially problematic situations.
	LevelWarn
	// LevelError is for error conditions.
	LevelError
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel parses "debug", "info", "warn" or "error" (case-insensitive).
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Format selects the handler encoding.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config configures a logger.
type Config struct {
	// Level sets the minimum log level. Default: LevelInfo.
	Level Level

	// Format selects text or JSON output. Default: FormatText.
	Format Format

	// Output receives log records. Default: os.Stderr.
	Output io.Writer

	// Service is attached to every record as the "service" attribute when set.
	Service string
}

// New creates a slog.Logger from config.
func New(config Config) *slog.Logger {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: config.Level.toSlogLevel()}

	var handler slog.Handler
	if config.Format == FormatJSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler)
	if config.Service != "" {
		logger = logger.With("service", config.Service)
	}
	return logger
}
