// Package logging builds the register's zerolog logger. The TUI owns the
// terminal, so output goes to a file.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	Level      string // trace, debug, info, warn, error, disabled
	File       string // empty = discard
	TimeFormat string
}

// ParseLevel maps a config level name to a zerolog level. Unknown names
// fall back to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New returns a logger writing to w at the given level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Open creates the log file named in cfg (and its directory) and returns a
// logger writing to it together with a close func. An empty File yields a
// no-op logger.
func Open(cfg Config) (zerolog.Logger, func() error, error) {
	if cfg.File == "" {
		return zerolog.Nop(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("logging: mkdir %q: %w", filepath.Dir(cfg.File), err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("logging: open %q: %w", cfg.File, err)
	}
	tf := cfg.TimeFormat
	if tf == "" {
		tf = time.RFC3339
	}
	out := zerolog.ConsoleWriter{Out: f, TimeFormat: tf, NoColor: true}
	return New(out, ParseLevel(cfg.Level)), f.Close, nil
}

// WithContext returns a new context with the logger attached.
func WithContext(ctx context.Context, log zerolog.Logger) context.Context {
	return log.WithContext(ctx)
}

// FromContext extracts the logger from ctx. If none is attached a disabled
// logger is returned.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithComponent returns a child logger tagged with a component field.
func WithComponent(log zerolog.Logger, component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
