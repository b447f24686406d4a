// Package logging builds the per-run structured logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options selects the level, handler format and sink of a run logger.
type Options struct {
	Level  string // debug, info, warn or error; anything else means info
	Format string // "json" or "text"
	// Path is the log file, opened in append mode. "" or "-" logs to stderr.
	Path string
}

// ParseLevel converts a level name into a slog.Level.
func ParseLevel(v string) slog.Level {
	switch strings.ToLower(v) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger writing to w.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Open creates the logger described by opts. The returned closer releases
// the log file and must be called once the run is over.
func Open(opts Options) (*slog.Logger, io.Closer, error) {
	level := ParseLevel(opts.Level)
	if opts.Path == "" || opts.Path == "-" {
		return New(os.Stderr, level, opts.Format), nopCloser{}, nil
	}

	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return New(f, level, opts.Format), f, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
