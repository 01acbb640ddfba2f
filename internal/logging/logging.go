// Package logging builds the process logger.
//
// The TUI owns stdout/stderr, so logs only go to a file when one is configured;
// otherwise every call is a no-op.
package logging

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	// File receives JSON lines. Empty disables logging.
	File string
	// Level is a zerolog level name; defaults to info.
	Level string
}

// New returns the logger and a closer for the underlying file.
func New(opts Options) (*zerolog.Logger, io.Closer, error) {
	path := strings.TrimSpace(opts.File)
	if path == "" {
		l := zerolog.Nop()
		return &l, nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	l := NewWriter(f, opts.Level)
	return l, f, nil
}

// NewWriter builds a logger writing JSON lines to w.
func NewWriter(w io.Writer, level string) *zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	l := zerolog.New(w).Level(lvl).With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()
	return &l
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// WithContext attaches l to ctx.
func WithContext(ctx context.Context, l *zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// FromContext returns the logger attached to ctx, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
