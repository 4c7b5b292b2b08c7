package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	log "log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

var levels = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

// ParseLevel maps a flag value to a level; unknown values mean info.
func ParseLevel(s string) log.Level {
	if l, ok := levels[strings.ToLower(s)]; ok {
		return l
	}
	return log.LevelInfo
}

// New builds a logger that echoes to console with tint and, when path is
// set, appends plain text records to that file. The returned closer flushes
// and closes the file.
func New(console io.Writer, path string, level log.Level) (*log.Logger, io.Closer, error) {
	handlers := []log.Handler{
		tint.NewHandler(console, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		}),
	}

	var closer io.Closer = nopCloser{}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, log.NewTextHandler(f, &log.HandlerOptions{
			Level:       level,
			ReplaceAttr: standardKeys,
		}))
		closer = syncCloser{f}
	}

	return log.New(fanout(handlers)), closer, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *log.Logger {
	return log.New(log.NewTextHandler(io.Discard, nil))
}

func standardKeys(_ []string, a log.Attr) log.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}

// fanout sends each record to every handler that accepts its level.
type fanout []log.Handler

func (f fanout) Enabled(ctx context.Context, l log.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r log.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []log.Attr) log.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) log.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type syncCloser struct{ f *os.File }

func (c syncCloser) Close() error {
	return errors.Join(c.f.Sync(), c.f.Close())
}
