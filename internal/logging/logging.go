// Package logging builds the slog.Logger shared by the command and the
// pipeline: human-readable text on the terminal, plus an optional JSON log
// file for later inspection.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// ErrInvalidLevel is returned for a level name ParseLevel does not know.
var ErrInvalidLevel = errors.New("invalid log level")

// Options configures New.
type Options struct {
	// Writer receives text output. Nil means os.Stderr.
	Writer io.Writer
	// Level is the minimum level of the text handler.
	Level slog.Level
	// File, when set, receives every record from debug up as JSON lines.
	File string
}

// Logger is a slog.Logger with the file it may own.
type Logger struct {
	*slog.Logger
	file *os.File
}

// New creates a Logger. The caller must Close it.
func New(opts Options) (*Logger, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:       opts.Level,
			ReplaceAttr: dropTime,
		}),
	}

	var f *os.File
	if opts.File != "" {
		if dir := filepath.Dir(opts.File); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("creating log directory: %w", err)
			}
		}
		var err error
		f, err = os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) // #nosec G304 -- user-provided log path
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	return &Logger{
		Logger: slog.New(slogmulti.Fanout(handlers...)),
		file:   f,
	}, nil
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel maps a level name to a slog.Level. Empty means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: %q (use debug, info, warn or error)", ErrInvalidLevel, name)
}

// Terminal output is read live; timestamps only add noise there.
func dropTime(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}
