// Package logging builds the slog loggers of the command line tools.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Stderr is the log file name that selects standard error.
const Stderr = "-"

// ParseLevel maps a level name to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "err", "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	}
	return 0, fmt.Errorf("unknown log level %q", name)
}

// New returns a tint logger writing to w.
func New(w io.Writer, level slog.Level, color bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		NoColor:    !color || runtime.GOOS == "windows",
		AddSource:  level <= slog.LevelDebug,
		Level:      level,
		TimeFormat: "15:04:05.000",
	}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns a logger for path: empty discards everything, Stderr writes
// to standard error and anything else is appended to. The closer releases
// the file.
func Open(path, levelName string) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(levelName)
	if err != nil {
		return nil, nil, err
	}

	switch path {
	case "":
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	case Stderr:
		return New(os.Stderr, level, term.IsTerminal(int(os.Stderr.Fd()))), nopCloser{}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return New(f, level, false), f, nil
}
