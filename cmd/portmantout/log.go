package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/milden6/wordgraph/internal/config"
)

// newLogger logs text to a terminal and JSON lines anywhere else, unless the
// format is forced.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if format == "auto" {
		format = "json"
		if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			format = "text"
		}
	}
	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return slog.New(slog.NewJSONHandler(w, opts)), nil
}

// stopwatch logs the time since the previous lap.
type stopwatch struct {
	log  *slog.Logger
	prev time.Time
}

func newStopwatch(log *slog.Logger) *stopwatch {
	return &stopwatch{log: log, prev: time.Now()}
}

func (s *stopwatch) lap(phase string, attrs ...any) {
	now := time.Now()
	s.log.Debug(phase, append([]any{slog.Duration("elapsed", now.Sub(s.prev))}, attrs...)...)
	s.prev = now
}
