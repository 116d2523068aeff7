// Package logging builds the slog loggers used by the HTTP dashboard.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/huangsam/debtboard/internal/contract"
	"github.com/m-mizutani/clog"
	"golang.org/x/term"
)

// NewLogger creates a new slog.Logger with automatic format detection.
// If output is a terminal, use clog for colored console output.
// Otherwise, use JSON format for structured logging.
func NewLogger(level slog.Level, w io.Writer) *slog.Logger {
	return NewLoggerWithFormat(level, w, contract.LogFormatAuto)
}

// NewLoggerWithFormat creates a new slog.Logger with the given format
// (auto, console or json). Unknown formats behave like auto.
func NewLoggerWithFormat(level slog.Level, w io.Writer, format string) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	var handler slog.Handler
	switch format {
	case contract.LogFormatConsole:
		handler = consoleHandler(level, w)
	case contract.LogFormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})
	default:
		if isTerminal(w) {
			handler = consoleHandler(level, w)
		} else {
			// JSON output for non-terminal (logs, CI/CD, etc.)
			handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level: level,
			})
		}
	}

	return slog.New(handler)
}

func consoleHandler(level slog.Level, w io.Writer) slog.Handler {
	return clog.New(
		clog.WithWriter(w),
		clog.WithLevel(level),
		clog.WithTimeFmt("15:04:05"),
		clog.WithSource(false),
		clog.WithAttrHook(clog.GoerrHook),
	)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
