// Package logger is the process-wide structured logger.
//
// Call sites pass a message and an optional field map:
//
//	logger.Info("user created", map[string]any{"user_id": id})
package logger

import (
	"io"
	"log/slog"
	"os"
	"sort"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
}

// Init replaces the process logger. format is "json" or "text" (anything
// else falls back to json). A nil writer means stdout.
func Init(service, version, format string, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: slog.LevelDebug}

	var h slog.Handler
	if format == "text" {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	l := slog.New(h).With(
		slog.String("service", service),
		slog.String("version", version),
	)
	current.Store(l)
	slog.SetDefault(l)

	l.Info("logger initialized")
}

// L returns the underlying slog logger.
func L() *slog.Logger {
	return current.Load()
}

func Debug(msg string, fields map[string]any) {
	current.Load().Debug(msg, attrs(fields)...)
}

func Info(msg string, fields map[string]any) {
	current.Load().Info(msg, attrs(fields)...)
}

func Warn(msg string, fields map[string]any) {
	current.Load().Warn(msg, attrs(fields)...)
}

func Error(msg string, fields map[string]any) {
	current.Load().Error(msg, attrs(fields)...)
}

// Fatal logs at error level with fatal=true and exits the process.
func Fatal(msg string, fields map[string]any) {
	args := append([]any{slog.Bool("fatal", true)}, attrs(fields)...)
	current.Load().Error(msg, args...)
	os.Exit(1)
}

// attrs flattens fields into slog key/value pairs in key order so output
// is stable.
func attrs(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, slog.Any(k, fields[k]))
	}
	return out
}
