package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"announce-feed/internal/handler/http/requestid"
)

// ParseLevel maps debug, info, warn and error (any case) to a slog level.
// Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// New builds a logger writing to w. format is "json" or "text".
func New(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}
	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// NewLogger is the server logger: JSON on stdout, level from LOG_LEVEL,
// LOG_FORMAT=text for local development.
func NewLogger() *slog.Logger {
	return New(os.Stdout, os.Getenv("LOG_FORMAT"), ParseLevel(os.Getenv("LOG_LEVEL")))
}

// NewCLILogger logs text to w, warnings and up unless verbose.
func NewCLILogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// WithRequestID adds the request id from ctx. A nil logger means slog.Default().
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With(slog.String("request_id", reqID))
}

// Component tags every record with the emitting component.
func Component(logger *slog.Logger, name string) *slog.Logger {
	return logger.With(slog.String("component", name))
}
