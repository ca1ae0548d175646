package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"announce-feed/internal/handler/http/requestid"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "json", slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("visible", slog.String("key", "value"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "value", entry["key"])
	assert.NotContains(t, entry, "source")
}

func TestNew_TextDebugAddsSource(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "text", slog.LevelDebug).Debug("hello")

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "source=")
}

func TestNewLogger_RespectsLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	logger := NewLogger()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelError))
}

func TestNewCLILogger(t *testing.T) {
	var buf bytes.Buffer
	quiet := NewCLILogger(&buf, false)
	quiet.Info("dropped")
	quiet.Warn("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")

	assert.True(t, NewCLILogger(&buf, true).Enabled(context.Background(), slog.LevelDebug))
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, "json", slog.LevelInfo)

	ctx := requestid.WithRequestID(context.Background(), "req-123")
	WithRequestID(ctx, base).Info("with id")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])
}

func TestWithRequestID_NoID(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, "json", slog.LevelInfo)

	assert.Same(t, base, WithRequestID(context.Background(), base))
	assert.NotNil(t, WithRequestID(context.Background(), nil))
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	Component(New(&buf, "json", slog.LevelInfo), "worker").Info("tick")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "worker", entry["component"])
}

func BenchmarkWithRequestID(b *testing.B) {
	var buf bytes.Buffer
	base := New(&buf, "json", slog.LevelInfo)
	ctx := requestid.WithRequestID(context.Background(), "bench")
	for b.Loop() {
		buf.Reset()
		WithRequestID(ctx, base).Info("bench")
	}
}
