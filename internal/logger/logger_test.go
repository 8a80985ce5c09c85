package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{Level: "info", Format: "json", ServiceName: "dustbound", Version: "test", Environment: "test"}
	InitLoggerWithWriter(cfg, &buf)

	slog.Info("hello", "key", "value")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "dustbound", entry["service"])
}

func TestInitLoggerWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{Level: "warn", Format: "text"}
	InitLoggerWithWriter(cfg, &buf)

	slog.Debug("too quiet")
	slog.Info("still too quiet")
	assert.Empty(t, buf.String())

	slog.Warn("loud enough")
	assert.Contains(t, buf.String(), "loud enough")
}

func TestFromContext_RequestID(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(Config{Level: "info", Format: "json"}, &buf)

	id := GenerateRequestID()
	ctx := WithRequestID(context.Background(), id)

	got, ok := RequestIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)

	FromContext(ctx).Info("traced")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, id, entry["request_id"])
}

func TestLogLevel_Parsing(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Config{Level: tt.in}.LogLevel(), tt.in)
	}
}
