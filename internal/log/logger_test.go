package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/helixml/csvsplit/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, config.LogFormatJSON, "DEBUG")

	logger.Debug("split started", slog.String("source", "data.csv"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "split started", entry["msg"])
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "data.csv", entry["source"])
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, config.LogFormatJSON, "WARN")

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_PrettyWithoutColourForBuffers(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, config.LogFormatPretty, "INFO")

	logger.Info("split completed", slog.Int("files", 3))

	out := buf.String()
	assert.Contains(t, out, "INF split completed files=3")
	assert.NotContains(t, out, "\033[")
}

func TestNewFromConfig(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.NewAppConfigWithOptions(
		config.WithLogLevel("ERROR"),
		config.WithLogFormat(config.LogFormatJSON),
	)
	logger := NewFromConfig(cfg, &buf)

	logger.Warn("hidden")
	assert.Empty(t, buf.String())
	logger.Error("boom")
	assert.Contains(t, buf.String(), "boom")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestContextIDs(t *testing.T) {
	ctx := WithRequestID(WithCorrelationID(context.Background(), "corr-1"), "req-1")
	assert.Equal(t, "corr-1", CorrelationID(ctx))
	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Empty(t, RequestID(context.Background()))

	var buf bytes.Buffer
	logger := New(&buf, config.LogFormatJSON, "INFO").With(slog.String("component", "api"))
	logger.InfoContext(ctx, "request")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "corr-1", entry["correlation_id"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "api", entry["component"])
}
