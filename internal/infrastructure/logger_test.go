package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canpulse/internal/config"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLoggerWithWriter_InjectsTraceID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	ctx := WithTraceID(context.Background(), "trace-123")
	logger.InfoContext(ctx, "import finished", slog.Int("rows", 3))

	entry := decodeLine(t, &buf)
	assert.Equal(t, "import finished", entry["msg"])
	assert.Equal(t, "trace-123", entry["trace_id"])
	assert.Equal(t, "canpulse", entry["service"])
	assert.EqualValues(t, 3, entry["rows"])
}

func TestNewLoggerWithWriter_NoTraceID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, nil)

	logger.Info("plain")

	entry := decodeLine(t, &buf)
	assert.NotContains(t, entry, "trace_id")
}

func TestTraceHandler_WithGroupAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, nil).With("component", "viz").WithGroup("view")

	logger.InfoContext(WithTraceID(context.Background(), "abc"), "generated", slog.String("name", "day_demand"))

	entry := decodeLine(t, &buf)
	assert.Equal(t, "viz", entry["component"])
	group, ok := entry["view"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "day_demand", group["name"])
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}

func TestInitializeLogger_FileOutput(t *testing.T) {
	ResetLoggerForTesting()
	t.Cleanup(ResetLoggerForTesting)

	path := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, err := InitializeLogger(config.LoggingConfig{Level: "info", Output: "file", FilePath: path})
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("hello")
	assert.FileExists(t, path)
	assert.Same(t, logger, GetLogger())

	// second call is a no-op
	again, err := InitializeLogger(config.LoggingConfig{Output: "console"})
	require.NoError(t, err)
	assert.Same(t, logger, again)
}

func TestTraceIDContext(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))

	ctx := EnsureTraceID(context.Background())
	id := GetTraceID(ctx)
	assert.Len(t, id, 36)

	// already present stays untouched
	assert.Equal(t, id, GetTraceID(EnsureTraceID(ctx)))
}
