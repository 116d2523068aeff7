package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/huangsam/debtboard/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithFormat_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithFormat(slog.LevelInfo, &buf, contract.LogFormatJSON)
	logger.Info("report loaded", "files", 9)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "report loaded", entry["msg"])
	assert.Equal(t, float64(9), entry["files"])
	assert.Contains(t, entry, "source")
}

func TestNewLoggerWithFormat_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithFormat(slog.LevelWarn, &buf, contract.LogFormatJSON)
	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLoggerWithFormat_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithFormat(slog.LevelDebug, &buf, contract.LogFormatConsole)
	logger.Debug("watching", "path", "report.json")
	assert.Contains(t, buf.String(), "watching")
	assert.Contains(t, buf.String(), "report.json")
}

func TestNewLogger_AutoFallsBackToJSON(t *testing.T) {
	// A buffer is never a terminal
	var buf bytes.Buffer
	NewLogger(slog.LevelInfo, &buf).Info("hello")
	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
