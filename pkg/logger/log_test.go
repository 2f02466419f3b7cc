package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-inventory/pkg/config"
)

func TestNewLoggerWritesFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "app.log")

	logger := NewLogger(config.LogConfig{File: logFile, Level: "info"})
	logger.Info("проверка записи")
	_ = logger.Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "проверка записи")
}

func TestNewLoggerConsoleOnly(t *testing.T) {
	logger := NewLogger(config.LogConfig{Level: "not-a-level"})
	assert.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(-1), "неизвестный уровень сводится к info")
}
