package logging

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"chatty":  slog.LevelInfo,
	}
	for name, want := range cases {
		assert.Equal(t, want, ParseLevel(name), "level %q", name)
	}
}

func TestNewWritesToConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	dir := t.TempDir()

	logger, err := New(Options{Level: "debug", Console: &console, Dir: dir})
	require.NoError(t, err)
	t.Cleanup(func() { _ = logger.Close() })

	logger.Debug("papers fetched", "count", 3)

	assert.Contains(t, console.String(), "papers fetched")
	assert.Contains(t, console.String(), "count=3")

	require.NotEmpty(t, logger.FilePath())
	data, err := os.ReadFile(logger.FilePath())
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"msg":"papers fetched"`), "file content: %s", data)
}

func TestNewRespectsLevel(t *testing.T) {
	var console bytes.Buffer

	logger, err := New(Options{Level: "warn", Console: &console})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "shown")
	assert.Empty(t, logger.FilePath())
	assert.NoError(t, logger.Close())
}

func TestNewKeepsConsoleWhenFileFails(t *testing.T) {
	var console bytes.Buffer
	blocker := t.TempDir() + "/file"
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	logger, err := New(Options{Console: &console, Dir: blocker + "/logs"})
	assert.Error(t, err)
	require.NotNil(t, logger)

	logger.Info("still works")
	assert.Contains(t, console.String(), "still works")
}

func TestSetLevelAppliesImmediately(t *testing.T) {
	var console bytes.Buffer
	logger, err := New(Options{Level: "error", Console: &console})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.SetLevel("debug")
	logger.Debug("shown")

	assert.Equal(t, slog.LevelDebug, logger.Level())
	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "shown")
}
