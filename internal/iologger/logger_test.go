package iologger

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/pkg/config"
	"github.com/gnames/gngenomes/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFile(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	dir := t.TempDir()
	cfg := config.LogConfig{Format: "json", Level: "debug", Destination: "file"}
	require.NoError(t, Init(dir, cfg))

	slog.Debug("first message", "taxon_id", 562)
	slog.Info("second message")

	content, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "first message", rec["msg"])
	assert.Equal(t, RunID(), rec["run_id"])
	assert.InDelta(t, 562, rec["taxon_id"], 0)
}

func TestInitAppends(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	dir := t.TempDir()
	cfg := config.LogConfig{Format: "text", Level: "info", Destination: "file"}

	require.NoError(t, Init(dir, cfg))
	slog.Info("one")
	require.NoError(t, Init(dir, cfg))
	slog.Info("two")
	slog.Debug("hidden")

	content, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(content), "msg=one")
	assert.Contains(t, string(content), "msg=two")
	assert.NotContains(t, string(content), "hidden")
}

func TestInitBadDir(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	dir := filepath.Join(t.TempDir(), "does", "not", "exist")
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}

	err := Init(dir, cfg)
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		res   slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, parseLevel(v.input), v.input)
	}
}
