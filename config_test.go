package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnr/reflow/comment"
)

// unsetenv removes key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	c, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	yml := "line_width: 100\ntab_kind: spaces\njobs: 2\nformat_html: false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, defaultConfigFile), []byte(yml), 0o644))
	t.Setenv("REFLOW_LINE_WIDTH", "72")

	c, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 72, c.LineWidth, "environment beats file")
	assert.Equal(t, comment.Spaces, c.TabKind)
	assert.Equal(t, 2, c.Jobs)
	assert.False(t, c.FormatHTML)
	assert.True(t, c.FormatEmbeddedCode, "defaults survive")
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	unsetenv(t, "REFLOW_JOBS")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("REFLOW_JOBS=8\n"), 0o644))

	c, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 8, c.Jobs)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "explicit file must exist")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("tab_kind: sideways\n"), 0o644))
	_, err = LoadConfig(bad)
	assert.Error(t, err)

	t.Setenv("REFLOW_LINE_WIDTH", "wide")
	_, err = LoadConfig("")
	assert.Error(t, err)
}

func TestConfigOptions(t *testing.T) {
	c := DefaultConfig()
	c.Newline = "crlf"
	c.NewLinePerParameter = true
	o, err := c.Options()
	require.NoError(t, err)
	assert.Equal(t, "\r\n", o.LineSeparator)
	assert.True(t, o.NewLinePerParameter)
	assert.Equal(t, comment.DefaultLineWidth, o.LineWidth)

	c.Newline = "nl"
	_, err = c.Options()
	assert.ErrorIs(t, err, comment.ErrInvalidOptions)

	c = DefaultConfig()
	c.LineWidth = 0
	_, err = c.Options()
	assert.ErrorIs(t, err, comment.ErrInvalidOptions)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "json", "warn")
	l.Info("dropped")
	l.Warn("kept", "path", "a.go")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "a.go", rec["path"])
}
