package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"ERROR", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestLevelFiltering(t *testing.T) {
	buf := new(bytes.Buffer)
	h, err := NewHandler(buf, slog.LevelWarn, "text")
	require.NoError(t, err)
	log := slog.New(h)

	log.Info("info message")
	log.Warn("warn message")

	out := buf.String()
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
}

func TestJSONFormat(t *testing.T) {
	buf := new(bytes.Buffer)
	h, err := NewHandler(buf, slog.LevelDebug, "JSON")
	require.NoError(t, err)
	slog.New(h).Debug("loaded", "blocks", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "loaded", rec["msg"])
	assert.EqualValues(t, 3, rec["blocks"])
}

func TestUnknownFormat(t *testing.T) {
	_, err := NewHandler(new(bytes.Buffer), slog.LevelInfo, "xml")
	assert.Error(t, err)
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tsort.log")
	log, closeFn, err := New(Config{Level: "info", Output: path})
	require.NoError(t, err)

	log.Info("written to file")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "written to file"))
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, _, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}
