package tsort

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	sorterrors "github.com/tbarnett/tsort/errors"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.LinesPerBlock != 1 || cfg.SortLine != 0 || cfg.SortColumn != 0 {
		t.Errorf("block defaults = %d/%d/%d, want 1/0/0", cfg.LinesPerBlock, cfg.SortLine, cfg.SortColumn)
	}
	if cfg.Reverse || cfg.CaseInsensitive {
		t.Error("ordering defaults should be ascending and case-sensitive")
	}
	if cfg.ChunkSize != DefaultChunkSize {
		t.Errorf("ChunkSize = %d, want %d", cfg.ChunkSize, DefaultChunkSize)
	}
	if cfg.MemoryLimit != 0 {
		t.Errorf("MemoryLimit = %d, want unlimited", cfg.MemoryLimit)
	}
	if cfg.Logger == nil {
		t.Error("Logger should never be nil")
	}
}

func TestNewConfigValidation(t *testing.T) {
	tests := []struct {
		name  string
		opt   Option
		field string
	}{
		{"zero lines per block", WithLinesPerBlock(0), "LinesPerBlock"},
		{"negative sort line", WithSortLine(-1), "SortLine"},
		{"negative sort column", WithSortColumn(-3), "SortColumn"},
		{"chunk size too small", WithChunkSize(1), "ChunkSize"},
		{"negative memory limit", WithMemoryLimit(-1), "MemoryLimit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.opt)
			if !errors.Is(err, sorterrors.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not name field %s", err, tt.field)
			}
		})
	}
}

func TestNewConfigClampsSortLine(t *testing.T) {
	tests := []struct {
		lines, sortLine, want int
	}{
		{1, 0, 0},
		{1, 5, 0},
		{4, 2, 2},
		{4, 4, 3},
		{4, 100, 3},
	}
	for _, tt := range tests {
		cfg := mustConfig(t, WithLinesPerBlock(tt.lines), WithSortLine(tt.sortLine))
		if cfg.SortLine != tt.want {
			t.Errorf("lines=%d sortLine=%d: got %d, want %d", tt.lines, tt.sortLine, cfg.SortLine, tt.want)
		}
	}
}

func TestNewConfigNilLoggerFallsBack(t *testing.T) {
	cfg := mustConfig(t, WithLogger(nil))
	if cfg.Logger == nil {
		t.Fatal("nil logger was kept")
	}
	cfg.Logger.Info("discarded")
}

func TestWithLoggerReceivesRunDetails(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if _, err := Sort(strings.NewReader("b\na\n"), &bytes.Buffer{}, WithLogger(logger)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "input loaded") || !strings.Contains(buf.String(), "blocks=2") {
		t.Errorf("unexpected log output: %s", buf.String())
	}
}
