package tsort

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/go-playground/validator/v10"
	sorterrors "github.com/tbarnett/tsort/errors"
)

const (
	// DefaultChunkSize is the historical read buffer size. A read yields at
	// most DefaultChunkSize-1 bytes.
	DefaultChunkSize = 255

	// minChunkSize guarantees every chunk read makes progress.
	minChunkSize = 2
)

// Option is a functional option for configuring a sort run.
type Option func(*Config)

// Config is the immutable configuration of a single sort run.
// Build one with NewConfig; the zero value is not valid.
type Config struct {
	// LinesPerBlock is the number of physical lines in one sortable record.
	LinesPerBlock int `validate:"gte=1"`

	// SortLine is the 0-based index of the line holding the sort key.
	// NewConfig clamps it to LinesPerBlock-1.
	SortLine int `validate:"gte=0"`

	// SortColumn is the 0-based byte offset of the sort key within SortLine.
	SortColumn int `validate:"gte=0"`

	Reverse         bool
	CaseInsensitive bool

	// ChunkSize is the size of the fixed read buffer used by the line reader.
	ChunkSize int `validate:"gte=2"`

	// MemoryLimit caps the bytes held by lines, blocks and comparison
	// scratch copies. 0 means unlimited.
	MemoryLimit int64 `validate:"gte=0"`

	Logger *slog.Logger `validate:"-"`
}

var validate = validator.New()

func defaultConfig() Config {
	return Config{
		LinesPerBlock: 1,
		ChunkSize:     DefaultChunkSize,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// NewConfig applies opts over the defaults, validates the result and clamps
// SortLine into the block.
func NewConfig(opts ...Option) (Config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", sorterrors.ErrInvalidConfig, err)
	}
	if cfg.SortLine >= cfg.LinesPerBlock {
		cfg.SortLine = cfg.LinesPerBlock - 1
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return cfg, nil
}

// WithLinesPerBlock sets the number of lines per record.
func WithLinesPerBlock(n int) Option {
	return func(c *Config) {
		c.LinesPerBlock = n
	}
}

// WithSortLine sets the 0-based line within a block used as the sort key.
func WithSortLine(n int) Option {
	return func(c *Config) {
		c.SortLine = n
	}
}

// WithSortColumn sets the 0-based byte offset of the sort key.
func WithSortColumn(n int) Option {
	return func(c *Config) {
		c.SortColumn = n
	}
}

// WithReverse selects descending order.
func WithReverse(reverse bool) Option {
	return func(c *Config) {
		c.Reverse = reverse
	}
}

// WithCaseInsensitive folds ASCII lowercase to uppercase before comparing.
func WithCaseInsensitive(fold bool) Option {
	return func(c *Config) {
		c.CaseInsensitive = fold
	}
}

// WithChunkSize sets the read buffer size. Any size of at least 2 is valid;
// it only affects how many reads a long line takes.
func WithChunkSize(n int) Option {
	return func(c *Config) {
		c.ChunkSize = n
	}
}

// WithMemoryLimit caps the bytes a run may hold. Exceeding the cap while
// loading fails with ErrAllocation, while comparing with ErrComparison.
func WithMemoryLimit(bytes int64) Option {
	return func(c *Config) {
		c.MemoryLimit = bytes
	}
}

// WithLogger routes debug logging of the run to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}
