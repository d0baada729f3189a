package tsort

import (
	"fmt"

	sorterrors "github.com/tbarnett/tsort/errors"
)

const (
	// lineOverhead approximates the fixed cost of a Line (slice header and
	// logical length).
	lineOverhead = 32

	// blockOverhead approximates the fixed cost of a Block (line slice header
	// and list links).
	blockOverhead = 48
)

// Budget accounts for the bytes held by a run against a fixed limit.
// A nil *Budget is unlimited and records nothing.
//
// Budget is not safe for concurrent use; a run is single-threaded.
type Budget struct {
	limit int64
	used  int64
	peak  int64
}

// NewBudget returns a Budget capped at limit bytes. A limit of 0 or less
// returns nil (unlimited).
func NewBudget(limit int64) *Budget {
	if limit <= 0 {
		return nil
	}
	return &Budget{limit: limit}
}

// charge reserves n bytes, failing with ErrAllocation if the limit would be
// exceeded. A failed charge reserves nothing.
func (b *Budget) charge(n int) error {
	if b == nil {
		return nil
	}
	if b.used+int64(n) > b.limit {
		return fmt.Errorf("%w: %d bytes requested, %d of %d in use",
			sorterrors.ErrAllocation, n, b.used, b.limit)
	}
	b.used += int64(n)
	b.peak = max(b.peak, b.used)
	return nil
}

// release returns n bytes previously charged.
func (b *Budget) release(n int) {
	if b == nil {
		return
	}
	b.used -= int64(n)
	if b.used < 0 {
		panic("tsort: budget released more than was charged")
	}
}

// Used returns the bytes currently charged.
func (b *Budget) Used() int64 {
	if b == nil {
		return 0
	}
	return b.used
}

// Peak returns the high-water mark of charged bytes.
func (b *Budget) Peak() int64 {
	if b == nil {
		return 0
	}
	return b.peak
}
