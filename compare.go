package tsort

import (
	"bytes"
	"fmt"

	sorterrors "github.com/tbarnett/tsort/errors"
)

// Comparator orders blocks by their sort keys.
//
// The sort key is the visible content of line SortLine starting at byte
// SortColumn. Comparison is byte-wise; with CaseInsensitive, ASCII a-z is
// folded to A-Z in temporary copies first. With Reverse the operands are
// swapped.
type Comparator struct {
	cfg    Config
	budget *Budget

	scratchA []byte
	scratchB []byte

	comparisons int64
}

// NewComparator returns a Comparator for cfg. Temporary copies made for
// case folding are charged to budget, which may be nil.
func NewComparator(cfg Config, budget *Budget) *Comparator {
	return &Comparator{cfg: cfg, budget: budget}
}

// Key returns the sort key of b. The slice aliases the block's line.
func (c *Comparator) Key(b *Block) []byte {
	return b.lines[c.cfg.SortLine].keyAt(c.cfg.SortColumn)
}

// Compare returns -1, 0 or +1 as a sorts before, equal to, or after b in
// the configured direction. It fails with ErrComparison only when the
// folded copies cannot be charged to the budget.
func (c *Comparator) Compare(a, b *Block) (int, error) {
	c.comparisons++
	ka, kb := c.Key(a), c.Key(b)
	if c.cfg.CaseInsensitive {
		n := len(ka) + len(kb)
		if err := c.budget.charge(n); err != nil {
			return 0, fmt.Errorf("%w: %w", sorterrors.ErrComparison, err)
		}
		defer c.budget.release(n)
		c.scratchA = foldUpper(c.scratchA[:0], ka)
		c.scratchB = foldUpper(c.scratchB[:0], kb)
		ka, kb = c.scratchA, c.scratchB
	}
	if c.cfg.Reverse {
		ka, kb = kb, ka
	}
	return bytes.Compare(ka, kb), nil
}

// Comparisons returns how many comparisons have been made.
func (c *Comparator) Comparisons() int64 {
	return c.comparisons
}

// foldUpper appends src to dst with ASCII lowercase letters made uppercase.
func foldUpper(dst, src []byte) []byte {
	for _, ch := range src {
		if 'a' <= ch && ch <= 'z' {
			ch -= 'a' - 'A'
		}
		dst = append(dst, ch)
	}
	return dst
}
