package tsort

import (
	"errors"
	"strings"
	"testing"

	sorterrors "github.com/tbarnett/tsort/errors"
)

func TestCompareCaseFolding(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		a, b string
		want int
	}{
		{"sensitive uppercase first", nil, "Banana", "apple", -1},
		{"insensitive", []Option{WithCaseInsensitive(true)}, "Banana", "apple", 1},
		{"insensitive equal", []Option{WithCaseInsensitive(true)}, "ApPle", "aPpLE", 0},
		{"reverse", []Option{WithReverse(true)}, "a", "b", 1},
		{"reverse insensitive", []Option{WithReverse(true), WithCaseInsensitive(true)}, "apple", "Banana", 1},
		{"prefix sorts first", nil, "app", "apple", -1},
		{"only ascii folded", []Option{WithCaseInsensitive(true)}, "\xe9", "\xc9", 1},
		{"punctuation untouched", []Option{WithCaseInsensitive(true)}, "[", "{", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := mustConfig(t, tt.opts...)
			cmp := NewComparator(cfg, nil)
			got, err := cmp.Compare(blockOf(cfg, tt.a), blockOf(cfg, tt.b))
			if err != nil {
				t.Fatalf("Compare: %v", err)
			}
			if got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompareUsesSortLineAndColumn(t *testing.T) {
	cfg := mustConfig(t, WithLinesPerBlock(3), WithSortLine(1), WithSortColumn(2))
	cmp := NewComparator(cfg, nil)

	a := blockOf(cfg, "zzzz", "xxB", "aaaa")
	b := blockOf(cfg, "aaaa", "yyA", "zzzz")
	got, err := cmp.Compare(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("Compare = %d, want 1 (key B after key A)", got)
	}
	if string(cmp.Key(a)) != "B" {
		t.Errorf("Key = %q, want %q", cmp.Key(a), "B")
	}
}

// TestCompareShortLines checks that lines shorter than the sort column and
// synthesized lines compare as empty keys instead of reading out of range.
func TestCompareShortLines(t *testing.T) {
	cfg := mustConfig(t, WithLinesPerBlock(2), WithSortLine(1), WithSortColumn(10))
	cmp := NewComparator(cfg, nil)

	short := blockOf(cfg, "x", "abc")
	missing := blockOf(cfg, "y")
	long := blockOf(cfg, "z", strings.Repeat("-", 10)+"key")

	if c, err := cmp.Compare(short, missing); err != nil || c != 0 {
		t.Errorf("short vs missing = %d, %v; want 0", c, err)
	}
	if c, err := cmp.Compare(short, long); err != nil || c != -1 {
		t.Errorf("short vs long = %d, %v; want -1", c, err)
	}
	if len(cmp.Key(missing)) != 0 {
		t.Errorf("placeholder key = %q, want empty", cmp.Key(missing))
	}
}

func TestCompareFoldingBudget(t *testing.T) {
	cfg := mustConfig(t, WithCaseInsensitive(true))
	a := blockOf(cfg, strings.Repeat("a", 64))
	b := blockOf(cfg, strings.Repeat("b", 64))

	budget := NewBudget(100)
	cmp := NewComparator(cfg, budget)
	if _, err := cmp.Compare(a, b); !errors.Is(err, sorterrors.ErrComparison) {
		t.Fatalf("expected ErrComparison, got %v", err)
	}
	if !errors.Is(err2(cmp.Compare(a, b)), sorterrors.ErrAllocation) {
		t.Error("comparison failure should wrap the allocation failure")
	}

	budget = NewBudget(128)
	cmp = NewComparator(cfg, budget)
	if _, err := cmp.Compare(a, b); err != nil {
		t.Fatalf("Compare within budget: %v", err)
	}
	if budget.Used() != 0 {
		t.Errorf("scratch copies still charged: %d bytes", budget.Used())
	}
	if budget.Peak() != 128 {
		t.Errorf("peak = %d, want 128", budget.Peak())
	}
}

func TestCompareSensitiveNeedsNoBudget(t *testing.T) {
	cfg := mustConfig(t)
	cmp := NewComparator(cfg, NewBudget(1))
	if _, err := cmp.Compare(blockOf(cfg, "long key"), blockOf(cfg, "other key")); err != nil {
		t.Fatalf("case-sensitive compare should not allocate: %v", err)
	}
	if cmp.Comparisons() != 1 {
		t.Errorf("Comparisons = %d, want 1", cmp.Comparisons())
	}
}

func err2(_ int, err error) error {
	return err
}
