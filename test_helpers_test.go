package tsort

import (
	"bytes"
	"encoding/binary"
	"hash/fnv"
	"io"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
)

// Fixed base seeds for deterministic tests. Each test mixes in its own name
// so tests get independent streams.
const (
	testSeed1 = 0x243f6a8885a308d3
	testSeed2 = 0x13198a2e03707344
)

// newTestRNG returns a PCG generator seeded from the test name.
func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

// mustConfig builds a Config or fails the test.
func mustConfig(t testing.TB, opts ...Option) Config {
	t.Helper()
	cfg, err := NewConfig(opts...)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	return cfg
}

// randomLines returns n lines of random length up to maxLen drawn from a
// small mixed-case alphabet, so duplicate and case-only-different keys
// are common.
func randomLines(rng *rand.Rand, n, maxLen int) []string {
	const alphabet = "abcABC xyz"
	lines := make([]string, n)
	for i := range lines {
		b := make([]byte, rng.IntN(maxLen+1))
		for j := range b {
			b[j] = alphabet[rng.IntN(len(alphabet))]
		}
		lines[i] = string(b)
	}
	return lines
}

// joinLines renders lines as newline-terminated input.
func joinLines(lines []string) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// referenceSort groups lines into blocks, pads the last block with empty
// lines, and stable-sorts the blocks by the same key rules as Comparator.
func referenceSort(lines []string, cfg Config) string {
	var blocks [][]string
	for i := 0; i < len(lines); i += cfg.LinesPerBlock {
		blk := make([]string, cfg.LinesPerBlock)
		copy(blk, lines[i:min(i+cfg.LinesPerBlock, len(lines))])
		blocks = append(blocks, blk)
	}

	key := func(blk []string) []byte {
		line := blk[cfg.SortLine]
		if cfg.SortColumn >= len(line) {
			return nil
		}
		k := []byte(line[cfg.SortColumn:])
		if cfg.CaseInsensitive {
			k = bytes.ToUpper(k)
		}
		return k
	}
	slices.SortStableFunc(blocks, func(a, b []string) int {
		if cfg.Reverse {
			return bytes.Compare(key(b), key(a))
		}
		return bytes.Compare(key(a), key(b))
	})

	var out []string
	for _, blk := range blocks {
		out = append(out, blk...)
	}
	return joinLines(out)
}

// splitBlocks splits newline-terminated output into blocks of n lines.
func splitBlocks(t testing.TB, output string, n int) [][]string {
	t.Helper()
	if output == "" {
		return nil
	}
	if !strings.HasSuffix(output, "\n") {
		t.Fatalf("output does not end with a newline: %q", output)
	}
	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if len(lines)%n != 0 {
		t.Fatalf("output has %d lines, not a multiple of %d", len(lines), n)
	}
	var blocks [][]string
	for i := 0; i < len(lines); i += n {
		blocks = append(blocks, lines[i:i+n])
	}
	return blocks
}

// blockOf builds a Block directly from visible line contents, padded the
// way BlockReader pads.
func blockOf(cfg Config, lines ...string) *Block {
	blk := &Block{}
	for _, s := range lines {
		l := newLine([]byte(s))
		l.padTo(cfg.SortColumn)
		blk.lines = append(blk.lines, l)
	}
	for len(blk.lines) < cfg.LinesPerBlock {
		blk.lines = append(blk.lines, placeholderLine(cfg.SortColumn))
	}
	return blk
}

// readAllBlocks drains br, failing the test on any error other than io.EOF.
func readAllBlocks(t testing.TB, br *BlockReader) []*Block {
	t.Helper()
	var blocks []*Block
	for {
		blk, err := br.Next()
		if err == io.EOF {
			return blocks
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		blocks = append(blocks, blk)
	}
}

// visible returns the visible contents of a block's lines.
func visible(blk *Block) []string {
	out := make([]string, len(blk.lines))
	for i, l := range blk.lines {
		out[i] = string(l.Bytes())
	}
	return out
}
