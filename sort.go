package tsort

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Load reads every block from r and inserts it into a sorted list.
//
// On success the caller owns the list and should Release it when done. On
// any failure everything loaded so far has already been released.
func Load(r io.Reader, cfg Config) (*BlockList, Stats, error) {
	hasher := xxhash.New()
	budget := NewBudget(cfg.MemoryLimit)
	br := NewBlockReader(io.TeeReader(r, hasher), cfg, budget)
	cmp := NewComparator(cfg, budget)
	list := NewBlockList(cmp, budget)
	keys := newKeySet(cfg.CaseInsensitive)

	for {
		blk, err := br.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			list.Release()
			return nil, Stats{}, fmt.Errorf("read block %d: %w", br.blocks+1, err)
		}
		keys.add(cmp.Key(blk))
		if err := list.Insert(blk); err != nil {
			br.Release(blk)
			list.Release()
			return nil, Stats{}, fmt.Errorf("insert block %d: %w", br.blocks, err)
		}
	}

	stats := Stats{
		Blocks:           br.blocks,
		Lines:            br.lines,
		SynthesizedLines: br.synthesized,
		PaddedLines:      br.padded,
		DistinctKeys:     keys.len(),
		Comparisons:      cmp.Comparisons(),
		PeakMemory:       budget.Peak(),
		InputBytes:       br.BytesRead(),
		InputDigest:      hasher.Sum64(),
	}
	cfg.Logger.Debug("input loaded",
		"blocks", stats.Blocks,
		"lines", stats.Lines,
		"synthesized_lines", stats.SynthesizedLines,
		"comparisons", stats.Comparisons)
	return list, stats, nil
}

// Sort reads all of r, orders its blocks and writes them to w.
// Nothing is written to w unless the whole input loaded and sorted.
func Sort(r io.Reader, w io.Writer, opts ...Option) (Stats, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return Stats{}, err
	}

	list, stats, err := Load(r, cfg)
	if err != nil {
		return Stats{}, err
	}
	defer list.Release()

	hasher := xxhash.New()
	n, err := list.WriteTo(io.MultiWriter(w, hasher))
	stats.OutputBytes = n
	if err != nil {
		return stats, err
	}
	stats.OutputDigest = hasher.Sum64()
	return stats, nil
}

// SortFile sorts inputPath into outputPath.
//
// The input is read and closed before outputPath is created, so a failure
// while loading or sorting leaves any existing output untouched. If writing
// fails, the partial output is removed.
func SortFile(inputPath, outputPath string, opts ...Option) (Stats, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return Stats{}, err
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("open input file: %w", err)
	}
	fadviseSequential(int(in.Fd()), 0, 0)

	list, stats, err := Load(in, cfg)
	closeErr := in.Close()
	if err != nil {
		return Stats{}, errors.Join(err, closeErr)
	}
	defer list.Release()
	if closeErr != nil {
		return Stats{}, fmt.Errorf("close input file: %w", closeErr)
	}

	of, err := createOutputFile(outputPath, list.OutputSize())
	if err != nil {
		return Stats{}, err
	}
	if err := of.writeList(list); err != nil {
		return Stats{}, errors.Join(err, of.close(), os.Remove(outputPath))
	}
	stats.OutputBytes = of.offset
	stats.OutputDigest = of.digest()
	if err := of.finalize(); err != nil {
		return Stats{}, errors.Join(err, os.Remove(outputPath))
	}

	cfg.Logger.Debug("output written", "path", outputPath, "bytes", stats.OutputBytes)
	return stats, nil
}

// CheckResult reports whether input is already in order.
type CheckResult struct {
	Sorted bool
	Blocks int // blocks examined

	// FirstDisorder is the 1-based index of the first block that sorts
	// before its predecessor, and Line the 1-based input line it starts on.
	// Both are 0 when Sorted.
	FirstDisorder int
	Line          int
}

// Check streams r block by block and stops at the first block that sorts
// before the one preceding it. Only two blocks are held at a time.
func Check(r io.Reader, opts ...Option) (CheckResult, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return CheckResult{}, err
	}

	budget := NewBudget(cfg.MemoryLimit)
	br := NewBlockReader(r, cfg, budget)
	cmp := NewComparator(cfg, budget)

	var prev *Block
	defer func() { br.Release(prev) }()
	for {
		blk, err := br.Next()
		if err == io.EOF {
			return CheckResult{Sorted: true, Blocks: br.blocks}, nil
		}
		if err != nil {
			return CheckResult{}, fmt.Errorf("read block %d: %w", br.blocks+1, err)
		}
		if prev != nil {
			c, err := cmp.Compare(prev, blk)
			if err != nil {
				br.Release(blk)
				return CheckResult{}, fmt.Errorf("compare block %d: %w", br.blocks, err)
			}
			if c > 0 {
				br.Release(blk)
				return CheckResult{
					Blocks:        br.blocks,
					FirstDisorder: br.blocks,
					Line:          (br.blocks-1)*cfg.LinesPerBlock + 1,
				}, nil
			}
		}
		br.Release(prev)
		prev = blk
	}
}
