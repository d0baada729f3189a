package tsort

import (
	"fmt"
	"io"
)

// Block is the unit of comparison and of output order: exactly
// LinesPerBlock lines. prev and next are owned by the BlockList holding it.
type Block struct {
	lines     []Line
	prev      *Block
	next      *Block
	footprint int // bytes charged to the Budget for this block
}

// Lines returns the block's lines in input order.
func (b *Block) Lines() []Line {
	return b.lines
}

// Len returns the number of lines in the block.
func (b *Block) Len() int {
	return len(b.lines)
}

// Next returns the following block in its list, or nil.
func (b *Block) Next() *Block {
	return b.next
}

// Prev returns the preceding block in its list, or nil.
func (b *Block) Prev() *Block {
	return b.prev
}

// BlockReader groups lines from a LineReader into fixed-size blocks.
type BlockReader struct {
	lr     *LineReader
	cfg    Config
	budget *Budget

	blocks      int
	lines       int
	synthesized int
	padded      int
}

// NewBlockReader returns a BlockReader over r. budget may be nil.
func NewBlockReader(r io.Reader, cfg Config, budget *Budget) *BlockReader {
	return &BlockReader{
		lr:     NewLineReader(r, cfg.ChunkSize),
		cfg:    cfg,
		budget: budget,
	}
}

// Next returns the next full block.
//
// The result is three-way: a block and nil; nil and io.EOF when the stream
// ended before any line of a new block (no more blocks, not an error); or
// nil and an error wrapping ErrAllocation or ErrRead. On error everything
// charged for the in-progress block has been released.
//
// If the stream ends part way through a block, the missing lines are
// synthesized as empty lines so the block still has LinesPerBlock lines.
func (br *BlockReader) Next() (*Block, error) {
	if err := br.budget.charge(blockOverhead); err != nil {
		return nil, err
	}
	blk := &Block{
		lines:     make([]Line, 0, br.cfg.LinesPerBlock),
		footprint: blockOverhead,
	}

	for len(blk.lines) < br.cfg.LinesPerBlock {
		content, err := br.lr.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			br.discard(blk)
			return nil, err
		}

		line := newLine(content)
		if line.padTo(br.cfg.SortColumn) > 0 {
			br.padded++
		}
		if err := br.add(blk, line); err != nil {
			br.discard(blk)
			return nil, fmt.Errorf("line %d: %w", br.lines+1, err)
		}
		br.lines++
	}

	if len(blk.lines) == 0 {
		br.discard(blk)
		return nil, io.EOF
	}

	for len(blk.lines) < br.cfg.LinesPerBlock {
		if err := br.add(blk, placeholderLine(br.cfg.SortColumn)); err != nil {
			br.discard(blk)
			return nil, fmt.Errorf("placeholder line: %w", err)
		}
		br.synthesized++
	}

	br.blocks++
	return blk, nil
}

func (br *BlockReader) add(blk *Block, line Line) error {
	n := line.footprint()
	if err := br.budget.charge(n); err != nil {
		return err
	}
	blk.lines = append(blk.lines, line)
	blk.footprint += n
	return nil
}

// discard releases a block that never made it into a list.
func (br *BlockReader) discard(blk *Block) {
	releaseBlock(br.budget, blk)
}

// releaseBlock returns a block's charge to budget and drops its lines.
func releaseBlock(budget *Budget, blk *Block) {
	budget.release(blk.footprint)
	blk.footprint = 0
	blk.lines = nil
	blk.prev, blk.next = nil, nil
}

// Release returns a block obtained from Next that the caller will not
// insert into a list, such as after a failed Insert.
func (br *BlockReader) Release(blk *Block) {
	if blk != nil {
		releaseBlock(br.budget, blk)
	}
}

// BytesRead returns the input bytes consumed so far.
func (br *BlockReader) BytesRead() int64 {
	return br.lr.BytesRead()
}
