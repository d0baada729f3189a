package tsort

import (
	"bufio"
	"fmt"
	"io"

	sorterrors "github.com/tbarnett/tsort/errors"
)

// WriteTo writes every line of every block in list order, each followed by
// '\n'. Only visible content is written, so padding never appears and
// placeholder lines come out empty. Write failures wrap ErrWrite.
func (l *BlockList) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64
	for blk := range l.All() {
		for _, line := range blk.lines {
			n, err := bw.Write(line.Bytes())
			written += int64(n)
			if err != nil {
				return written, fmt.Errorf("%w: %w", sorterrors.ErrWrite, err)
			}
			if err := bw.WriteByte('\n'); err != nil {
				return written, fmt.Errorf("%w: %w", sorterrors.ErrWrite, err)
			}
			written++
		}
	}
	if err := bw.Flush(); err != nil {
		return written, fmt.Errorf("%w: %w", sorterrors.ErrWrite, err)
	}
	return written, nil
}

// OutputSize returns the number of bytes WriteTo will produce.
func (l *BlockList) OutputSize() int64 {
	var size int64
	for blk := range l.All() {
		for _, line := range blk.lines {
			size += int64(line.Len()) + 1
		}
	}
	return size
}
