package tsort

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	sorterrors "github.com/tbarnett/tsort/errors"
)

// LineReader rebuilds newline-terminated lines of any length from fixed-size
// chunk reads of an underlying stream.
//
// Each chunk holds at most chunkSize-1 bytes and stops early after a '\n'.
// A chunk that fills up without a terminator means the line continues, so
// the next chunk is appended to it.
type LineReader struct {
	br        *bufio.Reader
	chunk     []byte
	chunkSize int
	bytesRead int64
}

// NewLineReader returns a LineReader over r using chunkSize-byte reads.
// Sizes below 2 fall back to DefaultChunkSize.
func NewLineReader(r io.Reader, chunkSize int) *LineReader {
	if chunkSize < minChunkSize {
		chunkSize = DefaultChunkSize
	}
	return &LineReader{
		br:        bufio.NewReader(r),
		chunk:     make([]byte, 0, chunkSize-1),
		chunkSize: chunkSize,
	}
}

// ReadLine returns the next line without its terminator. The returned slice
// is owned by the caller. A zero-length line is returned as an empty,
// non-nil slice.
//
// ReadLine returns io.EOF only when no byte at all was available. An
// unterminated final line is returned normally and io.EOF follows on the
// next call. I/O failures wrap ErrRead; the partial line is dropped.
func (lr *LineReader) ReadLine() ([]byte, error) {
	var line []byte
	for {
		chunk, err := lr.readChunk()
		if err == io.EOF {
			if line == nil {
				return nil, io.EOF
			}
			return line, nil
		}
		if err != nil {
			return nil, err
		}

		terminated := chunk[len(chunk)-1] == '\n'
		if terminated {
			chunk = chunk[:len(chunk)-1]
		}
		if line == nil {
			line = make([]byte, 0, len(chunk))
		}
		line = append(line, chunk...)

		if terminated || len(chunk) < lr.chunkSize-1 {
			return line, nil
		}
	}
}

// readChunk reads up to chunkSize-1 bytes, stopping after a '\n'.
// It never returns an empty chunk without an error.
func (lr *LineReader) readChunk() ([]byte, error) {
	buf := lr.chunk[:0]
	limit := lr.chunkSize - 1
	for len(buf) < limit {
		c, err := lr.br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(buf) > 0 {
					break
				}
				return nil, io.EOF
			}
			return nil, fmt.Errorf("%w: %w", sorterrors.ErrRead, err)
		}
		buf = append(buf, c)
		lr.bytesRead++
		if c == '\n' {
			break
		}
	}
	lr.chunk = buf
	return buf, nil
}

// BytesRead returns the number of bytes consumed from the stream so far.
func (lr *LineReader) BytesRead() int64 {
	return lr.bytesRead
}
