package tsort

import (
	"errors"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"
	sorterrors "github.com/tbarnett/tsort/errors"
)

// outputFile writes a sorted list to disk using mmap-based zero-copy writes.
// The exact size is known once sorting is done, so the file is created,
// pre-allocated and mapped in one go.
type outputFile struct {
	file *os.File
	mmap mmap.MMap // nil for an empty output
	data []byte

	size   int64
	offset int64

	// Streaming hash of everything written, computed while the bytes are
	// hot in cache.
	hasher *xxhash.Digest
}

// createOutputFile creates path with room for exactly size bytes.
func createOutputFile(path string, size int64) (*outputFile, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: create output file: %w", sorterrors.ErrWrite, err)
	}

	of := &outputFile{
		file:   file,
		size:   size,
		hasher: xxhash.New(),
	}
	if size == 0 {
		return of, nil
	}

	// Pre-allocate disk blocks to prevent SIGBUS on disk full
	if err := fallocateFile(file, size); err != nil {
		primaryErr := fmt.Errorf("%w: allocate disk space: %w", sorterrors.ErrWrite, err)
		return nil, errors.Join(primaryErr, file.Close())
	}

	mm, err := mmap.MapRegion(file, int(size), mmap.RDWR, 0, 0)
	if err != nil {
		primaryErr := fmt.Errorf("%w: mmap output file: %w", sorterrors.ErrWrite, err)
		return nil, errors.Join(primaryErr, file.Close())
	}
	of.mmap = mm
	of.data = []byte(mm)

	// On Linux 5.14+, uses MADV_POPULATE_WRITE. No-op on other platforms.
	prefaultRegion(of.data)
	return of, nil
}

// writeList copies every visible line of l into the mapping.
func (of *outputFile) writeList(l *BlockList) error {
	for blk := range l.All() {
		for _, line := range blk.lines {
			if err := of.writeLine(line.Bytes()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (of *outputFile) writeLine(content []byte) error {
	end := of.offset + int64(len(content)) + 1
	if end > of.size {
		return fmt.Errorf("%w: output exceeds reserved size %d", sorterrors.ErrWrite, of.size)
	}
	start := of.offset
	copy(of.data[start:], content)
	of.data[end-1] = '\n'
	if _, err := of.hasher.Write(of.data[start:end]); err != nil {
		panic("hash.Hash.Write returned unexpected error: " + err.Error())
	}
	of.offset = end
	return nil
}

// finalize flushes and closes the file.
// On error, delegates to close() for idempotent cleanup.
func (of *outputFile) finalize() error {
	if of.offset != of.size {
		primaryErr := fmt.Errorf("%w: wrote %d of %d bytes", sorterrors.ErrWrite, of.offset, of.size)
		return errors.Join(primaryErr, of.close())
	}

	if of.mmap != nil {
		if err := of.mmap.Flush(); err != nil {
			primaryErr := fmt.Errorf("%w: mmap flush: %w", sorterrors.ErrWrite, err)
			return errors.Join(primaryErr, of.close())
		}
		// Nil mmap regardless of outcome to prevent close() from retrying.
		unmapErr := of.mmap.Unmap()
		of.mmap = nil
		of.data = nil
		if unmapErr != nil {
			primaryErr := fmt.Errorf("%w: mmap unmap: %w", sorterrors.ErrWrite, unmapErr)
			return errors.Join(primaryErr, of.close())
		}
	}

	closeErr := of.file.Close()
	of.file = nil
	if closeErr != nil {
		return fmt.Errorf("%w: close output file: %w", sorterrors.ErrWrite, closeErr)
	}
	return nil
}

// close releases the mapping and file without finalizing.
// Idempotent: safe to call multiple times.
func (of *outputFile) close() error {
	var unmapErr error
	if of.mmap != nil {
		unmapErr = of.mmap.Unmap()
		of.mmap = nil
		of.data = nil
	}
	var closeErr error
	if of.file != nil {
		closeErr = of.file.Close()
		of.file = nil
	}
	return errors.Join(unmapErr, closeErr)
}

// digest returns the xxhash64 of the bytes written so far.
func (of *outputFile) digest() uint64 {
	return of.hasher.Sum64()
}
