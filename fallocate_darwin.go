//go:build darwin

package tsort

import (
	"os"

	"golang.org/x/sys/unix"
)

// fallocateFile reserves size bytes for the output using F_PREALLOCATE,
// then sets the file length.
func fallocateFile(file *os.File, size int64) error {
	fst := unix.Fstore_t{
		Flags:   unix.F_ALLOCATEALL,
		Posmode: unix.F_PEOFPOSMODE,
		Offset:  0,
		Length:  size,
	}
	// Not every filesystem supports preallocation; the truncate still sizes
	// the file for the mapping.
	_ = unix.FcntlFstore(file.Fd(), unix.F_PREALLOCATE, &fst)
	return unix.Ftruncate(int(file.Fd()), size)
}
