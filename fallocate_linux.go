//go:build linux

package tsort

import (
	"os"

	"golang.org/x/sys/unix"
)

// fallocateFile reserves size bytes for the output so a full disk fails
// here rather than as SIGBUS while writing through the mapping.
func fallocateFile(file *os.File, size int64) error {
	if err := unix.Fallocate(int(file.Fd()), 0, 0, size); err != nil {
		// NFS and some other filesystems have no fallocate
		return unix.Ftruncate(int(file.Fd()), size)
	}
	// fallocate with mode 0 already extends the size; keep it exact anyway
	return unix.Ftruncate(int(file.Fd()), size)
}
