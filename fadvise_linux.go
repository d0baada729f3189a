//go:build linux

package tsort

import "golang.org/x/sys/unix"

// fadviseSequential hints to the kernel that the input will be read once,
// front to back. Best-effort: errors are silently ignored.
func fadviseSequential(fd int, offset, length int64) {
	_ = unix.Fadvise(fd, offset, length, unix.FADV_SEQUENTIAL)
}
