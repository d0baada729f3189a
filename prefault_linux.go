//go:build linux

package tsort

import "golang.org/x/sys/unix"

// MADV_POPULATE_WRITE was added in Linux 5.14.
const madvPopulateWrite = 23

// prefaultRegion asks the kernel to fault in the output mapping before it
// is filled. Older kernels return EINVAL, which is ignored like any other
// failure.
func prefaultRegion(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, madvPopulateWrite)
}
