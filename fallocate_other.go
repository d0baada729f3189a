//go:build !linux && !darwin

package tsort

import "os"

// fallocateFile sets the output length. Disk blocks may not be reserved on
// every filesystem.
func fallocateFile(file *os.File, size int64) error {
	return file.Truncate(size)
}
