//go:build !linux

package tsort

// prefaultRegion is a no-op on non-Linux platforms.
func prefaultRegion(data []byte) {}
