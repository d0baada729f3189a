// Package errors defines all exported error sentinels for the tsort library.
//
// This is the single source of truth for error values. The top-level tsort
// package and the command-line tools import from here, so errors.Is checks
// work across package boundaries.
//
// End of input is not an error: the block reader reports it with io.EOF.
package errors

import "errors"

// Load errors
var (
	ErrAllocation = errors.New("tsort: allocation failure")
	ErrRead       = errors.New("tsort: read error")
)

// Sort errors
var (
	ErrComparison = errors.New("tsort: comparison failure")
)

// Output errors
var (
	ErrWrite = errors.New("tsort: write error")
)

// Configuration errors
var (
	ErrInvalidConfig = errors.New("tsort: invalid configuration")
)
