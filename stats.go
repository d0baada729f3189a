package tsort

import "log/slog"

// Stats describes a completed run.
type Stats struct {
	Blocks           int   // blocks loaded and written
	Lines            int   // lines read from input
	SynthesizedLines int   // empty lines added to complete the final block
	PaddedLines      int   // lines zero-extended to reach the sort column
	DistinctKeys     int   // distinct sort keys, after case folding if enabled
	Comparisons      int64 // comparator calls made while inserting
	PeakMemory       int64 // budget high-water mark; 0 without a memory limit

	InputBytes   int64
	OutputBytes  int64
	InputDigest  uint64 // xxhash64 of the input
	OutputDigest uint64 // xxhash64 of the output
}

// Unchanged reports whether the output is byte-for-byte the input, which
// is what sorting already sorted data produces.
func (s Stats) Unchanged() bool {
	return s.InputBytes == s.OutputBytes && s.InputDigest == s.OutputDigest
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("blocks", s.Blocks),
		slog.Int("lines", s.Lines),
		slog.Int("synthesized_lines", s.SynthesizedLines),
		slog.Int("padded_lines", s.PaddedLines),
		slog.Int("distinct_keys", s.DistinctKeys),
		slog.Int64("comparisons", s.Comparisons),
		slog.Int64("input_bytes", s.InputBytes),
		slog.Int64("output_bytes", s.OutputBytes),
		slog.Bool("unchanged", s.Unchanged()),
	)
}
