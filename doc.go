// Package tsort sorts text files whose records span a fixed number of lines.
//
// A record ("block") is LinesPerBlock consecutive lines. Blocks are ordered
// by the bytes starting at SortColumn of line SortLine within each block,
// compared byte-wise, optionally folding ASCII case and optionally in
// descending order. The whole input is loaded into memory; each block is
// inserted into an always-sorted linked list as it arrives, and the list is
// written out once the input is exhausted.
//
// # Basic Usage
//
// Sorting one file into another:
//
//	stats, err := tsort.SortFile("in.txt", "out.txt",
//	    tsort.WithLinesPerBlock(3),
//	    tsort.WithSortLine(1),
//	    tsort.WithSortColumn(4),
//	    tsort.WithCaseInsensitive(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d blocks\n", stats.Blocks)
//
// Streams work the same way with Sort(r, w, opts...).
//
// # Short input
//
// Lines shorter than the sort column are zero-padded internally so a key can
// always be taken; the padding is never written. If the input ends part way
// through a block, the block is completed with empty lines, which do appear
// in the output.
//
// # Package Structure
//
//   - Public API: sort.go (Load, Sort, SortFile, Check)
//   - Configuration: options.go (Config, Option, With* functions), budget.go
//   - Input: line_reader.go (LineReader), block.go (BlockReader, Block), line.go
//   - Ordering: compare.go (Comparator), list.go (BlockList)
//   - Output: writer.go (BlockList.WriteTo), output_file.go (mmap file writer)
//   - Platform: fadvise_*.go, fallocate_*.go, prefault_*.go
package tsort
