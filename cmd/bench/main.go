// Bench is a benchmarking tool for measuring tsort load, sort and write
// time and memory usage on synthetic multi-line records.
//
// Usage:
//
//	go run ./cmd/bench -records 50000 -block 3 -column 5
//
// Flags:
//
//	-records   Number of records (blocks) per input file (default: 20,000).
//	           Insertion is O(n) per record, so time grows with the square.
//	-block     Lines per record (default: 2)
//	-column    0-based sort column on the key line (default: 4)
//	-presorted Generate input that is already in order (default: false)
//	-ignorecase  Case-insensitive comparison (default: false)
//	-runs      Independent files to sort (default: 1)
//	-parallel  Runs in flight at once (default: 1)
package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/metrics"
	"runtime/pprof"
	"slices"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spaolacci/murmur3"
	"golang.org/x/sync/errgroup"

	"github.com/tbarnett/tsort"
)

// getMaxRSS returns the maximum resident set size in bytes.
// Uses getrusage(RUSAGE_SELF) which tracks peak RSS since process start.
func getMaxRSS() uint64 {
	var rusage syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &rusage); err != nil {
		return 0
	}
	// On macOS, MaxRss is in bytes. On Linux, it's in kilobytes.
	maxRSS := uint64(rusage.Maxrss)
	if runtime.GOOS == "linux" {
		maxRSS *= 1024
	}
	return maxRSS
}

// recordKey derives a deterministic mixed-case key for record i of run.
func recordKey(run, i int, seed uint32) string {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(run)<<40|uint64(i))
	h1, h2 := murmur3.Sum128WithSeed(buf[:], seed)
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	key := make([]byte, 16)
	for j := range key {
		v := h1
		if j >= 8 {
			v = h2
		}
		key[j] = alphabet[(v>>((j%8)*8))%uint64(len(alphabet))]
	}
	return string(key)
}

// writeInput writes records blocks of block lines. The key sits on the
// first line after column bytes of filler.
func writeInput(path string, run, records, block, column int, presorted bool, seed uint32) error {
	keys := make([]string, records)
	for i := range keys {
		keys[i] = recordKey(run, i, seed)
	}
	if presorted {
		slices.Sort(keys)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	filler := make([]byte, column)
	for i := range filler {
		filler[i] = '.'
	}
	for i, key := range keys {
		w.Write(filler)
		w.WriteString(key)
		w.WriteByte('\n')
		for l := 1; l < block; l++ {
			fmt.Fprintf(w, "record %d line %d\n", i, l+1)
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func main() {
	recordsFlag := flag.Int("records", 20_000, "records per input file")
	blockFlag := flag.Int("block", 2, "lines per record")
	columnFlag := flag.Int("column", 4, "0-based sort column")
	presortedFlag := flag.Bool("presorted", false, "generate already sorted input")
	ignoreCaseFlag := flag.Bool("ignorecase", false, "case-insensitive comparison")
	runsFlag := flag.Int("runs", 1, "independent files to sort")
	parallelFlag := flag.Int("parallel", 1, "runs in flight at once")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file (sort phase only)")
	flag.Parse()

	tmpDir, err := os.MkdirTemp("", "tsort-bench-")
	if err != nil {
		fmt.Printf("Failed to create temp dir: %v\n", err)
		return
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	fmt.Println("Generating input...")
	seed := uint32(0x1234)
	genStart := time.Now()
	for run := 0; run < *runsFlag; run++ {
		path := filepath.Join(tmpDir, fmt.Sprintf("in-%d.txt", run))
		if err := writeInput(path, run, *recordsFlag, *blockFlag, *columnFlag, *presortedFlag, seed); err != nil {
			fmt.Printf("Failed to write input: %v\n", err)
			return
		}
	}
	genDuration := time.Since(genStart)

	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	var baseline runtime.MemStats
	runtime.ReadMemStats(&baseline)
	baselineRSS := getMaxRSS()

	// 10ms sampling for peak heap via runtime/metrics, which avoids the
	// stop-the-world pause of ReadMemStats.
	var peakAlloc atomic.Uint64
	peakAlloc.Store(baseline.Alloc)
	done := make(chan struct{})
	go func() {
		samples := []metrics.Sample{
			{Name: "/memory/classes/heap/objects:bytes"},
		}
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				metrics.Read(samples)
				heapBytes := samples[0].Value.Uint64()
				for {
					old := peakAlloc.Load()
					if heapBytes <= old || peakAlloc.CompareAndSwap(old, heapBytes) {
						break
					}
				}
			}
		}
	}()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Printf("could not create CPU profile: %v\n", err)
			return
		}
		defer func() { _ = f.Close() }()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Printf("could not start CPU profile: %v\n", err)
			return
		}
	}

	fmt.Println("Sorting...")
	opts := []tsort.Option{
		tsort.WithLinesPerBlock(*blockFlag),
		tsort.WithSortColumn(*columnFlag),
		tsort.WithCaseInsensitive(*ignoreCaseFlag),
	}
	results := make([]tsort.Stats, *runsFlag)
	sortStart := time.Now()
	var g errgroup.Group
	g.SetLimit(max(1, *parallelFlag))
	for run := 0; run < *runsFlag; run++ {
		g.Go(func() error {
			in := filepath.Join(tmpDir, fmt.Sprintf("in-%d.txt", run))
			out := filepath.Join(tmpDir, fmt.Sprintf("out-%d.txt", run))
			stats, err := tsort.SortFile(in, out, opts...)
			if err != nil {
				return fmt.Errorf("run %d: %w", run, err)
			}
			results[run] = stats
			return nil
		})
	}
	err = g.Wait()
	sortDuration := time.Since(sortStart)

	if *cpuprofile != "" {
		pprof.StopCPUProfile()
	}
	close(done)

	if err != nil {
		fmt.Printf("Sort failed: %v\n", err)
		return
	}

	peakHeapMem := peakAlloc.Load() - baseline.Alloc
	peakRSSMem := getMaxRSS() - baselineRSS

	var blocks int
	var comparisons int64
	var inputBytes int64
	for _, s := range results {
		blocks += s.Blocks
		comparisons += s.Comparisons
		inputBytes += s.InputBytes
	}

	fmt.Printf("\n")
	fmt.Printf("╔═════════════════════╦══════════════════╗\n")
	fmt.Printf("║ Metric              ║ Value            ║\n")
	fmt.Printf("╠═════════════════════╬══════════════════╣\n")
	fmt.Printf("║ Runs                ║ %8d         ║\n", *runsFlag)
	fmt.Printf("║ Blocks (total)      ║ %8d         ║\n", blocks)
	fmt.Printf("║ Input               ║ %8.1f MB      ║\n", float64(inputBytes)/1_000_000)
	fmt.Printf("║ Generate time       ║ %8.2f sec     ║\n", genDuration.Seconds())
	fmt.Printf("║ Sort time           ║ %8.2f sec     ║\n", sortDuration.Seconds())
	fmt.Printf("║ Blocks/sec          ║ %8.0f         ║\n", float64(blocks)/sortDuration.Seconds())
	fmt.Printf("║ Comparisons/block   ║ %8.1f         ║\n", float64(comparisons)/float64(max(1, blocks)))
	fmt.Printf("║ Peak heap memory    ║ %8.1f MB      ║\n", float64(peakHeapMem)/1_000_000)
	fmt.Printf("║ Peak RSS memory     ║ %8.1f MB      ║\n", float64(peakRSSMem)/1_000_000)
	fmt.Printf("╚═════════════════════╩══════════════════╝\n")
}
