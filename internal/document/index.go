package document

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// chunkSize is the unit of work for the parallel index scan.
const chunkSize = 8 << 20

// BuildOptions configure the index scan.
type BuildOptions struct {
	// Progress, when non-nil, is called with the fraction of bytes scanned
	// so far. Calls happen from worker goroutines; the callback must be
	// safe for concurrent use.
	Progress func(fraction float64)

	// Workers caps the scan parallelism. Zero uses GOMAXPROCS.
	Workers int
}

// Index holds the byte offset of every physical line start in the file.
type Index struct {
	path    string
	size    int64
	starts  []int64
	finalNL bool
}

// Build scans the file at path once and records one entry per physical
// line. The scan runs in parallel over byte chunks and honors ctx
// cancellation.
func Build(ctx context.Context, path string, opts BuildOptions) (*Index, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log file: %w", err)
	}
	size := info.Size()
	if size == 0 {
		return &Index{path: path, size: 0}, nil
	}

	var last [1]byte
	if _, err := file.ReadAt(last[:], size-1); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	numChunks := int((size + chunkSize - 1) / chunkSize)
	perChunk := make([][]int64, numChunks)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var scanned atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < numChunks; i++ {
		g.Go(func() error {
			start := int64(i) * chunkSize
			end := min(start+chunkSize, size)
			buf := make([]byte, end-start)
			if _, err := file.ReadAt(buf, start); err != nil {
				return fmt.Errorf("read log file at %d: %w", start, err)
			}

			var starts []int64
			off := 0
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				nl := bytes.IndexByte(buf[off:], '\n')
				if nl < 0 {
					break
				}
				lineStart := start + int64(off+nl) + 1
				if lineStart < size {
					starts = append(starts, lineStart)
				}
				off += nl + 1
			}
			perChunk[i] = starts

			done := scanned.Add(end - start)
			if opts.Progress != nil {
				opts.Progress(float64(done) / float64(size))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 1
	for _, starts := range perChunk {
		total += len(starts)
	}
	all := make([]int64, 1, total)
	all[0] = 0
	for _, starts := range perChunk {
		all = append(all, starts...)
	}

	return &Index{path: path, size: size, starts: all, finalNL: last[0] == '\n'}, nil
}

// Path returns the indexed file's path.
func (ix *Index) Path() string { return ix.path }

// Size returns the indexed file's length in bytes.
func (ix *Index) Size() int64 { return ix.size }

// Len returns the number of physical lines in the file.
func (ix *Index) Len() int { return len(ix.starts) }

// LineSpan returns the byte offset and content length of line n. The length
// excludes the trailing newline. Line numbers outside the file panic; the
// caller owns bounds.
func (ix *Index) LineSpan(n int) (offset, length int64) {
	offset = ix.starts[n]
	end := ix.size
	if n+1 < len(ix.starts) {
		end = ix.starts[n+1] - 1
	} else if ix.finalNL {
		end--
	}
	return offset, end - offset
}

// LineForOffset returns the number of the line containing the given byte
// offset. Offsets at or beyond the end of the file resolve to the last
// line; negative offsets resolve to line 0.
func (ix *Index) LineForOffset(off int64) int {
	if len(ix.starts) == 0 || off <= 0 {
		return 0
	}
	if off >= ix.size {
		return len(ix.starts) - 1
	}
	// First line start greater than off; the line containing off is the
	// one before it.
	i := sort.Search(len(ix.starts), func(i int) bool { return ix.starts[i] > off })
	return i - 1
}
