package document

import (
	"container/list"
	"fmt"
	"os"
	"strings"
	"sync"
)

const (
	// SplitLines is the number of consecutive physical lines covered by one
	// cache entry.
	SplitLines = 4096

	// DefaultBudget bounds the resident split content when the caller does
	// not configure one.
	DefaultBudget = 64 << 20
)

// Cache is an LRU cache of decoded line content, paged in split-sized
// chunks. It is safe for concurrent use; a background prefetcher may
// populate splits while the render path reads resident ones.
type Cache struct {
	ix     *Index
	file   *os.File
	budget int64

	mu     sync.Mutex
	splits map[int]*cacheEntry
	order  *list.List // front = most recently used
	used   int64
}

type cacheEntry struct {
	split *split
	elem  *list.Element
}

// split holds the decoded content of a line range. Immutable once inserted.
type split struct {
	id    int
	lines []string
	bytes int64
}

// NewCache opens the indexed file for random access. budget is the resident
// byte limit; zero or negative uses DefaultBudget.
func NewCache(ix *Index, budget int64) (*Cache, error) {
	file, err := os.Open(ix.Path())
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &Cache{
		ix:     ix,
		file:   file,
		budget: budget,
		splits: make(map[int]*cacheEntry),
		order:  list.New(),
	}, nil
}

// Close releases the underlying file.
func (c *Cache) Close() error {
	return c.file.Close()
}

// Line returns the content of physical line n, without its trailing
// newline, loading the containing split on demand.
func (c *Cache) Line(n int) (string, error) {
	if n < 0 || n >= c.ix.Len() {
		return "", fmt.Errorf("line %d out of range [0,%d)", n, c.ix.Len())
	}
	sp, err := c.fetch(n / SplitLines)
	if err != nil {
		return "", err
	}
	return sp.lines[n%SplitLines], nil
}

// SplitSpan returns the first and last line numbers covered by split id.
func (c *Cache) SplitSpan(id int) (first, last int) {
	first = id * SplitLines
	last = min(first+SplitLines, c.ix.Len()) - 1
	return first, last
}

// SplitText returns the content of split id as a single string with lines
// joined by newlines, loading the split on demand. A pattern matching any
// single line also matches the joined text, so callers can screen a whole
// split with one scan.
func (c *Cache) SplitText(id int) (string, error) {
	sp, err := c.fetch(id)
	if err != nil {
		return "", err
	}
	return strings.Join(sp.lines, "\n"), nil
}

// Prefetch loads the split containing line n in the background. Errors are
// dropped; the synchronous path reports them when the line is actually
// needed.
func (c *Cache) Prefetch(n int) {
	if n < 0 || n >= c.ix.Len() {
		return
	}
	id := n / SplitLines
	c.mu.Lock()
	_, resident := c.splits[id]
	c.mu.Unlock()
	if resident {
		return
	}
	go func() {
		_, _ = c.fetch(id)
	}()
}

// fetch returns the split with the given id, reading and decoding it if it
// is not resident. The read happens outside the lock; a concurrent loader
// racing on the same split wins harmlessly since splits are immutable.
func (c *Cache) fetch(id int) (*split, error) {
	c.mu.Lock()
	if entry, ok := c.splits[id]; ok {
		c.order.MoveToFront(entry.elem)
		c.mu.Unlock()
		return entry.split, nil
	}
	c.mu.Unlock()

	sp, err := c.load(id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.splits[id]; ok {
		c.order.MoveToFront(entry.elem)
		return entry.split, nil
	}
	c.splits[id] = &cacheEntry{split: sp, elem: c.order.PushFront(id)}
	c.used += sp.bytes
	for c.used > c.budget && c.order.Len() > 1 {
		back := c.order.Back()
		victim := back.Value.(int)
		c.used -= c.splits[victim].split.bytes
		delete(c.splits, victim)
		c.order.Remove(back)
	}
	return sp, nil
}

// load reads and decodes one split from disk.
func (c *Cache) load(id int) (*split, error) {
	first := id * SplitLines
	last := min(first+SplitLines, c.ix.Len()) - 1

	start, _ := c.ix.LineSpan(first)
	lastOff, lastLen := c.ix.LineSpan(last)
	end := lastOff + lastLen

	buf := make([]byte, end-start)
	if _, err := c.file.ReadAt(buf, start); err != nil {
		return nil, fmt.Errorf("read split %d: %w", id, err)
	}

	lines := make([]string, 0, last-first+1)
	var total int64
	for n := first; n <= last; n++ {
		off, length := c.ix.LineSpan(n)
		// Carriage returns are stripped here once, so every consumer sees
		// the same content for CRLF files.
		line := strings.TrimSuffix(string(buf[off-start:off-start+length]), "\r")
		lines = append(lines, line)
		total += int64(len(line))
	}

	return &split{id: id, lines: lines, bytes: total}, nil
}
