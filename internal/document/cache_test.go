package document

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func buildLargeIndex(t *testing.T, numLines int) *Index {
	t.Helper()
	var content strings.Builder
	for i := 0; i < numLines; i++ {
		fmt.Fprintf(&content, "log entry number %d\n", i)
	}
	return buildIndex(t, content.String())
}

func TestCacheLine(t *testing.T) {
	const numLines = SplitLines*2 + 100
	ix := buildLargeIndex(t, numLines)
	cache, err := NewCache(ix, 0)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	defer cache.Close()

	// Spot-check lines across split boundaries, twice to cover the hit path.
	for range []int{0, 1} {
		for _, n := range []int{0, SplitLines - 1, SplitLines, numLines - 1} {
			want := fmt.Sprintf("log entry number %d", n)
			got, err := cache.Line(n)
			if err != nil {
				t.Fatalf("Line(%d): %v", n, err)
			}
			if got != want {
				t.Errorf("Line(%d) = %q, want %q", n, got, want)
			}
		}
	}

	if _, err := cache.Line(numLines); err == nil {
		t.Fatal("Line past EOF succeeded")
	}
	if _, err := cache.Line(-1); err == nil {
		t.Fatal("Line(-1) succeeded")
	}
}

func TestSplitSpanAndText(t *testing.T) {
	const numLines = SplitLines + 10
	ix := buildLargeIndex(t, numLines)
	cache, err := NewCache(ix, 0)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	defer cache.Close()

	first, last := cache.SplitSpan(0)
	if first != 0 || last != SplitLines-1 {
		t.Fatalf("SplitSpan(0) = [%d,%d], want [0,%d]", first, last, SplitLines-1)
	}
	first, last = cache.SplitSpan(1)
	if first != SplitLines || last != numLines-1 {
		t.Fatalf("SplitSpan(1) = [%d,%d], want [%d,%d]", first, last, SplitLines, numLines-1)
	}

	text, err := cache.SplitText(1)
	if err != nil {
		t.Fatalf("SplitText: %v", err)
	}
	lines := strings.Split(text, "\n")
	if len(lines) != numLines-SplitLines {
		t.Fatalf("split text lines = %d, want %d", len(lines), numLines-SplitLines)
	}
	if want := fmt.Sprintf("log entry number %d", SplitLines); lines[0] != want {
		t.Fatalf("first split line = %q, want %q", lines[0], want)
	}
}

func TestCacheEvictsUnderBudget(t *testing.T) {
	const numLines = SplitLines * 4
	ix := buildLargeIndex(t, numLines)

	// Budget only fits roughly one split's content.
	_, splitBytes := ix.LineSpan(0)
	cache, err := NewCache(ix, splitBytes*SplitLines)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	defer cache.Close()

	for n := 0; n < numLines; n += SplitLines {
		if _, err := cache.Line(n); err != nil {
			t.Fatalf("Line(%d): %v", n, err)
		}
	}

	cache.mu.Lock()
	resident := len(cache.splits)
	used := cache.used
	budget := cache.budget
	cache.mu.Unlock()
	if resident >= 4 {
		t.Fatalf("no eviction happened, %d splits resident", resident)
	}
	if used > budget {
		t.Fatalf("used %d exceeds budget %d", used, budget)
	}

	// Evicted splits reload transparently.
	if got, err := cache.Line(0); err != nil || got != "log entry number 0" {
		t.Fatalf("Line(0) after eviction = %q, %v", got, err)
	}
}

func TestCachePrefetch(t *testing.T) {
	ix := buildLargeIndex(t, SplitLines+10)
	cache, err := NewCache(ix, 0)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	defer cache.Close()

	cache.Prefetch(SplitLines + 5)
	cache.Prefetch(-1) // out of range, ignored

	// The prefetch is asynchronous; the synchronous read must succeed
	// whether or not it already landed.
	if got, err := cache.Line(SplitLines + 5); err != nil || got == "" {
		t.Fatalf("Line after Prefetch = %q, %v", got, err)
	}
}

func TestCacheCRLF(t *testing.T) {
	ix, err := Build(context.Background(), writeFile(t, "one\r\ntwo\r\n"), BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	cache, err := NewCache(ix, 0)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	defer cache.Close()

	for n, want := range []string{"one", "two"} {
		if got, _ := cache.Line(n); got != want {
			t.Errorf("Line(%d) = %q, want %q", n, got, want)
		}
	}
}
