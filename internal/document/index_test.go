package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"pgregory.net/rapid"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func buildIndex(t *testing.T, content string) *Index {
	t.Helper()
	ix, err := Build(context.Background(), writeFile(t, content), BuildOptions{})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	return ix
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		content string
		lines   []string
	}{
		{
			name:    "empty file",
			content: "",
			lines:   nil,
		},
		{
			name:    "single line with newline",
			content: "hello\n",
			lines:   []string{"hello"},
		},
		{
			name:    "single line without newline",
			content: "hello",
			lines:   []string{"hello"},
		},
		{
			name:    "trailing content without newline",
			content: "one\ntwo\nthree",
			lines:   []string{"one", "two", "three"},
		},
		{
			name:    "empty lines",
			content: "\n\nx\n",
			lines:   []string{"", "", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix := buildIndex(t, tt.content)
			if ix.Len() != len(tt.lines) {
				t.Fatalf("Len() = %d, want %d", ix.Len(), len(tt.lines))
			}
			cache, err := NewCache(ix, 0)
			if err != nil {
				t.Fatalf("NewCache: %v", err)
			}
			defer cache.Close()
			for n, want := range tt.lines {
				got, err := cache.Line(n)
				if err != nil {
					t.Fatalf("Line(%d): %v", n, err)
				}
				if got != want {
					t.Errorf("Line(%d) = %q, want %q", n, got, want)
				}
			}
		})
	}
}

func TestLineForOffsetBoundaries(t *testing.T) {
	ix := buildIndex(t, "aa\nbbb\nc\n")

	tests := []struct {
		name string
		off  int64
		want int
	}{
		{"start of file", 0, 0},
		{"inside first line", 1, 0},
		{"newline of first line", 2, 0},
		{"start of second line", 3, 1},
		{"inside second line", 5, 1},
		{"start of last line", 7, 2},
		{"at file size", 9, 2},
		{"beyond file size", 100, 2},
		{"negative", -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ix.LineForOffset(tt.off); got != tt.want {
				t.Fatalf("LineForOffset(%d) = %d, want %d", tt.off, got, tt.want)
			}
		})
	}
}

func TestIndexRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lines := rapid.SliceOfN(
			rapid.StringMatching(`[ -~]{0,40}`), 1, 50,
		).Draw(rt, "lines")
		finalNL := rapid.Bool().Draw(rt, "finalNL")

		content := strings.Join(lines, "\n")
		if finalNL {
			content += "\n"
		}

		path := filepath.Join(t.TempDir(), "round.log")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			rt.Fatalf("WriteFile: %v", err)
		}
		ix, err := Build(context.Background(), path, BuildOptions{})
		if err != nil {
			rt.Fatalf("Build: %v", err)
		}

		want := len(lines)
		if !finalNL && lines[len(lines)-1] == "" && want > 1 {
			// A trailing empty element in the join does not produce a
			// physical line unless terminated by a newline.
			want--
		}
		if content == "" {
			want = 0
		}
		if ix.Len() != want {
			rt.Fatalf("Len() = %d, want %d", ix.Len(), want)
		}

		for n := 0; n < ix.Len(); n++ {
			off, _ := ix.LineSpan(n)
			if got := ix.LineForOffset(off); got != n {
				rt.Fatalf("LineForOffset(LineSpan(%d).offset) = %d", n, got)
			}
		}
	})
}

func TestBuildReportsProgressAndCancels(t *testing.T) {
	var content strings.Builder
	for i := 0; i < 5000; i++ {
		fmt.Fprintf(&content, "line %d with some padding text\n", i)
	}
	path := writeFile(t, content.String())

	var calls atomic.Int64
	var mu sync.Mutex
	var high float64
	ix, err := Build(context.Background(), path, BuildOptions{
		Progress: func(f float64) {
			calls.Add(1)
			mu.Lock()
			high = max(high, f)
			mu.Unlock()
		},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if ix.Len() != 5000 {
		t.Fatalf("Len() = %d, want 5000", ix.Len())
	}
	if calls.Load() == 0 {
		t.Fatal("no progress reported")
	}
	if high != 1.0 {
		t.Fatalf("highest progress = %v, want 1.0", high)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Build(ctx, path, BuildOptions{}); err == nil {
		t.Fatal("Build with cancelled context succeeded")
	}
}
