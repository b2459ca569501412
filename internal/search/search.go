package search

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrInvalidPattern reports a pattern that does not compile. The
	// previous search state is left untouched by the caller.
	ErrInvalidPattern = errors.New("invalid search pattern")

	// ErrNoMatch reports a full scan cycle without a single match.
	ErrNoMatch = errors.New("no matches")
)

// Direction of a scan through the file.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Source resolves physical line content. document.Cache satisfies it.
type Source interface {
	Line(n int) (string, error)
}

// Pattern is a compiled search pattern.
type Pattern struct {
	Text    string
	IsRegex bool
	re      *regexp.Regexp
}

// Compile validates and compiles a pattern. Literal patterns are quoted.
// Anchors apply per line: line content never contains newlines, and
// multiline mode keeps anchored patterns matching when several lines are
// screened as one joined text.
func Compile(text string, isRegex bool) (*Pattern, error) {
	expr := text
	if !isRegex {
		expr = regexp.QuoteMeta(text)
	}
	re, err := regexp.Compile("(?m)" + expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	if re.MatchString("") {
		return nil, fmt.Errorf("%w: matches the empty string", ErrInvalidPattern)
	}
	return &Pattern{Text: text, IsRegex: isRegex, re: re}, nil
}

// Matches reports whether the pattern matches anywhere in content.
func (p *Pattern) Matches(content string) bool {
	return p.re.MatchString(content)
}

// Spans returns all match ranges in content as half-open byte intervals.
func (p *Pattern) Spans(content string) [][2]int {
	idx := p.re.FindAllStringIndex(content, -1)
	if len(idx) == 0 {
		return nil
	}
	spans := make([][2]int, len(idx))
	for i, m := range idx {
		spans[i] = [2]int{m[0], m[1]}
	}
	return spans
}

// Position addresses a byte column within a physical line.
type Position struct {
	Line int
	Col  int
}

// Match is one found occurrence.
type Match struct {
	Line  int
	Start int
	End   int
	// Wrapped is set when the scan crossed a file boundary before
	// finding this match.
	Wrapped bool
}

// Options tune a Find scan.
type Options struct {
	// Progress, when non-nil, receives the fraction of lines scanned.
	Progress func(fraction float64)
}

// checkEvery is the line interval for cancellation and progress checks.
const checkEvery = 4096

// Find scans from the given position in the given direction. Forward scans
// consider matches starting at or after from.Col on the first line;
// backward scans consider matches starting before from.Col. The scan wraps
// at the file boundary and stops with ErrNoMatch after one full cycle.
func Find(ctx context.Context, src Source, lineCount int, p *Pattern, from Position, dir Direction, opts Options) (Match, error) {
	if lineCount == 0 {
		return Match{}, ErrNoMatch
	}

	line := from.Line
	if line < 0 || line >= lineCount {
		line = 0
	}
	wrapped := false

	// The starting line is scanned twice: its tail before the wrap and its
	// head after.
	for scanned := 0; scanned <= lineCount; scanned++ {
		if scanned%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Match{}, err
			}
			if opts.Progress != nil {
				opts.Progress(float64(scanned) / float64(lineCount))
			}
		}

		content, err := src.Line(line)
		if err != nil {
			return Match{}, err
		}

		spans := p.Spans(content)
		first := scanned == 0
		if dir == Forward {
			for _, s := range spans {
				if first && s[0] < from.Col {
					continue
				}
				return Match{Line: line, Start: s[0], End: s[1], Wrapped: wrapped}, nil
			}
			line++
			if line == lineCount {
				line = 0
				wrapped = true
			}
		} else {
			for i := len(spans) - 1; i >= 0; i-- {
				s := spans[i]
				if first && s[0] >= from.Col {
					continue
				}
				return Match{Line: line, Start: s[0], End: s[1], Wrapped: wrapped}, nil
			}
			line--
			if line < 0 {
				line = lineCount - 1
				wrapped = true
			}
		}
	}

	return Match{}, ErrNoMatch
}
