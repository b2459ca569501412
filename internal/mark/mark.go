package mark

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind selects how a pattern is matched against line content.
type Kind int

const (
	// Text matches the pattern anywhere in the line.
	Text Kind = iota
	// SmallWord matches the pattern delimited by whitespace or punctuation.
	SmallWord
	// BigWord matches the pattern delimited by whitespace only.
	BigWord
	// Regex treats the pattern as a regular expression.
	Regex
)

const (
	bigWordDelims   = " \t"
	smallWordDelims = " \t:.,\"';()[]{}<>=+-*/&|^~!@#$%?"

	bigWordClass   = `[\t ]`
	smallWordClass = `[\t :.,"';()\[\]{}<>=+*/&|^~!@#$%?-]`
)

// Delimiters returns the characters that terminate a word of this kind.
// Text and Regex kinds have no word boundaries.
func (k Kind) Delimiters() string {
	switch k {
	case BigWord:
		return bigWordDelims
	case SmallWord:
		return smallWordDelims
	default:
		return ""
	}
}

// compile builds the matcher for a pattern of this kind. The capture group
// wraps the pattern itself so word delimiters are not part of the match.
// Multiline mode keeps the line anchors valid when whole splits are
// screened as one joined text; single line content holds no newlines, so
// per-line matching is unaffected.
func (k Kind) compile(pattern string) (*regexp.Regexp, error) {
	var expr string
	switch k {
	case BigWord:
		expr = fmt.Sprintf(`(?m:%s|^)(%s)(?m:%s|$)`, bigWordClass, regexp.QuoteMeta(pattern), bigWordClass)
	case SmallWord:
		expr = fmt.Sprintf(`(?m:%s|^)(%s)(?m:%s|$)`, smallWordClass, regexp.QuoteMeta(pattern), smallWordClass)
	case Regex:
		expr = fmt.Sprintf(`(?m)(%s)`, pattern)
	default:
		expr = fmt.Sprintf(`(%s)`, regexp.QuoteMeta(pattern))
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	return re, nil
}

// Role decides what a mark's matches contribute beyond highlighting.
type Role int

const (
	// Marking highlights matches without affecting visibility.
	Marking Role = iota
	// Tagging marks every matching line as tagged.
	Tagging
	// Hiding marks every matching line as hidden.
	Hiding
	// Search is the active search pattern. At most one mark holds it.
	Search
)

// Mark is one active pattern. Marks are compared by Pattern only.
type Mark struct {
	Pattern string
	Kind    Kind
	Role    Role
	Slot    int

	re  *regexp.Regexp
	seq int
}

// Span is a half-open byte range [Start,End) of a match within a line.
type Span struct {
	Start int
	End   int
	Mark  *Mark
}

// Len returns the span's byte length.
func (s Span) Len() int { return s.End - s.Start }

// spans returns all matches of the mark in content.
func (m *Mark) spans(content string) []Span {
	idx := m.re.FindAllStringSubmatchIndex(content, -1)
	if len(idx) == 0 {
		return nil
	}
	spans := make([]Span, 0, len(idx))
	for _, match := range idx {
		start, end := match[2], match[3]
		if start < 0 || start == end {
			continue
		}
		spans = append(spans, Span{Start: start, End: end, Mark: m})
	}
	return spans
}

// Matches reports whether the mark matches anywhere in content.
func (m *Mark) Matches(content string) bool {
	return m.re.MatchString(content)
}

// WordAt returns the word of the given kind containing byte position pos,
// along with its start offset. Returns ok=false when pos sits on a
// delimiter or outside the line.
func WordAt(content string, pos int, kind Kind) (word string, start int, ok bool) {
	delims := kind.Delimiters()
	if delims == "" || pos < 0 || pos >= len(content) {
		return "", 0, false
	}
	if strings.ContainsRune(delims, rune(content[pos])) {
		return "", 0, false
	}
	start = pos
	for start > 0 && !strings.ContainsRune(delims, rune(content[start-1])) {
		start--
	}
	end := pos
	for end < len(content) && !strings.ContainsRune(delims, rune(content[end])) {
		end++
	}
	return content[start:end], start, true
}

// At returns the spans covering byte position pos, one per distinct mark.
func At(spans []Span, pos int) []Span {
	var covering []Span
	for _, s := range spans {
		if pos >= s.Start && pos < s.End {
			covering = append(covering, s)
		}
	}
	return covering
}

// Shortest returns the shortest span covering pos, or ok=false. When two
// matches overlap at a position the shorter one takes precedence.
func Shortest(spans []Span, pos int) (Span, bool) {
	covering := At(spans, pos)
	if len(covering) == 0 {
		return Span{}, false
	}
	best := covering[0]
	for _, s := range covering[1:] {
		if s.Len() < best.Len() {
			best = s
		}
	}
	return best, true
}
