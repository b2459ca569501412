package session

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/sensille/logrok/internal/document"
	"github.com/sensille/logrok/internal/mark"
	"github.com/sensille/logrok/internal/search"
)

// ErrAmbiguousSelection reports a toggle at a position covered by more
// than one distinct mark; the caller must disambiguate before retrying.
var ErrAmbiguousSelection = errors.New("ambiguous selection")

// Position addresses a byte column on a file line.
type Position struct {
	Line int
	Col  int
}

// Options configures a new Controller.
type Options struct {
	// PaletteSize bounds the number of concurrently styled marks.
	// Zero selects the mark store default.
	PaletteSize int
	// IndentColumn is the continuation indent for wrapped rows.
	IndentColumn int
	// FoldRows is the default row budget for collapsed long lines.
	FoldRows int
	// Progress receives scan fractions from search jobs. Calls happen on
	// the job goroutine; the callback must be safe for concurrent use.
	Progress func(fraction float64)
}

// Controller owns all per-session state: cursor, display mode, marks,
// per-line flags, folds, search and undo. It is not safe for concurrent
// use; the event loop is the single writer.
type Controller struct {
	ix    *document.Index
	cache *document.Cache
	marks *mark.Store
	table *lineTable

	mode   Mode
	cursor Position

	undo   []undoEntry
	status string

	indentCol  int
	foldBudget int

	searchPat *search.Pattern
	searchDir search.Direction
	searchSeq uint64
	lastMatch *search.Match

	derived    map[int]derivedFlags
	screens    map[int]splitFlags
	derivedGen uint64

	progress func(float64)

	lastWidth int
}

// New builds a Controller over an indexed document.
func New(ix *document.Index, cache *document.Cache, opts Options) *Controller {
	if opts.FoldRows <= 0 {
		opts.FoldRows = 2
	}
	return &Controller{
		ix:         ix,
		cache:      cache,
		marks:      mark.NewStore(opts.PaletteSize),
		table:      newLineTable(),
		mode:       ModeNormal,
		indentCol:  opts.IndentColumn,
		foldBudget: opts.FoldRows,
		progress:   opts.Progress,
		derived:    make(map[int]derivedFlags),
		screens:    make(map[int]splitFlags),
	}
}

// Cursor returns the current cursor position.
func (c *Controller) Cursor() Position { return c.cursor }

// Marks exposes the mark store for rendering the palette legend.
func (c *Controller) Marks() *mark.Store { return c.marks }

// LineCount returns the number of lines in the document.
func (c *Controller) LineCount() int { return c.ix.Len() }

// LineOffset returns the byte offset of line n in the file.
func (c *Controller) LineOffset(n int) int64 {
	off, _ := c.ix.LineSpan(n)
	return off
}

func (c *Controller) setStatus(format string, args ...any) {
	c.status = fmt.Sprintf(format, args...)
}

// TakeStatus returns the pending status message and clears it.
func (c *Controller) TakeStatus() string {
	s := c.status
	c.status = ""
	return s
}

// MoveLine moves the cursor delta visible lines, clamping at the ends of
// the visible set. The column resets to the line start.
func (c *Controller) MoveLine(delta int) error {
	line := c.cursor.Line
	for delta > 0 {
		n, ok, err := c.NextVisible(line, false)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		line = n
		delta--
	}
	for delta < 0 {
		n, ok, err := c.PrevVisible(line, false)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		line = n
		delta++
	}
	if line != c.cursor.Line {
		c.cursor = Position{Line: line}
	}
	return nil
}

// MoveToLine jumps to the visible line nearest to n.
func (c *Controller) MoveToLine(n int) error {
	if n < 0 {
		n = 0
	}
	if n >= c.ix.Len() {
		n = c.ix.Len() - 1
	}
	line, ok, err := c.nearestVisible(n)
	if err != nil {
		return err
	}
	if !ok {
		return ErrEmptyVisibleSet
	}
	c.cursor = Position{Line: line}
	return nil
}

// MoveCol moves the cursor delta runes within the current line, clamping
// at the line bounds.
func (c *Controller) MoveCol(delta int) error {
	content, err := c.cache.Line(c.cursor.Line)
	if err != nil {
		return err
	}
	col := c.cursor.Col
	for delta > 0 && col < len(content) {
		_, sz := utf8.DecodeRuneInString(content[col:])
		col += sz
		delta--
	}
	for delta < 0 && col > 0 {
		_, sz := utf8.DecodeLastRuneInString(content[:col])
		col -= sz
		delta++
	}
	if col >= len(content) && len(content) > 0 {
		_, sz := utf8.DecodeLastRuneInString(content)
		col = len(content) - sz
	}
	c.cursor.Col = col
	return nil
}

// MoveLineStart moves the cursor to column zero.
func (c *Controller) MoveLineStart() { c.cursor.Col = 0 }

// MoveLineEnd moves the cursor to the last rune of the current line.
func (c *Controller) MoveLineEnd() error {
	content, err := c.cache.Line(c.cursor.Line)
	if err != nil {
		return err
	}
	if len(content) == 0 {
		c.cursor.Col = 0
		return nil
	}
	_, sz := utf8.DecodeLastRuneInString(content)
	c.cursor.Col = len(content) - sz
	return nil
}

// MoveWord moves the cursor to the start of the next or previous word of
// the given kind on the current line, clamping at the line bounds.
func (c *Controller) MoveWord(kind mark.Kind, forward bool) error {
	content, err := c.cache.Line(c.cursor.Line)
	if err != nil {
		return err
	}
	delims := kind.Delimiters()
	isDelim := func(b byte) bool {
		for i := 0; i < len(delims); i++ {
			if delims[i] == b {
				return true
			}
		}
		return false
	}
	col := c.cursor.Col
	if forward {
		// Skip the rest of the current word, then the delimiter run.
		for col < len(content) && !isDelim(content[col]) {
			col++
		}
		for col < len(content) && isDelim(content[col]) {
			col++
		}
		if col >= len(content) {
			return nil
		}
	} else {
		if col == 0 {
			return nil
		}
		if col > len(content) {
			col = len(content)
		}
		// Step onto the previous character, skip any delimiter run,
		// then walk to the start of that word.
		col--
		for col > 0 && isDelim(content[col]) {
			col--
		}
		for col > 0 && !isDelim(content[col-1]) {
			col--
		}
	}
	c.cursor.Col = col
	return nil
}

// marksAt returns the distinct marks whose spans cover the cursor, and
// the shortest covering span.
func (c *Controller) marksAt(content string) (distinct []*mark.Mark, shortest mark.Span, covered bool) {
	spans := c.marks.Spans(content)
	covering := mark.At(spans, c.cursor.Col)
	seen := make(map[*mark.Mark]bool)
	for i := range covering {
		if !seen[covering[i].Mark] {
			seen[covering[i].Mark] = true
			distinct = append(distinct, covering[i].Mark)
		}
	}
	shortest, covered = mark.Shortest(spans, c.cursor.Col)
	return distinct, shortest, covered
}

// ToggleMark toggles a mark at the cursor. On plain text a new mark is
// created from the word under the cursor; on an existing mark's span the
// mark is removed. A position covered by several distinct marks is
// ambiguous and returns ErrAmbiguousSelection.
func (c *Controller) ToggleMark(kind mark.Kind) error {
	content, err := c.cache.Line(c.cursor.Line)
	if err != nil {
		return err
	}
	distinct, _, _ := c.marksAt(content)
	if len(distinct) > 1 {
		c.setStatus("ambiguous selection; resolve overlapping marks first")
		return ErrAmbiguousSelection
	}
	if len(distinct) == 1 {
		m := distinct[0]
		if m.Role == mark.Search {
			// Marking a search pattern pins it as a regular mark.
			if err := c.marks.SetRole(m.Pattern, mark.Marking); err != nil {
				return err
			}
			c.searchPat = nil
			c.pushUndo(undoRoleChange{pattern: m.Pattern, old: mark.Search})
			return nil
		}
		role := m.Role
		c.marks.Remove(m.Pattern)
		c.pushUndo(undoMarkToggle{pattern: m.Pattern, kind: m.Kind, role: role, added: false})
		return nil
	}
	word, _, ok := mark.WordAt(content, c.cursor.Col, kind)
	if !ok {
		c.setStatus("no word under cursor")
		return nil
	}
	if existing := c.marks.Get(word); existing != nil {
		// The word is marked elsewhere in the file; toggle removes it.
		role, k := existing.Role, existing.Kind
		c.marks.Remove(word)
		c.pushUndo(undoMarkToggle{pattern: word, kind: k, role: role, added: false})
		return nil
	}
	m, _, err := c.marks.Toggle(word, kind)
	if err != nil {
		return err
	}
	c.pushUndo(undoMarkToggle{pattern: m.Pattern, kind: m.Kind, role: m.Role, added: true})
	return nil
}

// SetRoleAtCursor gives the mark under the cursor the requested role, or
// creates a marked word with that role when the cursor is on plain text.
// Repeating the role on an already converted mark reverts it to a plain
// mark. kind applies only when a new mark is created.
func (c *Controller) SetRoleAtCursor(role mark.Role, kind mark.Kind) error {
	content, err := c.cache.Line(c.cursor.Line)
	if err != nil {
		return err
	}
	distinct, _, _ := c.marksAt(content)
	if len(distinct) > 1 {
		c.setStatus("ambiguous selection; resolve overlapping marks first")
		return ErrAmbiguousSelection
	}
	if len(distinct) == 1 {
		m := distinct[0]
		old := m.Role
		target := role
		switch {
		case m.Role == mark.Search:
			c.searchPat = nil
		case m.Role == role:
			// Repeating the role reverts to a plain mark.
			target = mark.Marking
		}
		if err := c.marks.SetRole(m.Pattern, target); err != nil {
			return err
		}
		c.pushUndo(undoRoleChange{pattern: m.Pattern, old: old})
		return c.reanchorCursor()
	}
	word, _, ok := mark.WordAt(content, c.cursor.Col, kind)
	if !ok {
		c.setStatus("no word under cursor")
		return nil
	}
	m, _, err := c.marks.Toggle(word, kind)
	if err != nil {
		return err
	}
	if err := c.marks.SetRole(m.Pattern, role); err != nil {
		return err
	}
	c.pushUndo(undoMarkToggle{pattern: m.Pattern, kind: m.Kind, role: role, added: true})
	return c.reanchorCursor()
}

// ExtendSelection grows or shrinks the pattern of the mark under the
// cursor by whole runes. Extending degrades the mark to a literal text
// pattern. Word marks shrink from the end; the direction arguments select
// which side grows.
func (c *Controller) ExtendSelection(left, grow bool) error {
	content, err := c.cache.Line(c.cursor.Line)
	if err != nil {
		return err
	}
	distinct, shortest, covered := c.marksAt(content)
	if len(distinct) > 1 {
		c.setStatus("ambiguous selection; resolve overlapping marks first")
		return ErrAmbiguousSelection
	}
	if !covered {
		c.setStatus("no mark under cursor")
		return nil
	}
	m := shortest.Mark
	if m.Kind == mark.Regex {
		c.setStatus("cannot extend a regex mark")
		return nil
	}
	start, end := shortest.Start, shortest.End
	switch {
	case grow && left:
		if start == 0 {
			return nil
		}
		_, sz := utf8.DecodeLastRuneInString(content[:start])
		start -= sz
	case grow && !left:
		if end >= len(content) {
			return nil
		}
		_, sz := utf8.DecodeRuneInString(content[end:])
		end += sz
	case !grow && left:
		_, sz := utf8.DecodeRuneInString(content[start:end])
		start += sz
	default:
		_, sz := utf8.DecodeLastRuneInString(content[start:end])
		end -= sz
	}
	if start >= end {
		c.setStatus("selection cannot shrink further")
		return nil
	}
	old := m.Pattern
	oldKind := m.Kind
	if err := c.marks.Amend(m, content[start:end]); err != nil {
		c.setStatus("%s", err)
		return nil
	}
	c.pushUndo(undoAmend{pattern: m.Pattern, prev: old, kind: oldKind})
	return nil
}

// TagLine toggles the manual tag flag on the cursor line.
func (c *Controller) TagLine() {
	st := c.table.ensure(c.cursor.Line)
	st.manualTag = !st.manualTag
	c.table.compact(c.cursor.Line)
	c.pushUndo(undoTagToggle{line: c.cursor.Line})
}

// HideLine toggles the manual hide flag on the cursor line. Hiding the
// cursor line moves the cursor to the next visible line.
func (c *Controller) HideLine() error {
	line := c.cursor.Line
	st := c.table.ensure(line)
	st.manualHide = !st.manualHide
	c.table.compact(line)
	c.pushUndo(undoHideToggle{line: line})
	return c.reanchorCursor()
}

// reanchorCursor moves the cursor to the nearest visible line when its
// current line fell out of the visible set.
func (c *Controller) reanchorCursor() error {
	visible, err := c.lineVisible(c.cursor.Line, c.mode)
	if err != nil {
		return err
	}
	if visible {
		return nil
	}
	line, ok, err := c.nearestVisible(c.cursor.Line)
	if err != nil {
		return err
	}
	if !ok {
		// Nothing visible at all; fall back one mode.
		return c.SetMode(false)
	}
	c.cursor = Position{Line: line}
	return nil
}

// SetIndentColumn records the continuation indent for wrapped rows,
// pushing the previous value on the undo stack.
func (c *Controller) SetIndentColumn(col int) {
	if col < 0 {
		col = 0
	}
	if col == c.indentCol {
		return
	}
	c.pushUndo(undoIndentChange{old: c.indentCol})
	c.indentCol = col
}

// IndentColumn returns the continuation indent for wrapped rows.
func (c *Controller) IndentColumn() int { return c.indentCol }

// SetIndentFromCursor sets the continuation indent to the cursor column.
func (c *Controller) SetIndentFromCursor() {
	c.SetIndentColumn(c.cursor.Col)
}
