package session

import (
	"github.com/sensille/logrok/internal/mark"
	"github.com/sensille/logrok/internal/reflow"
)

// Row is one display row handed to the renderer.
type Row struct {
	// Line is the physical line number this row belongs to.
	Line int
	// First marks the first row of its line; gutters render only here.
	First bool
	// TagGlyph is 'T' for a manual tag, '*' for a mark-derived tag,
	// and ' ' otherwise.
	TagGlyph byte
	// HideGlyph is 'H' for a manual hide, '-' for a mark-derived hide,
	// and ' ' otherwise.
	HideGlyph byte
	// Text is the content slice shown in this row.
	Text string
	// Start is Text's byte offset within the full line.
	Start int
	// Indent is the number of pad cells preceding Text.
	Indent int
	// Spans are the highlight spans overlapping this row, in full-line
	// byte offsets.
	Spans []mark.Span
	// Clipped marks a collapsed row with more content below the fold.
	Clipped bool
}

// foldFor returns the fold state for line n, initializing a default fold
// the first time an overlong line is displayed.
func (c *Controller) foldFor(n int, content string, width int, spans []mark.Span) reflow.Fold {
	if st := c.table.get(n); st != nil && st.foldSet {
		return st.fold
	}
	if reflow.RowCount(content, width, c.indentCol) <= c.foldBudget {
		return reflow.Fold{Rows: c.foldBudget}
	}
	f := reflow.DefaultFold(content, width, c.indentCol, c.foldBudget, spans)
	st := c.table.ensure(n)
	st.fold = f
	st.foldSet = true
	return f
}

// VisibleRows lays out up to height display rows starting at the visible
// line nearest to top, for the given terminal width.
func (c *Controller) VisibleRows(top, height, width int) ([]Row, error) {
	if width <= 0 || height <= 0 {
		return nil, nil
	}
	c.lastWidth = width
	var out []Row
	line, ok, err := c.NextVisible(top, true)
	if err != nil {
		return nil, err
	}
	for ok && len(out) < height {
		rows, err := c.lineRows(line, width)
		if err != nil {
			return nil, err
		}
		out = append(out, rows...)
		line, ok, err = c.NextVisible(line, false)
		if err != nil {
			return nil, err
		}
	}
	if len(out) > height {
		out = out[:height]
	}
	return out, nil
}

// lineRows lays out one physical line.
func (c *Controller) lineRows(n, width int) ([]Row, error) {
	content, err := c.cache.Line(n)
	if err != nil {
		return nil, err
	}
	spans := c.marks.Spans(content)
	fold := c.foldFor(n, content, width, spans)
	laid := reflow.Layout(content, width, c.indentCol, fold, spans)

	st := c.table.get(n)
	markTag, markHide := c.markFlags(n, content)
	tag, hide := byte(' '), byte(' ')
	switch {
	case st != nil && st.manualTag:
		tag = 'T'
	case markTag:
		tag = '*'
	}
	switch {
	case st != nil && st.manualHide:
		hide = 'H'
	case markHide:
		hide = '-'
	}

	out := make([]Row, len(laid))
	for i, r := range laid {
		out[i] = Row{
			Line:      n,
			First:     i == 0,
			TagGlyph:  tag,
			HideGlyph: hide,
			Text:      r.Text,
			Start:     r.Start,
			Indent:    r.Indent,
			Spans:     r.Spans,
			Clipped:   r.Clipped,
		}
	}
	return out, nil
}

// displayWidth is the width fold commands assume before the first render.
const displayWidth = 80

func (c *Controller) width() int {
	if c.lastWidth > 0 {
		return c.lastWidth
	}
	return displayWidth
}

// ToggleFold expands or collapses the reflow of the cursor line.
func (c *Controller) ToggleFold() error {
	n := c.cursor.Line
	content, err := c.cache.Line(n)
	if err != nil {
		return err
	}
	old := c.foldFor(n, content, c.width(), c.marks.Spans(content))
	st := c.table.ensure(n)
	st.fold = reflow.Fold{Expanded: !old.Expanded, Rows: old.Rows, Scroll: 0}
	st.foldSet = true
	c.pushUndo(undoFoldChange{line: n, old: old})
	return nil
}

// AdjustFoldCount grows or shrinks the collapsed row budget of the cursor
// line by delta, keeping at least one row.
func (c *Controller) AdjustFoldCount(delta int) error {
	n := c.cursor.Line
	content, err := c.cache.Line(n)
	if err != nil {
		return err
	}
	old := c.foldFor(n, content, c.width(), c.marks.Spans(content))
	rows := old.Rows + delta
	if rows < 1 {
		rows = 1
	}
	if rows == old.Rows && !old.Expanded {
		return nil
	}
	st := c.table.ensure(n)
	st.fold = reflow.Fold{Rows: rows}
	st.foldSet = true
	c.pushUndo(undoFoldChange{line: n, old: old})
	return nil
}

// ScrollFold moves the viewport of an expanded cursor line by delta rows.
func (c *Controller) ScrollFold(delta int) error {
	n := c.cursor.Line
	st := c.table.get(n)
	if st == nil || !st.foldSet || !st.fold.Expanded {
		return nil
	}
	scroll := st.fold.Scroll + delta
	if scroll < 0 {
		scroll = 0
	}
	content, err := c.cache.Line(n)
	if err != nil {
		return err
	}
	if max := reflow.RowCount(content, c.width(), c.indentCol) - 1; scroll > max {
		scroll = max
	}
	st.fold.Scroll = scroll
	return nil
}
