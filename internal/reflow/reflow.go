package reflow

import (
	"github.com/mattn/go-runewidth"

	"github.com/sensille/logrok/internal/mark"
)

// Fold is the folding state of one overlong line.
type Fold struct {
	// Expanded shows the full reflow regardless of Rows.
	Expanded bool
	// Rows is the collapsed row budget, at least 1.
	Rows int
	// Scroll skips leading rows while expanded.
	Scroll int
}

// Row is one display row of a reflowed line.
type Row struct {
	// Text is the slice of the line content shown in this row.
	Text string
	// Start is Text's byte offset within the full line.
	Start int
	// Indent is the number of pad cells preceding Text.
	Indent int
	// Spans are the highlight spans overlapping this row, with byte
	// offsets relative to the full line.
	Spans []mark.Span
	// Clipped marks the last row of a collapsed line that has more
	// content below the fold.
	Clipped bool
}

// Layout computes the display rows for a physical line. width must be
// positive; indentCol is clamped to leave at least one content cell per
// continuation row.
func Layout(content string, width, indentCol int, fold Fold, spans []mark.Span) []Row {
	rows := wrap(content, width, indentCol)
	total := len(rows)

	switch {
	case fold.Expanded:
		if fold.Scroll > 0 && fold.Scroll < total {
			rows = rows[fold.Scroll:]
		}
	case total > fold.Rows && fold.Rows >= 1:
		rows = rows[:fold.Rows]
		rows[len(rows)-1].Clipped = true
	}

	for i := range rows {
		rows[i].Spans = clipSpans(spans, rows[i].Start, rows[i].Start+len(rows[i].Text))
	}
	return rows
}

// DefaultFold returns the initial collapsed state for a line, extending the
// configured budget so the row holding the first highlight stays visible.
func DefaultFold(content string, width, indentCol, budget int, spans []mark.Span) Fold {
	if budget < 1 {
		budget = 1
	}
	rows := budget
	if first, ok := firstSpanStart(spans); ok {
		for i, row := range wrap(content, width, indentCol) {
			if first >= row.Start && first < row.Start+len(row.Text) {
				rows = max(rows, i+1)
				break
			}
		}
	}
	return Fold{Rows: rows}
}

// RowCount returns the number of rows a full reflow of the line occupies.
func RowCount(content string, width, indentCol int) int {
	return len(wrap(content, width, indentCol))
}

// wrap splits content into rows of at most width cells, indenting
// continuation rows to indentCol.
func wrap(content string, width, indentCol int) []Row {
	if width < 1 {
		width = 1
	}
	if indentCol < 0 {
		indentCol = 0
	}
	if indentCol > width-1 {
		indentCol = width - 1
	}

	var rows []Row
	start, cells, indent := 0, 0, 0
	avail := width
	for i, r := range content {
		w := runewidth.RuneWidth(r)
		if cells+w > avail {
			rows = append(rows, Row{Text: content[start:i], Start: start, Indent: indent})
			start, cells = i, 0
			indent = indentCol
			avail = width - indentCol
		}
		cells += w
	}
	rows = append(rows, Row{Text: content[start:], Start: start, Indent: indent})
	return rows
}

func clipSpans(spans []mark.Span, start, end int) []mark.Span {
	var clipped []mark.Span
	for _, s := range spans {
		if s.End <= start || s.Start >= end {
			continue
		}
		clipped = append(clipped, s)
	}
	return clipped
}

func firstSpanStart(spans []mark.Span) (int, bool) {
	if len(spans) == 0 {
		return 0, false
	}
	first := spans[0].Start
	for _, s := range spans[1:] {
		first = min(first, s.Start)
	}
	return first, true
}
