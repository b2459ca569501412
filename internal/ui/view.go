package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/sensille/logrok/internal/mark"
	"github.com/sensille/logrok/internal/session"
)

const (
	minWidth  = 40
	minHeight = 5
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.width < minWidth || m.height < minHeight {
		return m.st.warning.Render("terminal too small")
	}
	if m.ctrl == nil {
		return m.renderIndexing()
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) renderIndexing() string {
	snap := m.progStore.Snapshot()
	bar := m.prog.ViewAs(snap.Fraction)
	label := m.st.muted.Render(fmt.Sprintf("indexing %s", m.path))
	body := lipgloss.JoinVertical(lipgloss.Left, label, bar,
		m.st.faint.Render("q to cancel"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// bodyHeight is the row count available for log content.
func (m Model) bodyHeight() int {
	h := m.height - 2 // status bar and prompt/legend line
	if h < 1 {
		h = 1
	}
	return h
}

// bodyWidth is the cell count available for line content after gutters.
func (m Model) bodyWidth() int {
	w := m.width - m.gutterWidth()
	if w < 10 {
		w = 10
	}
	return w
}

func (m Model) gutterWidth() int {
	// line number, tag glyph, hide glyph, separator space
	w := m.lineNoWidth() + 3
	if m.showOffsets {
		w += 11 // 10 digit offset and a space
	}
	return w
}

func (m Model) lineNoWidth() int {
	return len(fmt.Sprintf("%d", m.ctrl.LineCount()))
}

// ensureCursorVisible adjusts the top anchor so the cursor line is on
// screen.
func (m *Model) ensureCursorVisible() {
	if m.ctrl == nil || !m.ready {
		return
	}
	cur := m.ctrl.Cursor().Line
	if cur < m.top {
		m.top = cur
		return
	}
	for {
		rows, err := m.ctrl.VisibleRows(m.top, m.bodyHeight(), m.bodyWidth())
		if err != nil || len(rows) == 0 {
			return
		}
		for _, r := range rows {
			if r.Line == cur {
				return
			}
		}
		next, ok, err := m.ctrl.NextVisible(m.top, false)
		if err != nil || !ok || next > cur {
			m.top = cur
			return
		}
		m.top = next
	}
}

func (m Model) renderMain() string {
	var b strings.Builder

	rows, err := m.ctrl.VisibleRows(m.top, m.bodyHeight(), m.bodyWidth())
	if err != nil {
		rows = nil
	}
	for i := 0; i < m.bodyHeight(); i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i < len(rows) {
			b.WriteString(m.renderRow(rows[i]))
		} else {
			b.WriteString(m.st.faint.Render("~"))
		}
	}

	b.WriteByte('\n')
	if m.mode != inputNone {
		b.WriteString(m.input.View())
	} else {
		b.WriteString(m.renderLegend())
	}
	b.WriteByte('\n')
	b.WriteString(m.renderStatus())
	return b.String()
}

// renderRow draws one display row: gutters then highlighted content.
func (m Model) renderRow(r session.Row) string {
	var b strings.Builder

	if r.First {
		if m.showOffsets {
			b.WriteString(m.st.gutter.Render(fmt.Sprintf("%10d ", m.ctrl.LineOffset(r.Line))))
		}
		b.WriteString(m.st.gutter.Render(fmt.Sprintf("%*d", m.lineNoWidth(), r.Line+1)))
		b.WriteString(m.glyphStyle(r.TagGlyph).Render(string(r.TagGlyph)))
		b.WriteString(m.glyphStyle(r.HideGlyph).Render(string(r.HideGlyph)))
		b.WriteByte(' ')
	} else {
		pad := m.gutterWidth()
		b.WriteString(strings.Repeat(" ", pad))
	}

	b.WriteString(strings.Repeat(" ", r.Indent))
	b.WriteString(m.renderText(r))
	if r.Clipped {
		b.WriteString(m.st.muted.Render("…"))
	}
	return b.String()
}

func (m Model) glyphStyle(g byte) lipgloss.Style {
	switch g {
	case 'T', 'H':
		return m.st.accent
	case '*', '-':
		return m.st.warning
	default:
		return m.st.text
	}
}

// styleKey identifies the style of one rune so equal runs can be
// rendered together.
type styleKey struct {
	kind int // 0 plain, 1 cursor, 2 search, 3 mark slot
	slot int
}

// renderText applies mark and cursor styling to a row's content. Styles
// resolve per rune; when spans overlap the shortest match wins.
func (m Model) renderText(r session.Row) string {
	cursor := m.ctrl.Cursor()
	var b strings.Builder
	var run strings.Builder
	cur := styleKey{}
	flush := func() {
		if run.Len() == 0 {
			return
		}
		b.WriteString(m.styleFor(cur).Render(run.String()))
		run.Reset()
	}

	for i := 0; i < len(r.Text); {
		ru, sz := utf8.DecodeRuneInString(r.Text[i:])
		key := m.styleKeyAt(r, r.Start+i, cursor)
		if key != cur {
			flush()
			cur = key
		}
		run.WriteRune(ru)
		i += sz
	}
	flush()
	return b.String()
}

// styleKeyAt picks the style for the rune at absolute byte offset abs.
func (m Model) styleKeyAt(r session.Row, abs int, cursor session.Position) styleKey {
	if r.Line == cursor.Line && abs == cursor.Col {
		return styleKey{kind: 1}
	}
	sp, ok := mark.Shortest(r.Spans, abs)
	if !ok {
		return styleKey{}
	}
	if sp.Mark.Role == mark.Search {
		return styleKey{kind: 2}
	}
	return styleKey{kind: 3, slot: sp.Mark.Slot}
}

func (m Model) styleFor(k styleKey) lipgloss.Style {
	switch k.kind {
	case 1:
		return m.st.cursor
	case 2:
		return m.st.search
	case 3:
		if len(m.st.slots) > 0 {
			return m.st.slots[k.slot%len(m.st.slots)]
		}
	}
	return m.st.text
}

// renderLegend lists the active marks with their palette colors.
func (m Model) renderLegend() string {
	marks := m.ctrl.Marks().All()
	if len(marks) == 0 {
		return m.st.faint.Render(m.path)
	}
	var parts []string
	for _, mk := range marks {
		label := runewidth.Truncate(mk.Pattern, 16, "…")
		switch mk.Role {
		case mark.Tagging:
			label = "t:" + label
		case mark.Hiding:
			label = "x:" + label
		case mark.Search:
			label = "/" + label
		}
		if mk.Role == mark.Search {
			parts = append(parts, m.st.search.Render(label))
		} else {
			parts = append(parts, m.st.slots[mk.Slot%len(m.st.slots)].Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderStatus() string {
	cur := m.ctrl.Cursor()
	left := fmt.Sprintf(" %s  %d/%d lines  [%s]",
		m.path, cur.Line+1, m.ctrl.LineCount(), m.ctrl.Mode())
	if m.ctrl.SearchActive() {
		if hit := m.ctrl.LastMatch(); hit != nil {
			left += fmt.Sprintf("  match %d:%d", hit.Line+1, hit.Start)
		}
	}
	right := fmt.Sprintf("col %d ", cur.Col)
	if m.statusMsg != "" {
		right = m.statusMsg + "  " + right
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return m.st.status.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.st.accent.Render("logrok keys"))
	b.WriteByte('\n')
	for _, group := range m.keys.FullHelp() {
		b.WriteByte('\n')
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n",
				m.st.accent.Render(h.Key), m.st.text.Render(h.Desc)))
		}
	}
	b.WriteByte('\n')
	b.WriteString(m.st.muted.Render("press any key to close"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
