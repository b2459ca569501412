package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sensille/logrok/internal/mark"
	"github.com/sensille/logrok/internal/search"
	"github.com/sensille/logrok/internal/session"
	"github.com/sensille/logrok/internal/state"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit always works, including during the index build.
	if key.Matches(msg, m.keys.Quit) && m.mode == inputNone {
		return m.quit()
	}
	if m.ctrl == nil {
		return m, nil
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.mode != inputNone {
		return m.handlePromptKey(msg)
	}

	m.statusMsg = ""

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Undo):
		if err := m.ctrl.Undo(); err != nil {
			m.takeStatus()
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		return m.moveLines(-1)
	case key.Matches(msg, m.keys.Down):
		return m.moveLines(1)
	case key.Matches(msg, m.keys.Left):
		return m.checkErr(m.ctrl.MoveCol(-1))
	case key.Matches(msg, m.keys.Right):
		return m.checkErr(m.ctrl.MoveCol(1))
	case key.Matches(msg, m.keys.WordFwd):
		return m.checkErr(m.ctrl.MoveWord(mark.SmallWord, true))
	case key.Matches(msg, m.keys.WordBack):
		return m.checkErr(m.ctrl.MoveWord(mark.SmallWord, false))
	case key.Matches(msg, m.keys.BigWordFwd):
		return m.checkErr(m.ctrl.MoveWord(mark.BigWord, true))
	case key.Matches(msg, m.keys.BigWordBack):
		return m.checkErr(m.ctrl.MoveWord(mark.BigWord, false))
	case key.Matches(msg, m.keys.LineStart):
		m.ctrl.MoveLineStart()
		return m, nil
	case key.Matches(msg, m.keys.LineEnd):
		return m.checkErr(m.ctrl.MoveLineEnd())
	case key.Matches(msg, m.keys.Top):
		if err := m.ctrl.MoveToLine(0); err != nil {
			m.takeStatus()
		}
		m.ensureCursorVisible()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		if err := m.ctrl.MoveToLine(m.ctrl.LineCount() - 1); err != nil {
			m.takeStatus()
		}
		m.ensureCursorVisible()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		return m.moveLines(m.bodyHeight())
	case key.Matches(msg, m.keys.PageUp):
		return m.moveLines(-m.bodyHeight())
	case key.Matches(msg, m.keys.HalfPageDown):
		return m.moveLines(m.bodyHeight() / 2)
	case key.Matches(msg, m.keys.HalfPageUp):
		return m.moveLines(-m.bodyHeight() / 2)

	case key.Matches(msg, m.keys.Mark):
		return m.checkErr(m.ctrl.ToggleMark(mark.SmallWord))
	case key.Matches(msg, m.keys.MarkBig):
		return m.checkErr(m.ctrl.ToggleMark(mark.BigWord))
	case key.Matches(msg, m.keys.Tag):
		return m.checkErr(m.ctrl.SetRoleAtCursor(mark.Tagging, mark.SmallWord))
	case key.Matches(msg, m.keys.TagLine):
		m.ctrl.TagLine()
		return m, nil
	case key.Matches(msg, m.keys.Hide):
		return m.checkErr(m.ctrl.SetRoleAtCursor(mark.Hiding, mark.SmallWord))
	case key.Matches(msg, m.keys.HideLine):
		return m.checkErr(m.ctrl.HideLine())

	case key.Matches(msg, m.keys.GrowRight):
		return m.checkErr(m.ctrl.ExtendSelection(false, true))
	case key.Matches(msg, m.keys.ShrinkR):
		return m.checkErr(m.ctrl.ExtendSelection(false, false))
	case key.Matches(msg, m.keys.GrowLeft):
		return m.checkErr(m.ctrl.ExtendSelection(true, true))
	case key.Matches(msg, m.keys.ShrinkL):
		return m.checkErr(m.ctrl.ExtendSelection(true, false))

	case key.Matches(msg, m.keys.SetIndent):
		m.ctrl.SetIndentFromCursor()
		return m, nil
	case key.Matches(msg, m.keys.ToggleOffs):
		m.showOffsets = !m.showOffsets
		return m, nil

	case key.Matches(msg, m.keys.ModeNext):
		if err := m.ctrl.SetMode(true); err != nil {
			m.takeStatus()
		}
		m.ensureCursorVisible()
		return m, nil
	case key.Matches(msg, m.keys.ModePrev):
		if err := m.ctrl.SetMode(false); err != nil {
			m.takeStatus()
		}
		m.ensureCursorVisible()
		return m, nil

	case key.Matches(msg, m.keys.FoldToggle):
		return m.checkErr(m.ctrl.ToggleFold())
	case key.Matches(msg, m.keys.FoldMore):
		return m.checkErr(m.ctrl.AdjustFoldCount(1))
	case key.Matches(msg, m.keys.FoldLess):
		return m.checkErr(m.ctrl.AdjustFoldCount(-1))
	case key.Matches(msg, m.keys.FoldDown):
		return m.checkErr(m.ctrl.ScrollFold(1))
	case key.Matches(msg, m.keys.FoldUp):
		return m.checkErr(m.ctrl.ScrollFold(-1))

	case key.Matches(msg, m.keys.Search):
		return m.startPrompt(inputSearchFwd, "/")
	case key.Matches(msg, m.keys.SearchBack):
		return m.startPrompt(inputSearchBack, "?")
	case key.Matches(msg, m.keys.SearchRegex):
		return m.startPrompt(inputSearchRegex, "&")
	case key.Matches(msg, m.keys.NextMatch):
		return m.runJob(m.ctrl.NextMatch(false))
	case key.Matches(msg, m.keys.PrevMatch):
		return m.runJob(m.ctrl.NextMatch(true))
	case key.Matches(msg, m.keys.Escape):
		if m.ctrl.SearchActive() {
			if err := m.ctrl.ClearSearch(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		m.takeStatus()
		return m, nil
	}

	return m, nil
}

// moveLines moves the cursor and keeps it on screen.
func (m Model) moveLines(delta int) (tea.Model, tea.Cmd) {
	if err := m.ctrl.MoveLine(delta); err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.ensureCursorVisible()
	return m, nil
}

// checkErr routes command errors: expected conditions surface as status
// messages, anything else ends the session.
func (m Model) checkErr(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.takeStatus()
		if m.statusMsg == "" {
			m.err = err
			return m, tea.Quit
		}
		return m, nil
	}
	m.takeStatus()
	m.ensureCursorVisible()
	return m, nil
}

func (m Model) startPrompt(mode inputMode, prompt string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.input.Prompt = prompt
	m.input.SetValue("")
	m.input.Focus()
	return m, textinput.Blink
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m.quit()

	case key.Matches(msg, m.keys.Escape):
		m.mode = inputNone
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		text := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.mode = inputNone
		m.input.Blur()
		if text == "" {
			return m, nil
		}
		dir := search.Forward
		if mode == inputSearchBack {
			dir = search.Backward
		}
		job, err := m.ctrl.StartSearch(text, mode == inputSearchRegex, dir)
		if err != nil {
			m.takeStatus()
			return m, nil
		}
		return m.runJob(job)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// runJob launches a search scan as a background command.
func (m Model) runJob(job session.Job) (tea.Model, tea.Cmd) {
	if job == nil {
		m.takeStatus()
		return m, nil
	}
	if m.searchCancel != nil {
		m.searchCancel()
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.searchCancel = cancel
	m.progStore.Begin(state.Searching)
	return m, func() tea.Msg {
		return searchResultMsg(job(ctx))
	}
}
