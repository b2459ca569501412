package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sensille/logrok/internal/config"
	"github.com/sensille/logrok/internal/document"
	"github.com/sensille/logrok/internal/prefs"
	"github.com/sensille/logrok/internal/session"
	"github.com/sensille/logrok/internal/state"
)

// inputMode tracks what the prompt line is collecting.
type inputMode int

const (
	inputNone inputMode = iota
	inputSearchFwd
	inputSearchBack
	inputSearchRegex
)

const progressTick = 100 * time.Millisecond

// Options configures the UI.
type Options struct {
	Context   context.Context
	Path      string
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Progress  *state.Store
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	path      string
	cfg       config.Config
	prefsPath string

	keys  keyMap
	theme Theme
	st    styles

	// prefsMode is the persisted display mode, applied once the index
	// build hands over a controller.
	prefsMode string

	width  int
	height int
	ready  bool

	// Index build state; ctrl is nil until the build finishes.
	progStore *state.Store
	prog      progress.Model

	ctrl  *session.Controller
	cache *document.Cache

	// top anchors the viewport at the first displayed line.
	top int

	input        textinput.Model
	mode         inputMode
	searchCancel context.CancelFunc

	showHelp    bool
	showOffsets bool

	statusMsg string
	err       error
}

type indexDoneMsg struct {
	ix    *document.Index
	cache *document.Cache
	err   error
}

type tickMsg time.Time

type searchResultMsg session.Result

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	store := opts.Progress
	if store == nil {
		store = &state.Store{}
	}

	input := textinput.New()
	input.CharLimit = 512

	theme := GetTheme(opts.Prefs.Theme)
	if opts.Config.Theme != "" {
		theme = GetTheme(opts.Config.Theme)
	}

	return Model{
		ctx:         ctx,
		path:        opts.Path,
		cfg:         opts.Config,
		prefsPath:   opts.PrefsPath,
		keys:        DefaultKeyMap(),
		theme:       theme,
		st:          theme.styles(),
		prefsMode:   opts.Prefs.Mode,
		progStore:   store,
		prog:        progress.New(progress.WithDefaultGradient()),
		input:       input,
		showOffsets: opts.Prefs.ShowOffsets,
	}
}

// Err returns the fatal error that ended the session, if any.
func (m Model) Err() error { return m.err }

// Controller exposes the session for final state capture on exit.
func (m Model) Controller() *session.Controller { return m.ctrl }

// Close releases the line cache and its file handle.
func (m Model) Close() error {
	if m.cache != nil {
		return m.cache.Close()
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.buildIndexCmd(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(progressTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) buildIndexCmd() tea.Cmd {
	ctx, path, cfg, store := m.ctx, m.path, m.cfg, m.progStore
	return func() tea.Msg {
		store.Begin(state.Indexing)
		ix, err := document.Build(ctx, path, document.BuildOptions{Progress: store.Set})
		if err != nil {
			store.Fail(err)
			return indexDoneMsg{err: err}
		}
		cache, err := document.NewCache(ix, cfg.CacheBudgetBytes())
		if err != nil {
			store.Fail(err)
			return indexDoneMsg{err: err}
		}
		store.Done()
		return indexDoneMsg{ix: ix, cache: cache}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.prog.Width = min(m.width-8, 60)
		return m, nil

	case tickMsg:
		if m.ctrl == nil {
			return m, tickCmd()
		}
		return m, nil

	case indexDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		if msg.ix.Len() == 0 {
			m.err = fmt.Errorf("log file is empty: %s", m.path)
			msg.cache.Close()
			return m, tea.Quit
		}
		m.cache = msg.cache
		m.ctrl = session.New(msg.ix, msg.cache, session.Options{
			PaletteSize:  m.cfg.PaletteSize,
			IndentColumn: m.cfg.IndentColumn,
			FoldRows:     m.cfg.FoldRows,
			Progress:     m.progStore.Set,
		})
		m.ctrl.RestoreMode(m.prefsMode)
		return m, nil

	case searchResultMsg:
		if m.ctrl == nil {
			return m, nil
		}
		m.progStore.Done()
		if err := m.ctrl.ApplyResult(session.Result(msg)); err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.takeStatus()
		m.ensureCursorVisible()
		return m, nil
	}

	return m, nil
}

// takeStatus pulls any pending controller status into the status bar.
func (m *Model) takeStatus() {
	if s := m.ctrl.TakeStatus(); s != "" {
		m.statusMsg = s
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.searchCancel != nil {
		m.searchCancel()
	}
	if m.prefsPath != "" {
		p := prefs.Prefs{Theme: m.theme.Name, ShowOffsets: m.showOffsets}
		if m.ctrl != nil {
			p.Mode = m.ctrl.Mode().String()
		}
		_ = prefs.Save(m.prefsPath, p)
	}
	return m, tea.Quit
}
