package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the viewer.
type keyMap struct {
	// Global
	Quit key.Binding
	Help key.Binding
	Undo key.Binding

	// Navigation
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	WordFwd      key.Binding
	WordBack     key.Binding
	BigWordFwd   key.Binding
	BigWordBack  key.Binding
	LineStart    key.Binding
	LineEnd      key.Binding
	Top          key.Binding
	Bottom       key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding

	// Marks
	Mark       key.Binding
	MarkBig    key.Binding
	Tag        key.Binding
	TagLine    key.Binding
	Hide       key.Binding
	HideLine   key.Binding
	GrowRight  key.Binding
	ShrinkR    key.Binding
	GrowLeft   key.Binding
	ShrinkL    key.Binding
	SetIndent  key.Binding
	ToggleOffs key.Binding

	// Modes
	ModeNext key.Binding
	ModePrev key.Binding

	// Folds
	FoldToggle key.Binding
	FoldMore   key.Binding
	FoldLess   key.Binding
	FoldDown   key.Binding
	FoldUp     key.Binding

	// Search
	Search      key.Binding
	SearchBack  key.Binding
	SearchRegex key.Binding
	NextMatch   key.Binding
	PrevMatch   key.Binding
	Escape      key.Binding
	Confirm     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("ctrl+h", "Toggle help"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Undo"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Line up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Line down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Column left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Column right"),
		),
		WordFwd: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Next word"),
		),
		WordBack: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Previous word"),
		),
		BigWordFwd: key.NewBinding(
			key.WithKeys("W"),
			key.WithHelp("W", "Next big word"),
		),
		BigWordBack: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "Previous big word"),
		),
		LineStart: key.NewBinding(
			key.WithKeys("0", "home"),
			key.WithHelp("0", "Line start"),
		),
		LineEnd: key.NewBinding(
			key.WithKeys("$", "end"),
			key.WithHelp("$", "Line end"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "First line"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "Last line"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "Page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "Half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "Half page down"),
		),

		Mark: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Toggle mark on word"),
		),
		MarkBig: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "Toggle mark on big word"),
		),
		Tag: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Tag matching lines"),
		),
		TagLine: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Tag this line"),
		),
		Hide: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Hide matching lines"),
		),
		HideLine: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Hide this line"),
		),
		GrowRight: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "Extend selection right"),
		),
		ShrinkR: key.NewBinding(
			key.WithKeys(","),
			key.WithHelp(",", "Shrink selection right"),
		),
		GrowLeft: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "Extend selection left"),
		),
		ShrinkL: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "Shrink selection left"),
		),
		SetIndent: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Set wrap indent here"),
		),
		ToggleOffs: key.NewBinding(
			key.WithKeys("@"),
			key.WithHelp("@", "Toggle offset gutter"),
		),

		ModeNext: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Filter more"),
		),
		ModePrev: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Filter less"),
		),

		FoldToggle: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Expand/collapse line"),
		),
		FoldMore: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "More fold rows"),
		),
		FoldLess: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Fewer fold rows"),
		),
		FoldDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "Scroll expanded line down"),
		),
		FoldUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "Scroll expanded line up"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search forward"),
		),
		SearchBack: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Search backward"),
		),
		SearchRegex: key.NewBinding(
			key.WithKeys("&"),
			key.WithHelp("&", "Regex search"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Next match"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "Previous match"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Clear search / cancel"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.WordFwd, k.WordBack},
		{k.LineStart, k.LineEnd, k.Top, k.Bottom, k.HalfPageUp, k.HalfPageDown},
		{k.Mark, k.MarkBig, k.Tag, k.TagLine, k.Hide, k.HideLine},
		{k.GrowRight, k.ShrinkR, k.GrowLeft, k.ShrinkL},
		{k.ModeNext, k.ModePrev, k.FoldToggle, k.FoldMore, k.FoldLess, k.FoldDown, k.FoldUp},
		{k.Search, k.SearchBack, k.SearchRegex, k.NextMatch, k.PrevMatch},
		{k.SetIndent, k.ToggleOffs, k.Undo, k.Help, k.Quit},
	}
}
