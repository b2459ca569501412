package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines colors and styles for the viewer.
type Theme struct {
	Name string

	Background string
	Surface    string

	Text   string
	Muted  string
	Faint  string
	Accent string

	Warning string
	Danger  string

	// CursorBg is the background of the cursor cell.
	CursorBg string
	// SearchBg is the background of the active search highlight.
	SearchBg string
	// Slots are the mark highlight backgrounds, indexed by palette slot.
	Slots []string
}

var themes = []Theme{
	{
		Name:       "dark",
		Background: "#1a1b26",
		Surface:    "#24283b",
		Text:       "#c0caf5",
		Muted:      "#565f89",
		Faint:      "#3b4261",
		Accent:     "#7aa2f7",
		Warning:    "#e0af68",
		Danger:     "#f7768e",
		CursorBg:   "#c0caf5",
		SearchBg:   "#3d59a1",
		Slots: []string{
			"#9d4b4b", "#4b7a4b", "#7a7a3d", "#44548f",
			"#8f4b8f", "#3d7a7a", "#8f6a3d", "#5a3d8f",
			"#8f3d5f", "#3d8f5f", "#6a6a8f", "#8f5a5a",
		},
	},
	{
		Name:       "light",
		Background: "#fafafa",
		Surface:    "#eaeaea",
		Text:       "#383a42",
		Muted:      "#a0a1a7",
		Faint:      "#d0d0d0",
		Accent:     "#4078f2",
		Warning:    "#c18401",
		Danger:     "#e45649",
		CursorBg:   "#383a42",
		SearchBg:   "#b9c9f2",
		Slots: []string{
			"#f2b9b9", "#b9f2b9", "#f2f2a8", "#b9c9f2",
			"#f2b9f2", "#a8e8e8", "#f2d9a8", "#d0b9f2",
			"#f2b9d0", "#b9f2d0", "#d0d0f2", "#f2c9c9",
		},
	},
}

// GetTheme returns the theme with the given name, defaulting to dark.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the name following the given one, cycling.
func NextTheme(name string) string {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}

// SlotColor returns the mark background for a palette slot, cycling when
// the slot exceeds the theme's color list.
func (t Theme) SlotColor(slot int) string {
	if len(t.Slots) == 0 {
		return t.Surface
	}
	if slot < 0 {
		slot = 0
	}
	return t.Slots[slot%len(t.Slots)]
}

// styles derived from a theme, built once per theme switch.
type styles struct {
	text    lipgloss.Style
	muted   lipgloss.Style
	faint   lipgloss.Style
	accent  lipgloss.Style
	warning lipgloss.Style
	danger  lipgloss.Style
	cursor  lipgloss.Style
	search  lipgloss.Style
	status  lipgloss.Style
	gutter  lipgloss.Style
	slots   []lipgloss.Style
}

func (t Theme) styles() styles {
	s := styles{
		text:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		faint:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		accent:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Bold(true),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		danger:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		cursor: lipgloss.NewStyle().
			Background(lipgloss.Color(t.CursorBg)).
			Foreground(lipgloss.Color(t.Background)),
		search: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SearchBg)).
			Foreground(lipgloss.Color(t.Text)),
		status: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),
		gutter: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
	}
	for _, c := range t.Slots {
		s.slots = append(s.slots, lipgloss.NewStyle().
			Background(lipgloss.Color(c)).
			Foreground(lipgloss.Color(t.Text)))
	}
	return s
}
