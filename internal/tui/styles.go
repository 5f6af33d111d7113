package tui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color palette for the TUI.
var Colors = struct {
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Muted         lipgloss.Color
	Error         lipgloss.Color
	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color

	// Priority colors, most urgent first
	Priority [5]lipgloss.Color
}{
	Primary:       lipgloss.Color("#6C5CE7"), // Purple
	Secondary:     lipgloss.Color("#A29BFE"), // Lavender
	Muted:         lipgloss.Color("#636E72"), // Gray
	Error:         lipgloss.Color("#D63031"), // Red
	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow

	Priority: [5]lipgloss.Color{"#D63031", "#FDCB6E", "#DFE6E9", "#74B9FF", "#636E72"},
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	App    lipgloss.Style
	Header lipgloss.Style

	// Task lines
	Cursor        lipgloss.Style
	TaskNormal    lipgloss.Style
	TaskSelected  lipgloss.Style
	TaskDone      lipgloss.Style
	TaskIndex     lipgloss.Style
	Priority      [5]lipgloss.Style
	State         lipgloss.Style
	Empty         lipgloss.Style
	ErrorMsg      lipgloss.Style
	HelpContainer lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	s := Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		Cursor: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		TaskNormal: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),

		TaskSelected: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		TaskDone: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Strikethrough(true),

		TaskIndex: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Width(4).
			Align(lipgloss.Right),

		State: lipgloss.NewStyle().
			Foreground(Colors.Secondary).
			Italic(true),

		Empty: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error),

		HelpContainer: lipgloss.NewStyle().
			MarginTop(1),
	}
	for i, c := range Colors.Priority {
		s.Priority[i] = lipgloss.NewStyle().Foreground(c)
	}
	return s
}
