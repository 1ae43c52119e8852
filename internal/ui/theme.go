package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds the panel's color palette.
type Theme struct {
	Accent  string
	Muted   string
	Success string
	Warning string
	Danger  string
}

// defaultTheme matches the muted terminal palette used across the tool.
func defaultTheme() Theme {
	return Theme{
		Accent:  "#3498db", // the project color Clockify assigns by default
		Muted:   "#6c7086",
		Success: "#a6e3a1",
		Warning: "#f9e2af",
		Danger:  "#f38ba8",
	}
}

// Styles are the Lipgloss styles derived from a Theme.
type Styles struct {
	Title    lipgloss.Style
	Running  lipgloss.Style
	Idle     lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Box      lipgloss.Style
}

// Styles derives the render styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Accent)),
		Running: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Success)),
		Idle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Accent)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
	}
}
