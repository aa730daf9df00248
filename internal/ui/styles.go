package ui

import "github.com/charmbracelet/lipgloss"

// Palette: default foreground for primary text, a soft purple accent for
// names and paths, gray for secondary info. Status is carried by symbols,
// not by color.
const (
	accentColor = "#A78BFA"
	mutedColor  = "#6C7086"
	leaderColor = "#45475A"
)

var (
	// Accent style for project names, paths and version labels
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(accentColor))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// Title is used for the first line of a report ("Project: p")
	Title = lipgloss.NewStyle().Bold(true).Underline(true)

	// Leader renders the dots between a name and its value
	Leader = lipgloss.NewStyle().Foreground(lipgloss.Color(leaderColor))
)
