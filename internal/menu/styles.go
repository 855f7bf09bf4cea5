package menu

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#8B5CF6")
	colorAccent  = lipgloss.Color("#34D399")
	colorError   = lipgloss.Color("#F87171")
	colorWarn    = lipgloss.Color("#FBBF24")
	colorMuted   = lipgloss.Color("#64748B")
)

// Styles for the console output. Lipgloss degrades to plain text on
// terminals without color support.
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			MarginTop(1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	errStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorWarn)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	headerStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Underline(true)
)
