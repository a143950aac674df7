package tui

import "github.com/charmbracelet/lipgloss"

// ------- minimal styling helpers (Lip Gloss) -------
var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)

	bullet = "•"
)

// panelString frames inner in the rounded border used by the whole program.
// The border takes one row on top, so list rows start one line lower on screen.
func panelString(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(inner)
}
