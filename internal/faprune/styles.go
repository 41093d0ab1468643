package faprune

import "github.com/charmbracelet/lipgloss"

// Report styles, keyed by what they mark rather than by color.
var (
	stylePath    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	styleWarning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	styleSaved   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// paint renders text with style when colors are enabled
func paint(style lipgloss.Style, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return style.Render(text)
}
