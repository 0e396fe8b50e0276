package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lexiquiz/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stacked sections
// so their borders line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Frame centers content within the given dimensions.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Top).
		Render(content)
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(0, 1).
		Render(content)
}

// SectionTitle renders a bold section heading.
func SectionTitle(s string) string {
	return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(s)
}
