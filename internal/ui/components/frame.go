package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stacked sections.
func ContentWidth(frameWidth int) int {
	// frame border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 72)
}

// Frame wraps content in a double border, centered both ways within the
// given dimensions.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded card of content width cw.
func Card(content string, cw int, border lipgloss.Style) string {
	return border.
		Border(lipgloss.RoundedBorder()).
		Width(cw - 2).
		Padding(1, 2).
		Render(content)
}

// CardBorder is the default Card style.
var CardBorder = lipgloss.NewStyle().BorderForeground(theme.Border)

// Button renders a fixed-width button.
func Button(label string, selected bool, width int) string {
	if selected {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Highlight).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Highlight).
			Render("▸ " + label)
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(label)
}
