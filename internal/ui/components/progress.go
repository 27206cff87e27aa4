package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/mastery"
	"github.com/abhisek/drill/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}
	barWidth := max(p.Width-lipgloss.Width(result)-percentWidth, 4)

	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	result += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}
	return result
}

// TierBar renders the share of each tier as colored segments of width cells,
// in tier priority order.
func TierBar(perTier map[mastery.Tier]int, width int) string {
	total := 0
	for _, n := range perTier {
		total += n
	}
	if total == 0 || width <= 0 {
		return lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", max(width, 0)))
	}

	var b strings.Builder
	used := 0
	for i, tier := range mastery.AllTiers {
		cells := perTier[tier] * width / total
		if i == len(mastery.AllTiers)-1 {
			cells = width - used
		}
		used += cells
		b.WriteString(lipgloss.NewStyle().
			Background(theme.TierColor(tier)).
			Render(strings.Repeat(" ", cells)))
	}
	return b.String()
}
