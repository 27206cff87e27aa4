package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/mastery"
)

// Color palette, muted for long study sessions.
var (
	Primary   = lipgloss.Color("#7C3AED") // Violet
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate

	Highlight = lipgloss.Color("#FACC15") // Yellow
	Info      = lipgloss.Color("#22D3EE") // Cyan
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// TierColor returns the badge color for a mastery tier.
func TierColor(t mastery.Tier) color.Color {
	switch t {
	case mastery.TierWeak:
		return Error
	case mastery.TierMiddle:
		return Accent
	case mastery.TierMastered:
		return Success
	default:
		return Secondary
	}
}

// TierBadge renders a short colored tier label.
func TierBadge(t mastery.Tier) string {
	return lipgloss.NewStyle().
		Foreground(TierColor(t)).
		Bold(true).
		Render(t.DisplayName())
}
