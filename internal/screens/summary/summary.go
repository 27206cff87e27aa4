package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/mastery"
	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/screen"
	"github.com/abhisek/drill/internal/session"
	"github.com/abhisek/drill/internal/ui/layout"
	"github.com/abhisek/drill/internal/ui/theme"
)

// maxListed caps the promoted/demoted rows shown per section.
const maxListed = 6

// SummaryScreen displays the end-of-session report.
type SummaryScreen struct {
	summary session.SessionSummary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary session.SessionSummary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			// The practice screen replaced itself with this one, so a
			// single pop returns home.
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	title := "Session complete!"
	if sum.Total == 0 {
		title = "Session ended"
	}
	b.WriteString(layout.Centered(theme.Title, width, title))
	b.WriteString("\n")
	if sum.ExerciseName != "" {
		b.WriteString(layout.Centered(theme.Subtitle, width, sum.ExerciseName))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
		"Duration: "+FormatDuration(sum.Duration.Seconds())))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Answered: %d        Correct: %d        Accuracy: %d%%",
		sum.Total, sum.Correct, sum.AccuracyPct)
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text), width, stats))
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))

	section := func(label string, items []mastery.Transition, style lipgloss.Style) {
		if len(items) == 0 {
			return
		}
		b.WriteString("\n")
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
			fmt.Sprintf("%s (%d)", label, len(items))))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")
		for i, t := range items {
			if i == maxListed {
				b.WriteString(layout.Centered(theme.Hint, width,
					fmt.Sprintf("and %d more", len(items)-maxListed)))
				b.WriteString("\n")
				break
			}
			b.WriteString(layout.Centered(style, width, fmt.Sprintf("%s  %s → %s",
				shortID(t.ItemID), t.From.DisplayName(), t.To.DisplayName())))
			b.WriteString("\n")
		}
	}
	section("Leveled up", sum.Promoted, lipgloss.NewStyle().Foreground(theme.Success))
	section("Needs review", sum.Demoted, lipgloss.NewStyle().Foreground(theme.Error))

	return b.String()
}

// FormatDuration renders seconds as m:ss.
func FormatDuration(secs float64) string {
	total := int(secs)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
