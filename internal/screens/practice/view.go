package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/session"
	"github.com/abhisek/drill/internal/ui/components"
	"github.com/abhisek/drill/internal/ui/layout"
	"github.com/abhisek/drill/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	switch s.phase {
	case phaseQuitConfirm:
		return renderQuitConfirm(width)
	case phaseEnding:
		return layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "\n\n\nSaving session...")
	}

	var b strings.Builder
	b.WriteString(s.renderStatusLine(width))
	b.WriteString("\n\n")
	b.WriteString(s.renderQuestion(width))

	switch s.phase {
	case phaseSelfGrade:
		b.WriteString(s.renderSelfGrade(width))
	case phaseFeedback:
		b.WriteString(s.renderFeedback(width))
	}

	if s.saveErr != "" {
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
			"Progress not saved: "+s.saveErr))
	}
	return b.String()
}

// renderStatusLine shows position, score and the item's tier.
func (s *PracticeScreen) renderStatusLine(width int) string {
	slot := session.CurrentSlot(s.state)
	if slot == nil {
		return ""
	}

	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  %s", s.question.Kind)) +
		"  " + theme.TierBadge(slot.Tier)
	if slot.Due {
		left += lipgloss.NewStyle().Foreground(theme.Accent).Render("  due")
	}

	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%d/%d  %s %d",
		s.state.Index+1, len(s.state.Pool),
		lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
		s.state.Correct,
	))

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}

	bar := components.ProgressBar{
		Percent: float64(s.state.Index) / float64(len(s.state.Pool)),
		Width:   width - 4,
	}
	return line + "\n  " + bar.View()
}

func (s *PracticeScreen) renderQuestion(width int) string {
	q := s.question
	cw := min(width-8, 70)

	var b strings.Builder
	if q.Instructions != "" {
		b.WriteString(layout.Centered(theme.Hint, width, q.Instructions))
		b.WriteString("\n\n")
	}
	if q.Passage != "" {
		passage := components.Card(lipgloss.NewStyle().Foreground(theme.Text).Render(q.Passage), cw, components.CardBorder)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, passage))
		b.WriteString("\n\n")
	}

	prompt := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Foreground(theme.Text).Bold(true).Render(q.Prompt)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, prompt))
	b.WriteString("\n\n")

	if s.mcActive {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
		return b.String()
	}

	if len(q.Left) > 0 || len(q.Choices) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderColumns(q.Left, q.Choices)))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
	if q.Hint != "" {
		b.WriteString("\n")
		b.WriteString(layout.Centered(theme.Hint, width, q.Hint))
	}
	return b.String()
}

// renderColumns lays out the lettered left column of a matching item next
// to the numbered choices.
func renderColumns(left, choices []string) string {
	text := lipgloss.NewStyle().Foreground(theme.Text)
	var l, r []string
	for i, v := range left {
		l = append(l, text.Render(fmt.Sprintf("%c) %s", 'a'+rune(i%26), v)))
	}
	for i, v := range choices {
		r = append(r, text.Render(fmt.Sprintf("%d. %s", i+1, v)))
	}
	if len(l) == 0 {
		return strings.Join(r, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(l, "\n"), "      ", strings.Join(r, "\n"))
}

func (s *PracticeScreen) renderSelfGrade(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	if sample := s.question.Item.Sample; sample != "" {
		card := components.Card(
			theme.Hint.Render("Sample answer")+"\n"+lipgloss.NewStyle().Foreground(theme.Text).Render(sample),
			min(width-8, 70), components.CardBorder)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
		b.WriteString("\n\n")
	}
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width, "Did you get it?"))
	b.WriteString("\n")
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		components.Button("Got it", s.gotIt, 16), "  ",
		components.Button("Missed it", !s.gotIt, 16))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, buttons))
	return b.String()
}

func (s *PracticeScreen) renderFeedback(width int) string {
	res := s.result
	var b strings.Builder
	b.WriteString("\n\n")

	switch {
	case !res.Graded && res.Correct:
		b.WriteString(layout.Centered(theme.Correct, width, "Marked as known"))
	case !res.Graded:
		b.WriteString(layout.Centered(theme.Incorrect, width, "Marked for review"))
	case res.Correct:
		b.WriteString(layout.Centered(theme.Correct, width, "Correct!"))
	default:
		b.WriteString(layout.Centered(theme.Incorrect, width, "Not quite"))
		if res.CanonicalAnswer != "" {
			b.WriteString("\n")
			b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width,
				"Answer: "+res.CanonicalAnswer))
		}
	}

	if t := res.Transition; t.Changed() {
		style := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
		word := "Moved down"
		if t.Promoted() {
			word = "Level up"
		}
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(style, width,
			fmt.Sprintf("%s: %s → %s", word, t.From.DisplayName(), t.To.DisplayName())))
	}

	b.WriteString("\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "Press any key to continue..."))
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width, "End session early?"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim), width, "Answers so far are saved."))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Success), width, "[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Primary), width, "[N] No, keep going"))
	return b.String()
}

func renderError(width int, errMsg string) string {
	return layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
		fmt.Sprintf("\n\n\n%s\n\nPress any key to go back.", errMsg))
}
