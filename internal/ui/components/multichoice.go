package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/ui/theme"
)

// MultiChoice is a numbered option selector. Options can be chosen with the
// arrow keys and Enter, or directly with their number (1-9).
type MultiChoice struct {
	Options     []string
	Selected    int
	Submitted   bool
	ChosenIndex int

	// CorrectIndex is -1 until Reveal is called.
	CorrectIndex int
}

// NewMultiChoice creates a selector over options.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{
		Options:      options,
		ChosenIndex:  -1,
		CorrectIndex: -1,
	}
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if n := int(key[0] - '1'); n < len(m.Options) {
				m.Selected = n
				m.Submitted = true
				m.ChosenIndex = n
			}
		}
	}

	return m, nil
}

// Value returns the chosen option text, or "" before submission.
func (m MultiChoice) Value() string {
	if m.ChosenIndex < 0 || m.ChosenIndex >= len(m.Options) {
		return ""
	}
	return m.Options[m.ChosenIndex]
}

// Reveal marks which option was correct so View can color the result.
func (m *MultiChoice) Reveal(correct string) {
	for i, opt := range m.Options {
		if strings.EqualFold(strings.TrimSpace(opt), strings.TrimSpace(correct)) {
			m.CorrectIndex = i
			return
		}
	}
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d) %s", prefix, i+1, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.Submitted && i == m.CorrectIndex:
			style = style.Foreground(theme.Success).Bold(true)
		case m.Submitted && i == m.ChosenIndex:
			style = style.Foreground(theme.Error).Bold(true)
		case m.Submitted:
			style = style.Foreground(theme.TextDim)
		case i == m.Selected:
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}
