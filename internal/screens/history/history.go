package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/mastery"
	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/screen"
	"github.com/abhisek/drill/internal/store"
	"github.com/abhisek/drill/internal/ui/layout"
	"github.com/abhisek/drill/internal/ui/theme"
)

// sessionLimit caps how many past sessions are listed.
const sessionLimit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Err      error
}

type answersLoadedMsg struct {
	SessionID string
	Answers   []store.AnswerEventRecord
	Err       error
}

// HistoryScreen lists past sessions. Enter expands a session to the answers
// given in it, loaded on first expansion.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionSummaryRecord
	answers   map[string][]store.AnswerEventRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		answers:   make(map[string][]store.AnswerEventRecord),
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		sessions, err := repo.QuerySessionSummaries(context.Background(), store.QueryOpts{Limit: sessionLimit})
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Answers"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.answers[msg.SessionID] = msg.Answers
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			return s, s.toggle()
		}
	}
	return s, nil
}

func (s *HistoryScreen) toggle() tea.Cmd {
	if s.selected >= len(s.sessions) {
		return nil
	}
	s.expanded[s.selected] = !s.expanded[s.selected]

	id := s.sessions[s.selected].SessionID
	if _, ok := s.answers[id]; ok || !s.expanded[s.selected] {
		return nil
	}
	repo := s.eventRepo
	return func() tea.Msg {
		answers, err := repo.QueryAnswerEvents(context.Background(), id)
		return answersLoadedMsg{SessionID: id, Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		var accuracy int
		if sess.QuestionsServed > 0 {
			accuracy = sess.CorrectAnswers * 100 / sess.QuestionsServed
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %-18s %d:%02d  %d answered  %d%%",
			prefix, sess.Timestamp.Local().Format("Jan 02 15:04"), truncate(sess.ExerciseName, 18),
			sess.DurationSecs/60, sess.DurationSecs%60, sess.QuestionsServed, accuracy)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderAnswers(sess.SessionID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderAnswers(sessionID string, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	answers, ok := s.answers[sessionID]
	switch {
	case !ok:
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    Loading...")) + "\n"
	case len(answers) == 0:
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    No answers this session")) + "\n"
	}

	var b strings.Builder
	for _, a := range answers {
		mark, style := "✓", lipgloss.NewStyle().Foreground(theme.Success)
		if !a.Correct {
			mark, style = "✗", lipgloss.NewStyle().Foreground(theme.Error)
		}
		line := fmt.Sprintf("    %s %s  %s", mark, truncate(a.Prompt, 40), truncate(a.LearnerAnswer, 24))
		if a.TierBefore != a.TierAfter {
			line += "  " + tierName(a.TierBefore) + " → " + tierName(a.TierAfter)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func tierName(s string) string {
	t, err := mastery.ParseTier(s)
	if err != nil {
		return s
	}
	return t.DisplayName()
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
