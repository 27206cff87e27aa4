package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drill/internal/exercise"
	"github.com/abhisek/drill/internal/markdown"
	"github.com/abhisek/drill/internal/mastery"
	"github.com/abhisek/drill/internal/progress"
	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/screen"
	"github.com/abhisek/drill/internal/screens/history"
	"github.com/abhisek/drill/internal/screens/practice"
	"github.com/abhisek/drill/internal/ui/components"
	"github.com/abhisek/drill/internal/ui/layout"
)

// HomeScreen lists the exercises with their progress and starts sessions.
type HomeScreen struct {
	env   screen.Env
	menu  components.Menu
	stats []progress.Stats // aligned with env.Collection.Exercises

	items    int
	mastered int
	due      int
	mascot   MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env screen.Env) *HomeScreen {
	h := &HomeScreen{env: env}
	h.rebuild()
	return h
}

// rebuild recomputes stats and menu entries, keeping the selection.
func (h *HomeScreen) rebuild() {
	selected := h.menu.Selected
	now := h.env.Clock()

	h.stats = h.stats[:0]
	h.items, h.mastered, h.due = 0, 0, 0

	var entries []components.MenuItem
	if c := h.env.Collection; c != nil {
		for _, ex := range c.Exercises {
			st := progress.Aggregate(ex, now)
			h.stats = append(h.stats, st)
			h.items += st.Total
			h.mastered += st.PerTier[mastery.TierMastered]
			h.due += st.DueCount

			entries = append(entries, components.MenuItem{
				Label:  ex.Name,
				Detail: exerciseDetail(st),
				Action: h.startPractice(ex),
			})
		}
	}
	if len(entries) == 0 {
		entries = append(entries, components.MenuItem{
			Label:    "No exercises yet",
			Detail:   "drill exercise add <name>",
			Disabled: true,
		})
	}

	entries = append(entries,
		components.MenuItem{Label: "History", Action: func() tea.Cmd {
			if h.env.Events == nil {
				return nil
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(h.env.Events)}
			}
		}},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	)

	h.menu = components.NewMenu(entries)
	if selected > 0 && selected < len(entries) && !entries[selected].Disabled {
		h.menu.Selected = selected
	}

	h.mascot = pickMascot(h.items, h.mastered, h.due)
}

func (h *HomeScreen) startPractice(ex *exercise.Exercise) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: practice.New(h.env, ex)}
		}
	}
}

func exerciseDetail(st progress.Stats) string {
	parts := []string{fmt.Sprintf("%d items", st.Total)}
	if st.DueCount > 0 {
		parts = append(parts, fmt.Sprintf("%d due", st.DueCount))
	}
	if st.Total > 0 {
		parts = append(parts, fmt.Sprintf("%d%% learned", int(st.Progress()*100)))
	}
	return strings.Join(parts, " · ")
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume refreshes stats after a session or history view is closed.
func (h *HomeScreen) Resume() tea.Cmd {
	h.rebuild()
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// selectedExercise returns the highlighted exercise and its stats, if any.
func (h *HomeScreen) selectedExercise() (*exercise.Exercise, progress.Stats, bool) {
	i := h.menu.Selected
	if h.env.Collection == nil || i < 0 || i >= len(h.stats) {
		return nil, progress.Stats{}, false
	}
	return h.env.Collection.Exercises[i], h.stats[i], true
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer to
	// approximate the terminal size.
	compact := layout.IsCompact(width, height+8)
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot, cw))
	}
	sections = append(sections, renderStatsBar(h.items, h.mastered, h.due, cw, compact))
	sections = append(sections, renderMenu(h.menu, cw))

	if ex, st, ok := h.selectedExercise(); ok {
		sections = append(sections, renderExerciseDetail(markdown.PlainText(ex.Description), st, cw, compact))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}
