package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/progress"
	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/screen"
	"github.com/abhisek/drill/internal/screens/home"
	"github.com/abhisek/drill/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env     screen.Env
	router  *router.Router
	initCmd tea.Cmd
	width   int
	height  int
}

// New creates an AppModel with the home screen.
func New(env screen.Env) AppModel {
	h := home.New(env)
	return AppModel{
		env:     env,
		router:  router.New(h),
		initCmd: h.Init(),
	}
}

// WithScreen opens s on top of the home screen at startup.
func (m AppModel) WithScreen(s screen.Screen) AppModel {
	m.initCmd = m.router.Push(s)
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		// Esc belongs to the screens; the practice screen uses it for
		// its quit dialog.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// dueStatus reports the number of due items across the collection.
func (m AppModel) dueStatus() string {
	if m.env.Collection == nil {
		return ""
	}
	now := m.env.Clock()
	due := 0
	for _, ex := range m.env.Collection.Exercises {
		due += progress.Aggregate(ex, now).DueCount
	}
	if due == 0 {
		return "all caught up  "
	}
	return fmt.Sprintf("%d due  ", due)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render composes the full screen as a string.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	var hints []layout.KeyHint
	if active != nil {
		title = active.Title()
		if p, ok := active.(screen.KeyHintProvider); ok {
			hints = p.KeyHints()
		}
	}
	if hints == nil {
		hints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	header := layout.RenderHeader(title, m.dueStatus(), m.width)
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the interactive program and blocks until it exits. start, when
// not nil, is opened on top of the home screen.
func Run(env screen.Env, start screen.Screen) error {
	m := New(env)
	if start != nil {
		m = m.WithScreen(start)
	}
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
