package screen

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drill/internal/exercise"
	"github.com/abhisek/drill/internal/practice"
	"github.com/abhisek/drill/internal/session"
	"github.com/abhisek/drill/internal/store"
	"github.com/abhisek/drill/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer is implemented by screens that refresh when they become active
// again after the screen above them is popped.
type Resumer interface {
	Resume() tea.Cmd
}

// Env carries the services shared by all screens.
type Env struct {
	Collection  *exercise.Collection
	Recorder    *practice.Recorder
	Events      store.EventRepo
	SessionSize int
	Rand        session.Rand
	Now         func() time.Time
}

// Clock returns Now, defaulting to time.Now.
func (e Env) Clock() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}
