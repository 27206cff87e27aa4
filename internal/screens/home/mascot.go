package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drill/internal/ui/theme"
)

// MascotVariant selects which flashcard art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default violet
	MascotCelebrating                      // Yellow, star eyes: everything mastered
	MascotAlert                            // Amber, exclamation: reviews piling up
)

// alertDue is the due count at which the mascot turns to alert.
const alertDue = 3

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ A?B │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ A!B │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ A?B │
└─────┘`

func pickMascot(items, mastered, due int) MascotVariant {
	switch {
	case due >= alertDue:
		return MascotAlert
	case items > 0 && mastered == items:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(variant MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch variant {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.Highlight
	case MascotAlert:
		art, fg = mascotAlert, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
