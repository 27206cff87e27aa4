package home

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/drill/internal/exercise"
	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/screen"
	"github.com/abhisek/drill/internal/screens/practice"
)

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func testEnv(t *testing.T) (screen.Env, *exercise.Exercise) {
	t.Helper()
	c := &exercise.Collection{}
	ex, err := c.AddExercise("Spanish", "Common **verbs**\n\nPresent tense only.", testNow)
	require.NoError(t, err)
	for _, p := range []string{"ser", "ir", "tener"} {
		it := exercise.NewItem(exercise.KindBasic, p, testNow)
		it.Answer = p
		require.NoError(t, ex.AddItem(it))
	}
	_, err = c.AddExercise("Empty", "", testNow)
	require.NoError(t, err)

	return screen.Env{
		Collection:  c,
		SessionSize: 10,
		Now:         func() time.Time { return testNow },
	}, ex
}

func TestHome_MenuListsExercises(t *testing.T) {
	env, _ := testEnv(t)
	h := New(env)

	labels := make([]string, 0, len(h.menu.Items))
	for _, it := range h.menu.Items {
		labels = append(labels, it.Label)
	}
	assert.Equal(t, []string{"Spanish", "Empty", "History", "Quit"}, labels)
	assert.Equal(t, "3 items · 3 due · 0% learned", h.menu.Items[0].Detail)
	assert.Equal(t, "0 items", h.menu.Items[1].Detail)
	assert.Equal(t, 3, h.items)
	assert.Equal(t, 3, h.due)
	assert.Equal(t, MascotAlert, h.mascot)
}

func TestHome_ViewShowsSelectedDescription(t *testing.T) {
	env, _ := testEnv(t)
	view := New(env).View(120, 40)

	assert.Contains(t, view, "3 ITEMS")
	assert.Contains(t, view, "3 DUE")
	assert.Contains(t, view, "Common verbs")
	assert.NotContains(t, view, "**")
}

func TestHome_EnterStartsPractice(t *testing.T) {
	env, _ := testEnv(t)
	h := New(env)

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &practice.PracticeScreen{}, msg.Screen)
}

func TestHome_ResumeRefreshesStats(t *testing.T) {
	env, ex := testEnv(t)
	h := New(env)
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	require.Equal(t, 1, h.menu.Selected)

	for _, it := range ex.Items {
		it.TimesAnswered, it.TimesCorrect = 5, 5
		reviewed := testNow
		it.LastReviewed = &reviewed
	}
	assert.Nil(t, h.Resume())

	assert.Equal(t, 3, h.mastered)
	assert.Equal(t, 0, h.due)
	assert.Equal(t, 1, h.menu.Selected, "selection survives a rebuild")
}

func TestHome_NoExercises(t *testing.T) {
	h := New(screen.Env{Collection: &exercise.Collection{}})
	require.Len(t, h.menu.Items, 3)
	assert.True(t, h.menu.Items[0].Disabled)
	assert.Equal(t, 1, h.menu.Selected)
	assert.Equal(t, MascotIdle, h.mascot)
}

func TestPickMascot(t *testing.T) {
	assert.Equal(t, MascotIdle, pickMascot(0, 0, 0))
	assert.Equal(t, MascotCelebrating, pickMascot(4, 4, 0))
	assert.Equal(t, MascotAlert, pickMascot(4, 4, alertDue))
}
