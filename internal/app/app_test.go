package app

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/drill/internal/exercise"
	"github.com/abhisek/drill/internal/screen"
	"github.com/abhisek/drill/internal/screens/practice"
)

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func testModel(t *testing.T) AppModel {
	t.Helper()
	c := &exercise.Collection{}
	ex, err := c.AddExercise("Spanish", "", testNow)
	require.NoError(t, err)
	it := exercise.NewItem(exercise.KindBasic, "rojo", testNow)
	it.Answer = "red"
	require.NoError(t, ex.AddItem(it))

	return New(screen.Env{
		Collection:  c,
		SessionSize: 10,
		Now:         func() time.Time { return testNow },
	})
}

func resize(m AppModel, w, h int) AppModel {
	next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return next.(AppModel)
}

func TestApp_ViewShowsHeaderAndHints(t *testing.T) {
	m := resize(testModel(t), 120, 40)
	content := m.render()
	assert.True(t, m.View().AltScreen)

	assert.Contains(t, content, "drill")
	assert.Contains(t, content, "Home")
	assert.Contains(t, content, "1 due")
	assert.Contains(t, content, "Navigate")
}

func TestApp_TooSmall(t *testing.T) {
	m := resize(testModel(t), 40, 10)
	assert.Contains(t, m.render(), "Terminal too small")
}

func TestApp_CtrlCQuits(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_EscOnHomeIsIgnored(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
}

func TestApp_WithScreenStartsOnTop(t *testing.T) {
	m := testModel(t)
	ex := m.env.Collection.Exercises[0]
	m = resize(m.WithScreen(practice.New(m.env, ex)), 120, 40)

	assert.Equal(t, 2, m.router.Depth())
	assert.NotNil(t, m.Init(), "practice screen init runs at startup")
	assert.Contains(t, m.render(), "Practice: Spanish")
}
