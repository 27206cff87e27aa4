package practice

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/drill/internal/exercise"
	prac "github.com/abhisek/drill/internal/practice"
	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/screen"
	"github.com/abhisek/drill/internal/screens/summary"
	"github.com/abhisek/drill/internal/store"
)

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var (
	enterKey = tea.KeyPressMsg{Code: tea.KeyEnter}
	escKey   = tea.KeyPressMsg{Code: tea.KeyEscape}
)

func newEnv(t *testing.T, items ...*exercise.Item) (screen.Env, *exercise.Exercise, *store.Store) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	c := &exercise.Collection{}
	ex, err := c.AddExercise("Colors", "", testNow)
	require.NoError(t, err)
	for _, it := range items {
		require.NoError(t, ex.AddItem(it))
	}

	return screen.Env{
		Collection:  c,
		Recorder:    prac.NewRecorder(c, st.SnapshotRepo(), st.EventRepo()),
		Events:      st.EventRepo(),
		SessionSize: 10,
		Rand:        rand.New(rand.NewPCG(1, 2)),
		Now:         func() time.Time { return testNow },
	}, ex, st
}

func basic(prompt, answer string) *exercise.Item {
	it := exercise.NewItem(exercise.KindBasic, prompt, testNow)
	it.Answer = answer
	return it
}

// run executes cmd and feeds the resulting message back into the screen.
func run(t *testing.T, s *PracticeScreen, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	_, next := s.Update(cmd())
	return next
}

func TestPracticeScreen_AnswerAndFinish(t *testing.T) {
	env, ex, st := newEnv(t, basic("rojo", "red"))
	s := New(env, ex)
	require.Empty(t, s.errMsg)
	assert.Equal(t, "Practice: Colors", s.Title())
	assert.Contains(t, s.View(80, 30), "rojo")

	// Empty input is not submitted.
	_, cmd := s.Update(enterKey)
	assert.Nil(t, cmd)
	assert.Equal(t, phaseAnswer, s.phase)

	s.input.Model.SetValue("Red")
	_, cmd = s.Update(enterKey)
	assert.Equal(t, phaseFeedback, s.phase)
	assert.True(t, s.result.Correct)
	assert.Contains(t, s.View(80, 30), "Correct!")

	assert.Nil(t, run(t, s, cmd))
	assert.Empty(t, s.saveErr)

	loaded, err := exercise.LoadCollection(context.Background(), st.SnapshotRepo())
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Exercises[0].Items[0].TimesCorrect)

	// Any key leaves feedback; the pool is exhausted so the session ends.
	_, cmd = s.Update(key('x'))
	assert.Equal(t, phaseEnding, s.phase)
	replace := run(t, s, cmd)
	require.NotNil(t, replace)
	msg, ok := replace().(router.ReplaceScreenMsg)
	require.True(t, ok)
	sum, ok := msg.Screen.(*summary.SummaryScreen)
	require.True(t, ok)
	assert.Contains(t, sum.View(80, 30), "100%")
}

func TestPracticeScreen_WrongAnswerShowsCanonical(t *testing.T) {
	env, ex, _ := newEnv(t, basic("azul", "blue"), basic("verde", "green"))
	s := New(env, ex)

	s.input.Model.SetValue("purple")
	s.Update(enterKey)
	assert.False(t, s.result.Correct)
	view := s.View(80, 30)
	assert.Contains(t, view, "Not quite")
	assert.Contains(t, view, "Answer: ")

	s.Update(key(' '))
	assert.Equal(t, phaseAnswer, s.phase)
	assert.Equal(t, 1, s.state.Index)
	assert.Empty(t, s.input.Value())
}

func TestPracticeScreen_MultipleChoiceByNumber(t *testing.T) {
	it := exercise.NewItem(exercise.KindMultipleChoice, "Which is red?", testNow)
	it.Options = []string{"azul", "rojo", "verde"}
	it.Answer = "rojo"
	env, ex, _ := newEnv(t, it)
	s := New(env, ex)
	require.True(t, s.mcActive)

	s.Update(key('2'))
	assert.Equal(t, phaseFeedback, s.phase)
	assert.True(t, s.result.Correct)
	assert.Equal(t, 1, s.choice.CorrectIndex)
}

func TestPracticeScreen_NumericOptions(t *testing.T) {
	it := exercise.NewItem(exercise.KindMultipleChoice, "1 + 2 =", testNow)
	it.Options = []string{"2", "3", "4"}
	it.Answer = "3"
	env, ex, _ := newEnv(t, it)
	s := New(env, ex)
	require.True(t, s.mcActive)

	s.Update(key('2'))
	assert.Equal(t, phaseFeedback, s.phase)
	assert.True(t, s.result.Correct)
	assert.Equal(t, 1, s.choice.CorrectIndex)
}

func TestPracticeScreen_SelfGrade(t *testing.T) {
	essay := exercise.NewItem(exercise.KindWriting, "Describe your town", testNow)
	essay.Sample = "Mi pueblo es pequeño."
	env, ex, _ := newEnv(t, essay)
	s := New(env, ex)

	s.Update(enterKey)
	assert.Equal(t, phaseSelfGrade, s.phase)
	assert.Contains(t, s.View(80, 40), "Mi pueblo es pequeño.")

	s.Update(key('n'))
	assert.Equal(t, phaseFeedback, s.phase)
	assert.False(t, s.result.Correct)
	assert.Equal(t, 1, essay.TimesAnswered)
	assert.Contains(t, s.View(80, 40), "Marked for review")
}

func TestPracticeScreen_QuitConfirm(t *testing.T) {
	env, ex, _ := newEnv(t, basic("rojo", "red"), basic("azul", "blue"))
	s := New(env, ex)

	s.Update(escKey)
	assert.Equal(t, phaseQuitConfirm, s.phase)
	assert.Contains(t, s.View(80, 30), "End session early?")

	s.Update(key('n'))
	assert.Equal(t, phaseAnswer, s.phase)

	s.Update(escKey)
	_, cmd := s.Update(key('y'))
	assert.Equal(t, phaseEnding, s.phase)
	require.NotNil(t, cmd)
	end, ok := cmd().(sessionEndMsg)
	require.True(t, ok)
	assert.Equal(t, 0, end.Summary.Total)
}

func TestPracticeScreen_EmptyExercise(t *testing.T) {
	env, ex, _ := newEnv(t)
	s := New(env, ex)
	assert.Contains(t, s.View(80, 30), "no items yet")
	assert.Nil(t, s.Init())

	_, cmd := s.Update(key('x'))
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestPracticeScreen_SaveErrorShown(t *testing.T) {
	env, ex, _ := newEnv(t, basic("rojo", "red"))
	s := New(env, ex)
	s.Update(savedMsg{Err: fmt.Errorf("disk full")})
	assert.Contains(t, s.View(80, 30), "Progress not saved: disk full")
}
