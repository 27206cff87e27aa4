package practice

import (
	"bytes"
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/drill/internal/exercise"
	"github.com/abhisek/drill/internal/session"
	"github.com/abhisek/drill/internal/store"
)

var testNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 2))
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newCollection(t *testing.T, items ...*exercise.Item) (*exercise.Collection, *exercise.Exercise) {
	t.Helper()
	c := &exercise.Collection{}
	ex, err := c.AddExercise("Spanish", "", testNow)
	require.NoError(t, err)
	for _, it := range items {
		require.NoError(t, ex.AddItem(it))
	}
	return c, ex
}

func basic(prompt, answer string) *exercise.Item {
	it := exercise.NewItem(exercise.KindBasic, prompt, testNow)
	it.Answer = answer
	return it
}

func TestPresent_Cloze(t *testing.T) {
	it := exercise.NewItem(exercise.KindCloze, "Yo {{soy}} de Madrid y {{tengo}} frío.", testNow)
	it.Answers = []string{"soy", "tengo"}

	q := Present(it, seeded(1))
	assert.Equal(t, "Yo [1]____ de Madrid y [2]____ frío.", q.Prompt)
	assert.Equal(t, 2, q.Parts)
	assert.Contains(t, q.Hint, "2 blanks")
	assert.Empty(t, q.Choices)
}

func TestPresent_MultipleChoiceKeepsOrder(t *testing.T) {
	it := exercise.NewItem(exercise.KindMultipleChoice, "Which is a fruit?", testNow)
	it.Options = []string{"apple", "carrot", "leek"}
	it.Answer = "apple"

	q := Present(it, seeded(1))
	assert.Equal(t, it.Options, q.Choices)
	assert.Equal(t, 0, q.Parts)
	assert.Equal(t, "Which is a fruit?", q.Lines()[0])
	assert.Equal(t, "  2. carrot", q.Lines()[2])
}

func TestPresent_OrderingShufflesCopy(t *testing.T) {
	it := exercise.NewItem(exercise.KindOrdering, "Order the days", testNow)
	it.Answers = []string{"lunes", "martes", "miércoles", "jueves", "viernes"}

	q := Present(it, seeded(7))
	assert.ElementsMatch(t, it.Answers, q.Choices)
	assert.Equal(t, []string{"lunes", "martes", "miércoles", "jueves", "viernes"}, it.Answers)
}

func TestQuestionResponse(t *testing.T) {
	ordering := exercise.NewItem(exercise.KindOrdering, "Order", testNow)
	ordering.Answers = []string{"one", "two", "three"}
	oq := Present(ordering, seeded(3))

	// Answer with choice numbers in the shuffled display order.
	var nums []string
	for _, want := range ordering.Answers {
		for i, c := range oq.Choices {
			if c == want {
				nums = append(nums, fmt.Sprint(i+1))
			}
		}
	}
	resp := oq.Response(strings.Join(nums, " | "), false)
	assert.Equal(t, []string{"one", "two", "three"}, resp.Parts)

	fill := exercise.NewItem(exercise.KindFillBlank, "__ y __", testNow)
	fill.Answers = []string{"pan", "vino"}
	resp = Present(fill, seeded(1)).Response(" pan |vino ", false)
	assert.Equal(t, []string{"pan", "vino"}, resp.Parts)

	writing := exercise.NewItem(exercise.KindWriting, "Describe your town", testNow)
	resp = Present(writing, seeded(1)).Response("  It is small. ", true)
	assert.Equal(t, "It is small.", resp.Text)
	assert.True(t, resp.SelfGrade)

	resp = Present(basic("rojo", "red"), seeded(1)).Response(" 2 ", true)
	assert.Equal(t, "2", resp.Text)
	assert.False(t, resp.SelfGrade)
}

func TestQuestionResponse_Choices(t *testing.T) {
	colors := exercise.NewItem(exercise.KindMultipleChoice, "Which is green?", testNow)
	colors.Options = []string{"red", "green", "blue"}
	colors.Answer = "green"
	q := Present(colors, seeded(1))
	assert.Equal(t, "green", q.Response(" 2 ", false).Text)
	assert.Equal(t, "Green", q.Response("Green", false).Text)
	assert.Equal(t, "7", q.Response("7", false).Text)

	numbers := exercise.NewItem(exercise.KindMultipleChoice, "1 + 2 =", testNow)
	numbers.Options = []string{"2", "3", "4"}
	numbers.Answer = "3"
	q = Present(numbers, seeded(1))
	assert.Equal(t, "3", q.Response("3", false).Text)
	assert.Equal(t, "3", q.Selected("3").Text)
	assert.Equal(t, "2", q.Response("2", false).Text, "text wins over the number")

	ordering := exercise.NewItem(exercise.KindOrdering, "Smallest first", testNow)
	ordering.Answers = []string{"1", "2", "3"}
	q = Present(ordering, seeded(4))
	assert.Equal(t, []string{"1", "2", "3"}, q.Response("1 | 2 | 3", false).Parts)
}

func TestRecorder_AnswerPersists(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	c, ex := newCollection(t, basic("rojo", "red"))
	rec := NewRecorder(c, st.SnapshotRepo(), st.EventRepo())

	s, err := session.Start(ex, 5, testNow, seeded(1))
	require.NoError(t, err)
	rec.Begin(ctx, s)

	_, err = rec.Capture(s)
	assert.Error(t, err, "nothing submitted yet")

	s, _ = session.Submit(s, Present(ex.Items[0], nil).Response("Red", false), testNow.Add(3*time.Second))
	require.NoError(t, rec.Answer(ctx, s))

	loaded, err := exercise.LoadCollection(ctx, st.SnapshotRepo())
	require.NoError(t, err)
	got := loaded.Exercises[0].Items[0]
	assert.Equal(t, 1, got.TimesAnswered)
	assert.Equal(t, 1, got.TimesCorrect)

	answers, err := st.EventRepo().QueryAnswerEvents(ctx, s.SessionID)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "Red", answers[0].LearnerAnswer)
	assert.Equal(t, "new", answers[0].TierBefore)
	assert.Equal(t, "middle", answers[0].TierAfter)
	assert.Equal(t, int64(3000), answers[0].TimeMs)

	s, _ = session.Advance(s, testNow)
	sum := rec.Finish(ctx, s, testNow.Add(time.Minute))
	assert.Equal(t, 1, sum.Total)

	sessions, err := st.EventRepo().QuerySessionSummaries(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Spanish", sessions[0].ExerciseName)
	assert.Equal(t, 1, sessions[0].CorrectAnswers)
	assert.Equal(t, 60, sessions[0].DurationSecs)
}

func TestRecorder_StaleCheckpointSkipsSnapshot(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	c, ex := newCollection(t, basic("rojo", "red"), basic("azul", "blue"))
	rec := NewRecorder(c, st.SnapshotRepo(), st.EventRepo())

	s, err := session.Start(ex, 5, testNow, seeded(1))
	require.NoError(t, err)

	s, _ = session.Submit(s, Present(session.CurrentItem(s), nil).Response("wrong", false), testNow)
	first, err := rec.Capture(s)
	require.NoError(t, err)
	s, _ = session.Advance(s, testNow)
	s, _ = session.Submit(s, Present(session.CurrentItem(s), nil).Response("wrong", false), testNow)
	second, err := rec.Capture(s)
	require.NoError(t, err)

	// Written out of order: the first checkpoint must not overwrite the second.
	require.NoError(t, rec.Write(ctx, second))
	require.NoError(t, rec.Write(ctx, first))

	loaded, err := exercise.LoadCollection(ctx, st.SnapshotRepo())
	require.NoError(t, err)
	for _, it := range loaded.Exercises[0].Items {
		assert.Equal(t, 1, it.TimesAnswered, it.Prompt)
	}

	answers, err := st.EventRepo().QueryAnswerEvents(ctx, s.SessionID)
	require.NoError(t, err)
	assert.Len(t, answers, 2)
}

func TestRunPlain(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	c, ex := newCollection(t, basic("rojo", "x"), basic("azul", "x"))
	rec := NewRecorder(c, st.SnapshotRepo(), st.EventRepo())

	var out bytes.Buffer
	sum, err := RunPlain(ctx, ex, rec, strings.NewReader("x\nnope\n"), &out, PlainOptions{
		Size: 10,
		Rand: seeded(4),
		Now:  func() time.Time { return testNow },
	})
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Total)
	assert.Equal(t, 1, sum.Correct)
	assert.Equal(t, 50, sum.AccuracyPct)

	text := out.String()
	assert.Contains(t, text, "[1/2]")
	assert.Contains(t, text, "Correct!")
	assert.Contains(t, text, "Not quite. Answer: x")
	assert.Contains(t, text, "Done: 1/2 correct (50%)")

	for _, it := range ex.Items {
		assert.Equal(t, 1, it.TimesAnswered)
		require.NotNil(t, it.LastReviewed)
	}
}

func TestRunPlain_SelfGradedAndEarlyQuit(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	essay := exercise.NewItem(exercise.KindWriting, "Describe your town", testNow)
	essay.Sample = "Mi pueblo es pequeño."
	c, ex := newCollection(t, essay)
	rec := NewRecorder(c, st.SnapshotRepo(), st.EventRepo())

	var out bytes.Buffer
	sum, err := RunPlain(ctx, ex, rec, strings.NewReader("Es grande.\ny\n"), &out, PlainOptions{Size: 1, Rand: seeded(1)})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Correct)
	assert.Contains(t, out.String(), "Sample: Mi pueblo es pequeño.")
	assert.Contains(t, out.String(), "Did you get it? [y/N]")
	assert.Equal(t, 1, essay.TimesCorrect)

	out.Reset()
	sum, err = RunPlain(ctx, ex, rec, strings.NewReader(QuitCommand+"\n"), &out, PlainOptions{Size: 1, Rand: seeded(1)})
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Total)
	assert.Equal(t, 1, essay.TimesAnswered)
}

func TestRunPlain_EmptyExercise(t *testing.T) {
	st := openStore(t)
	c, ex := newCollection(t)
	rec := NewRecorder(c, st.SnapshotRepo(), nil)

	_, err := RunPlain(context.Background(), ex, rec, strings.NewReader(""), &bytes.Buffer{}, PlainOptions{Size: 10})
	assert.ErrorIs(t, err, session.ErrEmptyPool)
}
