package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/drill/internal/exercise"
	"github.com/abhisek/drill/internal/mastery"
)

var now = time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)

func item(kind exercise.Kind, answer string) *exercise.Item {
	it := exercise.NewItem(kind, "prompt", now.Add(-48*time.Hour))
	it.Answer = answer
	return it
}

func TestRecordAnswer_CorrectIncrementsBoth(t *testing.T) {
	it := item(exercise.KindBasic, "gato")
	it.TimesAnswered, it.TimesCorrect = 2, 1

	res := RecordAnswer(it, Response{Text: " Gato "}, now)

	assert.True(t, res.Correct)
	assert.True(t, res.Graded)
	assert.Equal(t, "gato", res.CanonicalAnswer)
	assert.Equal(t, 3, it.TimesAnswered)
	assert.Equal(t, 2, it.TimesCorrect)
	require.NotNil(t, it.LastReviewed)
	assert.True(t, it.LastReviewed.Equal(now))
}

func TestRecordAnswer_WrongOnlyCountsAttempt(t *testing.T) {
	it := item(exercise.KindBasic, "perro")

	res := RecordAnswer(it, Response{Text: "gato"}, now)

	assert.False(t, res.Correct)
	assert.Equal(t, 1, it.TimesAnswered)
	assert.Equal(t, 0, it.TimesCorrect)
	assert.Equal(t, mastery.Transition{ItemID: it.ID, From: mastery.TierNew, To: mastery.TierWeak}, res.Transition)
}

func TestRecordAnswer_ArrayAnswers(t *testing.T) {
	it := item(exercise.KindFillBlank, "")
	it.Answers = []string{"soy", "estoy"}

	res := RecordAnswer(it, Response{Text: "soy | estoy"}, now)
	assert.True(t, res.Correct)
	assert.Equal(t, "soy | estoy", res.CanonicalAnswer)

	res = RecordAnswer(it, Response{Parts: []string{"estoy", "soy"}}, now)
	assert.False(t, res.Correct)
	assert.Equal(t, 2, it.TimesAnswered)
	assert.Equal(t, 1, it.TimesCorrect)
}

func TestRecordAnswer_MultipleChoiceComparesText(t *testing.T) {
	it := item(exercise.KindMultipleChoice, "3")
	it.Options = []string{"2", "3", "4"}

	res := RecordAnswer(it, Response{Text: "3"}, now)
	assert.True(t, res.Correct)

	// Numbers are not option positions here.
	res = RecordAnswer(it, Response{Text: "2"}, now)
	assert.False(t, res.Correct)
	assert.Equal(t, "3", res.CanonicalAnswer)

	it = item(exercise.KindMultipleChoice, "blue")
	it.Options = []string{"red", "blue"}
	assert.True(t, RecordAnswer(it, Response{Text: " BLUE "}, now).Correct)
	assert.False(t, RecordAnswer(it, Response{Text: "2"}, now).Correct)
}

func TestRecordAnswer_FreeFormUsesSelfGrade(t *testing.T) {
	it := item(exercise.KindWriting, "")
	it.Sample = "Me llamo Ana."

	res := RecordAnswer(it, Response{Text: "Me llamo Luis.", SelfGrade: true}, now)
	assert.False(t, res.Graded)
	assert.True(t, res.Correct)
	assert.Equal(t, "Me llamo Ana.", res.CanonicalAnswer)

	res = RecordAnswer(it, Response{Text: "???"}, now)
	assert.False(t, res.Correct)
	assert.Equal(t, 2, it.TimesAnswered)
	assert.Equal(t, 1, it.TimesCorrect)
}

func TestRecordAnswer_Promotion(t *testing.T) {
	it := item(exercise.KindBasic, "si")
	it.TimesAnswered, it.TimesCorrect = 4, 4

	res := RecordAnswer(it, Response{Text: "si"}, now)
	assert.Equal(t, mastery.TierMiddle, res.Transition.From)
	assert.Equal(t, mastery.TierMastered, res.Transition.To)
	assert.True(t, res.Transition.Promoted())
}

func TestResetStatsThenAggregate(t *testing.T) {
	it := item(exercise.KindBasic, "uno")
	it.TimesAnswered, it.TimesCorrect = 7, 6
	last := now.Add(-time.Hour)
	it.LastReviewed = &last
	ex := &exercise.Exercise{Items: []*exercise.Item{it}}

	ResetStats(it)
	st := Aggregate(ex, now)

	assert.Equal(t, 0, st.CorrectRate)
	assert.Equal(t, mastery.TierNew, mastery.Classify(it.TimesAnswered, it.TimesCorrect))
	assert.Nil(t, it.LastReviewed)
	assert.Equal(t, 1, st.PerTier[mastery.TierNew])
	assert.Equal(t, 1, st.DueCount)
}

func TestResetExercise(t *testing.T) {
	a, b := item(exercise.KindBasic, "a"), item(exercise.KindBasic, "b")
	a.TimesAnswered, a.TimesCorrect = 3, 3
	b.TimesAnswered = 2
	ex := &exercise.Exercise{Items: []*exercise.Item{a, b}}

	assert.Equal(t, 2, ResetExercise(ex))
	assert.Zero(t, a.TimesAnswered+a.TimesCorrect+b.TimesAnswered)
}

func TestAggregate(t *testing.T) {
	ago := func(d time.Duration) *time.Time { t := now.Add(-d); return &t }

	items := []*exercise.Item{
		{ID: "new"},
		{ID: "weak", TimesAnswered: 3, TimesCorrect: 1, LastReviewed: ago(time.Hour)},
		{ID: "middle", TimesAnswered: 2, TimesCorrect: 2, LastReviewed: ago(time.Hour)},
		{ID: "mastered", TimesAnswered: 6, TimesCorrect: 5, LastReviewed: ago(2 * 24 * time.Hour)},
	}
	st := Aggregate(&exercise.Exercise{Items: items}, now)

	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 1, st.PerTier[mastery.TierNew])
	assert.Equal(t, 1, st.PerTier[mastery.TierWeak])
	assert.Equal(t, 1, st.PerTier[mastery.TierMiddle])
	assert.Equal(t, 1, st.PerTier[mastery.TierMastered])
	assert.Equal(t, 11, st.TotalAnswered)
	assert.Equal(t, 8, st.TotalCorrect)
	assert.Equal(t, 73, st.CorrectRate) // 72.7 rounds up
	assert.Equal(t, 2, st.DueCount)     // new and weak
	assert.Equal(t, 1, st.NextDueDays)  // middle item tomorrow
	assert.InDelta(t, 0.5, st.Progress(), 1e-9)
}

func TestAggregate_Empty(t *testing.T) {
	st := Aggregate(&exercise.Exercise{}, now)
	assert.Equal(t, 0, st.Total)
	assert.Equal(t, 0, st.CorrectRate)
	assert.Equal(t, -1, st.NextDueDays)
	assert.Equal(t, 0.0, st.Progress())
}
