package progress

import (
	"strings"
	"time"

	"github.com/abhisek/drill/internal/exercise"
	"github.com/abhisek/drill/internal/mastery"
)

// Response is what the learner submitted for one item.
type Response struct {
	// Text is the raw single-answer submission.
	Text string

	// Parts is the ordered submission for array-typed items. When empty for
	// an array item, Text is split on "|".
	Parts []string

	// SelfGrade is the learner's own verdict for free-form items, which
	// cannot be graded by comparison.
	SelfGrade bool
}

// Raw returns the submission as a single display string.
func (r Response) Raw() string {
	if len(r.Parts) > 0 {
		return strings.Join(r.Parts, " | ")
	}
	return r.Text
}

// Result is the outcome of recording one answer.
type Result struct {
	Correct         bool
	CanonicalAnswer string

	// Graded is false for free-form items, where Correct mirrors the
	// learner's self-assessment.
	Graded bool

	Transition mastery.Transition
}

// RecordAnswer grades the response and applies it to the item's history:
// one more attempt, one more correct if correct, reviewed at now. The
// submission is compared as text; hosts map option numbers to option text
// before calling.
func RecordAnswer(it *exercise.Item, resp Response, now time.Time) Result {
	before := mastery.Classify(it.TimesAnswered, it.TimesCorrect)

	res := Result{
		CanonicalAnswer: it.CanonicalAnswer(),
		Graded:          !it.Kind.FreeForm(),
	}
	switch {
	case !res.Graded:
		res.Correct = resp.SelfGrade
	case it.IsArray():
		parts := resp.Parts
		if len(parts) == 0 {
			parts = exercise.SplitParts(resp.Text)
		}
		res.Correct = exercise.CheckAnswers(it, parts)
	default:
		text := resp.Text
		if text == "" && len(resp.Parts) == 1 {
			text = resp.Parts[0]
		}
		res.Correct = exercise.CheckAnswer(it, text)
	}

	it.TimesAnswered++
	if res.Correct {
		it.TimesCorrect++
	}
	reviewed := now
	it.LastReviewed = &reviewed

	res.Transition = mastery.Transition{
		ItemID: it.ID,
		From:   before,
		To:     mastery.Classify(it.TimesAnswered, it.TimesCorrect),
	}
	return res
}

// ResetStats clears an item's answer history. It cannot be undone.
func ResetStats(it *exercise.Item) {
	it.ResetStats()
}

// ResetExercise clears the history of every item in the exercise and returns
// how many items were reset.
func ResetExercise(ex *exercise.Exercise) int {
	for _, it := range ex.Items {
		it.ResetStats()
	}
	return len(ex.Items)
}
