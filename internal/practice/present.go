// Package practice connects a practice session to its hosts: it turns items
// into displayable questions, persists progress after each answer and runs
// the line-prompt host used by `drill practice --plain`.
package practice

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/abhisek/drill/internal/exercise"
	"github.com/abhisek/drill/internal/progress"
	"github.com/abhisek/drill/internal/session"
)

var blankMarker = regexp.MustCompile(`\{\{[^}]*\}\}`)

// Question is an item prepared for display.
type Question struct {
	Item *exercise.Item

	Kind         exercise.Kind
	Instructions string
	Passage      string

	// Prompt has cloze markers replaced by numbered blanks.
	Prompt string

	// Choices are the numbered values the learner picks from: the options
	// of a multiple-choice item, the shuffled elements of an ordering item
	// or the shuffled right column of a matching item.
	Choices []string

	// Left is the left column of a matching item.
	Left []string

	// Parts is how many "|"-separated values an array item expects.
	Parts int

	Hint string
}

// SelfGraded reports whether the learner grades the attempt themselves.
func (q Question) SelfGraded() bool {
	return q.Kind.FreeForm()
}

// Present prepares an item for display. rng shuffles ordering elements and
// matching values so the stored order does not give the answer away.
func Present(it *exercise.Item, rng session.Rand) Question {
	if rng == nil {
		rng = session.DefaultRand
	}
	q := Question{
		Item:         it,
		Kind:         it.Kind,
		Instructions: it.Instructions,
		Passage:      it.Passage,
		Prompt:       it.Prompt,
	}
	if it.IsArray() {
		q.Parts = len(it.Answers)
	}

	switch it.Kind {
	case exercise.KindMultipleChoice:
		q.Choices = slices.Clone(it.Options)
		q.Hint = "Type the option number or its text"
	case exercise.KindCloze:
		n := 0
		q.Prompt = blankMarker.ReplaceAllStringFunc(it.Prompt, func(string) string {
			n++
			return fmt.Sprintf("[%d]____", n)
		})
		q.Hint = fmt.Sprintf("Fill the %d blanks in order, separated by |", q.Parts)
	case exercise.KindOrdering:
		q.Choices = shuffled(orderingElements(it), rng)
		q.Hint = "Put them in order: numbers or text, separated by |"
	case exercise.KindMatching:
		q.Left = slices.Clone(it.Options)
		q.Choices = shuffled(it.Answers, rng)
		q.Hint = fmt.Sprintf("Give the match for each of the %d entries, separated by |", q.Parts)
	case exercise.KindWriting, exercise.KindSpeaking, exercise.KindDialogue:
		q.Hint = "Answer freely, then compare with the sample"
	default:
		if q.Parts > 1 {
			q.Hint = fmt.Sprintf("Give the %d answers in order, separated by |", q.Parts)
		}
	}
	return q
}

func orderingElements(it *exercise.Item) []string {
	if len(it.Options) > 0 {
		return it.Options
	}
	return it.Answers
}

func shuffled(in []string, rng session.Rand) []string {
	out := slices.Clone(in)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Response turns a typed answer into a progress.Response. For
// multiple-choice, ordering and matching items a choice number is replaced
// by the choice, unless the typed text already names a choice.
// selfGrade is only used for free-form items.
func (q Question) Response(raw string, selfGrade bool) progress.Response {
	if q.SelfGraded() {
		return progress.Response{Text: strings.TrimSpace(raw), SelfGrade: selfGrade}
	}
	if q.Parts == 0 {
		text := strings.TrimSpace(raw)
		if q.Kind == exercise.KindMultipleChoice {
			text = q.resolve(text)
		}
		return progress.Response{Text: text}
	}

	parts := exercise.SplitParts(raw)
	if q.Kind == exercise.KindOrdering || q.Kind == exercise.KindMatching {
		for i, p := range parts {
			parts[i] = q.resolve(p)
		}
	}
	return progress.Response{Parts: parts}
}

// Selected is the response for a choice picked from the list.
func (q Question) Selected(choice string) progress.Response {
	return progress.Response{Text: choice}
}

// resolve maps a choice number to its choice. Text matching a choice is
// kept, so numeric choices are answered by value.
func (q Question) resolve(s string) string {
	for _, c := range q.Choices {
		if strings.EqualFold(strings.TrimSpace(c), s) {
			return s
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(q.Choices) {
		return strings.TrimSpace(q.Choices[n-1])
	}
	return s
}

// Lines renders the question as plain text lines, without the hint.
func (q Question) Lines() []string {
	var lines []string
	if q.Instructions != "" {
		lines = append(lines, q.Instructions)
	}
	if q.Passage != "" {
		lines = append(lines, "", q.Passage, "")
	}
	lines = append(lines, q.Prompt)

	switch {
	case len(q.Left) > 0:
		for i, l := range q.Left {
			lines = append(lines, fmt.Sprintf("  %c) %s", 'a'+rune(i%26), l))
		}
		lines = append(lines, "")
		for i, c := range q.Choices {
			lines = append(lines, fmt.Sprintf("  %d. %s", i+1, c))
		}
	case len(q.Choices) > 0:
		for i, c := range q.Choices {
			lines = append(lines, fmt.Sprintf("  %d. %s", i+1, c))
		}
	}
	return lines
}
