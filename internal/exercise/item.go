package exercise

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind identifies how an item is presented and graded.
type Kind string

const (
	KindBasic          Kind = "basic"
	KindFillBlank      Kind = "fill-blank"
	KindMultipleChoice Kind = "multiple-choice"
	KindCloze          Kind = "cloze"
	KindOrdering       Kind = "ordering"
	KindMatching       Kind = "matching"
	KindWriting        Kind = "writing"
	KindSpeaking       Kind = "speaking"
	KindDialogue       Kind = "dialogue"
)

// AllKinds lists every supported item kind.
var AllKinds = []Kind{
	KindBasic, KindFillBlank, KindMultipleChoice, KindCloze, KindOrdering,
	KindMatching, KindWriting, KindSpeaking, KindDialogue,
}

// ParseKind converts a string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown item kind %q", s)
}

// FreeForm reports whether items of this kind have no gradable answer.
// Free-form items are self-assessed by the learner.
func (k Kind) FreeForm() bool {
	switch k {
	case KindWriting, KindSpeaking, KindDialogue:
		return true
	}
	return false
}

// Item is a single practice question together with its answer history.
type Item struct {
	ID   string
	Kind Kind

	Prompt       string
	Instructions string
	Passage      string

	// Answer is the canonical answer for single-answer items. Answers holds
	// the ordered expected values for array-typed items (multi-blank, cloze,
	// ordering, matching). Exactly one of the two is used.
	Answer  string
	Answers []string

	// Options are the choices for multiple-choice items, the items to order
	// for ordering items, or the left column for matching items.
	Options []string

	// Sample is a model answer shown after a free-form attempt.
	Sample string

	TimesAnswered int
	TimesCorrect  int
	LastReviewed  *time.Time
	CreatedAt     time.Time
}

// NewItem creates an item with a fresh ID and zeroed history.
func NewItem(kind Kind, prompt string, now time.Time) *Item {
	return &Item{
		ID:        uuid.New().String(),
		Kind:      kind,
		Prompt:    prompt,
		CreatedAt: now,
	}
}

// IsArray reports whether the item expects an ordered list of answers.
func (it *Item) IsArray() bool {
	return len(it.Answers) > 0
}

// CanonicalAnswer returns the expected answer formatted for display.
func (it *Item) CanonicalAnswer() string {
	if it.IsArray() {
		return strings.Join(it.Answers, " | ")
	}
	if it.Kind.FreeForm() {
		return it.Sample
	}
	return it.Answer
}

// ResetStats clears the answer history.
func (it *Item) ResetStats() {
	it.TimesAnswered = 0
	it.TimesCorrect = 0
	it.LastReviewed = nil
}

// Validate checks that the item carries what its kind needs.
func (it *Item) Validate() error {
	if strings.TrimSpace(it.Prompt) == "" {
		return ErrEmptyPrompt
	}
	if it.TimesCorrect < 0 || it.TimesAnswered < 0 || it.TimesCorrect > it.TimesAnswered {
		return fmt.Errorf("%w: %d correct of %d answered", ErrInvalidStats, it.TimesCorrect, it.TimesAnswered)
	}

	switch it.Kind {
	case KindWriting, KindSpeaking, KindDialogue:
		return nil
	case KindBasic, KindFillBlank:
		if strings.TrimSpace(it.Answer) == "" && !it.IsArray() {
			return ErrMissingAnswer
		}
	case KindMultipleChoice:
		if len(it.Options) < 2 {
			return fmt.Errorf("%w: multiple-choice needs at least 2 options", ErrMissingOptions)
		}
		if strings.TrimSpace(it.Answer) == "" {
			return ErrMissingAnswer
		}
		if !containsFold(it.Options, it.Answer) {
			return fmt.Errorf("%w: answer %q is not one of the options", ErrMissingAnswer, it.Answer)
		}
	case KindCloze:
		if !it.IsArray() {
			return ErrMissingAnswer
		}
		if n := strings.Count(it.Prompt, "{{"); n != 0 && n != len(it.Answers) {
			return fmt.Errorf("%w: %d blanks but %d answers", ErrMissingAnswer, n, len(it.Answers))
		}
	case KindOrdering:
		if !it.IsArray() {
			return ErrMissingAnswer
		}
	case KindMatching:
		if !it.IsArray() {
			return ErrMissingAnswer
		}
		if len(it.Options) != len(it.Answers) {
			return fmt.Errorf("%w: %d left values but %d matches", ErrMissingOptions, len(it.Options), len(it.Answers))
		}
	default:
		return fmt.Errorf("unknown item kind %q", it.Kind)
	}
	return nil
}

func containsFold(list []string, s string) bool {
	s = strings.TrimSpace(s)
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), s) {
			return true
		}
	}
	return false
}
