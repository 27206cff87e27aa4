package authoring

import (
	"fmt"
	"strings"

	"github.com/abhisek/drill/internal/exercise"
)

// Validator checks one drafted item. Implementations must be safe for
// concurrent use.
type Validator interface {
	Name() string
	Validate(it *exercise.Item, in DraftInput) *ValidationError
}

// ValidationError describes why a draft was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

const maxPromptLen = 500

// StructuralValidator applies the per-kind rules used by bulk import, plus
// length and kind limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(it *exercise.Item, in DraftInput) *ValidationError {
	if len(it.Prompt) > maxPromptLen {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("prompt exceeds %d characters", maxPromptLen)}
	}
	if in.Kind != "" && it.Kind != in.Kind {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("asked for %s, got %s", in.Kind, it.Kind)}
	}
	if err := it.Validate(); err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	return nil
}

// DuplicateValidator rejects drafts whose prompt matches an existing item.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(it *exercise.Item, in DraftInput) *ValidationError {
	p := normalizePrompt(it.Prompt)
	for _, existing := range in.Existing {
		if normalizePrompt(existing) == p {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("prompt %q already exists", it.Prompt)}
		}
	}
	return nil
}

func normalizePrompt(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
