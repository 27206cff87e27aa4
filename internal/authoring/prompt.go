package authoring

import (
	"fmt"
	"strings"

	"github.com/abhisek/drill/internal/exercise"
)

const systemPrompt = `You write practice items for a spaced-repetition drill trainer.

Rules:
- Every item must be self-contained and have exactly one correct answer, except writing, speaking and dialogue items which are self-assessed.
- Answers are compared case-insensitively after trimming, so keep them short and unambiguous.
- basic: a question with a single short answer.
- fill-blank: a sentence with ___ for each blank. One blank uses answer, several use answers in order.
- multiple-choice: 3 to 5 options; answer is the exact text of the correct option. Distractors should reflect common mistakes.
- cloze: mark blanks in the prompt as {{1}}, {{2}}, ... and list answers in the same order.
- ordering: options are the pieces in scrambled order; answers is the correct order.
- matching: options is the left column; answers holds the matching right value for each option, in the same order.
- writing, speaking, dialogue: give a task in the prompt and a short model answer in sample.
- Leave fields that do not apply to the kind empty.
- Do not repeat any prompt from the "existing items" list.`

// buildUserMessage describes one batch request.
func buildUserMessage(in DraftInput, count int, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Exercise: %s\n", in.Exercise)
	fmt.Fprintf(&b, "Topic: %s\n", in.Topic)
	fmt.Fprintf(&b, "Number of items: %d\n", count)
	if in.Kind != "" {
		fmt.Fprintf(&b, "Kind: %s (use this kind for every item)\n", in.Kind)
	} else {
		fmt.Fprintf(&b, "Kind: any of %s\n", kindList())
	}

	b.WriteString("\nExisting items:\n")
	b.WriteString(buildExisting(in.Existing, cfg.MaxExisting))
	return b.String()
}

func kindList() string {
	names := make([]string, len(exercise.AllKinds))
	for i, k := range exercise.AllKinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// buildExisting lists the most recent prompts, or "None".
func buildExisting(prompts []string, max int) string {
	if len(prompts) == 0 {
		return "None"
	}
	if max > 0 && len(prompts) > max {
		prompts = prompts[len(prompts)-max:]
	}

	var b strings.Builder
	for i, p := range prompts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return strings.TrimRight(b.String(), "\n")
}
