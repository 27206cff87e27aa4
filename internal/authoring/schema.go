package authoring

import (
	"github.com/abhisek/drill/internal/exercise"
	"github.com/abhisek/drill/internal/llm"
)

func kindEnum() []any {
	out := make([]any, len(exercise.AllKinds))
	for i, k := range exercise.AllKinds {
		out[i] = string(k)
	}
	return out
}

func stringArray(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": desc,
	}
}

func stringField(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

// ItemsSchema is the response schema for drafting a batch of items. Every
// property is required so strict structured-output modes accept it; unused
// fields come back empty.
var ItemsSchema = &llm.Schema{
	Name:        "practice-items",
	Description: "A batch of practice items for one exercise",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"kind": map[string]any{
							"type":        "string",
							"enum":        kindEnum(),
							"description": "How the item is answered",
						},
						"prompt":       stringField("The question shown to the learner. Cloze prompts mark each blank as {{n}}"),
						"instructions": stringField("Optional one-line instruction, empty if not needed"),
						"answer":       stringField("The single correct answer. For multiple-choice, the exact text of the correct option. Empty when answers is used"),
						"answers":      stringArray("Ordered answers for cloze, ordering, matching and multi-blank fill-blank items. Empty otherwise"),
						"options":      stringArray("Choices for multiple-choice, items to order for ordering, left column for matching. Empty otherwise"),
						"sample":       stringField("A model answer for writing, speaking and dialogue items. Empty otherwise"),
					},
					"required":             []any{"kind", "prompt", "instructions", "answer", "answers", "options", "sample"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"items"},
		"additionalProperties": false,
	},
}
