package llm

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	if got := resolveModel("gemini-flash", geminiModels); got != "gemini-2.0-flash" {
		t.Errorf("resolveModel(gemini-flash) = %q", got)
	}
	if got := resolveModel("gemini-2.5-pro", geminiModels); got != "gemini-2.5-pro" {
		t.Errorf("resolveModel pass-through = %q", got)
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(itemsSchema().Definition)

	if s.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT type, got %s", s.Type)
	}
	if len(s.Required) != 1 || s.Required[0] != "items" {
		t.Fatalf("unexpected required: %v", s.Required)
	}
	items := s.Properties["items"]
	if items == nil || items.Type != genai.TypeArray {
		t.Fatalf("expected ARRAY for items, got %+v", items)
	}
	entry := items.Items
	if entry.Type != genai.TypeObject || len(entry.Properties) != 3 {
		t.Fatalf("unexpected entry schema: %+v", entry)
	}
	if kind := entry.Properties["kind"]; len(kind.Enum) != 2 {
		t.Fatalf("expected 2 enum values, got %v", kind.Enum)
	}
}

func TestGeminiSchema_TypedSlicesAndUnknownType(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type":     "object",
		"required": []string{"a"},
		"properties": map[string]any{
			"a": map[string]any{"type": "mystery"},
		},
	})
	if len(s.Required) != 1 {
		t.Fatalf("expected []string required to be kept, got %v", s.Required)
	}
	if s.Properties["a"].Type != genai.TypeString {
		t.Fatalf("expected fallback to STRING, got %s", s.Properties["a"].Type)
	}
}

func TestMapGeminiError(t *testing.T) {
	err := mapGeminiError(fmt.Errorf("call: %w", genai.APIError{Code: http.StatusTooManyRequests}))
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}

	err = mapGeminiError(errors.New("dial tcp: refused"))
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}
