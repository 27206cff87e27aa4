package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/drill/internal/store"
)

// llmEventRecorder captures AppendLLMRequest calls. Other EventRepo methods
// are not used by the logging middleware.
type llmEventRecorder struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *llmEventRecorder) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, data)
	return nil
}

func TestLogging_RecordsEvents(t *testing.T) {
	repo := &llmEventRecorder{}
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`), Usage: newUsage(12, 8)},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithLogging(mock, "mock", repo)
	ctx := WithPurpose(context.Background(), PurposeItemDraft)

	if _, err := p.Generate(ctx, Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error")
	}

	if len(repo.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(repo.events))
	}
	ok, failed := repo.events[0], repo.events[1]
	if !ok.Success || ok.InputTokens != 12 || ok.Purpose != "item-draft" || ok.Provider != "mock" {
		t.Fatalf("unexpected success event: %+v", ok)
	}
	if failed.Success || failed.ErrorMessage == "" {
		t.Fatalf("unexpected failure event: %+v", failed)
	}
}

func TestLogging_AppendFailureDoesNotFailCall(t *testing.T) {
	repo := &llmEventRecorder{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "mock", repo)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLogging_NilRepo(t *testing.T) {
	mock := NewMockProvider()
	if p := WithLogging(mock, "mock", nil); p != Provider(mock) {
		t.Fatalf("expected the inner provider, got %T", p)
	}
}
