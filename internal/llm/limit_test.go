package llm

import (
	"context"
	"encoding/json"
	"testing"
)

func TestWithRateLimit_DisabledReturnsInner(t *testing.T) {
	mock := NewMockProvider()
	if p := WithRateLimit(mock, 0); p != Provider(mock) {
		t.Fatalf("expected the inner provider, got %T", p)
	}
}

func TestWithRateLimit_FirstCallPasses(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithRateLimit(mock, 60)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}

func TestWithRateLimit_WaitHonorsContext(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`)},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	// One request per minute: the second call cannot get a token in time.
	p := WithRateLimit(mock, 1)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected the limiter to give up on a cancelled context")
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}
