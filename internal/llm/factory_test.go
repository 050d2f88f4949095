package llm

import (
	"context"
	"testing"
	"time"
)

func TestNewUnknownProvider(t *testing.T) {
	if _, err := New(Config{Provider: "ollama", APIKey: "x"}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewDefaultsToOpenAI(t *testing.T) {
	gen, err := New(Config{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := gen.(*OpenAIGenerator); !ok {
		t.Fatalf("default provider = %T, want *OpenAIGenerator", gen)
	}
}

func TestNewWrapsWithLimiter(t *testing.T) {
	gen, err := New(Config{APIKey: "test-key", RequestsPerMinute: 60})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := gen.(*RateLimited); !ok {
		t.Fatalf("paced provider = %T, want *RateLimited", gen)
	}
}

type blockingGenerator struct{ calls int }

func (g *blockingGenerator) Generate(_ context.Context, _ string) (string, error) {
	g.calls++
	return "{}", nil
}

func TestRateLimitedHonorsContextCancel(t *testing.T) {
	inner := &blockingGenerator{}
	// One request per minute with burst 1: the second call must wait and
	// therefore observe the cancelled context.
	limited := NewRateLimited(inner, 1)

	if _, err := limited.Generate(context.Background(), "first"); err != nil {
		t.Fatalf("first call: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := limited.Generate(ctx, "second"); err == nil {
		t.Fatal("expected wait to fail under a cancelled context")
	}
	if inner.calls != 1 {
		t.Fatalf("inner generator called %d times, want 1", inner.calls)
	}
}
