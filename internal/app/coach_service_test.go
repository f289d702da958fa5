package app

import (
	"context"
	"strings"
	"testing"

	"coachnutri/internal/llm"
)

type mockCoachClient struct {
	completeFn func(ctx context.Context, message string, history []llm.Message, profile *llm.Profile) (*llm.Reply, error)
}

func (m *mockCoachClient) Complete(ctx context.Context, message string, history []llm.Message, profile *llm.Profile) (*llm.Reply, error) {
	return m.completeFn(ctx, message, history, profile)
}

func TestAskFallsBackToMock(t *testing.T) {
	svc := NewCoachService(nil)

	result, err := svc.Ask(context.Background(), "Comment mieux manger ?", nil, nil)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if result.From != "mock" || result.Model != "mock-coachnutri" {
		t.Errorf("unexpected meta %+v", result)
	}
	if result.Tokens != nil {
		t.Error("mock should not report tokens")
	}
	if !strings.Contains(result.Reply, "⚡ Diagnostic") {
		t.Errorf("reply missing diagnostic block: %q", result.Reply)
	}
}

func TestAskUsesClientWhenConfigured(t *testing.T) {
	tokens := 17
	client := &mockCoachClient{
		completeFn: func(ctx context.Context, message string, history []llm.Message, profile *llm.Profile) (*llm.Reply, error) {
			return &llm.Reply{Reply: "Mange des légumes.", Model: "gpt-4o-mini", Tokens: &tokens, From: "openai"}, nil
		},
	}
	svc := NewCoachService(client)

	result, err := svc.Ask(context.Background(), "Un conseil ?", nil, nil)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if result.From != "openai" || result.Reply != "Mange des légumes." {
		t.Errorf("unexpected result %+v", result)
	}
	if result.Tokens == nil || *result.Tokens != 17 {
		t.Errorf("tokens should pass through, got %v", result.Tokens)
	}
}

func TestAskTrimsHistoryToLastTwelve(t *testing.T) {
	var gotHistory []llm.Message
	client := &mockCoachClient{
		completeFn: func(ctx context.Context, message string, history []llm.Message, profile *llm.Profile) (*llm.Reply, error) {
			gotHistory = history
			return &llm.Reply{Reply: "ok", Model: "m", From: "openai"}, nil
		},
	}
	svc := NewCoachService(client)

	history := make([]llm.Message, 20)
	for i := range history {
		role := "user"
		if i%2 == 1 {
			role = "coach"
		}
		history[i] = llm.Message{Role: role, Content: strings.Repeat("x", i+1)}
	}

	if _, err := svc.Ask(context.Background(), "question", history, nil); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if len(gotHistory) != 12 {
		t.Fatalf("history should be trimmed to 12, got %d", len(gotHistory))
	}
	if gotHistory[11].Content != history[19].Content {
		t.Error("trim should keep the most recent turns")
	}
}

func TestAskValidation(t *testing.T) {
	svc := NewCoachService(nil)
	ctx := context.Background()

	if _, err := svc.Ask(ctx, "", nil, nil); err == nil {
		t.Error("empty message should be rejected")
	}

	badAge := 3
	if _, err := svc.Ask(ctx, "salut", nil, &llm.Profile{Age: &badAge}); err == nil {
		t.Error("age under 5 should be rejected")
	}

	badWeight := 400.0
	if _, err := svc.Ask(ctx, "salut", nil, &llm.Profile{WeightKg: &badWeight}); err == nil {
		t.Error("weight over 300 should be rejected")
	}

	if _, err := svc.Ask(ctx, "salut", nil, &llm.Profile{Objective: "devenir astronaute"}); err == nil {
		t.Error("unknown objective should be rejected")
	}

	if _, err := svc.Ask(ctx, "salut", nil, &llm.Profile{Prefs: []string{"  "}}); err == nil {
		t.Error("blank preference should be rejected")
	}

	if _, err := svc.Ask(ctx, "salut", []llm.Message{{Role: "system", Content: "x"}}, nil); err == nil {
		t.Error("history role outside user/coach should be rejected")
	}

	if _, err := svc.Ask(ctx, "salut", []llm.Message{{Role: "user", Content: ""}}, nil); err == nil {
		t.Error("empty history content should be rejected")
	}
}

func TestAskValidProfilePasses(t *testing.T) {
	svc := NewCoachService(nil)
	age := 34
	height := 178.0
	kg := 81.5
	profile := &llm.Profile{
		Age: &age, HeightCm: &height, WeightKg: &kg,
		Objective: "perte de poids",
		Prefs:     []string{"végétarien"},
	}

	if _, err := svc.Ask(context.Background(), "salut", nil, profile); err != nil {
		t.Fatalf("valid profile rejected: %v", err)
	}
}
