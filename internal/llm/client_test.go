package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBuildSystemPromptWithoutProfile(t *testing.T) {
	prompt := BuildSystemPrompt(nil)
	if !strings.HasPrefix(prompt, "Tu es CoachNutri") {
		t.Fatalf("unexpected prompt start: %q", prompt)
	}
	if !strings.HasSuffix(prompt, "Profil client: non renseigné.") {
		t.Fatalf("expected empty-profile suffix, got %q", prompt)
	}
}

func TestBuildSystemPromptWithProfile(t *testing.T) {
	age := 34
	weight := 81.5
	prompt := BuildSystemPrompt(&Profile{
		Age:       &age,
		WeightKg:  &weight,
		Objective: "perte de poids",
		Prefs:     []string{"végétarien", "sans lactose"},
	})

	for _, want := range []string{
		"Objectif: perte de poids",
		"Age: 34 ans",
		"Poids: 81.5 kg",
		"Préférences: végétarien, sans lactose",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "Taille:") {
		t.Error("prompt should not mention height when unset")
	}
}

func TestNormalizeHistory(t *testing.T) {
	history := []Message{
		{Role: "coach", Content: "  Bonjour !  "},
		{Role: "user", Content: "Salut"},
		{Role: "system", Content: "contexte"},
		{Role: "bot", Content: "autre"},
		{Role: "user", Content: "   "},
	}

	got := NormalizeHistory(history)
	if len(got) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(got))
	}
	if got[0].Role != "assistant" || got[0].Content != "Bonjour !" {
		t.Errorf("coach turn not normalized: %+v", got[0])
	}
	if got[2].Role != "system" {
		t.Errorf("system role should pass through, got %q", got[2].Role)
	}
	if got[3].Role != "user" {
		t.Errorf("unknown role should map to user, got %q", got[3].Role)
	}
}

func TestMockReplyDefault(t *testing.T) {
	reply := MockReply("Comment mieux manger ?", nil)
	if reply.From != "mock" || reply.Model != "mock-coachnutri" {
		t.Fatalf("unexpected meta: %+v", reply)
	}
	if reply.Tokens != nil {
		t.Error("mock reply should not report tokens")
	}
	if !strings.Contains(reply.Reply, "équilibre alimentaire") {
		t.Errorf("default reply should fall back to the default objective: %q", reply.Reply)
	}
	for _, block := range []string{"⚡ Diagnostic :", "✅ 3 actions :", "💡 Tip :"} {
		if !strings.Contains(reply.Reply, block) {
			t.Errorf("reply missing block %q", block)
		}
	}
}

func TestMockReplyCommands(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"/repas pour la semaine", "Plan repas demandé"},
		{"donne-moi /courses", "Liste de courses simple"},
		{"/astuce", "astuce rapide"},
	}
	for _, tc := range cases {
		reply := MockReply(tc.message, nil)
		if !strings.Contains(reply.Reply, tc.want) {
			t.Errorf("MockReply(%q) missing %q: %q", tc.message, tc.want, reply.Reply)
		}
	}
}

func TestMockReplyUsesProfile(t *testing.T) {
	reply := MockReply("bonjour", &Profile{Objective: "prise de masse", Prefs: []string{"halal"}})
	if !strings.Contains(reply.Reply, "prise de masse") {
		t.Errorf("reply should name the objective: %q", reply.Reply)
	}
	if !strings.Contains(reply.Reply, "(halal)") {
		t.Errorf("reply should name the preferences: %q", reply.Reply)
	}
}

func TestCompleteSendsPromptAndParsesResponse(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"model": "gpt-4o-mini-2024",
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  Bonne question !  "}},
			},
			"usage": map[string]int{"total_tokens": 42},
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", "gpt-4o-mini").WithBaseURL(srv.URL)
	history := []Message{{Role: "coach", Content: "Bienvenue"}}
	reply, err := client.Complete(context.Background(), "Que manger ce soir ?", history, nil)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if len(captured.Messages) != 3 {
		t.Fatalf("expected system+history+user, got %d messages", len(captured.Messages))
	}
	if captured.Messages[0].Role != "system" {
		t.Errorf("first message should be system, got %q", captured.Messages[0].Role)
	}
	if captured.Messages[1].Role != "assistant" {
		t.Errorf("history coach turn should become assistant, got %q", captured.Messages[1].Role)
	}
	if captured.Messages[2].Content != "Que manger ce soir ?" {
		t.Errorf("last message should be the user message, got %q", captured.Messages[2].Content)
	}

	if reply.Reply != "Bonne question !" {
		t.Errorf("reply should be trimmed, got %q", reply.Reply)
	}
	if reply.Model != "gpt-4o-mini-2024" || reply.From != "openai" {
		t.Errorf("unexpected meta: %+v", reply)
	}
	if reply.Tokens == nil || *reply.Tokens != 42 {
		t.Errorf("expected 42 tokens, got %v", reply.Tokens)
	}
}

func TestCompleteUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient("test-key", "gpt-4o-mini").WithBaseURL(srv.URL)
	if _, err := client.Complete(context.Background(), "bonjour", nil, nil); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestCompleteRequiresKey(t *testing.T) {
	client := NewClient("", "gpt-4o-mini")
	if _, err := client.Complete(context.Background(), "bonjour", nil, nil); err == nil {
		t.Fatal("expected error without api key")
	}
}
