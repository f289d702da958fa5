package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"coachnutri/internal/llm"
)

const maxHistoryTurns = 12

var coachObjectives = map[string]bool{
	"perte de poids": true,
	"maintien":       true,
	"prise de masse": true,
	"mieux manger":   true,
}

// CoachResult is a coaching reply with its generation metadata.
type CoachResult struct {
	Reply      string
	Model      string
	Tokens     *int
	From       string
	DurationMs int64
}

// CoachClient is what CoachService needs from the completion backend.
type CoachClient interface {
	Complete(ctx context.Context, message string, history []llm.Message, profile *llm.Profile) (*llm.Reply, error)
}

// CoachService answers coaching questions, through OpenAI when a client is
// configured and through the deterministic mock otherwise.
type CoachService struct {
	client CoachClient
}

// NewCoachService creates a coach service. A nil client selects the mock.
func NewCoachService(client CoachClient) *CoachService {
	return &CoachService{client: client}
}

func validateProfile(profile *llm.Profile) error {
	if profile == nil {
		return nil
	}
	if profile.Age != nil {
		if *profile.Age < 5 {
			return invalidRequest("Age trop faible")
		}
		if *profile.Age > 100 {
			return invalidRequest("Age trop élevé")
		}
	}
	if profile.HeightCm != nil {
		if *profile.HeightCm < 100 {
			return invalidRequest("Taille trop faible")
		}
		if *profile.HeightCm > 230 {
			return invalidRequest("Taille trop élevée")
		}
	}
	if profile.WeightKg != nil {
		if *profile.WeightKg < 30 {
			return invalidRequest("Poids trop faible")
		}
		if *profile.WeightKg > 300 {
			return invalidRequest("Poids trop élevé")
		}
	}
	if profile.Objective != "" && !coachObjectives[profile.Objective] {
		return invalidRequest("Objectif invalide")
	}
	for _, pref := range profile.Prefs {
		if strings.TrimSpace(pref) == "" {
			return invalidRequest("Préférence vide interdite")
		}
	}
	return nil
}

func validateHistory(history []llm.Message) error {
	for i, item := range history {
		if item.Role != "user" && item.Role != "coach" {
			return invalidRequest(fmt.Sprintf("history[%d]: rôle invalide", i))
		}
		if item.Content == "" {
			return invalidRequest("Le contenu ne peut pas être vide")
		}
	}
	return nil
}

// Ask validates the request, trims the history to the last turns and asks
// the configured backend for a reply.
func (s *CoachService) Ask(ctx context.Context, message string, history []llm.Message, profile *llm.Profile) (*CoachResult, error) {
	if message == "" {
		return nil, invalidRequest("Le message principal ne peut pas être vide")
	}
	if err := validateProfile(profile); err != nil {
		return nil, err
	}
	if err := validateHistory(history); err != nil {
		return nil, err
	}

	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}

	started := time.Now()
	var reply *llm.Reply
	var err error
	if s.client != nil {
		reply, err = s.client.Complete(ctx, message, history, profile)
		if err != nil {
			return nil, err
		}
	} else {
		reply = llm.MockReply(message, profile)
	}

	return &CoachResult{
		Reply:      reply.Reply,
		Model:      reply.Model,
		Tokens:     reply.Tokens,
		From:       reply.From,
		DurationMs: time.Since(started).Milliseconds(),
	}, nil
}
