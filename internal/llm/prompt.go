package llm

import (
	"fmt"
	"strings"
)

var systemPromptLines = []string{
	"Tu es CoachNutri, coach nutrition bienveillant francophone.",
	"Appuie-toi sur les repères OMS/ANSES et vulgarise sans culpabiliser.",
	"Réponds en 3 blocs distincts :",
	"⚡ Diagnostic : synthèse courte en une phrase.",
	"✅ 3 actions : liste numérotée de trois actions concrètes.",
	"💡 Tip : une astuce bonus pratique.",
}

func formatProfileContext(profile *Profile) string {
	var details []string
	if profile != nil {
		if profile.Objective != "" {
			details = append(details, "Objectif: "+profile.Objective)
		}
		if profile.Age != nil {
			details = append(details, fmt.Sprintf("Age: %d ans", *profile.Age))
		}
		if profile.HeightCm != nil {
			details = append(details, fmt.Sprintf("Taille: %g cm", *profile.HeightCm))
		}
		if profile.WeightKg != nil {
			details = append(details, fmt.Sprintf("Poids: %g kg", *profile.WeightKg))
		}
		if len(profile.Prefs) > 0 {
			details = append(details, "Préférences: "+strings.Join(profile.Prefs, ", "))
		}
	}
	if len(details) == 0 {
		return "Profil client: non renseigné."
	}
	return "Profil client: " + strings.Join(details, " | ") + "."
}

// BuildSystemPrompt assembles the coaching system prompt with the client
// profile appended as the last line.
func BuildSystemPrompt(profile *Profile) string {
	lines := make([]string, 0, len(systemPromptLines)+1)
	lines = append(lines, systemPromptLines...)
	lines = append(lines, formatProfileContext(profile))
	return strings.Join(lines, "\n")
}

// NormalizeHistory maps client-side roles to API roles and drops turns with
// empty content.
func NormalizeHistory(history []Message) []Message {
	out := make([]Message, 0, len(history))
	for _, item := range history {
		content := strings.TrimSpace(item.Content)
		if content == "" {
			continue
		}
		role := item.Role
		switch role {
		case "coach":
			role = "assistant"
		case "system", "assistant", "user":
		default:
			role = "user"
		}
		out = append(out, Message{Role: role, Content: content})
	}
	return out
}

func buildMessages(message string, history []Message, profile *Profile) []Message {
	normalized := NormalizeHistory(history)
	messages := make([]Message, 0, len(normalized)+2)
	messages = append(messages, Message{Role: "system", Content: BuildSystemPrompt(profile)})
	messages = append(messages, normalized...)
	messages = append(messages, Message{Role: "user", Content: message})
	return messages
}
