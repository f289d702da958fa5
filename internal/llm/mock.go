package llm

import (
	"fmt"
	"strings"
)

type mockContent struct {
	diagnostic string
	actions    [3]string
	tip        string
}

func buildMockContent(message string, profile *Profile) mockContent {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "/repas"):
		return mockContent{
			diagnostic: "Plan repas demandé : on mise sur un apport équilibré dans la journée.",
			actions: [3]string{
				"Petit-déjeuner : yaourt nature + flocons d'avoine + fruit frais",
				"Déjeuner : bol de quinoa, légumes rôtis, légumineuses et filet de citron",
				"Dîner : soupe de légumes + tartine de pain complet avec protéine maigre",
			},
			tip: "Prépare les légumes à l'avance pour gagner du temps sur la semaine.",
		}
	case strings.Contains(lower, "/courses"):
		return mockContent{
			diagnostic: "Liste de courses simple pour rester aligné(e) avec ton objectif.",
			actions: [3]string{
				"Fruits & légumes de saison (au moins 5 variétés)",
				"Protéines maigres (poisson, tofu, légumineuses) + céréales complètes",
				"Oléagineux nature et huiles riches en oméga-3",
			},
			tip: "Fais les courses après avoir mangé pour éviter les achats impulsifs.",
		}
	case strings.Contains(lower, "/astuce"):
		return mockContent{
			diagnostic: "Tu veux une astuce rapide pour mieux t'organiser.",
			actions: [3]string{
				"Fixe un créneau meal prep court 2 fois par semaine",
				"Garde une base de légumes crus prêts à consommer",
				"Prépare une gourde d'eau aromatisée dès le matin",
			},
			tip: "Utilise un rappel sur ton téléphone pour boire toutes les 2 heures.",
		}
	}

	objective := "équilibre alimentaire"
	prefs := ""
	if profile != nil {
		if profile.Objective != "" {
			objective = profile.Objective
		}
		if len(profile.Prefs) > 0 {
			prefs = fmt.Sprintf(" en respectant tes préférences (%s)", strings.Join(profile.Prefs, ", "))
		}
	}
	return mockContent{
		diagnostic: fmt.Sprintf("On vise %s%s : garde un rythme régulier et hydrate-toi bien.", objective, prefs),
		actions: [3]string{
			"Structure tes repas autour de légumes, protéines maigres et féculents complets",
			"Bouge au moins 30 minutes aujourd'hui pour soutenir ton métabolisme",
			"Planifie ton prochain repas en avance pour éviter les grignotages",
		},
		tip: "Ajoute une portion de légumes ou fruits supplémentaires dans ton prochain repas.",
	}
}

// MockReply produces a deterministic three-block coaching answer. It is used
// when no OpenAI key is configured so the whole flow stays testable offline.
func MockReply(message string, profile *Profile) *Reply {
	content := buildMockContent(message, profile)
	reply := strings.Join([]string{
		"⚡ Diagnostic : " + content.diagnostic,
		fmt.Sprintf("\n✅ 3 actions :\n1. %s\n2. %s\n3. %s", content.actions[0], content.actions[1], content.actions[2]),
		"\n💡 Tip : " + content.tip,
	}, "\n")

	return &Reply{Reply: reply, Model: "mock-coachnutri", From: "mock"}
}
