package adapthttp

import (
	"net/http"
	"time"

	"coachnutri/internal/domain"
)

// entryView is the wire form of a weight entry.
type entryView struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	WeightKg  float64 `json:"weightKg"`
	Note      *string `json:"note"`
	Source    string  `json:"source"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

func toEntryView(e *domain.WeightEntry) entryView {
	return entryView{
		ID:        e.ID,
		Date:      e.Date.UTC().Format(time.RFC3339),
		WeightKg:  e.WeightKg,
		Note:      e.Note,
		Source:    e.Source,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) handleWeights(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleWeightsList(w, r)
	case http.MethodPost:
		s.handleWeightsCreate(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleWeightsList(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	query := r.URL.Query()

	list, cached, err := s.weights.List(r.Context(), user.ID, query.Get("range"), query.Get("aggregate"), time.Now())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	payload := map[string]any{
		"range":     list.Range,
		"aggregate": list.Aggregate,
		"entries":   list.Entries,
		"stats":     list.Stats,
		"meta":      list.Meta,
	}
	if cached {
		payload["cached"] = true
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleWeightsCreate(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	var body struct {
		Weight   any     `json:"weight"`
		WeightKg any     `json:"weightKg"`
		Value    any     `json:"value"`
		Date     any     `json:"date"`
		Note     *string `json:"note"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "Requête invalide")
		return
	}

	weightInput := body.Weight
	if weightInput == nil {
		weightInput = body.WeightKg
	}
	if weightInput == nil {
		weightInput = body.Value
	}

	entry, err := s.weights.Create(r.Context(), user.ID, weightInput, body.Date, body.Note, time.Now())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.log.Info("weight entry created",
		"requestId", requestIDFrom(r.Context()),
		"userId", user.ID,
		"entryId", entry.ID,
		"source", entry.Source,
	)
	writeJSON(w, http.StatusCreated, map[string]any{
		"entry":   toEntryView(entry),
		"message": "Mesure enregistrée avec succès.",
	})
}

func (s *Server) handleParseAndLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFrom(r.Context())

	var body struct {
		Text    string  `json:"text"`
		Message string  `json:"message"`
		Note    *string `json:"note"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "Requête invalide")
		return
	}

	text := body.Text
	if text == "" {
		text = body.Message
	}

	entry, confirmation, err := s.weights.CreateFromText(r.Context(), user.ID, text, body.Note, time.Now())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.log.Info("weight entry created via nlp",
		"requestId", requestIDFrom(r.Context()),
		"userId", user.ID,
		"entryId", entry.ID,
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": confirmation,
		"entry":   toEntryView(entry),
	})
}
