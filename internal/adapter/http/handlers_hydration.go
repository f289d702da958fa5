package adapthttp

import (
	"net/http"
	"strconv"
	"time"
)

func (s *Server) handleHydration(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleHydrationGet(w, r)
	case http.MethodPatch:
		s.handleHydrationGoal(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleHydrationGet(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	snap, err := s.hydration.Current(r.Context(), user.ID, time.Now())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hydration": snap})
}

func (s *Server) handleHydrationIntake(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFrom(r.Context())

	var body struct {
		Amount *int `json:"amount"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "La quantité doit être un nombre entier (ml)")
		return
	}
	if body.Amount == nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "Amount is required")
		return
	}

	now := time.Now()
	result, err := s.hydration.AddIntake(r.Context(), user.ID, *body.Amount, now)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	if result.Blocked {
		retrySeconds := (result.RetryAfterMs + 999) / 1000
		if retrySeconds < 1 {
			retrySeconds = 1
		}
		w.Header().Set("Retry-After", strconv.FormatInt(retrySeconds, 10))
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"error": map[string]any{
				"code":            "cooldown_active",
				"message":         result.Message,
				"retryAfterMs":    result.RetryAfterMs,
				"nextAvailableAt": result.NextAvailableAt.UTC().Format(time.RFC3339),
			},
			"hydration": result.Snapshot,
			"requestId": requestIDFrom(r.Context()),
		})
		return
	}

	s.log.Info("hydration intake recorded", "requestId", requestIDFrom(r.Context()), "userId", user.ID, "amount", *body.Amount)
	writeJSON(w, http.StatusCreated, map[string]any{
		"hydration": result.Snapshot,
		"message":   result.Message,
	})
}

func (s *Server) handleHydrationGoal(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	var body struct {
		DailyGoalMl *int `json:"dailyGoalMl"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "L'objectif doit être un entier (ml)")
		return
	}
	if body.DailyGoalMl == nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "L'objectif est requis")
		return
	}

	snap, err := s.hydration.UpdateGoal(r.Context(), user.ID, *body.DailyGoalMl, time.Now())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.log.Info("hydration goal updated", "requestId", requestIDFrom(r.Context()), "userId", user.ID, "dailyGoalMl", *body.DailyGoalMl)
	writeJSON(w, http.StatusOK, map[string]any{
		"hydration": snap,
		"message":   "Objectif hydratation mis à jour.",
	})
}
