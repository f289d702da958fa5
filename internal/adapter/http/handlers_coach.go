package adapthttp

import (
	"errors"
	"net/http"

	"coachnutri/internal/app"
	"coachnutri/internal/llm"
)

func (s *Server) handleCoach(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Message string        `json:"message"`
		History []llm.Message `json:"history"`
		Profile *llm.Profile  `json:"profile"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "Requête invalide")
		return
	}

	result, err := s.coach.Ask(r.Context(), body.Message, body.History, body.Profile)
	if err != nil {
		var reqErr *app.InvalidRequestError
		switch {
		case errors.As(err, &reqErr):
			writeError(w, r, http.StatusBadRequest, "invalid_request", reqErr.Message)
		case errors.Is(err, llm.ErrTimeout):
			writeError(w, r, http.StatusBadGateway, "openai_timeout", "OpenAI API timeout après 25s")
		default:
			s.log.Error("coach request failed", "requestId", requestIDFrom(r.Context()), "error", err)
			writeError(w, r, http.StatusBadGateway, "llm_error", "Le coach est momentanément indisponible")
		}
		return
	}

	s.log.Info("coach reply generated",
		"requestId", requestIDFrom(r.Context()),
		"source", result.From,
		"durationMs", result.DurationMs,
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"reply": result.Reply,
		"meta": map[string]any{
			"model":       result.Model,
			"tokens":      result.Tokens,
			"duration_ms": result.DurationMs,
			"from":        result.From,
		},
		"requestId": requestIDFrom(r.Context()),
	})
}
