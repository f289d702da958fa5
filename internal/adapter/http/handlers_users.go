package adapthttp

import "net/http"

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	user := userFrom(r.Context())
	current, err := s.users.Get(r.Context(), user.ID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": sanitizeUser(current)})
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		users, err := s.users.List(r.Context())
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		views := make([]map[string]any, len(users))
		for i, u := range users {
			views[i] = map[string]any{
				"id":        u.ID,
				"email":     u.Email,
				"name":      u.Name,
				"createdAt": u.CreatedAt,
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"users": views})

	case http.MethodPost:
		writeError(w, r, http.StatusNotImplemented, "not_implemented", "Utilise /auth/register pour créer un utilisateur")

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
