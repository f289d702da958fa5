package adapthttp

import (
	"net/http"
	"time"
)

func (s *Server) handleRecipes(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	switch r.Method {
	case http.MethodGet:
		recipes, err := s.recipes.List(r.Context(), user.ID)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"recipes": recipes})

	case http.MethodPost:
		var body struct {
			Title       string   `json:"title"`
			Description *string  `json:"description"`
			Steps       []string `json:"steps"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid_request", "Requête invalide")
			return
		}

		recipe, err := s.recipes.Create(r.Context(), user.ID, body.Title, body.Description, body.Steps, time.Now())
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}

		s.log.Info("recipe created", "requestId", requestIDFrom(r.Context()), "userId", user.ID, "recipeId", recipe.ID)
		writeJSON(w, http.StatusCreated, map[string]any{"recipe": recipe})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleShoppingLists(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	switch r.Method {
	case http.MethodGet:
		lists, err := s.shopping.List(r.Context(), user.ID)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"lists": lists})

	case http.MethodPost:
		var body struct {
			Title string   `json:"title"`
			Items []string `json:"items"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid_request", "Requête invalide")
			return
		}

		list, err := s.shopping.Create(r.Context(), user.ID, body.Title, body.Items, time.Now())
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}

		s.log.Info("shopping list created", "requestId", requestIDFrom(r.Context()), "userId", user.ID, "shoppingListId", list.ID)
		writeJSON(w, http.StatusCreated, map[string]any{"list": list})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
