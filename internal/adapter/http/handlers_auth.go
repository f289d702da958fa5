package adapthttp

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"coachnutri/internal/domain"

	"github.com/coreos/go-oidc/v3/oidc"
)

// userView is the sanitized account representation returned to clients.
type userView struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	Name        *string `json:"name"`
	DisplayName string  `json:"displayName"`
	AvatarURL   *string `json:"avatarUrl"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func sanitizeUser(u *domain.User) userView {
	return userView{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   u.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		UpdatedAt:   u.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Email    string  `json:"email"`
		Password string  `json:"password"`
		Name     *string `json:"name"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "Requête invalide")
		return
	}

	user, token, err := s.auth.Register(r.Context(), body.Email, body.Password, body.Name)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.log.Info("user registered", "requestId", requestIDFrom(r.Context()), "userId", user.ID, "email", user.Email)
	writeJSON(w, http.StatusCreated, map[string]any{
		"token": token,
		"user":  sanitizeUser(user),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "Requête invalide")
		return
	}

	user, token, err := s.auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  sanitizeUser(user),
	})
}

func (s *Server) handleSSOLogin(w http.ResponseWriter, r *http.Request) {
	if !s.sso.Enabled {
		writeError(w, r, http.StatusNotFound, "not_found", "SSO désactivé")
		return
	}

	state := generateState()
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode, // Lax required for cross-site redirect returns
		MaxAge:   300,
	})
	http.Redirect(w, r, s.sso.OAuth2.AuthCodeURL(state), http.StatusFound)
}

func (s *Server) handleSSOCallback(w http.ResponseWriter, r *http.Request) {
	if !s.sso.Enabled {
		writeError(w, r, http.StatusNotFound, "not_found", "SSO désactivé")
		return
	}

	state, err := r.Cookie("oauth_state")
	if err != nil || r.URL.Query().Get("state") != state.Value {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "Etat OAuth invalide")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: "oauth_state", MaxAge: -1, Path: "/"})

	token, err := s.sso.OAuth2.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		writeError(w, r, http.StatusBadGateway, "sso_error", "Echange du code OAuth impossible")
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		writeError(w, r, http.StatusBadGateway, "sso_error", "Jeton d'identité absent")
		return
	}

	idToken, err := s.sso.Provider.Verifier(&oidc.Config{ClientID: s.sso.OAuth2.ClientID}).Verify(r.Context(), rawIDToken)
	if err != nil {
		writeError(w, r, http.StatusBadGateway, "sso_error", "Jeton d'identité invalide")
		return
	}

	var claims struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
		Sub     string `json:"sub"`
	}
	if err := idToken.Claims(&claims); err != nil {
		writeError(w, r, http.StatusBadGateway, "sso_error", "Lecture des claims impossible")
		return
	}

	email := claims.Email
	if email == "" {
		email = claims.Sub
	}

	user, bearer, err := s.auth.LoginWithSSO(r.Context(), email, claims.Name, claims.Picture)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.log.Info("sso login", "requestId", requestIDFrom(r.Context()), "userId", user.ID)
	writeJSON(w, http.StatusOK, map[string]any{
		"token": bearer,
		"user":  sanitizeUser(user),
	})
}

func generateState() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
