// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"coachnutri/internal/app"
	"coachnutri/internal/llm"
	"coachnutri/internal/weight"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/rs/cors"
	"golang.org/x/oauth2"
)

var localhostOrigin = regexp.MustCompile(`(?i)^http://localhost(?::\d+)?$`)

// SSOConfig carries the OIDC provider wiring for the SSO login flow.
type SSOConfig struct {
	Enabled  bool
	Provider *oidc.Provider
	OAuth2   oauth2.Config
}

// Options bundles everything the server needs.
type Options struct {
	Auth      *app.AuthService
	Users     *app.UserService
	Weights   *app.WeightService
	Coach     *app.CoachService
	Hydration *app.HydrationService
	Recipes   *app.RecipeService
	Shopping  *app.ShoppingListService

	SSO         SSOConfig
	CORSOrigins []string

	RateLimitWindow time.Duration
	RateLimitMax    int

	Logger *slog.Logger
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth      *app.AuthService
	users     *app.UserService
	weights   *app.WeightService
	coach     *app.CoachService
	hydration *app.HydrationService
	recipes   *app.RecipeService
	shopping  *app.ShoppingListService

	sso         SSOConfig
	corsOrigins map[string]bool

	limiter *ipLimiter
	log     *slog.Logger
	started time.Time
}

// New creates a Server wired to the given application services.
func New(opts Options) *Server {
	window := opts.RateLimitWindow
	if window <= 0 {
		window = time.Minute
	}
	max := opts.RateLimitMax
	if max <= 0 {
		max = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	origins := make(map[string]bool, len(opts.CORSOrigins))
	for _, origin := range opts.CORSOrigins {
		origins[origin] = true
	}

	return &Server{
		auth:        opts.Auth,
		users:       opts.Users,
		weights:     opts.Weights,
		coach:       opts.Coach,
		hydration:   opts.Hydration,
		recipes:     opts.Recipes,
		shopping:    opts.Shopping,
		sso:         opts.SSO,
		corsOrigins: origins,
		limiter:     newIPLimiter(window, max),
		log:         logger,
		started:     time.Now(),
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/readyz", s.handleReadyz)

	mux.HandleFunc("/auth/register", s.handleRegister)
	mux.HandleFunc("/auth/login", s.handleLogin)
	mux.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	mux.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	mux.HandleFunc("/users/me", s.authMiddleware(s.handleMe))
	mux.HandleFunc("/users", s.authMiddleware(s.handleUsers))

	mux.HandleFunc("/weights", s.authMiddleware(s.handleWeights))
	mux.HandleFunc("/nlp/weights/parse-and-log", s.authMiddleware(s.handleParseAndLog))

	mux.HandleFunc("/coach", s.rateLimitMiddleware(s.authMiddleware(s.handleCoach)))

	mux.HandleFunc("/hydration", s.authMiddleware(s.handleHydration))
	mux.HandleFunc("/hydration/intake", s.authMiddleware(s.handleHydrationIntake))

	mux.HandleFunc("/recipes", s.authMiddleware(s.handleRecipes))
	mux.HandleFunc("/shopping-lists", s.authMiddleware(s.handleShoppingLists))

	corsWrapper := cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return localhostOrigin.MatchString(origin) || s.corsOrigins[origin]
		},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	})

	var handler http.Handler = mux
	handler = corsWrapper.Handler(handler)
	handler = s.loggingMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"uptime": time.Since(s.started).Seconds(),
		"now":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ready": true})
}

// writeServiceError translates service-level failures into the error
// envelope.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *weight.ValidationError
	if errors.As(err, &vErr) {
		writeError(w, r, http.StatusBadRequest, vErr.Code, vErr.Message)
		return
	}

	var reqErr *app.InvalidRequestError
	if errors.As(err, &reqErr) {
		writeError(w, r, http.StatusBadRequest, "invalid_request", reqErr.Message)
		return
	}

	switch {
	case errors.Is(err, app.ErrUserExists):
		writeError(w, r, http.StatusConflict, "user_exists", "Un utilisateur avec cet email existe déjà")
	case errors.Is(err, app.ErrInvalidCredentials):
		writeError(w, r, http.StatusUnauthorized, "invalid_credentials", "Identifiants invalides")
	case errors.Is(err, app.ErrInvalidToken):
		writeError(w, r, http.StatusUnauthorized, "unauthorized", "Token invalide ou expiré")
	case errors.Is(err, app.ErrUserNotFound):
		writeError(w, r, http.StatusNotFound, "not_found", "Utilisateur introuvable")
	case errors.Is(err, llm.ErrTimeout):
		writeError(w, r, http.StatusBadGateway, "openai_timeout", "OpenAI API timeout après 25s")
	default:
		s.log.Error("request failed",
			"requestId", requestIDFrom(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "Une erreur est survenue")
	}
}
