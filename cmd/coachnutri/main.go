package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	adapthttp "coachnutri/internal/adapter/http"
	"coachnutri/internal/adapter/postgres"
	"coachnutri/internal/app"
	"coachnutri/internal/config"
	"coachnutri/internal/llm"
	"coachnutri/internal/logger"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Environment})

	if cfg.DatabaseURL == "" {
		log.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("db open failed", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	var coachClient app.CoachClient
	if cfg.OpenAIKey != "" {
		coachClient = llm.NewClient(cfg.OpenAIKey, cfg.OpenAIModel)
	}

	sso := adapthttp.SSOConfig{}
	if cfg.OIDC.Enabled() {
		provider, err := oidc.NewProvider(context.Background(), cfg.OIDC.Issuer)
		if err != nil {
			log.Error("oidc provider setup failed", "error", err)
			os.Exit(1)
		}
		sso = adapthttp.SSOConfig{
			Enabled:  true,
			Provider: provider,
			OAuth2: oauth2.Config{
				ClientID:     cfg.OIDC.ClientID,
				ClientSecret: cfg.OIDC.ClientSecret,
				RedirectURL:  cfg.OIDC.RedirectURL,
				Endpoint:     provider.Endpoint(),
				Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
			},
		}
	}

	server := adapthttp.New(adapthttp.Options{
		Auth:      app.NewAuthService(db, cfg.JWTSecret),
		Users:     app.NewUserService(db),
		Weights:   app.NewWeightService(db),
		Coach:     app.NewCoachService(coachClient),
		Hydration: app.NewHydrationService(db),
		Recipes:   app.NewRecipeService(db),
		Shopping:  app.NewShoppingListService(db),

		SSO:             sso,
		CORSOrigins:     cfg.CORSOrigins,
		RateLimitWindow: cfg.RateLimitWindow,
		RateLimitMax:    cfg.RateLimitMax,
		Logger:          log,
	})

	mode := "mock"
	if cfg.OpenAIKey != "" {
		mode = "openai"
	}
	log.Info("server starting", "addr", cfg.Addr, "mode", mode, "sso", sso.Enabled)
	if err := http.ListenAndServe(cfg.Addr, server.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
