package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pongarena/playerhub/internal/api/handler"
	"github.com/pongarena/playerhub/internal/api/middleware"
	"github.com/pongarena/playerhub/internal/services/achievements"
	"github.com/pongarena/playerhub/internal/services/identity"
	"github.com/pongarena/playerhub/internal/services/profile"
	"github.com/pongarena/playerhub/internal/services/relations"
	"github.com/pongarena/playerhub/internal/services/twofactor"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger              *slog.Logger
	IdentityService     *identity.Service
	ProfileService      *profile.Service
	TwoFactorService    *twofactor.Service
	AchievementsService *achievements.Service
	RelationsService    *relations.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.IdentityService, cfg.ProfileService, cfg.AchievementsService)
	twoFactorHandler := handler.NewTwoFactorHandler(cfg.TwoFactorService)
	relationHandler := handler.NewRelationHandler(cfg.RelationsService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.IdentityService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Login callback from the external identity provider (no auth)
	api.HandleFunc("/auth/callback", playerHandler.LoginCallback).Methods(http.MethodPost)

	// Player routes (all require auth)
	players := api.PathPrefix("/players").Subrouter()
	players.Use(authMiddleware)
	players.HandleFunc("", playerHandler.List).Methods(http.MethodGet)
	players.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	players.HandleFunc("/me/username", playerHandler.UpdateUsername).Methods(http.MethodPatch)
	players.HandleFunc("/me/avatar", playerHandler.UpdateAvatar).Methods(http.MethodPatch)
	players.HandleFunc("/me/status", playerHandler.UpdateStatus).Methods(http.MethodPatch)
	players.HandleFunc("/me/level", playerHandler.UpdateLevel).Methods(http.MethodPost)
	players.HandleFunc("/{id}", playerHandler.Get).Methods(http.MethodGet)
	players.HandleFunc("/{id}/achievements", playerHandler.Achievements).Methods(http.MethodGet)

	// Two-factor routes (all require auth)
	twofa := api.PathPrefix("/2fa").Subrouter()
	twofa.Use(authMiddleware)
	twofa.HandleFunc("/enroll", twoFactorHandler.Enroll).Methods(http.MethodPost)
	twofa.HandleFunc("/enroll/qr", twoFactorHandler.EnrollQR).Methods(http.MethodGet)
	twofa.HandleFunc("/verify", twoFactorHandler.Verify).Methods(http.MethodPost)

	// Relation routes (all require auth)
	rels := api.PathPrefix("/relations").Subrouter()
	rels.Use(authMiddleware)
	rels.HandleFunc("", relationHandler.Create).Methods(http.MethodPost)
	rels.HandleFunc("", relationHandler.List).Methods(http.MethodGet)
	rels.HandleFunc("/{id}", relationHandler.Get).Methods(http.MethodGet)
	rels.HandleFunc("/{id}", relationHandler.Delete).Methods(http.MethodDelete)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
