package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mfreeman/rosterhub/internal/api/handler"
	"github.com/mfreeman/rosterhub/internal/api/middleware"
	"github.com/mfreeman/rosterhub/internal/services/auth"
	"github.com/mfreeman/rosterhub/internal/services/league"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	AuthService   *auth.Service
	LeagueService *league.Service
}

// NewRouter creates a new API router with all routes configured.
// Reads require authentication; mutations additionally require a
// mutating role (admin or coach).
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	teamHandler := handler.NewTeamHandler(cfg.LeagueService)
	playerHandler := handler.NewPlayerHandler(cfg.LeagueService)
	rosterHandler := handler.NewRosterHandler(cfg.LeagueService)
	gameHandler := handler.NewGameHandler(cfg.LeagueService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no session required to register or log in)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Protected auth routes
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(authMiddleware)
	authProtected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", authHandler.Me).Methods(http.MethodGet)
	authProtected.HandleFunc("/profile", authHandler.UpdateProfile).Methods(http.MethodPut)
	authProtected.HandleFunc("/users", authHandler.Users).Methods(http.MethodGet)

	// Read routes (any authenticated role)
	reads := api.NewRoute().Subrouter()
	reads.Use(authMiddleware)
	reads.HandleFunc("/teams", teamHandler.List).Methods(http.MethodGet)
	reads.HandleFunc("/teams/{id}", teamHandler.Get).Methods(http.MethodGet)
	reads.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	reads.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	reads.HandleFunc("/rosters", rosterHandler.List).Methods(http.MethodGet)
	reads.HandleFunc("/rosters/{id}", rosterHandler.Get).Methods(http.MethodGet)
	reads.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	reads.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)

	// Mutation routes (admin or coach only)
	mutations := api.NewRoute().Subrouter()
	mutations.Use(authMiddleware)
	mutations.Use(middleware.RequireMutator)
	mutations.HandleFunc("/teams", teamHandler.Create).Methods(http.MethodPost)
	mutations.HandleFunc("/teams/{id}", teamHandler.Update).Methods(http.MethodPut)
	mutations.HandleFunc("/teams/{id}", teamHandler.Delete).Methods(http.MethodDelete)
	mutations.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	mutations.HandleFunc("/players/{id}", playerHandler.Update).Methods(http.MethodPut)
	mutations.HandleFunc("/players/{id}", playerHandler.Delete).Methods(http.MethodDelete)
	mutations.HandleFunc("/players/{id}/statistics", playerHandler.UpdateStatistics).Methods(http.MethodPut)
	mutations.HandleFunc("/rosters", rosterHandler.Create).Methods(http.MethodPost)
	mutations.HandleFunc("/rosters/{id}", rosterHandler.Update).Methods(http.MethodPut)
	mutations.HandleFunc("/rosters/{id}", rosterHandler.Delete).Methods(http.MethodDelete)
	mutations.HandleFunc("/rosters/{id}/players", rosterHandler.AddPlayer).Methods(http.MethodPut)
	mutations.HandleFunc("/rosters/{id}/players/{playerID}", rosterHandler.RemovePlayer).Methods(http.MethodDelete)
	mutations.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	mutations.HandleFunc("/games/{id}", gameHandler.Update).Methods(http.MethodPut)
	mutations.HandleFunc("/games/{id}", gameHandler.Delete).Methods(http.MethodDelete)
	mutations.HandleFunc("/games/{id}/participation", gameHandler.UpdateParticipation).Methods(http.MethodPut)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
