package server

import (
	"log/slog"
	"net/http"

	"starline-salvage/internal/game"
	gameHandlers "starline-salvage/internal/game/handlers"
	"starline-salvage/internal/middleware"
	serverHandlers "starline-salvage/internal/server/handlers"
)

type Routes struct {
	gameService *game.Service
	adminSecret string
	logger      *slog.Logger
}

// NewRoutes wires the HTTP surface. An empty adminSecret leaves the admin
// endpoints unregistered.
func NewRoutes(gameService *game.Service, adminSecret string, logger *slog.Logger) *Routes {
	return &Routes{
		gameService: gameService,
		adminSecret: adminSecret,
		logger:      logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := r.logger.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.gameService)
	gameHandler := gameHandlers.NewGameHandler(r.gameService)

	// Public endpoints
	mux.Handle("/api/health", healthHandler)
	mux.HandleFunc("/api/new-game", gameHandler.NewGame)
	mux.HandleFunc("/api/act", gameHandler.Act)
	mux.HandleFunc("/api/games/{id}", gameHandler.GetGame)

	adminEndpoints := []string{}
	if r.adminSecret != "" {
		adminHandler := gameHandlers.NewAdminHandler(r.gameService)
		mux.Handle("/api/admin/sessions", middleware.RequireAdmin(r.adminSecret, http.HandlerFunc(adminHandler.SessionStats)))
		mux.Handle("/api/admin/sessions/{id}", middleware.RequireAdmin(r.adminSecret, http.HandlerFunc(adminHandler.DeleteSession)))
		adminEndpoints = append(adminEndpoints, "/api/admin/sessions", "/api/admin/sessions/{id}")
	}

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/health", "/api/new-game", "/api/act", "/api/games/{id}"},
		"admin_endpoints", adminEndpoints,
	)

	return mux
}
