package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"starline-salvage/internal/shared/response"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Store     string `json:"store"`
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler is a liveness probe. It always answers ok; the store field
// only reports whether the session store responded.
type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	storeStatus := "connected"
	if err := h.store.Ping(ctx); err != nil {
		storeStatus = "disconnected"
		logger.Warn("Session store ping failed", "error", err)
	}

	resp := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().Format(time.RFC3339),
		Store:     storeStatus,
	}

	response.Success(w, http.StatusOK, resp)
}
