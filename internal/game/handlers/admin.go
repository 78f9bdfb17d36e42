package handlers

import (
	"log/slog"
	"net/http"

	"starline-salvage/internal/game"
	"starline-salvage/internal/shared/errors"
	"starline-salvage/internal/shared/response"
)

type AdminHandler struct {
	service *game.Service
}

func NewAdminHandler(service *game.Service) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) SessionStats(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "admin_session_stats")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, stats)
}

func (h *AdminHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "admin_delete_session")

	if r.Method != http.MethodDelete {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	id := r.PathValue("id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		response.Error(w, r, logger.With("session_id", id), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
