package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"

	"starline-salvage/internal/game"
	"starline-salvage/internal/shared/errors"
	"starline-salvage/internal/shared/response"
)

const maxBodyBytes = 1 << 16

type GameHandler struct {
	service *game.Service
}

func NewGameHandler(service *game.Service) *GameHandler {
	return &GameHandler{service: service}
}

func (h *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "new_game")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var opts game.NewGameOptions
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil && !stderrors.Is(err, io.EOF) {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	view, err := h.service.NewGame(ctx, opts)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, view)
}

func (h *GameHandler) Act(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "act")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var req game.ActionRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	view, err := h.service.Act(ctx, req)
	if err != nil {
		response.Error(w, r, logger.With("session_id", req.GameID, "action", req.Action), err)
		return
	}

	response.Success(w, http.StatusOK, view)
}

func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "get_game")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	gameID := r.PathValue("id")
	if gameID == "" {
		response.Error(w, r, logger, errors.ValidationReason(game.ReasonMissingGameID, "game ID is required"))
		return
	}

	view, err := h.service.State(ctx, gameID)
	if err != nil {
		response.Error(w, r, logger.With("session_id", gameID), err)
		return
	}

	response.Success(w, http.StatusOK, view)
}
