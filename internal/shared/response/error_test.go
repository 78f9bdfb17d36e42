package response

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"starline-salvage/internal/shared/errors"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		reason string
		msg    string
	}{
		{"validation", errors.ValidationReason("out_of_fuel", "Out of fuel"), http.StatusBadRequest, "out_of_fuel", "Out of fuel"},
		{"not found", errors.NotFound("game_not_found", "Game not found"), http.StatusNotFound, "game_not_found", "Game not found"},
		{"unauthorized", errors.Unauthorized("authentication required"), http.StatusUnauthorized, "", "authentication required"},
		{"forbidden", errors.Forbidden("admin access required"), http.StatusForbidden, "", "admin access required"},
		{"rate limited", errors.RateLimited("slow down"), http.StatusTooManyRequests, "", "slow down"},
		{"method", errors.MethodNotAllowed(http.MethodPut), http.StatusMethodNotAllowed, "", "method PUT not allowed"},
		{"internal", errors.WrapInternal("store failed", fmt.Errorf("dial tcp: refused")), http.StatusInternalServerError, "", "internal server error"},
		{"plain error", fmt.Errorf("surprise"), http.StatusInternalServerError, "", "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, httptest.NewRequest(http.MethodGet, "/api/act", nil), discardLogger, tt.err)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Reason != tt.reason || body.Message != tt.msg || body.Code != tt.status {
				t.Fatalf("unexpected body %+v", body)
			}
		})
	}
}

func TestSuccessWritesJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusCreated, map[string]int{"turn": 1})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if rec.Body.String() != "{\"turn\":1}\n" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}
