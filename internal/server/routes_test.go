package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"starline-salvage/internal/auth"
	"starline-salvage/internal/game"
	"starline-salvage/internal/session"
	"starline-salvage/internal/shared/response"
)

const adminSecret = "0123456789abcdef0123456789abcdef"

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestServer(t *testing.T, secret string, allowSeed bool) *httptest.Server {
	t.Helper()
	store := session.NewMemoryStore(nil, discardLogger)
	svc := game.NewService(store, game.ServiceConfig{Backend: "memory", AllowSeedOverride: allowSeed}, discardLogger)
	srv := httptest.NewServer(NewRoutes(svc, secret, discardLogger).Setup())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any, header http.Header) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return v
}

func TestGameFlowOverHTTP(t *testing.T) {
	srv := newTestServer(t, "", false)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/new-game", nil, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("new game: expected 201, got %d %s", resp.StatusCode, body)
	}
	view := decode[game.View](t, body)
	if view.ID == "" || view.Fuel != 12 || view.Credits != 20 {
		t.Fatalf("unexpected view %+v", view)
	}

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/act", game.ActionRequest{GameID: view.ID, Action: "scan"}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("scan: expected 200, got %d %s", resp.StatusCode, body)
	}
	if acted := decode[game.View](t, body); acted.Turn != 2 {
		t.Fatalf("expected turn 2, got %d", acted.Turn)
	}

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/act", game.ActionRequest{GameID: view.ID, Action: "fight"}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("fight: expected 400, got %d", resp.StatusCode)
	}
	if e := decode[response.ErrorResponse](t, body); e.Reason != game.ReasonNoActiveThreat || e.Message != "No active threat" {
		t.Fatalf("unexpected error body %+v", e)
	}

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/games/"+view.ID, nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get game: expected 200, got %d", resp.StatusCode)
	}
	if got := decode[game.View](t, body); got.Turn != 2 || got.ID != view.ID {
		t.Fatalf("unexpected state %+v", got)
	}
}

func TestActErrorsOverHTTP(t *testing.T) {
	srv := newTestServer(t, "", false)

	tests := []struct {
		name   string
		body   any
		status int
		reason string
	}{
		{"missing game id", game.ActionRequest{Action: "scan"}, http.StatusBadRequest, game.ReasonMissingGameID},
		{"unknown game", game.ActionRequest{GameID: "ghost", Action: "scan"}, http.StatusNotFound, game.ReasonGameNotFound},
		{"bad json", "not an object", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/act", tt.body, nil)
			if resp.StatusCode != tt.status {
				t.Fatalf("expected %d, got %d %s", tt.status, resp.StatusCode, body)
			}
			if e := decode[response.ErrorResponse](t, body); e.Reason != tt.reason {
				t.Fatalf("expected reason %q, got %+v", tt.reason, e)
			}
		})
	}

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/act", nil, nil)
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}

func TestSeedOverrideOverHTTP(t *testing.T) {
	locked := newTestServer(t, "", false)
	resp, body := doJSON(t, http.MethodPost, locked.URL+"/api/new-game", map[string]int64{"seed": 7}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if e := decode[response.ErrorResponse](t, body); e.Reason != game.ReasonSeedOverrideDisabled {
		t.Fatalf("unexpected error %+v", e)
	}

	open := newTestServer(t, "", true)
	resp, _ = doJSON(t, http.MethodPost, open.URL+"/api/new-game", map[string]int64{"seed": 7}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, "", false)
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/health", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	health := decode[map[string]string](t, body)
	if health["status"] != "ok" || health["store"] != "connected" {
		t.Fatalf("unexpected health %v", health)
	}
}

func TestAdminRoutes(t *testing.T) {
	disabled := newTestServer(t, "", false)
	resp, _ := doJSON(t, http.MethodGet, disabled.URL+"/api/admin/sessions", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected admin routes absent, got %d", resp.StatusCode)
	}

	srv := newTestServer(t, adminSecret, false)
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/admin/sessions", nil, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	token, err := auth.GenerateToken(adminSecret, "ops", auth.RoleAdmin, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	bearer := http.Header{"Authorization": {"Bearer " + token}}

	_, body := doJSON(t, http.MethodPost, srv.URL+"/api/new-game", nil, nil)
	view := decode[game.View](t, body)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/admin/sessions", nil, bearer)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d", resp.StatusCode)
	}
	if stats := decode[game.Stats](t, body); stats.Sessions != 1 || stats.Backend != "memory" {
		t.Fatalf("unexpected stats %+v", stats)
	}

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/admin/sessions/"+view.ID, nil, bearer)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/api/games/"+view.ID, nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected deleted game gone, got %d", resp.StatusCode)
	}
}
