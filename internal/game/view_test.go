package game

import (
	"encoding/json"
	"strings"
	"testing"

	"starline-salvage/internal/session"
	"starline-salvage/internal/world"
)

func TestProjectDockedAtStation(t *testing.T) {
	s := newTestSession(world.Layout{Stations: []world.Station{{ID: "st", Name: "Kepler Bazaar", X: 2, Y: 3}}})
	s.X, s.Y = 2, 3
	s.PendingEvent = &session.PendingEvent{Type: session.EventPirateAmbush, Threat: 2}

	v := Project(s, nil)
	if v.Station == nil || v.Station.Name != "Kepler Bazaar" || len(v.Station.Offers) != 2 {
		t.Fatalf("expected station view, got %+v", v.Station)
	}
	if v.PendingEvent == nil || v.PendingEvent.Threat != 2 {
		t.Fatalf("expected pending event, got %+v", v.PendingEvent)
	}

	v.PendingEvent.Threat = 9
	if s.PendingEvent.Threat != 2 {
		t.Fatal("view shares the pending event with the session")
	}
}

func TestProjectTrimsLog(t *testing.T) {
	s := newTestSession(world.Layout{})
	for i := 0; i < 20; i++ {
		s.Record("tick")
	}
	if got := len(Project(s, nil).Log); got != RecentLogEntries {
		t.Fatalf("expected %d log lines, got %d", RecentLogEntries, got)
	}
}

func TestViewJSONShape(t *testing.T) {
	data, err := json.Marshal(Project(newTestSession(world.Layout{}), nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)
	for _, want := range []string{`"nearby":[]`, `"station":null`, `"pendingEvent":null`, `"mapSize":5`, `"goalCredits":120`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in %s", want, body)
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := map[string]Direction{
		"n": {0, -1},
		"S": {0, 1},
		"e": {1, 0},
		"W": {-1, 0},
	}
	for in, want := range tests {
		got, err := ParseDirection(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: expected %+v, got %+v", in, want, got)
		}
	}
	for _, bad := range []string{"north", " n", "e ", ""} {
		if _, err := ParseDirection(bad); err == nil {
			t.Fatalf("expected error for direction %q", bad)
		}
	}
}

func TestParseActionIsCaseInsensitive(t *testing.T) {
	for _, a := range Actions() {
		got, err := ParseAction(strings.ToUpper(a.String()))
		if err != nil || got != a {
			t.Fatalf("%s: got %v %v", a, got, err)
		}
	}
}

func TestParseActionRejectsPadding(t *testing.T) {
	for _, name := range []string{" scan", "scan ", "\tfight"} {
		_, err := ParseAction(name)
		wantReason(t, err, ReasonUnknownAction)
	}
}
