package session

import (
	"slices"
	"time"

	"starline-salvage/internal/world"
)

const (
	MaxFuel      = 12
	MaxHull      = 10
	StartCredits = 20
	GoalCredits  = 120

	startLog = "Docked at Base. Systems green."
)

type Status string

const (
	StatusActive Status = "active"
	StatusWon    Status = "won"
	StatusLost   Status = "lost"
)

// Terminal reports whether no further action can change the session.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

const EventPirateAmbush = "pirate_ambush"

// PendingEvent is an encounter that blocks every action except the ones that
// resolve it.
type PendingEvent struct {
	Type   string `json:"type"`
	Threat int    `json:"threat"`
}

// Session is one salvage run.
type Session struct {
	ID           string          `json:"id"`
	Seed         int64           `json:"seed"`
	Turn         int             `json:"turn"`
	X            int             `json:"x"`
	Y            int             `json:"y"`
	Fuel         int             `json:"fuel"`
	Hull         int             `json:"hull"`
	Credits      int             `json:"credits"`
	Status       Status          `json:"status"`
	Log          []string        `json:"log"`
	Anomalies    []world.Anomaly `json:"anomalies"`
	Stations     []world.Station `json:"stations"`
	PendingEvent *PendingEvent   `json:"pending_event"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// New returns a fresh session docked at base.
func New(id string, seed int64, layout world.Layout, now time.Time) *Session {
	return &Session{
		ID:        id,
		Seed:      seed,
		Turn:      1,
		Fuel:      MaxFuel,
		Hull:      MaxHull,
		Credits:   StartCredits,
		Status:    StatusActive,
		Log:       []string{startLog},
		Anomalies: slices.Clone(layout.Anomalies),
		Stations:  slices.Clone(layout.Stations),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy that shares nothing mutable with s.
func (s *Session) Clone() *Session {
	c := *s
	c.Log = slices.Clone(s.Log)
	c.Anomalies = slices.Clone(s.Anomalies)
	c.Stations = slices.Clone(s.Stations)
	if s.PendingEvent != nil {
		ev := *s.PendingEvent
		c.PendingEvent = &ev
	}
	return &c
}

// AtBase reports whether the ship is on the base tile.
func (s *Session) AtBase() bool {
	return world.IsBase(s.X, s.Y)
}

// StationHere returns the station on the ship's tile, if any.
func (s *Session) StationHere() (world.Station, bool) {
	for _, st := range s.Stations {
		if st.At(s.X, s.Y) {
			return st, true
		}
	}
	return world.Station{}, false
}

// UncollectedHere returns the uncollected anomalies on the ship's tile.
func (s *Session) UncollectedHere() []world.Anomaly {
	var found []world.Anomaly
	for _, a := range s.Anomalies {
		if !a.Collected && a.At(s.X, s.Y) {
			found = append(found, a)
		}
	}
	return found
}

// Anomaly returns a pointer into s.Anomalies for id, or nil.
func (s *Session) Anomaly(id string) *world.Anomaly {
	for i := range s.Anomalies {
		if s.Anomalies[i].ID == id {
			return &s.Anomalies[i]
		}
	}
	return nil
}

// Record appends a line to the session log.
func (s *Session) Record(line string) {
	s.Log = append(s.Log, line)
}

// RecentLog returns at most the last n log lines.
func (s *Session) RecentLog(n int) []string {
	if len(s.Log) <= n {
		return slices.Clone(s.Log)
	}
	return slices.Clone(s.Log[len(s.Log)-n:])
}
