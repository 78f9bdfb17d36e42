package game

import (
	"starline-salvage/internal/session"
	"starline-salvage/internal/world"
)

// NearbyAnomaly is what a scan reveals about an uncollected anomaly.
type NearbyAnomaly struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value int    `json:"value"`
	Risk  int    `json:"risk"`
}

// StationView is the public face of the station the ship is docked at.
type StationView struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Offers []world.Offer `json:"offers"`
}

// View is the client-facing projection of a session.
type View struct {
	ID           string                `json:"id"`
	Turn         int                   `json:"turn"`
	X            int                   `json:"x"`
	Y            int                   `json:"y"`
	Fuel         int                   `json:"fuel"`
	Hull         int                   `json:"hull"`
	Credits      int                   `json:"credits"`
	Status       session.Status        `json:"status"`
	Log          []string              `json:"log"`
	MapSize      int                   `json:"mapSize"`
	GoalCredits  int                   `json:"goalCredits"`
	Nearby       []NearbyAnomaly       `json:"nearby"`
	Station      *StationView          `json:"station"`
	PendingEvent *session.PendingEvent `json:"pendingEvent"`
}

// Stats summarizes the session store for operators.
type Stats struct {
	Sessions int    `json:"sessions"`
	Backend  string `json:"backend"`
}

// NewGameOptions tunes session creation. A nil Seed draws one from the clock.
type NewGameOptions struct {
	Seed *int64 `json:"seed,omitempty"`
}
