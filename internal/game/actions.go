package game

import (
	"strings"

	apperrors "starline-salvage/internal/shared/errors"
)

// Action is one of the player moves the resolver understands.
type Action int

const (
	ActionScan Action = iota + 1
	ActionTravel
	ActionSalvage
	ActionTrade
	ActionRefuel
	ActionRepair
	ActionFight
	ActionBribe
	ActionEvade
)

var actionNames = map[Action]string{
	ActionScan:    "scan",
	ActionTravel:  "travel",
	ActionSalvage: "salvage",
	ActionTrade:   "trade",
	ActionRefuel:  "refuel",
	ActionRepair:  "repair",
	ActionFight:   "fight",
	ActionBribe:   "bribe",
	ActionEvade:   "evade",
}

// Actions lists every action in declaration order.
func Actions() []Action {
	return []Action{
		ActionScan, ActionTravel, ActionSalvage, ActionTrade, ActionRefuel,
		ActionRepair, ActionFight, ActionBribe, ActionEvade,
	}
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ResolvesEncounter reports whether a is allowed while an ambush is pending.
func (a Action) ResolvesEncounter() bool {
	return a == ActionFight || a == ActionBribe || a == ActionEvade
}

// ParseAction maps a case-insensitive action name to an Action.
func ParseAction(name string) (Action, error) {
	normalized := strings.ToLower(name)
	for _, a := range Actions() {
		if a.String() == normalized {
			return a, nil
		}
	}

	names := make([]string, 0, len(actionNames))
	for _, a := range Actions() {
		names = append(names, a.String())
	}
	return 0, apperrors.ValidationReason(ReasonUnknownAction, withSuggestion("Unknown action", normalized, names))
}

// Direction is a single-tile move on the map grid. North decreases y.
type Direction struct {
	DX, DY int
}

// ParseDirection accepts n, s, e or w in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "n":
		return Direction{DY: -1}, nil
	case "s":
		return Direction{DY: 1}, nil
	case "w":
		return Direction{DX: -1}, nil
	case "e":
		return Direction{DX: 1}, nil
	default:
		return Direction{}, apperrors.ValidationReason(ReasonInvalidDirection, "Invalid direction")
	}
}

// ActionRequest is a player's requested move against a session.
type ActionRequest struct {
	GameID    string `json:"game_id"`
	Action    string `json:"action"`
	Direction string `json:"direction,omitempty"`
	TargetID  string `json:"target_id,omitempty"`
	Item      string `json:"item,omitempty"`
}
