package game

import (
	"fmt"

	"starline-salvage/internal/rng"
	"starline-salvage/internal/session"
	apperrors "starline-salvage/internal/shared/errors"
	"starline-salvage/internal/world"
)

// Tuning of the rules. Prices for station goods live in the world catalog.
const (
	HazardChance     = 0.15
	AmbushChance     = 0.20
	SalvageRiskStep  = 0.15
	FightWinChance   = 0.55
	EvadeFailChance  = 0.40
	MinThreat        = 1
	MaxThreat        = 3
	FightRewardRate  = 6
	FightLossRate    = 4
	BribeRate        = 8
	FuelCellGain     = 2
	HullPatchGain    = 1
	RefuelPrice      = 5
	RefuelGain       = 3
	RepairPrice      = 8
	RepairGain       = 2
	RecentLogEntries = 8
)

// Outcome describes what Resolve did. Applied is false when the session was
// already over and nothing changed.
type Outcome struct {
	Action  Action
	Applied bool
	Nearby  []NearbyAnomaly
}

// Resolve applies req to s. On error s is left untouched; on success the log
// grows by at least one line, the turn advances by one and the status is
// recomputed. Sessions that have already ended are returned unchanged.
func Resolve(s *session.Session, req ActionRequest) (Outcome, error) {
	if s.Status.Terminal() {
		return Outcome{}, nil
	}

	action, parseErr := ParseAction(req.Action)
	if s.PendingEvent != nil && (parseErr != nil || !action.ResolvesEncounter()) {
		return Outcome{}, errAmbushPending()
	}
	if parseErr != nil {
		return Outcome{}, parseErr
	}

	r := rng.New(rng.ActionSeed(s.Seed, s.Turn, s.X, s.Y))
	out := Outcome{Action: action, Applied: true}

	var err error
	switch action {
	case ActionScan:
		out.Nearby = scan(s)
	case ActionTravel:
		err = travel(s, r, req.Direction)
	case ActionSalvage:
		err = salvage(s, req.TargetID)
	case ActionTrade:
		err = trade(s, req.Item)
	case ActionRefuel:
		err = refuel(s)
	case ActionRepair:
		err = repair(s)
	case ActionFight:
		err = fight(s, r)
	case ActionBribe:
		err = bribe(s)
	case ActionEvade:
		err = evade(s, r)
	default:
		panic(fmt.Sprintf("game: unhandled action %d", action))
	}
	if err != nil {
		return Outcome{}, err
	}

	s.Turn++
	s.Status = evaluateStatus(s)
	return out, nil
}

func evaluateStatus(s *session.Session) session.Status {
	switch {
	case s.Hull <= 0:
		return session.StatusLost
	case s.Credits >= session.GoalCredits && s.AtBase():
		return session.StatusWon
	default:
		return session.StatusActive
	}
}

func scan(s *session.Session) []NearbyAnomaly {
	found := s.UncollectedHere()
	nearby := make([]NearbyAnomaly, 0, len(found))
	for _, a := range found {
		nearby = append(nearby, NearbyAnomaly{ID: a.ID, Name: a.Name, Value: a.Value, Risk: a.Risk})
	}

	if len(nearby) > 0 {
		s.Record(fmt.Sprintf("Scan pinged %d salvage signatures.", len(nearby)))
	} else {
		s.Record("Scan found nothing but cold dust.")
	}
	return nearby
}

func travel(s *session.Session, r *rng.Stream, direction string) error {
	if s.Fuel <= 0 {
		return errOutOfFuel()
	}
	dir, err := ParseDirection(direction)
	if err != nil {
		return err
	}

	x, y := s.X+dir.DX, s.Y+dir.DY
	if !world.InBounds(x, y) {
		return apperrors.ValidationReason(ReasonOutOfBounds, "Out of bounds")
	}

	s.X, s.Y = x, y
	s.Fuel--

	if r.Chance(HazardChance) {
		s.Hull--
		s.Record("Micrometeor swarm scraped the hull.")
	} else {
		s.Record("Transit clean. Engines humming.")
	}

	if r.Chance(AmbushChance) {
		s.PendingEvent = &session.PendingEvent{
			Type:   session.EventPirateAmbush,
			Threat: r.IntRange(MinThreat, MaxThreat),
		}
		s.Record("Pirate ambush! They demand cargo or a fight.")
	}
	return nil
}

func salvage(s *session.Session, targetID string) error {
	if targetID == "" {
		return apperrors.ValidationReason(ReasonMissingTarget, "Missing target_id")
	}
	anomaly := s.Anomaly(targetID)
	if anomaly == nil || anomaly.Collected {
		return apperrors.ValidationReason(ReasonInvalidTarget, "Invalid salvage target")
	}
	if !anomaly.At(s.X, s.Y) {
		return apperrors.ValidationReason(ReasonTargetNotInSector, "Target not in sector")
	}

	roll := rng.New(rng.TargetSeed(s.Seed, anomaly.ID)).Float64()
	if roll < float64(anomaly.Risk)*SalvageRiskStep {
		s.Hull--
		s.Record("Salvage snap-back dented the hull.")
	}

	s.Credits += anomaly.Value
	anomaly.Collected = true
	s.Record(fmt.Sprintf("Recovered %s worth %d credits.", anomaly.Name, anomaly.Value))
	return nil
}

func trade(s *session.Session, item string) error {
	if _, ok := s.StationHere(); !ok {
		return apperrors.ValidationReason(ReasonNoStation, "No trade station here")
	}

	switch item {
	case world.ItemFuelCell:
		if s.Credits < world.FuelCellPrice {
			return errInsufficientCredits()
		}
		if s.Fuel >= session.MaxFuel {
			return errFuelFull()
		}
		s.Credits -= world.FuelCellPrice
		s.Fuel = min(session.MaxFuel, s.Fuel+FuelCellGain)
		s.Record("Traded for fuel cells.")
	case world.ItemHullPatch:
		if s.Credits < world.HullPatchPrice {
			return errInsufficientCredits()
		}
		if s.Hull >= session.MaxHull {
			return errHullFull()
		}
		s.Credits -= world.HullPatchPrice
		s.Hull = min(session.MaxHull, s.Hull+HullPatchGain)
		s.Record("Installed a fresh hull patch.")
	default:
		return apperrors.ValidationReason(ReasonInvalidItem, withSuggestion("Invalid trade item", item, world.OfferIDs()))
	}
	return nil
}

func refuel(s *session.Session) error {
	if !s.AtBase() {
		return apperrors.ValidationReason(ReasonNotAtBase, "Refuel only at base")
	}
	if s.Credits < RefuelPrice {
		return errInsufficientCredits()
	}
	if s.Fuel >= session.MaxFuel {
		return errFuelFull()
	}

	s.Credits -= RefuelPrice
	s.Fuel = min(session.MaxFuel, s.Fuel+RefuelGain)
	s.Record("Docking bay topped off fuel reserves.")
	return nil
}

func repair(s *session.Session) error {
	if !s.AtBase() {
		return apperrors.ValidationReason(ReasonNotAtBase, "Repair only at base")
	}
	if s.Credits < RepairPrice {
		return errInsufficientCredits()
	}
	if s.Hull >= session.MaxHull {
		return errHullFull()
	}

	s.Credits -= RepairPrice
	s.Hull = min(session.MaxHull, s.Hull+RepairGain)
	s.Record("Mechanics sealed the hull fractures.")
	return nil
}

func fight(s *session.Session, r *rng.Stream) error {
	if s.PendingEvent == nil {
		return errNoActiveThreat()
	}
	threat := s.PendingEvent.Threat

	if r.Chance(FightWinChance) {
		reward := threat * FightRewardRate
		s.Credits += reward
		s.Record(fmt.Sprintf("Fought off pirates and looted %d credits.", reward))
	} else {
		s.Hull -= threat
		s.Credits -= min(s.Credits, threat*FightLossRate)
		s.Record("Pirates scored hits before breaking off.")
	}
	s.PendingEvent = nil
	return nil
}

func bribe(s *session.Session) error {
	if s.PendingEvent == nil {
		return errNoActiveThreat()
	}
	cost := s.PendingEvent.Threat * BribeRate
	if s.Credits < cost {
		return errInsufficientCredits()
	}

	s.Credits -= cost
	s.PendingEvent = nil
	s.Record("Paid off the pirates. They drift away.")
	return nil
}

func evade(s *session.Session, r *rng.Stream) error {
	if s.PendingEvent == nil {
		return errNoActiveThreat()
	}
	if s.Fuel <= 0 {
		return errOutOfFuel()
	}

	s.Fuel--
	if r.Chance(EvadeFailChance) {
		s.Hull--
		s.Record("Evasion failed. Took a glancing hit.")
	} else {
		s.Record("Evasion successful. Pirates lost the trail.")
	}
	s.PendingEvent = nil
	return nil
}
