package game

import (
	apperrors "starline-salvage/internal/shared/errors"
)

// Stable reason codes carried by every rejected request.
const (
	ReasonGameNotFound         = "game_not_found"
	ReasonMissingGameID        = "missing_game_id"
	ReasonSeedOverrideDisabled = "seed_override_disabled"
	ReasonAmbushPending        = "ambush_pending"
	ReasonUnknownAction        = "unknown_action"
	ReasonOutOfFuel            = "out_of_fuel"
	ReasonInvalidDirection     = "invalid_direction"
	ReasonOutOfBounds          = "out_of_bounds"
	ReasonMissingTarget        = "missing_target"
	ReasonInvalidTarget        = "invalid_target"
	ReasonTargetNotInSector    = "target_not_in_sector"
	ReasonNoStation            = "no_station"
	ReasonInvalidItem          = "invalid_item"
	ReasonInsufficientCredits  = "insufficient_credits"
	ReasonFuelFull             = "fuel_full"
	ReasonHullFull             = "hull_full"
	ReasonNotAtBase            = "not_at_base"
	ReasonNoActiveThreat       = "no_active_threat"
)

func errGameNotFound() error {
	return apperrors.NotFound(ReasonGameNotFound, "Game not found")
}

func errAmbushPending() error {
	return apperrors.ValidationReason(ReasonAmbushPending, "Resolve the ambush first")
}

func errOutOfFuel() error {
	return apperrors.ValidationReason(ReasonOutOfFuel, "Out of fuel")
}

func errInsufficientCredits() error {
	return apperrors.ValidationReason(ReasonInsufficientCredits, "Not enough credits")
}

func errFuelFull() error {
	return apperrors.ValidationReason(ReasonFuelFull, "Fuel already full")
}

func errHullFull() error {
	return apperrors.ValidationReason(ReasonHullFull, "Hull already full")
}

func errNoActiveThreat() error {
	return apperrors.ValidationReason(ReasonNoActiveThreat, "No active threat")
}
