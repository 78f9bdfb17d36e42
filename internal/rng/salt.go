package rng

import (
	"hash/fnv"
	"strconv"
)

const (
	stationSalt  = 4242
	identitySalt = 7919
	turnFactor   = 31
	xFactor      = 13
	yFactor      = 7
)

// WorldSeed seeds the anomaly layout stream.
func WorldSeed(seed int64) int64 {
	return seed
}

// StationSeed seeds the station layout stream, kept apart from the anomaly
// stream so the two layouts are not correlated.
func StationSeed(seed int64) int64 {
	return seed + stationSalt
}

// IdentitySeed seeds the stream that mints entity ids for a layout.
func IdentitySeed(seed int64) int64 {
	return seed + identitySalt
}

// ActionSeed ties an outcome roll to the turn and the tile the ship is on
// when the action starts.
func ActionSeed(seed int64, turn, x, y int) int64 {
	return seed + int64(turn)*turnFactor + int64(x)*xFactor + int64(y)*yFactor
}

// TargetSeed ties a salvage roll to the anomaly being collected. The id's
// leading eight hex digits are the salt; ids without a hex prefix fall back to
// an FNV-32a hash of the whole id.
func TargetSeed(seed int64, targetID string) int64 {
	if len(targetID) >= 8 {
		if v, err := strconv.ParseUint(targetID[:8], 16, 32); err == nil {
			return seed + int64(v)
		}
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(targetID))
	return seed + int64(h.Sum32())
}
