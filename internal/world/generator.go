// Package world builds the procedural layout of a salvage run: the anomalies
// worth collecting and the stations that sell supplies.
package world

import (
	"fmt"

	"starline-salvage/internal/rng"

	"github.com/google/uuid"
)

const (
	MapSize      = 5
	AnomalyCount = 10
	StationCount = 3

	MinAnomalyValue = 10
	MaxAnomalyValue = 40
	MinAnomalyRisk  = 1
	MaxAnomalyRisk  = 4
)

var anomalyNames = []string{
	"Derelict Skiff",
	"Glitter Cache",
	"Drift Beacon",
	"Ice Vault",
	"Hollow Freighter",
	"Cracked Probe",
	"Solar Wreck",
	"Echo Relay",
	"Quiet Tomb",
	"Shard Garden",
}

var stationNames = []string{
	"Cinder Tradepost",
	"Nova Exchange",
	"Kepler Bazaar",
	"Drydock 19",
	"Marrow Port",
}

// IsBase reports whether (x, y) is the home base tile.
func IsBase(x, y int) bool {
	return x == 0 && y == 0
}

// InBounds reports whether (x, y) lies on the map.
func InBounds(x, y int) bool {
	return x >= 0 && x < MapSize && y >= 0 && y < MapSize
}

// Generate returns the layout for seed. The result, ids included, depends on
// nothing but the seed.
func Generate(seed int64) (Layout, error) {
	ids := rng.New(rng.IdentitySeed(seed))

	anomalies, err := generateAnomalies(seed, ids)
	if err != nil {
		return Layout{}, err
	}
	stations, err := generateStations(seed, ids)
	if err != nil {
		return Layout{}, err
	}

	return Layout{Anomalies: anomalies, Stations: stations}, nil
}

func generateAnomalies(seed int64, ids *rng.Stream) ([]Anomaly, error) {
	r := rng.New(rng.WorldSeed(seed))
	anomalies := make([]Anomaly, 0, AnomalyCount)

	for range AnomalyCount {
		name := rng.Pick(r, anomalyNames)
		x := r.Below(MapSize)
		y := r.Below(MapSize)
		value := r.IntRange(MinAnomalyValue, MaxAnomalyValue)
		risk := r.IntRange(MinAnomalyRisk, MaxAnomalyRisk)

		id, err := uuid.NewRandomFromReader(ids)
		if err != nil {
			return nil, fmt.Errorf("failed to mint anomaly id: %w", err)
		}

		anomalies = append(anomalies, Anomaly{
			ID:    id.String(),
			Name:  name,
			X:     x,
			Y:     y,
			Value: value,
			Risk:  risk,
		})
	}

	return anomalies, nil
}

func generateStations(seed int64, ids *rng.Stream) ([]Station, error) {
	r := rng.New(rng.StationSeed(seed))
	stations := make([]Station, 0, StationCount)

	for len(stations) < StationCount {
		x := r.Below(MapSize)
		y := r.Below(MapSize)
		if IsBase(x, y) || stationAt(stations, x, y) {
			continue
		}

		id, err := uuid.NewRandomFromReader(ids)
		if err != nil {
			return nil, fmt.Errorf("failed to mint station id: %w", err)
		}

		stations = append(stations, Station{
			ID:   id.String(),
			Name: rng.Pick(r, stationNames),
			X:    x,
			Y:    y,
		})
	}

	return stations, nil
}

func stationAt(stations []Station, x, y int) bool {
	for _, s := range stations {
		if s.At(x, y) {
			return true
		}
	}
	return false
}
