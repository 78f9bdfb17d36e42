package world

import (
	"reflect"
	"slices"
	"testing"

	"github.com/google/uuid"
)

func mustGenerate(t *testing.T, seed int64) Layout {
	t.Helper()
	layout, err := Generate(seed)
	if err != nil {
		t.Fatalf("generate seed %d: %v", seed, err)
	}
	return layout
}

func TestGenerateIsPureFunctionOfSeed(t *testing.T) {
	for _, seed := range []int64{1, 42, 4242, 999999} {
		a := mustGenerate(t, seed)
		b := mustGenerate(t, seed)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("seed %d produced different layouts", seed)
		}
	}
}

func TestGenerateKnownLayout(t *testing.T) {
	type placed struct {
		name        string
		x, y        int
		value, risk int
	}
	wantAnomalies := []placed{
		{"Glitter Cache", 0, 2, 17, 2},
		{"Drift Beacon", 0, 4, 12, 4},
		{"Derelict Skiff", 0, 0, 16, 2},
		{"Quiet Tomb", 4, 0, 27, 2},
		{"Quiet Tomb", 3, 1, 24, 3},
		{"Derelict Skiff", 1, 3, 20, 3},
		{"Drift Beacon", 1, 2, 13, 1},
		{"Solar Wreck", 0, 2, 37, 3},
		{"Shard Garden", 2, 0, 33, 4},
		{"Quiet Tomb", 0, 3, 12, 3},
	}
	wantStations := []placed{
		{name: "Kepler Bazaar", x: 3, y: 4},
		{name: "Drydock 19", x: 1, y: 3},
		{name: "Marrow Port", x: 2, y: 0},
	}

	layout := mustGenerate(t, 42)

	if len(layout.Anomalies) != len(wantAnomalies) {
		t.Fatalf("expected %d anomalies, got %d", len(wantAnomalies), len(layout.Anomalies))
	}
	for i, want := range wantAnomalies {
		a := layout.Anomalies[i]
		got := placed{a.Name, a.X, a.Y, a.Value, a.Risk}
		if got != want {
			t.Fatalf("anomaly %d: expected %+v, got %+v", i, want, got)
		}
	}

	if len(layout.Stations) != len(wantStations) {
		t.Fatalf("expected %d stations, got %d", len(wantStations), len(layout.Stations))
	}
	for i, want := range wantStations {
		st := layout.Stations[i]
		got := placed{name: st.Name, x: st.X, y: st.Y}
		if got != want {
			t.Fatalf("station %d: expected %+v, got %+v", i, want, got)
		}
	}
}

func TestGenerateDiffersAcrossSeeds(t *testing.T) {
	a := mustGenerate(t, 1)
	b := mustGenerate(t, 2)
	if reflect.DeepEqual(a, b) {
		t.Fatal("expected different seeds to produce different layouts")
	}
}

func TestGenerateAnomalies(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		layout := mustGenerate(t, seed)
		if len(layout.Anomalies) != AnomalyCount {
			t.Fatalf("seed %d: expected %d anomalies, got %d", seed, AnomalyCount, len(layout.Anomalies))
		}
		for _, a := range layout.Anomalies {
			if !InBounds(a.X, a.Y) {
				t.Fatalf("seed %d: anomaly out of bounds at (%d,%d)", seed, a.X, a.Y)
			}
			if a.Value < MinAnomalyValue || a.Value > MaxAnomalyValue {
				t.Fatalf("seed %d: anomaly value %d out of range", seed, a.Value)
			}
			if a.Risk < MinAnomalyRisk || a.Risk > MaxAnomalyRisk {
				t.Fatalf("seed %d: anomaly risk %d out of range", seed, a.Risk)
			}
			if !slices.Contains(anomalyNames, a.Name) {
				t.Fatalf("seed %d: unexpected anomaly name %q", seed, a.Name)
			}
			if a.Collected {
				t.Fatalf("seed %d: anomaly generated as collected", seed)
			}
			if _, err := uuid.Parse(a.ID); err != nil {
				t.Fatalf("seed %d: anomaly id %q is not a uuid: %v", seed, a.ID, err)
			}
		}
	}
}

func TestGenerateStations(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		layout := mustGenerate(t, seed)
		if len(layout.Stations) != StationCount {
			t.Fatalf("seed %d: expected %d stations, got %d", seed, StationCount, len(layout.Stations))
		}
		seen := map[[2]int]bool{}
		for _, s := range layout.Stations {
			if IsBase(s.X, s.Y) {
				t.Fatalf("seed %d: station placed on base", seed)
			}
			if !InBounds(s.X, s.Y) {
				t.Fatalf("seed %d: station out of bounds at (%d,%d)", seed, s.X, s.Y)
			}
			tile := [2]int{s.X, s.Y}
			if seen[tile] {
				t.Fatalf("seed %d: two stations share tile (%d,%d)", seed, s.X, s.Y)
			}
			seen[tile] = true
			if !slices.Contains(stationNames, s.Name) {
				t.Fatalf("seed %d: unexpected station name %q", seed, s.Name)
			}
		}
	}
}

func TestGenerateIDsAreUnique(t *testing.T) {
	layout := mustGenerate(t, 77)
	ids := map[string]bool{}
	for _, a := range layout.Anomalies {
		ids[a.ID] = true
	}
	for _, s := range layout.Stations {
		ids[s.ID] = true
	}
	if len(ids) != AnomalyCount+StationCount {
		t.Fatalf("expected %d unique ids, got %d", AnomalyCount+StationCount, len(ids))
	}
}

func TestOffers(t *testing.T) {
	offers := Offers()
	if len(offers) != 2 {
		t.Fatalf("expected 2 offers, got %d", len(offers))
	}
	if offers[0].ID != ItemFuelCell || offers[0].Price != 4 {
		t.Fatalf("unexpected fuel offer %+v", offers[0])
	}
	if offers[1].ID != ItemHullPatch || offers[1].Price != 6 {
		t.Fatalf("unexpected hull offer %+v", offers[1])
	}
	if got := OfferIDs(); !slices.Equal(got, []string{ItemFuelCell, ItemHullPatch}) {
		t.Fatalf("unexpected offer ids %v", got)
	}
}
