package geo

import (
	"testing"

	"github.com/rocketmap/scanscheduler/pkg/model"
)

func ringCount(ringLimit int) int {
	return 1 + 3*(ringLimit-1)*ringLimit
}

func TestGenerateHexSearchRingLimitOne(t *testing.T) {
	origin := Point{Lat: 40.7, Lng: -74.0}
	locs := GenerateHexSearch(origin, 1, FullStepDistanceKM)

	if len(locs) != 1 {
		t.Fatalf("ring_limit=1: got %d locations, want 1", len(locs))
	}
	if locs[0] != origin {
		t.Fatalf("ring_limit=1: got %v, want origin %v", locs[0], origin)
	}
}

func TestGenerateHexSearchCountsMatchHexFormula(t *testing.T) {
	origin := Point{Lat: 40.7, Lng: -74.0}

	for ringLimit := 1; ringLimit <= 6; ringLimit++ {
		locs := GenerateHexSearch(origin, ringLimit, FullStepDistanceKM)
		want := ringCount(ringLimit)
		if len(locs) != want {
			t.Errorf("ring_limit=%d: got %d locations, want %d", ringLimit, len(locs), want)
		}
	}
}

func TestGenerateSpeedScanCountsMatchHexFormula(t *testing.T) {
	origin := Point{Lat: 40.7, Lng: -74.0}

	for ringLimit := 1; ringLimit <= 6; ringLimit++ {
		locs := GenerateSpeedScan(origin, ringLimit, FullStepDistanceKM)
		want := ringCount(ringLimit)
		if len(locs) != want {
			t.Errorf("ring_limit=%d: got %d locations, want %d", ringLimit, len(locs), want)
		}
	}
}

// Growing ring_limit must never reorder the locations SpeedScan has already
// generated, since storage keys scanned-location records by the CellID of
// each generated location.
func TestGenerateSpeedScanStableAcrossGrowth(t *testing.T) {
	origin := Point{Lat: 40.7, Lng: -74.0}

	small := GenerateSpeedScan(origin, 3, FullStepDistanceKM)
	grown := GenerateSpeedScan(origin, 4, FullStepDistanceKM)

	if len(grown) <= len(small) {
		t.Fatalf("expected growth, got small=%d grown=%d", len(small), len(grown))
	}
	for i, p := range small {
		if grown[i] != p {
			t.Errorf("index %d changed on growth: was %v, now %v", i, p, grown[i])
		}
	}
}

func TestGenerateHexSearchRingLimitSevenCellsForRingTwo(t *testing.T) {
	origin := Point{Lat: 40.7, Lng: -74.0}
	locs := GenerateHexSearch(origin, 2, FullStepDistanceKM)

	if len(locs) != 7 {
		t.Fatalf("ring_limit=2: got %d locations, want 7", len(locs))
	}
}

func TestHexBoundsContainsOrigin(t *testing.T) {
	origin := Point{Lat: 40.7, Lng: -74.0}
	b := HexBounds(origin, 3, FullStepDistanceKM)

	if origin.Lat < b.Min[1] || origin.Lat > b.Max[1] {
		t.Errorf("origin latitude %v outside bounds [%v, %v]", origin.Lat, b.Min[1], b.Max[1])
	}
	if origin.Lng < b.Min[0] || origin.Lng > b.Max[0] {
		t.Errorf("origin longitude %v outside bounds [%v, %v]", origin.Lng, b.Min[0], b.Max[0])
	}
}

func TestCellIDStableForSameLocation(t *testing.T) {
	loc := model.Location{Lat: 40.7128, Lng: -74.0060}
	a := CellID(loc)
	b := CellID(loc)
	if a != b {
		t.Errorf("CellID not stable: %v != %v", a, b)
	}
}
