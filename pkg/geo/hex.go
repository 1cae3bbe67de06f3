package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/uber/h3-go/v4"

	"github.com/rocketmap/scanscheduler/pkg/model"
)

// cellResolution is the H3 resolution used to derive CellID. Res 11 cells
// have an edge length under 30m, so no cell spans two locations of the
// 70m-step grid (whose neighbouring centers sit about 121m apart) and every
// generated location keys its own storage record.
const cellResolution = 11

// CellID derives the stable per-location identifier storage keys records by.
func CellID(loc model.Location) model.CellID {
	ll := h3.NewLatLng(loc.Lat, loc.Lng)
	cell, err := h3.LatLngToCell(ll, cellResolution)
	if err != nil {
		return 0
	}
	return model.CellID(cell)
}

// FullStepDistanceKM is the column/row pitch used for a complete scan.
const FullStepDistanceKM = 0.070

// SpawnOnlyStepDistanceKM widens the pitch when only pokestops/gyms (no
// wild spawns) are being tracked.
const SpawnOnlyStepDistanceKM = 0.900

// StepDistance selects the generator pitch for a scan, per the no_pokemon
// configuration flag.
func StepDistance(noPokemon bool) float64 {
	if noPokemon {
		return SpawnOnlyStepDistanceKM
	}
	return FullStepDistanceKM
}

// ringPitch returns the column and row pitch for a hex grid of the given
// step distance: xdist is the distance between column centers, ydist the
// distance between row centers.
func ringPitch(stepDistanceKM float64) (xdist, ydist float64) {
	return math.Sqrt(3) * stepDistanceKM, 1.5 * stepDistanceKM
}

// GenerateHexSearch produces the ordered set of cell centers HexSearch scans:
// concentric hex rings around origin, walked ring-by-ring, with the last few
// steps of the outermost ring rotated to the front so the scan begins with a
// "center nugget" display nicety. The *set* of locations is identical to
// GenerateSpeedScan for the same inputs; only the order differs.
func GenerateHexSearch(origin Point, ringLimit int, stepDistanceKM float64) []Point {
	results := generateRings(origin, ringLimit, stepDistanceKM)

	if ringLimit >= 3 {
		if ringLimit == 3 {
			results = rotateToFront(results, 2)
		} else {
			results = rotateToFront(results, 7)
		}
	}
	return results
}

func rotateToFront(results []Point, n int) []Point {
	if n > len(results) {
		n = len(results)
	}
	tail := results[len(results)-n:]
	head := results[:len(results)-n]
	out := make([]Point, 0, len(results))
	out = append(out, tail...)
	out = append(out, head...)
	return out
}

func generateRings(origin Point, stepLimit int, stepDistanceKM float64) []Point {
	const (
		north = BearingNorthDeg
		east  = BearingEastDeg
		south = BearingSouthDeg
		west  = BearingWestDeg
	)
	xdist, ydist := ringPitch(stepDistanceKM)

	results := []Point{origin}
	if stepLimit <= 1 {
		return results
	}

	loc := origin

	ring := 1
	for ring < stepLimit {
		bEast, bWest := east, west
		if ring%2 == 1 {
			bEast, bWest = west, east // mirrors the odd-ring direction flip in the source generator
		}

		loc = NewCoords(loc, xdist, bWest)
		results = append(results, loc)

		for i := 0; i < ring; i++ {
			loc = NewCoords(loc, ydist, north)
			loc = NewCoords(loc, xdist/2, bEast)
			results = append(results, loc)
		}
		for i := 0; i < ring; i++ {
			loc = NewCoords(loc, xdist, bEast)
			results = append(results, loc)
		}
		for i := 0; i < ring; i++ {
			loc = NewCoords(loc, ydist, south)
			loc = NewCoords(loc, xdist/2, bEast)
			results = append(results, loc)
		}
		ring++
	}

	// Lower part, mirroring back down to close the hex.
	ring = stepLimit - 1
	bWest := west
	if ring%2 == 1 {
		bWest = east
	}
	loc = NewCoords(loc, ydist, south)
	loc = NewCoords(loc, xdist/2, bWest)
	results = append(results, loc)

	for ring > 0 {
		if ring == 1 {
			loc = NewCoords(loc, xdist, west)
			results = append(results, loc)
		} else {
			bWestLower := west
			if ring%2 != 1 {
				bWestLower = east
			}
			for i := 0; i < ring-1; i++ {
				loc = NewCoords(loc, ydist, south)
				loc = NewCoords(loc, xdist/2, bWestLower)
				results = append(results, loc)
			}
			stepDir := west
			if ring%2 != 1 {
				stepDir = east
			}
			for i := 0; i < ring; i++ {
				loc = NewCoords(loc, xdist, stepDir)
				results = append(results, loc)
			}
			for i := 0; i < ring-1; i++ {
				loc = NewCoords(loc, ydist, north)
				loc = NewCoords(loc, xdist/2, bWestLower)
				results = append(results, loc)
			}
			closeDir := east
			if ring%2 != 1 {
				closeDir = west
			}
			loc = NewCoords(loc, xdist, closeDir)
			results = append(results, loc)
		}
		ring--
	}

	return results
}

// GenerateSpeedScan produces the ordered, append-only set of cell centers
// SpeedScan tracks. Unlike GenerateHexSearch it never reorders: growing
// ringLimit must preserve the index (and therefore the CellID) of every
// previously generated location, since storage keys band state by cell.
func GenerateSpeedScan(origin Point, ringLimit int, stepDistanceKM float64) []Point {
	const (
		north = BearingNorthDeg
		east  = BearingEastDeg
		south = BearingSouthDeg
		west  = BearingWestDeg
	)
	xdist, ydist := ringPitch(stepDistanceKM)

	loc := origin
	results := []Point{loc}

	for ring := 1; ring < ringLimit; ring++ {
		steps := ring - 1
		if steps < 1 {
			steps = 1
		}
		for i := 0; i < steps; i++ {
			if ring > 1 {
				loc = NewCoords(loc, ydist, north)
			}
			divisor := 1.0
			if ring > 1 {
				divisor = 2.0
			}
			loc = NewCoords(loc, xdist/divisor, west)
			results = append(results, loc)
		}
		for i := 0; i < ring; i++ {
			loc = NewCoords(loc, ydist, north)
			loc = NewCoords(loc, xdist/2, east)
			results = append(results, loc)
		}
		for i := 0; i < ring; i++ {
			loc = NewCoords(loc, xdist, east)
			results = append(results, loc)
		}
		for i := 0; i < ring; i++ {
			loc = NewCoords(loc, ydist, south)
			loc = NewCoords(loc, xdist/2, east)
			results = append(results, loc)
		}
		for i := 0; i < ring; i++ {
			loc = NewCoords(loc, ydist, south)
			loc = NewCoords(loc, xdist/2, west)
			results = append(results, loc)
		}
		closingSteps := ring
		if ring+1 < ringLimit {
			closingSteps++
		}
		for i := 0; i < closingSteps; i++ {
			loc = NewCoords(loc, xdist, west)
			results = append(results, loc)
		}
	}

	return results
}

// HexBounds returns the (north, east, south, west) bounding box covering a
// hex coverage area, used by HexSearchSpawnpoint to query the known spawn
// points within the scan region.
func HexBounds(origin Point, ringLimit int, stepDistanceKM float64) orb.Bound {
	xdist, _ := ringPitch(stepDistanceKM)
	radiusKM := float64(ringLimit) * xdist

	n := NewCoords(origin, radiusKM, BearingNorthDeg)
	s := NewCoords(origin, radiusKM, BearingSouthDeg)
	e := NewCoords(origin, radiusKM, BearingEastDeg)
	w := NewCoords(origin, radiusKM, BearingWestDeg)

	return orb.Bound{
		Min: orb.Point{w.Lng, s.Lat},
		Max: orb.Point{e.Lng, n.Lat},
	}
}

// Bearing constants in degrees, mirrored from model.Bearing* so this file
// can be read without jumping to another package.
const (
	BearingNorthDeg = float64(model.BearingNorth)
	BearingEastDeg  = float64(model.BearingEast)
	BearingSouthDeg = float64(model.BearingSouth)
	BearingWestDeg  = float64(model.BearingWest)
)
