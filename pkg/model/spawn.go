package model

// Bands is the number of one-hour sampling windows tracked per cell.
const Bands = 5

// InactiveMissThreshold is the miss count above which a spawn point is
// considered inactive and excluded from scheduling.
const InactiveMissThreshold = 5

// ScannedLocation is the per-cell band bitmap used by SpeedScan's initial
// band-filling loop.
type ScannedLocation struct {
	Cell  CellID
	Loc   Location
	Step  int
	Bands [Bands]bool
}

// BandsFilled returns how many of the five bands have been successfully
// scanned. Invariant: 0 <= BandsFilled() <= Bands.
func (s *ScannedLocation) BandsFilled() int {
	n := 0
	for _, b := range s.Bands {
		if b {
			n++
		}
	}
	return n
}

// InitialComplete reports whether all five bands have been filled.
func (s *ScannedLocation) InitialComplete() bool {
	return s.BandsFilled() == Bands
}

// SpawnPointKind distinguishes the appearance classes recorded by the
// upstream game protocol (opaque to the scheduler beyond grouping/stats).
type SpawnPointKind string

// SpawnPoint tracks what is known about a single spawn location's hatch
// timing. EarliestUnseen and LatestSeen are seconds-within-the-hour; the
// true hatch time lies in the half-open interval (LatestSeen, EarliestUnseen]
// mod 3600, and that interval only ever shrinks as evidence accumulates.
type SpawnPoint struct {
	ID             string
	Lat            float64
	Lng            float64
	EarliestUnseen int
	LatestSeen     int
	Kind           SpawnPointKind
	MissedCount    int
}

// TTHKnown reports whether the hatch second is fully determined.
func (sp *SpawnPoint) TTHKnown() bool {
	return sp.EarliestUnseen == sp.LatestSeen
}

// IntervalWidth returns the width in seconds of the still-uncertain window,
// wrapping modulo one hour.
func (sp *SpawnPoint) IntervalWidth() int {
	w := (sp.EarliestUnseen - sp.LatestSeen) % 3600
	if w < 0 {
		w += 3600
	}
	return w
}

// Active reports whether the spawn point should still be scheduled.
func (sp *SpawnPoint) Active() bool {
	return sp.MissedCount <= InactiveMissThreshold
}

// Observe narrows the (LatestSeen, EarliestUnseen] hatch window with a single
// scan result at secWithinHour. found=true means the spawn was already up at
// that second, which can only tighten the upper bound (EarliestUnseen);
// found=false means it hadn't hatched yet, which can only tighten the lower
// bound (LatestSeen). The interval never widens.
func (sp *SpawnPoint) Observe(secWithinHour int, found bool) {
	if found {
		if sp.EarliestUnseen < 0 || secWithinHour < sp.EarliestUnseen {
			sp.EarliestUnseen = secWithinHour
		}
		return
	}
	if secWithinHour > sp.LatestSeen {
		sp.LatestSeen = secWithinHour
	}
}

// ScanSpawnPoint is the many-to-many association between a cell and a spawn
// point within step distance of its center.
type ScanSpawnPoint struct {
	Cell         CellID
	SpawnPointID string
}
