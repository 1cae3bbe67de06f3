package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rocketmap/scanscheduler/pkg/config"
	"github.com/rocketmap/scanscheduler/pkg/elevation"
	"github.com/rocketmap/scanscheduler/pkg/geo"
	"github.com/rocketmap/scanscheduler/pkg/logging"
	"github.com/rocketmap/scanscheduler/pkg/model"
	"github.com/rocketmap/scanscheduler/pkg/store"
)

// bandWindowSeconds bounds a band item's ripeness window. It is large enough
// that a band item never goes stale within a single 5-minute refresh cycle;
// the actual pacing between band claims comes from nextBandDate, not from
// this window.
const bandWindowSeconds = 7200

// spawnWindowSeconds is the duration a hatched spawn stays visible.
const spawnWindowSeconds = 900

// cellScan is the per-cell state SpeedScan tracks between refreshes: its
// stable location and display step number.
type cellScan struct {
	Cell model.CellID
	Loc  model.Location
	Step int
}

// SpeedScan is the core engine: it runs initial band-filling and targeted
// spawn re-observation simultaneously, scoring candidate items by predictive
// value and claiming the best reachable one under the worker's speed budget.
type SpeedScan struct {
	mu           sync.Mutex
	ready        bool
	queue        []model.QueueItem
	refreshEpoch time.Time
	refreshMs    int
	nextBandDate time.Time
	stats        model.Stats
	lastReport   model.CycleReport

	originMu  sync.Mutex
	origin    model.Location
	hasOrigin bool

	scansMu sync.Mutex
	scans   map[model.CellID]cellScan

	stepLimit       int
	stepDistanceKM  float64
	scanDelay       time.Duration
	kph             float64
	spawnDelay      time.Duration
	refreshInterval time.Duration
	bandSpacing     int // seconds between successive band claims

	elev *elevation.Cache
	st   store.Store
}

// NewSpeedScan builds a SpeedScan scheduler from configuration.
func NewSpeedScan(cfg config.SchedulerConfig, elev *elevation.Cache, st store.Store) *SpeedScan {
	return &SpeedScan{
		refreshEpoch:    time.Now().UTC().Add(-24 * time.Hour),
		stepLimit:       cfg.StepLimit,
		stepDistanceKM:  geo.StepDistance(cfg.NoPokemon),
		scanDelay:       time.Duration(cfg.ScanDelay),
		kph:             cfg.KPH,
		spawnDelay:      time.Duration(cfg.SpawnDelay),
		refreshInterval: time.Duration(cfg.RefreshInterval),
		elev:            elev,
		st:              st,
		stats:           model.NewStats(),
	}
}

// LocationChanged resets scheduler state for a new origin: it regenerates
// the stable SpeedScan location set, writes new ScannedLocation rows, and
// (re)links spawn points to the cells within step distance.
func (s *SpeedScan) LocationChanged(ctx context.Context, origin model.Location) error {
	s.originMu.Lock()
	s.origin = origin
	s.hasOrigin = true
	s.originMu.Unlock()

	s.ScanningPaused()

	originPt := geo.Point{Lat: origin.Lat, Lng: origin.Lng}
	locations := geo.GenerateSpeedScan(originPt, s.stepLimit, s.stepDistanceKM)

	scans := make(map[model.CellID]cellScan, len(locations))
	for i, pt := range locations {
		loc := model.Location{Lat: pt.Lat, Lng: pt.Lng}
		cell := geo.CellID(loc)
		scans[cell] = cellScan{Cell: cell, Loc: loc, Step: i + 1}
	}

	s.scansMu.Lock()
	s.scans = scans
	if len(scans) > 0 {
		s.bandSpacing = int(10 * 60 / len(scans))
	} else {
		s.bandSpacing = 10 * 60
	}
	s.scansMu.Unlock()

	slog.Info("steps created", "count", len(scans))

	// Writes/creates the ScannedLocation row for every cell, same as
	// select_in_hex did in the original dispatcher.
	if _, err := s.st.SelectInHex(ctx, originPt, s.stepLimit, s.stepDistanceKM); err != nil {
		return fmt.Errorf("select scanned locations in hex: %w", err)
	}

	spawnpoints, err := s.st.SpawnPointsInHex(ctx, originPt, s.stepLimit, s.stepDistanceKM)
	if err != nil {
		return fmt.Errorf("select spawn points in hex: %w", err)
	}
	if len(spawnpoints) == 0 {
		slog.Info("no spawn points in hex found; doing initial scan")
	}
	slog.Info("found spawn points within hex", "count", len(spawnpoints))

	linked := 0
	radiusMeters := s.stepDistanceKM * 1000
	for cell, cs := range scans {
		for _, sp := range spawnpoints {
			if geo.Distance(geo.Point{Lat: cs.Loc.Lat, Lng: cs.Loc.Lng}, geo.Point{Lat: sp.Lat, Lng: sp.Lng}) <= radiusMeters {
				if err := s.st.Link(ctx, cell, sp.ID); err != nil {
					slog.Error("failed to link spawn point to cell", "cell", cell, "spawn_point", sp.ID, "error", err)
					continue
				}
				linked++
			}
		}
	}
	if linked > 0 {
		slog.Info("relations found between spawn points and steps", "count", linked)
	} else {
		slog.Info("spawn points assigned")
	}

	return nil
}

// ScanningPaused drops all pending items and clears readiness. Safe to call
// repeatedly.
func (s *SpeedScan) ScanningPaused() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = nil
	s.ready = false
}

// TimeToRefreshQueue reports whether the refresh interval has elapsed or the
// queue has run dry.
func (s *SpeedScan) TimeToRefreshQueue() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue) == 0 || time.Since(s.refreshEpoch) > s.refreshInterval
}

// GetSize reports the current queue length.
func (s *SpeedScan) GetSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Delay enforces the standard movement-pacing formula.
func (s *SpeedScan) Delay(lastScanDate time.Time) time.Duration {
	d := time.Until(lastScanDate.Add(s.scanDelay))
	if d < 2*time.Second {
		return 2 * time.Second
	}
	return d
}

// Schedule rebuilds the queue: band items for every cell's unfilled bands,
// plus spawn/TTH items for every linked, active spawn point. Stats for the
// cycle just ending are computed from the outgoing queue after the new queue
// has been installed.
func (s *SpeedScan) Schedule(ctx context.Context) error {
	s.mu.Lock()
	s.ready = false
	oldQueue := s.queue
	s.mu.Unlock()

	s.originMu.Lock()
	hasOrigin := s.hasOrigin
	origin := geo.Point{Lat: s.origin.Lat, Lng: s.origin.Lng}
	s.originMu.Unlock()

	s.scansMu.Lock()
	scans := s.scans
	bandSpacing := s.bandSpacing
	s.scansMu.Unlock()

	if !hasOrigin || len(scans) == 0 {
		slog.Warn("cannot schedule work until location_changed has been called")
		s.mu.Lock()
		s.queue = nil
		s.mu.Unlock()
		return nil
	}

	nowDate := time.Now().UTC()
	refreshMs := nowDate.Minute()*60 + nowDate.Second()

	scannedLocations, err := s.st.SelectInHex(ctx, origin, s.stepLimit, s.stepDistanceKM)
	if err != nil {
		return fmt.Errorf("select scanned locations: %w", err)
	}
	byCell := make(map[model.CellID]model.ScannedLocation, len(scannedLocations))
	for _, sl := range scannedLocations {
		byCell[sl.Cell] = sl
	}

	spawnPoints, err := s.st.SpawnPointsInHex(ctx, origin, s.stepLimit, s.stepDistanceKM)
	if err != nil {
		return fmt.Errorf("select spawn points: %w", err)
	}
	spByID := make(map[string]model.SpawnPoint, len(spawnPoints))
	for _, sp := range spawnPoints {
		spByID[sp.ID] = sp
	}

	var queue []model.QueueItem
	for cell, cs := range scans {
		sl, ok := byCell[cell]
		if !ok {
			sl = model.ScannedLocation{Cell: cell, Loc: cs.Loc, Step: cs.Step}
		}
		queue = append(queue, bandItems(cs, sl)...)

		ids, err := s.st.SpawnPointIDsForCell(ctx, cell)
		if err != nil {
			slog.Error("failed to load spawn point links for cell", "cell", cell, "error", err)
			continue
		}
		for _, id := range ids {
			sp, ok := spByID[id]
			if !ok || !sp.Active() {
				continue
			}
			queue = append(queue, spawnItems(cs, sp, refreshMs, int(s.spawnDelay.Seconds()))...)
		}
	}

	sort.SliceStable(queue, func(i, j int) bool { return queue[i].Start < queue[j].Start })

	s.mu.Lock()
	s.refreshEpoch = nowDate
	s.refreshMs = refreshMs
	s.queue = queue
	s.ready = true
	s.mu.Unlock()

	slog.Info("new queue created", "entries", len(queue))

	if len(oldQueue) > 0 {
		s.computeCycleReport(ctx, oldQueue, origin, bandSpacing)
	}

	return nil
}

// bandItems emits one queue item per still-unfilled band of sl. Duplicate
// identical items are harmless: scans are idempotent and any worker may
// claim any one of them.
func bandItems(cs cellScan, sl model.ScannedLocation) []model.QueueItem {
	remaining := model.Bands - sl.BandsFilled()
	if remaining <= 0 {
		return nil
	}
	items := make([]model.QueueItem, 0, remaining)
	for i := 0; i < remaining; i++ {
		items = append(items, model.QueueItem{
			Step:  cs.Step,
			Kind:  model.KindBand,
			Loc:   cs.Loc,
			Start: 0,
			End:   bandWindowSeconds,
		})
	}
	return items
}

// spawnItems emits a spawn item aimed at sp's predicted appearance, plus a
// TTH item narrowing its uncertainty window if that window isn't yet zero.
// Start/End live in the same seconds-within-hour-ish domain as refreshMs and
// the ms virtual clock NextItem computes against.
func spawnItems(cs cellScan, sp model.SpawnPoint, refreshMs, spawnDelaySec int) []model.QueueItem {
	items := make([]model.QueueItem, 0, 2)

	predictedMS := refreshMs + secondsUntil(sp.EarliestUnseen, refreshMs)
	items = append(items, model.QueueItem{
		Step:         cs.Step,
		Kind:         model.KindSpawn,
		Loc:          cs.Loc,
		Start:        predictedMS - spawnDelaySec,
		End:          predictedMS + spawnWindowSeconds,
		SpawnPointID: sp.ID,
	})

	if width := sp.IntervalWidth(); width > 0 {
		latestMS := refreshMs + secondsUntil(sp.LatestSeen, refreshMs)
		items = append(items, model.QueueItem{
			Step:         cs.Step,
			Kind:         model.KindTTH,
			Loc:          cs.Loc,
			Start:        latestMS,
			End:          latestMS + width,
			SpawnPointID: sp.ID,
		})
	}

	return items
}

// secondsUntil returns the non-negative offset from `from` to reach `target`,
// both seconds-within-the-hour values, wrapping forward across the hour
// boundary.
func secondsUntil(target, from int) int {
	d := (target - from) % 3600
	if d < 0 {
		d += 3600
	}
	return d
}

// WaitReady spin-waits, with a bounded sleep, for ready to report true. This
// mirrors the original dispatcher's busy-wait contract: callers get told to
// retry rather than receiving an error while the queue is mid-rebuild.
func WaitReady(ready func() bool, maxWait time.Duration) bool {
	deadline := time.Now().Add(maxWait)
	for {
		if ready() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Second)
	}
}

func (s *SpeedScan) isReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// NextItem scores every ripe, reachable item in the queue and claims the
// best one. Per spec, readiness is checked before any mutation — the source
// scheduler mutated item['done'] before its readiness check, a bug this
// reimplementation avoids.
func (s *SpeedScan) NextItem(status *model.WorkerStatus) Result {
	if !WaitReady(s.isReady, 5*time.Second) {
		return Sentinel("Search aborting. Overseer refreshing queue.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return Sentinel("Search aborting. Overseer refreshing queue.")
	}

	nowDate := time.Now().UTC()
	ms := int(nowDate.Sub(s.refreshEpoch).Seconds()) + s.refreshMs
	workerLoc := geo.Point{Lat: status.Latitude, Lng: status.Longitude}

	bestIndex := -1
	bestScore := 0.0
	var bestItem model.QueueItem
	cantReach := false

	for i := range s.queue {
		item := &s.queue[i]
		if item.Done.IsSet() {
			continue
		}
		if ms > item.End {
			item.Done = model.Done{Kind: model.Missed}
			continue
		}
		if nowDate.Before(s.nextBandDate) {
			continue
		}
		if ms < item.Start {
			break
		}

		loc := geo.Point{Lat: item.Loc.Lat, Lng: item.Loc.Lng}
		distance := geo.EquiRectDistance(loc, workerLoc)
		secsToArrival := distance / s.kph * 3600

		if float64(ms)+secsToArrival > float64(item.End) {
			cantReach = true
			continue
		}

		base := 1.0
		switch item.Kind {
		case model.KindBand:
			base = 1e12
		case model.KindTTH:
			base = 1e6
		}
		score := base / (distance + 0.01)

		if score > bestScore {
			bestScore = score
			bestIndex = i
			bestItem = *item
		}
	}

	if bestIndex < 0 {
		if cantReach {
			return Sentinel("Not able to reach any scan under the speed limit")
		}
		return Sentinel("Nothing to scan")
	}

	loc := geo.Point{Lat: bestItem.Loc.Lat, Lng: bestItem.Loc.Lng}
	distance := geo.EquiRectDistance(loc, workerLoc)
	elapsed := nowDate.Sub(status.LastScanDate).Seconds()
	if distance > elapsed*s.kph/3600 {
		return Sentinel(fmt.Sprintf("Moving %dm to step %d for a %s", int(distance*1000), bestItem.Step, bestItem.Kind))
	}

	if s.queue[bestIndex].Done.IsSet() {
		return Sentinel(fmt.Sprintf("Skipping step %d. Other worker already scanned.", bestItem.Step))
	}

	if bestItem.Kind == model.KindBand && bestItem.End-bestItem.Start > 5*60 {
		s.nextBandDate = time.Now().Add(time.Duration(s.bandSpacing) * time.Second)
	}

	s.queue[bestIndex].Done = model.Done{Kind: model.Scanned}
	status.IndexOfQueueItem = bestIndex

	return Result{
		Step: bestItem.Step,
		Loc:  bestItem.Loc,
		Messages: model.Messages{
			Wait:   "Nothing to scan",
			Search: fmt.Sprintf("Scanning step %d for a %s", bestItem.Step, bestItem.Kind),
		},
	}
}

// TaskDone acknowledges the item status last claimed. A bad scan requeues
// the item for a retry within the same refresh cycle; otherwise the item is
// marked complete and, for spawn/TTH kinds, the observation narrows the
// spawn point's hatch window and clears any other pending item this visit
// already resolved.
func (s *SpeedScan) TaskDone(status *model.WorkerStatus, parsed *model.ParsedScan) {
	if parsed == nil {
		return
	}

	s.mu.Lock()
	if status.IndexOfQueueItem < 0 || status.IndexOfQueueItem >= len(s.queue) {
		s.mu.Unlock()
		return
	}
	item := &s.queue[status.IndexOfQueueItem]

	if parsed.BadScan {
		s.stats.ScansMissedList = append(s.stats.ScansMissedList, geo.CellID(item.Loc))
		item.Done = model.Done{}
		slog.Info("putting back step in queue", "step", item.Step)
		s.mu.Unlock()
		return
	}

	nowDate := time.Now().UTC()
	nowSecs := int(nowDate.Unix() % 3600)
	secondsWithinBand := int(nowDate.Sub(s.refreshEpoch).Seconds()) + s.refreshMs

	spawnDelaySec := 0
	if item.Kind == model.KindSpawn {
		spawnDelaySec = int(s.spawnDelay.Seconds())
	}
	startDelay := secondsWithinBand - item.Start - spawnDelaySec
	safetyBuffer := item.End - secondsWithinBand
	if safetyBuffer < 0 {
		slog.Warn("too late for scan", "seconds_late", -safetyBuffer, "kind", item.Kind, "step", item.Step)
	}

	s.stats.ScansDone++
	item.Done = model.Done{Kind: model.Completed, Delay: startDelay}

	kind := item.Kind
	spID := item.SpawnPointID

	if kind == model.KindSpawn {
		if parsed.Found(spID) {
			s.stats.SpawnsFound++
		} else if startDelay > 0 {
			s.stats.SpawnsMissedDelay[spID] = append(s.stats.SpawnsMissedDelay[spID], startDelay)
			item.Done = model.Done{Kind: model.Scanned}
		}
	}

	for id := range parsed.SpawnIDs {
		for i := range s.queue {
			other := &s.queue[i]
			if other.SpawnPointID == id && !other.Done.IsSet() && nowSecs > other.Start && nowSecs < other.End {
				other.Done = model.Done{Kind: model.Scanned}
			}
		}
	}
	s.mu.Unlock()

	if kind == model.KindSpawn || kind == model.KindTTH {
		s.narrowSpawnWindow(context.Background(), spID, nowSecs, parsed.Found(spID))
	}
}

// narrowSpawnWindow records this observation against the spawn point's
// (LatestSeen, EarliestUnseen] hatch window, tightening it per model.SpawnPoint.Observe.
func (s *SpeedScan) narrowSpawnWindow(ctx context.Context, spawnPointID string, secWithinHour int, found bool) {
	if spawnPointID == "" {
		return
	}
	sp, ok, err := s.st.GetSpawnPoint(ctx, spawnPointID)
	if err != nil {
		slog.Error("failed to load spawn point to narrow hatch window", "spawn_point", spawnPointID, "error", err)
		return
	}
	if !ok {
		return
	}
	sp.Observe(secWithinHour, found)
	if err := s.st.UpsertSpawnPoint(ctx, sp); err != nil {
		slog.Error("failed to persist narrowed hatch window", "spawn_point", spawnPointID, "error", err)
	}
}

// GetOverseerMessage summarizes the ripe, unclaimed queue by kind, plus the
// status line left by the last completed refresh cycle.
func (s *SpeedScan) GetOverseerMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := int(time.Now().UTC().Sub(s.refreshEpoch).Seconds()) + s.refreshMs
	counts := map[model.QueueItemKind]int{}
	n := 0
	for _, item := range s.queue {
		if item.Done.IsSet() || ms > item.End {
			continue
		}
		if ms < item.Start {
			break
		}
		n++
		counts[item.Kind]++
	}

	msg := fmt.Sprintf("Scanning status: %d total waiting, %d initial bands, %d TTH searches, and %d new spawns",
		n, counts[model.KindBand], counts[model.KindTTH], counts[model.KindSpawn])
	if s.stats.StatusMessage != "" {
		msg += "\n" + s.stats.StatusMessage
	}
	return msg
}

// LastCycleReport returns the statistics computed at the end of the most
// recent refresh cycle. Zero value until the first refresh with a prior
// queue to summarize completes.
func (s *SpeedScan) LastCycleReport() model.CycleReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReport
}

// computeCycleReport computes the end-of-cycle statistics from the queue that is
// being discarded, logs the summary (matching the original scheduler's
// per-refresh log block) and resets the per-cycle counters. Any failure here
// is caught and logged; it must never abort the refresh that already
// installed the new queue.
func (s *SpeedScan) computeCycleReport(ctx context.Context, oldQueue []model.QueueItem, origin geo.Point, bandSpacing int) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("performance statistics computation panicked", "recover", r)
		}
	}()

	var bandsTimed, spawnsTimed, spawnsFromOthers, spawnsMissedTimed, delaySum int
	for _, item := range oldQueue {
		switch {
		case item.Done.Kind == model.Completed && item.Kind == model.KindBand:
			bandsTimed++
		case item.Done.Kind == model.Completed && item.Kind == model.KindSpawn:
			spawnsTimed++
			delaySum += item.Done.Delay
		case item.Done.Kind == model.Scanned && item.Kind == model.KindSpawn:
			spawnsFromOthers++
		case item.Done.Kind == model.Missed && item.Kind == model.KindSpawn:
			spawnsMissedTimed++
		}
	}
	spawnsAll := spawnsTimed + spawnsFromOthers

	spawnPoints, err := s.st.SpawnPointsInHex(ctx, origin, s.stepLimit, s.stepDistanceKM)
	if err != nil {
		slog.Error("failed to load spawn points for cycle report", "error", err)
		return
	}

	s.scansMu.Lock()
	cells := make([]model.CellID, 0, len(s.scans))
	for cell := range s.scans {
		cells = append(cells, cell)
	}
	totalCells := len(s.scans)
	s.scansMu.Unlock()

	bandsFilled, err := s.st.BandsFilled(ctx, cells)
	if err != nil {
		slog.Error("failed to compute bands filled for cycle report", "error", err)
	}
	bandsTotal := totalCells * model.Bands
	bandPercent := 0.0
	if bandsTotal > 0 {
		bandPercent = float64(bandsFilled) * 100.0 / float64(bandsTotal)
	}

	active, inactive, tthFound := 0, 0, 0
	tthHistogram := map[int]int{}
	for _, sp := range spawnPoints {
		if !sp.Active() {
			inactive++
			continue
		}
		active++
		if sp.TTHKnown() {
			tthFound++
		}
		minutes := int(math.Round(float64(sp.IntervalWidth()) / 60.0))
		tthHistogram[minutes]++
	}
	activeForPct := active
	if activeForPct == 0 {
		activeForPct = 1
	}
	tthPercent := float64(tthFound) * 100.0 / float64(activeForPct)

	spawnsReached := 100.0
	if sum := spawnsAll + spawnsMissedTimed; sum > 0 {
		spawnsReached = float64(spawnsAll) * 100.0 / float64(sum)
	}

	foundPercent := 100.0
	if spawnsTimed > 0 {
		avgDelay := delaySum / spawnsTimed
		missed := 0
		for _, delays := range s.stats.SpawnsMissedDelay {
			missed += len(delays)
		}
		if sum := missed + s.stats.SpawnsFound; sum > 0 {
			foundPercent = float64(s.stats.SpawnsFound) * 100.0 / float64(sum)
		}
		s.stats.SpawnPercentHistory = append(s.stats.SpawnPercentHistory, round1(foundPercent))
		slog.Info("spawn tracking", "found", s.stats.SpawnsFound, "missed", missed,
			"found_percent", foundPercent, "avg_delay_sec", avgDelay, "band_spacing_sec", bandSpacing)
	}

	goodPercent := 100.0
	if sum := s.stats.ScansDone + len(s.stats.ScansMissedList); sum > 0 {
		goodPercent = float64(s.stats.ScansDone) * 100.0 / float64(sum)
	}
	s.stats.ScanPercentHistory = append(s.stats.ScanPercentHistory, round1(goodPercent))

	report := model.CycleReport{
		BandsFilled:       bandsFilled,
		BandsTotal:        bandsTotal,
		BandPercent:       round1(bandPercent),
		ActiveSpawns:      active,
		InactiveSpawns:    inactive,
		TTHFoundCount:     tthFound,
		TTHFoundPercent:   round1(tthPercent),
		TTHRangeHistogram: tthHistogram,
		SpawnsReachedPct:  round1(spawnsReached),
		SpawnsFoundPct:    round1(foundPercent),
		GoodScanPct:       round1(goodPercent),
	}

	statusMessage := fmt.Sprintf(
		"Initial scan: %.2f%%, TTH found: %.2f%%, Spawns reached: %.2f%%, Spawns found: %.2f%%, Good scans %.2f%%",
		report.BandPercent, report.TTHFoundPercent, report.SpawnsReachedPct, report.SpawnsFoundPct, report.GoodScanPct)

	s.mu.Lock()
	s.stats.StatusMessage = statusMessage
	s.lastReport = report
	s.mu.Unlock()

	logging.LogStatusMessage("speedscan", statusMessage)

	slog.Info("refresh cycle report",
		"bands_filled", report.BandsFilled, "bands_total", report.BandsTotal, "band_percent", report.BandPercent,
		"active_spawns", report.ActiveSpawns, "inactive_spawns", report.InactiveSpawns,
		"tth_found", report.TTHFoundCount, "tth_percent", report.TTHFoundPercent, "tth_histogram_minutes", report.TTHRangeHistogram,
		"bands_timed", bandsTimed, "spawns_timed", spawnsTimed,
		"spawns_reached_pct", report.SpawnsReachedPct, "spawns_found_pct", report.SpawnsFoundPct, "good_scan_pct", report.GoodScanPct)

	s.stats.Reset()
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
