package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rocketmap/scanscheduler/pkg/db"
	"github.com/rocketmap/scanscheduler/pkg/geo"
	"github.com/rocketmap/scanscheduler/pkg/model"
)

// SQLiteStore implements Store against the db package's sqlite connection.
type SQLiteStore struct {
	db *db.DB
}

// NewSQLiteStore wraps d as a Store.
func NewSQLiteStore(d *db.DB) *SQLiteStore {
	return &SQLiteStore{db: d}
}

func (s *SQLiteStore) SelectInHex(ctx context.Context, origin geo.Point, ringLimit int, stepDistanceKM float64) ([]model.ScannedLocation, error) {
	locations := geo.GenerateSpeedScan(origin, ringLimit, stepDistanceKM)
	results := make([]model.ScannedLocation, 0, len(locations))

	for step, pt := range locations {
		loc := model.Location{Lat: pt.Lat, Lng: pt.Lng}
		cell := geo.CellID(loc)

		sl, err := s.getScannedLocation(ctx, cell)
		if err != nil {
			return nil, err
		}
		if sl == nil {
			fresh := model.ScannedLocation{Cell: cell, Loc: loc, Step: step}
			if err := s.UpsertScannedLocation(ctx, fresh); err != nil {
				return nil, err
			}
			sl = &fresh
		}
		results = append(results, *sl)
	}

	return results, nil
}

func (s *SQLiteStore) getScannedLocation(ctx context.Context, cell model.CellID) (*model.ScannedLocation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT lat, lng, step, band0, band1, band2, band3, band4 FROM scanned_location WHERE cell_id = ?`,
		cell.String())

	var sl model.ScannedLocation
	var bands [model.Bands]int64
	err := row.Scan(&sl.Loc.Lat, &sl.Loc.Lng, &sl.Step, &bands[0], &bands[1], &bands[2], &bands[3], &bands[4])
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select scanned_location: %w", err)
	}
	sl.Cell = cell
	for i, b := range bands {
		sl.Bands[i] = b >= 0
	}
	return &sl, nil
}

func (s *SQLiteStore) UpsertScannedLocation(ctx context.Context, loc model.ScannedLocation) error {
	bandVal := func(filled bool) int64 {
		if filled {
			return 1
		}
		return -1
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scanned_location (cell_id, lat, lng, step, band0, band1, band2, band3, band4, last_modified)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(cell_id) DO UPDATE SET
			lat=excluded.lat, lng=excluded.lng, step=excluded.step,
			band0=excluded.band0, band1=excluded.band1, band2=excluded.band2,
			band3=excluded.band3, band4=excluded.band4, last_modified=CURRENT_TIMESTAMP`,
		loc.Cell.String(), loc.Loc.Lat, loc.Loc.Lng, loc.Step,
		bandVal(loc.Bands[0]), bandVal(loc.Bands[1]), bandVal(loc.Bands[2]), bandVal(loc.Bands[3]), bandVal(loc.Bands[4]))
	if err != nil {
		return fmt.Errorf("upsert scanned_location: %w", err)
	}
	return nil
}

func (s *SQLiteStore) BandsFilled(ctx context.Context, cells []model.CellID) (int, error) {
	total := 0
	for _, cell := range cells {
		sl, err := s.getScannedLocation(ctx, cell)
		if err != nil {
			return 0, err
		}
		if sl != nil {
			total += sl.BandsFilled()
		}
	}
	return total, nil
}

func (s *SQLiteStore) SpawnPointsInHex(ctx context.Context, origin geo.Point, ringLimit int, stepDistanceKM float64) ([]model.SpawnPoint, error) {
	bound := geo.HexBounds(origin, ringLimit, stepDistanceKM)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, lat, lng, earliest_unseen, latest_seen, kind, missed_count
		 FROM spawn_point WHERE lat BETWEEN ? AND ? AND lng BETWEEN ? AND ?`,
		bound.Min[1], bound.Max[1], bound.Min[0], bound.Max[0])
	if err != nil {
		return nil, fmt.Errorf("select spawn_point in hex: %w", err)
	}
	defer rows.Close()

	return scanSpawnPoints(rows)
}

func (s *SQLiteStore) SpawnPointsNear(ctx context.Context, loc geo.Point, radiusMeters float64) ([]model.SpawnPoint, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, lat, lng, earliest_unseen, latest_seen, kind, missed_count FROM spawn_point`)
	if err != nil {
		return nil, fmt.Errorf("select spawn_point: %w", err)
	}
	defer rows.Close()

	all, err := scanSpawnPoints(rows)
	if err != nil {
		return nil, err
	}

	near := make([]model.SpawnPoint, 0, len(all))
	for _, sp := range all {
		if geo.Distance(loc, geo.Point{Lat: sp.Lat, Lng: sp.Lng}) <= radiusMeters {
			near = append(near, sp)
		}
	}
	return near, nil
}

func (s *SQLiteStore) GetSpawnPoint(ctx context.Context, id string) (model.SpawnPoint, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, lat, lng, earliest_unseen, latest_seen, kind, missed_count FROM spawn_point WHERE id = ?`, id)

	var sp model.SpawnPoint
	var kind string
	err := row.Scan(&sp.ID, &sp.Lat, &sp.Lng, &sp.EarliestUnseen, &sp.LatestSeen, &kind, &sp.MissedCount)
	if err == sql.ErrNoRows {
		return model.SpawnPoint{}, false, nil
	}
	if err != nil {
		return model.SpawnPoint{}, false, fmt.Errorf("select spawn_point: %w", err)
	}
	sp.Kind = model.SpawnPointKind(kind)
	return sp, true, nil
}

func (s *SQLiteStore) UpsertSpawnPoint(ctx context.Context, sp model.SpawnPoint) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO spawn_point (id, lat, lng, earliest_unseen, latest_seen, kind, missed_count, last_scanned)
		 VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET
			lat=excluded.lat, lng=excluded.lng,
			earliest_unseen=excluded.earliest_unseen, latest_seen=excluded.latest_seen,
			kind=excluded.kind, missed_count=excluded.missed_count, last_scanned=CURRENT_TIMESTAMP`,
		sp.ID, sp.Lat, sp.Lng, sp.EarliestUnseen, sp.LatestSeen, string(sp.Kind), sp.MissedCount)
	if err != nil {
		return fmt.Errorf("upsert spawn_point: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Link(ctx context.Context, cell model.CellID, spawnPointID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO scan_spawn_point (cell_id, spawnpoint_id) VALUES (?, ?)`,
		cell.String(), spawnPointID)
	if err != nil {
		return fmt.Errorf("link scan_spawn_point: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SpawnPointIDsForCell(ctx context.Context, cell model.CellID) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT spawnpoint_id FROM scan_spawn_point WHERE cell_id = ?`, cell.String())
	if err != nil {
		return nil, fmt.Errorf("select scan_spawn_point: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan scan_spawn_point row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) GetState(ctx context.Context, key string) (string, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM persistent_state WHERE key = ?`, key)

	var value string
	err := row.Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select persistent_state: %w", err)
	}
	return value, true, nil
}

func (s *SQLiteStore) SetState(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO persistent_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("upsert persistent_state: %w", err)
	}
	return nil
}

func scanSpawnPoints(rows *sql.Rows) ([]model.SpawnPoint, error) {
	var out []model.SpawnPoint
	for rows.Next() {
		var sp model.SpawnPoint
		var kind string
		if err := rows.Scan(&sp.ID, &sp.Lat, &sp.Lng, &sp.EarliestUnseen, &sp.LatestSeen, &kind, &sp.MissedCount); err != nil {
			return nil, fmt.Errorf("scan spawn_point row: %w", err)
		}
		sp.Kind = model.SpawnPointKind(kind)
		out = append(out, sp)
	}
	return out, rows.Err()
}
