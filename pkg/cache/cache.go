// Package cache provides the generic key/value cache the elevation
// collaborator uses to avoid re-querying the elevation API for coordinates
// it has already resolved.
package cache

import (
	"context"

	"github.com/rocketmap/scanscheduler/pkg/db"
)

// Cacher is a generic byte-value cache, backed by the shared sqlite cache
// table.
type Cacher interface {
	GetCache(ctx context.Context, key string) ([]byte, bool)
	SetCache(ctx context.Context, key string, val []byte) error
}

// SQLiteCache implements Cacher against the db package's cache table.
type SQLiteCache struct {
	db *db.DB
}

// NewSQLiteCache creates a new cache backed by d.
func NewSQLiteCache(d *db.DB) *SQLiteCache {
	return &SQLiteCache{db: d}
}

func (c *SQLiteCache) GetCache(ctx context.Context, key string) ([]byte, bool) {
	var val []byte
	err := c.db.QueryRowContext(ctx, "SELECT value FROM cache WHERE key = ?", key).Scan(&val)
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *SQLiteCache) SetCache(ctx context.Context, key string, val []byte) error {
	_, err := c.db.ExecContext(ctx,
		"INSERT INTO cache (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, val)
	return err
}
