// Package elevation provides the altitude collaborator the scheduler calls
// out to when stamping a Location with an altitude before handing it to a
// worker. It owns its own cache and retry state explicitly, rather than the
// class-level mutable flags the original scheduler used.
package elevation

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync"

	"googlemaps.github.io/maps"

	"github.com/rocketmap/scanscheduler/pkg/cache"
	"github.com/rocketmap/scanscheduler/pkg/model"
	"github.com/rocketmap/scanscheduler/pkg/request"
	"github.com/rocketmap/scanscheduler/pkg/tracker"
)

const provider = "elevation"

// Getter resolves the altitude, in meters, of a single coordinate.
type Getter interface {
	Elevation(ctx context.Context, loc model.Location) (float64, error)
}

// GoogleMapsGetter implements Getter against the Google Maps Elevation API.
type GoogleMapsGetter struct {
	client *maps.Client
}

// NewGoogleMapsGetter builds a Getter from an API key.
func NewGoogleMapsGetter(apiKey string) (*GoogleMapsGetter, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create google maps client: %w", err)
	}
	return &GoogleMapsGetter{client: client}, nil
}

func (g *GoogleMapsGetter) Elevation(ctx context.Context, loc model.Location) (float64, error) {
	results, err := g.client.Elevation(ctx, &maps.ElevationRequest{
		Locations: []maps.LatLng{{Lat: loc.Lat, Lng: loc.Lng}},
	})
	if err != nil {
		return 0, fmt.Errorf("elevation request failed: %w", err)
	}
	if len(results) == 0 {
		return 0, fmt.Errorf("elevation request returned no results")
	}
	return results[0].Elevation, nil
}

// Options configures a Cache.
type Options struct {
	// DefaultAltitude is returned when no getter is configured or every
	// lookup attempt has failed.
	DefaultAltitude float64
	// AltitudeRange bounds the per-call jitter added to a resolved
	// altitude, so two scans of the same cell don't report an identical
	// value.
	AltitudeRange float64
	// CacheFirstResult short-circuits every lookup after the first
	// successful one to the same altitude, jittered. Useful for areas
	// with roughly uniform terrain where a single elevation call for the
	// whole scan region is good enough.
	CacheFirstResult bool
}

// Cache is the elevation-cache collaborator: it owns its own persisted
// cache, hit/miss tracking and upstream backoff so the scheduler never
// touches global mutable state to get an altitude.
type Cache struct {
	mu     sync.Mutex
	getter Getter
	store  cache.Cacher
	track  *tracker.Tracker
	backo  *request.ProviderBackoff

	opts Options

	firstResult *float64
}

// New builds an elevation Cache. getter and store may be nil: a nil getter
// makes every lookup fall back to DefaultAltitude, a nil store disables
// persistence but keeps the first-result shortcut working in-process.
// track must be non-nil; backo may be nil to disable upstream backoff.
func New(getter Getter, store cache.Cacher, track *tracker.Tracker, backo *request.ProviderBackoff, opts Options) *Cache {
	return &Cache{
		getter: getter,
		store:  store,
		track:  track,
		backo:  backo,
		opts:   opts,
	}
}

// Altitude resolves the altitude for loc, consulting the in-process
// first-result shortcut, then the persisted cache, then the upstream getter,
// in that order, and falls back to the configured default on total failure.
func (c *Cache) Altitude(ctx context.Context, loc model.Location) float64 {
	if c.opts.CacheFirstResult {
		c.mu.Lock()
		cached := c.firstResult
		c.mu.Unlock()
		if cached != nil {
			return c.jitter(*cached)
		}
	}

	key := cacheKey(loc)

	if c.store != nil {
		if raw, ok := c.store.GetCache(ctx, key); ok {
			if alt, err := strconv.ParseFloat(string(raw), 64); err == nil {
				c.track.TrackCacheHit(provider)
				c.rememberFirst(alt)
				return c.jitter(alt)
			}
		}
		c.track.TrackCacheMiss(provider)
	}

	if c.getter == nil {
		return c.jitter(c.opts.DefaultAltitude)
	}

	if c.backo != nil {
		c.backo.Wait(provider)
	}

	alt, err := c.getter.Elevation(ctx, loc)
	if err != nil {
		c.track.TrackAPIFailure(provider)
		if c.backo != nil {
			c.backo.RecordFailure(provider)
		}
		return c.jitter(c.opts.DefaultAltitude)
	}

	c.track.TrackAPISuccess(provider)
	if c.backo != nil {
		c.backo.RecordSuccess(provider)
	}

	if c.store != nil {
		_ = c.store.SetCache(ctx, key, []byte(strconv.FormatFloat(alt, 'f', 2, 64)))
	}
	c.rememberFirst(alt)

	return c.jitter(alt)
}

func (c *Cache) rememberFirst(alt float64) {
	if !c.opts.CacheFirstResult {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.firstResult == nil {
		v := alt
		c.firstResult = &v
	}
}

// jitter always adds a continuous sub-meter fraction, plus a whole-meter
// offset bounded by AltitudeRange when it rounds to at least 1, so repeated
// scans of the same cell never report a byte-identical altitude.
func (c *Cache) jitter(alt float64) float64 {
	fraction := rand.Float64()
	if r := int(c.opts.AltitudeRange); r > 0 {
		whole := float64(rand.Intn(2*r) - r)
		return alt + whole + fraction
	}
	return alt + fraction
}

func cacheKey(loc model.Location) string {
	return fmt.Sprintf("elevation:%.5f,%.5f", loc.Lat, loc.Lng)
}
