package elevation

import (
	"context"
	"errors"
	"testing"

	"github.com/rocketmap/scanscheduler/pkg/model"
	"github.com/rocketmap/scanscheduler/pkg/tracker"
)

type fakeGetter struct {
	alt   float64
	err   error
	calls int
}

func (f *fakeGetter) Elevation(ctx context.Context, loc model.Location) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.alt, nil
}

type memCache struct {
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (m *memCache) GetCache(ctx context.Context, key string) ([]byte, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *memCache) SetCache(ctx context.Context, key string, val []byte) error {
	m.data[key] = val
	return nil
}

func TestAltitudeUsesDefaultWithNoGetter(t *testing.T) {
	c := New(nil, nil, tracker.New(), nil, Options{DefaultAltitude: 10})
	got := c.Altitude(context.Background(), model.Location{Lat: 1, Lng: 1})
	if got < 10 || got >= 11 {
		t.Errorf("Altitude() = %v, want 10 plus a sub-meter jitter fraction", got)
	}
}

func TestAltitudeCallsGetterAndCaches(t *testing.T) {
	g := &fakeGetter{alt: 100}
	store := newMemCache()
	c := New(g, store, tracker.New(), nil, Options{DefaultAltitude: 0})

	loc := model.Location{Lat: 40.0, Lng: -105.0}
	got := c.Altitude(context.Background(), loc)
	if got < 100 || got >= 101 {
		t.Fatalf("Altitude() = %v, want 100 plus a sub-meter jitter fraction", got)
	}
	if g.calls != 1 {
		t.Fatalf("expected 1 getter call, got %d", g.calls)
	}

	// Second call for the same point should hit the cache, not the getter.
	got2 := c.Altitude(context.Background(), loc)
	if got2 < 100 || got2 >= 101 {
		t.Errorf("second Altitude() = %v, want 100 plus a sub-meter jitter fraction", got2)
	}
	if g.calls != 1 {
		t.Errorf("expected getter to still be called once, got %d", g.calls)
	}
}

func TestAltitudeFallsBackToDefaultOnGetterError(t *testing.T) {
	g := &fakeGetter{err: errors.New("upstream down")}
	c := New(g, nil, tracker.New(), nil, Options{DefaultAltitude: 7})

	got := c.Altitude(context.Background(), model.Location{Lat: 1, Lng: 1})
	if got < 7 || got >= 8 {
		t.Errorf("Altitude() = %v, want fallback 7 plus a sub-meter jitter fraction", got)
	}
}

func TestAltitudeCacheFirstResultShortCircuitsLaterGetterCalls(t *testing.T) {
	g := &fakeGetter{alt: 50}
	c := New(g, nil, tracker.New(), nil, Options{DefaultAltitude: 0, CacheFirstResult: true})

	c.Altitude(context.Background(), model.Location{Lat: 1, Lng: 1})
	c.Altitude(context.Background(), model.Location{Lat: 2, Lng: 2})
	c.Altitude(context.Background(), model.Location{Lat: 3, Lng: 3})

	if g.calls != 1 {
		t.Errorf("expected getter called once with cache_first_result, got %d calls", g.calls)
	}
}

func TestAltitudeJitterStaysWithinRange(t *testing.T) {
	g := &fakeGetter{alt: 100}
	c := New(g, nil, tracker.New(), nil, Options{AltitudeRange: 2})

	for i := 0; i < 20; i++ {
		got := c.jitter(100)
		if got < 98 || got > 102 {
			t.Fatalf("jitter(100) = %v, out of [98, 102]", got)
		}
	}
}
