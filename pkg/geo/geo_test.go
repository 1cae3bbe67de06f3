package geo

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		p1   Point
		p2   Point
		want float64
	}{
		{
			name: "Same Point",
			p1:   Point{Lat: 0, Lng: 0},
			p2:   Point{Lat: 0, Lng: 0},
			want: 0,
		},
		{
			name: "London to Paris",
			p1:   Point{Lat: 51.5074, Lng: -0.1278},
			p2:   Point{Lat: 48.8566, Lng: 2.3522},
			want: 344000, // Approx 344km
		},
		{
			name: "Equator 1 degree",
			p1:   Point{Lat: 0, Lng: 0},
			p2:   Point{Lat: 0, Lng: 1},
			want: 111319, // Approx 111km
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.p1, tt.p2)
			if math.Abs(got-tt.want) > tt.want*0.01+100 {
				t.Errorf("Distance() = %v, want ~%v", got, tt.want)
			}
		})
	}
}

func TestEquiRectDistanceMatchesHaversineForShortHops(t *testing.T) {
	p1 := Point{Lat: 37.5303, Lng: -122.2881}
	p2 := Point{Lat: 37.5310, Lng: -122.2872}

	haversineKM := Distance(p1, p2) / 1000.0
	equiRectKM := EquiRectDistance(p1, p2)

	if math.Abs(haversineKM-equiRectKM) > 0.002 {
		t.Fatalf("equirect distance %v diverges from haversine %v by more than 2m", equiRectKM, haversineKM)
	}
}

// NewCoords(origin, d, b) then NewCoords(result, d, b+180) returns origin
// within 1 meter, per the round-trip invariant in the specification.
func TestNewCoordsRoundTrip(t *testing.T) {
	origin := Point{Lat: 40.0, Lng: -105.0}

	for _, bearing := range []float64{0, 45, 90, 135, 180, 225, 270, 315} {
		out := NewCoords(origin, 0.5, bearing)
		back := NewCoords(out, 0.5, math.Mod(bearing+180, 360))

		d := Distance(origin, back)
		if d > 1.0 {
			t.Errorf("bearing %v: round trip drifted %v meters, want <= 1m", bearing, d)
		}
	}
}

func TestNewCoordsCardinalDirections(t *testing.T) {
	origin := Point{Lat: 0, Lng: 0}

	north := NewCoords(origin, 111.0, 0)
	if north.Lat <= origin.Lat {
		t.Errorf("travelling north should increase latitude, got %v", north.Lat)
	}

	east := NewCoords(origin, 111.0, 90)
	if east.Lng <= origin.Lng {
		t.Errorf("travelling east should increase longitude, got %v", east.Lng)
	}
}

func TestBearingCardinal(t *testing.T) {
	origin := Point{Lat: 0, Lng: 0}
	north := Point{Lat: 1, Lng: 0}

	b := Bearing(origin, north)
	if math.Abs(b-0) > 0.01 {
		t.Errorf("Bearing(origin, due north) = %v, want ~0", b)
	}
}
