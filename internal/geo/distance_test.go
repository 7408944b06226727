package geo

import (
	"math"
	"testing"

	"dispatch/internal/domain"
)

var (
	colombo = domain.Coordinate{Lat: 6.9271, Lng: 79.8612}
	kandy   = domain.Coordinate{Lat: 7.2906, Lng: 80.6337}
	galle   = domain.Coordinate{Lat: 6.0535, Lng: 80.2210}
)

func TestDistanceKm_Symmetry(t *testing.T) {
	pairs := []struct {
		a, b domain.Coordinate
	}{
		{colombo, kandy},
		{colombo, galle},
		{kandy, galle},
		{colombo, domain.Coordinate{Lat: -33.8688, Lng: 151.2093}},
	}

	for _, p := range pairs {
		ab := DistanceKm(p.a, p.b)
		ba := DistanceKm(p.b, p.a)
		if ab != ba {
			t.Errorf("distance not symmetric: %v != %v for %v/%v", ab, ba, p.a, p.b)
		}
	}
}

func TestDistanceKm_ZeroForIdenticalPoints(t *testing.T) {
	points := []domain.Coordinate{colombo, kandy, galle, {Lat: 0, Lng: 0}}

	for _, p := range points {
		if d := DistanceKm(p, p); d != 0 {
			t.Errorf("expected 0 for identical points %v, got %v", p, d)
		}
	}
}

func TestDistanceKm_ColomboToKandy(t *testing.T) {
	// Great-circle distance is around 94 km (road distance is longer).
	d := DistanceKm(colombo, kandy)
	if d < 90 || d > 100 {
		t.Errorf("expected Colombo-Kandy around 94 km, got %v", d)
	}
}

func TestDistanceKm_RoundedToOneDecimal(t *testing.T) {
	d := DistanceKm(colombo, galle)
	if math.Round(d*10)/10 != d {
		t.Errorf("expected one-decimal rounding, got %v", d)
	}
}
