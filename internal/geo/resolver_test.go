package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestResolve_ParsesEmbeddedDecimalPair(t *testing.T) {
	// No geocoding endpoint: a well-formed pair must never need one.
	r := NewResolver("", "lk")

	coord := r.Resolve(context.Background(), "6.9271, 79.8612")
	if coord.Lat != 6.9271 || coord.Lng != 79.8612 {
		t.Errorf("unexpected coordinate: %+v", coord)
	}

	coord = r.Resolve(context.Background(), "Pickup at 7.2906,80.6337 please")
	if coord.Lat != 7.2906 || coord.Lng != 80.6337 {
		t.Errorf("unexpected coordinate: %+v", coord)
	}
}

func TestResolve_FallbackWithoutNetwork(t *testing.T) {
	// Endpoint that always fails, standing in for an unreachable service.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	r := NewResolver(server.URL, "lk")

	coord := r.Resolve(context.Background(), "Galle")
	want, ok := lookupFallback("galle")
	if !ok {
		t.Fatal("galle missing from fallback table")
	}
	if coord != want {
		t.Errorf("expected fallback coordinate for Galle %+v, got %+v", want, coord)
	}
}

func TestResolve_FallbackIsCaseInsensitiveSubstring(t *testing.T) {
	r := NewResolver("", "lk")

	coord := r.Resolve(context.Background(), "Hotel near KANDY city center")
	if coord.Lat != 7.2906 || coord.Lng != 80.6337 {
		t.Errorf("unexpected coordinate: %+v", coord)
	}
}

func TestResolve_DefaultForUnknownPlace(t *testing.T) {
	r := NewResolver("", "lk")

	coord := r.Resolve(context.Background(), "somewhere entirely unheard of")
	if coord != DefaultCoordinate {
		t.Errorf("expected default coordinate, got %+v", coord)
	}
}

func TestResolve_UsesGeocodingService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("countrycodes"); got != "lk" {
			t.Errorf("expected country filter lk, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"6.0329","lon":"80.2168","display_name":"Galle Fort"}]`))
	}))
	defer server.Close()

	r := NewResolver(server.URL, "lk")

	coord := r.Resolve(context.Background(), "Galle Fort")
	if coord.Lat != 6.0329 || coord.Lng != 80.2168 {
		t.Errorf("expected service coordinate, got %+v", coord)
	}
}

func TestResolve_MemoizesPerInput(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"6.0329","lon":"80.2168","display_name":"Galle Fort"}]`))
	}))
	defer server.Close()

	r := NewResolver(server.URL, "lk", WithCache(NewMemoryCache(time.Minute)))

	ctx := context.Background()
	first := r.Resolve(ctx, "Galle Fort")
	second := r.Resolve(ctx, "Galle Fort")

	if first != second {
		t.Errorf("memoized result differs: %+v vs %+v", first, second)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected 1 service call, got %d", got)
	}
}

func TestResolve_EmptyResultFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	r := NewResolver(server.URL, "lk")

	coord := r.Resolve(context.Background(), "Colombo")
	if coord != DefaultCoordinate {
		t.Errorf("expected Colombo fallback, got %+v", coord)
	}
}
