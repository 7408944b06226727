package redis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"dispatch/internal/domain"
)

const (
	geocodeCachePrefix = "cache:geocode:"

	// Place names are stable; a long TTL avoids re-hitting the geocoder.
	GeocodeCacheTTL = 24 * time.Hour
)

// GeocodeCache stores resolved coordinates in Redis, shared across requests
// and instances. It implements geo.Cache.
type GeocodeCache struct {
	client *redis.Client
}

// NewGeocodeCache creates a new GeocodeCache.
func NewGeocodeCache(client *redis.Client) *GeocodeCache {
	return &GeocodeCache{client: client}
}

type cachedCoordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Get retrieves a cached coordinate for a location string.
func (s *GeocodeCache) Get(ctx context.Context, text string) (domain.Coordinate, bool) {
	data, err := s.client.Get(ctx, geocodeKey(text)).Bytes()
	if err != nil {
		// Cache miss or Redis error; the resolver falls through to lookup.
		return domain.Coordinate{}, false
	}

	var cached cachedCoordinate
	if err := json.Unmarshal(data, &cached); err != nil {
		return domain.Coordinate{}, false
	}

	return domain.Coordinate{Lat: cached.Lat, Lng: cached.Lng}, true
}

// Set stores a resolved coordinate for a location string.
func (s *GeocodeCache) Set(ctx context.Context, text string, coord domain.Coordinate) {
	data, err := json.Marshal(cachedCoordinate{Lat: coord.Lat, Lng: coord.Lng})
	if err != nil {
		return
	}
	_ = s.client.Set(ctx, geocodeKey(text), data, GeocodeCacheTTL).Err()
}

func geocodeKey(text string) string {
	return geocodeCachePrefix + strings.ToLower(strings.TrimSpace(text))
}
