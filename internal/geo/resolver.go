package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/domain"
)

const (
	defaultSearchTimeout = 3 * time.Second
	defaultResultLimit   = 1
)

// decimalPairPattern matches a "lat, lng" pair embedded in a location string.
var decimalPairPattern = regexp.MustCompile(`(-?\d{1,3}\.\d+)\s*,\s*(-?\d{1,3}\.\d+)`)

// Cache memoizes resolved coordinates per distinct input string.
type Cache interface {
	Get(ctx context.Context, text string) (domain.Coordinate, bool)
	Set(ctx context.Context, text string, coord domain.Coordinate)
}

// searchResult is one entry from the geocoding service response.
type searchResult struct {
	Lat         string `json:"lat"`
	Lng         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolver turns a free-text or coordinate-embedded location string into a
// coordinate. It never fails: a coordinate pair parses directly, a geocoding
// lookup supplies the rest, and service failures degrade to the built-in
// place table and finally to DefaultCoordinate.
type Resolver struct {
	baseURL     string
	countryCode string
	client      *http.Client
	cache       Cache
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithHTTPClient overrides the HTTP client used for geocoding lookups.
func WithHTTPClient(client *http.Client) ResolverOption {
	return func(r *Resolver) { r.client = client }
}

// WithCache installs a memoization cache for resolved locations.
func WithCache(cache Cache) ResolverOption {
	return func(r *Resolver) { r.cache = cache }
}

// NewResolver creates a Resolver querying the given geocoding endpoint,
// restricted to results from countryCode. An empty baseURL disables the
// network lookup entirely; only parsing and the fallback table apply.
func NewResolver(baseURL, countryCode string, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		baseURL:     baseURL,
		countryCode: countryCode,
		client:      &http.Client{Timeout: defaultSearchTimeout},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve converts a location string to a coordinate. It always returns a
// usable coordinate; pricing is never blocked on geocoding failure.
func (r *Resolver) Resolve(ctx context.Context, text string) domain.Coordinate {
	text = strings.TrimSpace(text)

	// Embedded "lat, lng" pairs short-circuit everything else.
	if coord, ok := parseDecimalPair(text); ok {
		return coord
	}

	if r.cache != nil {
		if coord, ok := r.cache.Get(ctx, text); ok {
			return coord
		}
	}

	coord, ok := r.search(ctx, text)
	if !ok {
		coord, ok = lookupFallback(text)
		if !ok {
			coord = DefaultCoordinate
		}
	}

	if r.cache != nil {
		r.cache.Set(ctx, text, coord)
	}

	return coord
}

// parseDecimalPair extracts an embedded coordinate pair from text.
func parseDecimalPair(text string) (domain.Coordinate, bool) {
	m := decimalPairPattern.FindStringSubmatch(text)
	if m == nil {
		return domain.Coordinate{}, false
	}

	lat, err1 := strconv.ParseFloat(m[1], 64)
	lng, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil {
		return domain.Coordinate{}, false
	}

	coord := domain.Coordinate{Lat: lat, Lng: lng}
	if !coord.Valid() {
		return domain.Coordinate{}, false
	}

	return coord, true
}

// search queries the external geocoding service and takes the first result.
// Any error, timeout, or empty result reports false.
func (r *Resolver) search(ctx context.Context, text string) (domain.Coordinate, bool) {
	if r.baseURL == "" || text == "" {
		return domain.Coordinate{}, false
	}

	params := url.Values{}
	params.Set("q", text)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(defaultResultLimit))
	if r.countryCode != "" {
		params.Set("countrycodes", r.countryCode)
	}

	reqURL := fmt.Sprintf("%s/search?%s", strings.TrimRight(r.baseURL, "/"), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.Coordinate{}, false
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return domain.Coordinate{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinate{}, false
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinate{}, false
	}

	if len(results) == 0 {
		return domain.Coordinate{}, false
	}

	lat, err1 := strconv.ParseFloat(results[0].Lat, 64)
	lng, err2 := strconv.ParseFloat(results[0].Lng, 64)
	if err1 != nil || err2 != nil {
		return domain.Coordinate{}, false
	}

	coord := domain.Coordinate{Lat: lat, Lng: lng}
	if !coord.Valid() {
		return domain.Coordinate{}, false
	}

	return coord, true
}
