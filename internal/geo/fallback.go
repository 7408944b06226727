package geo

import (
	"strings"

	"dispatch/internal/domain"
)

// DefaultCoordinate is returned when neither the geocoding service nor the
// fallback table can place a location. Colombo city center.
var DefaultCoordinate = domain.Coordinate{Lat: 6.9271, Lng: 79.8612}

// knownPlaces maps lowercase place-name substrings to coordinates. Checked
// when the geocoding service fails or returns nothing.
var knownPlaces = []struct {
	substr string
	coord  domain.Coordinate
}{
	{"colombo", domain.Coordinate{Lat: 6.9271, Lng: 79.8612}},
	{"kandy", domain.Coordinate{Lat: 7.2906, Lng: 80.6337}},
	{"galle", domain.Coordinate{Lat: 6.0535, Lng: 80.2210}},
	{"negombo", domain.Coordinate{Lat: 7.2083, Lng: 79.8358}},
	{"jaffna", domain.Coordinate{Lat: 9.6615, Lng: 80.0255}},
	{"anuradhapura", domain.Coordinate{Lat: 8.3114, Lng: 80.4037}},
	{"trincomalee", domain.Coordinate{Lat: 8.5874, Lng: 81.2152}},
	{"nuwara eliya", domain.Coordinate{Lat: 6.9497, Lng: 80.7891}},
	{"ella", domain.Coordinate{Lat: 6.8667, Lng: 81.0466}},
	{"matara", domain.Coordinate{Lat: 5.9485, Lng: 80.5353}},
	{"sigiriya", domain.Coordinate{Lat: 7.9570, Lng: 80.7603}},
	{"dambulla", domain.Coordinate{Lat: 7.8742, Lng: 80.6511}},
	{"yala", domain.Coordinate{Lat: 6.3728, Lng: 81.5167}},
	{"mirissa", domain.Coordinate{Lat: 5.9483, Lng: 80.4716}},
	{"hikkaduwa", domain.Coordinate{Lat: 6.1395, Lng: 80.1063}},
	{"katunayake", domain.Coordinate{Lat: 7.1697, Lng: 79.8842}},
	{"airport", domain.Coordinate{Lat: 7.1808, Lng: 79.8841}},
	{"bentota", domain.Coordinate{Lat: 6.4189, Lng: 79.9950}},
	{"badulla", domain.Coordinate{Lat: 6.9847, Lng: 81.0564}},
	{"kurunegala", domain.Coordinate{Lat: 7.4863, Lng: 80.3647}},
}

// lookupFallback returns the coordinate for the first known place-name
// substring found in text.
func lookupFallback(text string) (domain.Coordinate, bool) {
	lower := strings.ToLower(text)
	for _, p := range knownPlaces {
		if strings.Contains(lower, p.substr) {
			return p.coord, true
		}
	}
	return domain.Coordinate{}, false
}
