package domain

// Coordinate is a latitude/longitude pair resolved from a location string.
type Coordinate struct {
	Lat float64
	Lng float64
}

// Valid reports whether the coordinate is within geographic bounds.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}
