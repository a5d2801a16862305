// Package geo holds the coordinate pair shared by every capability that
// keys lookups off a location.
package geo

import "strconv"

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ParsePair parses numeric-in-string coordinate fields, as returned by
// registries that encode numbers as strings. Returns nil when either
// value is absent or unparseable.
func ParsePair(lat, lon string) *Coordinates {
	if lat == "" || lon == "" {
		return nil
	}
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil
	}
	lo, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return nil
	}
	return &Coordinates{Latitude: la, Longitude: lo}
}
