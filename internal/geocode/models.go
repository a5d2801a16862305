package geocode

import "github.com/parkscope/parkscope/internal/upstream"

// Hit is one canonical geocode result.
type Hit struct {
	Name        *string        `json:"name"`
	DisplayName *string        `json:"displayName"`
	Latitude    *float64       `json:"latitude"`
	Longitude   *float64       `json:"longitude"`
	Category    *string        `json:"category"`
	Type        *string        `json:"type"`
	Importance  *float64       `json:"importance"`
	BoundingBox []string       `json:"boundingBox"`
	Address     map[string]any `json:"address"`
}

// SearchResult is the forward-geocoding response.
type SearchResult struct {
	Count     int                 `json:"count"`
	Locations []Hit               `json:"locations"`
	Source    upstream.Provenance `json:"source"`
}

// ReverseResult is the reverse-geocoding response.
type ReverseResult struct {
	PlaceID *int64 `json:"placeId"`
	Hit
	Source upstream.Provenance `json:"source"`
}
