package weather

import (
	"context"

	"github.com/parkscope/parkscope/internal/upstream"
)

// Query carries the parameters of one current-weather lookup. Units is
// "metric" or "imperial"; Language is an optional provider hint for
// localized condition text.
type Query struct {
	Latitude  float64
	Longitude float64
	Units     string
	Language  string
}

// Provider abstracts one weather upstream (OpenWeather, Open-Meteo).
// Implementations normalize their payload into the canonical Reading but
// leave Source for the caller to stamp.
type Provider interface {
	Name() string
	Current(ctx context.Context, q Query) (Reading, *upstream.Error)
}
