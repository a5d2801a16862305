package weather

import (
	"github.com/parkscope/parkscope/internal/geo"
	"github.com/parkscope/parkscope/internal/upstream"
)

// Units names the unit system of a reading's numeric fields.
type Units struct {
	Temperature string `json:"temperature"`
	WindSpeed   string `json:"windSpeed"`
}

// Current is the canonical, provider-independent observation. Fields the
// source did not supply marshal as explicit null, never omitted.
type Current struct {
	Temperature   *float64 `json:"temperature"`
	FeelsLike     *float64 `json:"feelsLike"`
	Humidity      *float64 `json:"humidity"`
	Pressure      *float64 `json:"pressure"`
	WindSpeed     *float64 `json:"windSpeed"`
	WindDirection *float64 `json:"windDirection"`
	Condition     *string  `json:"condition"`
	Description   *string  `json:"description"`
	ConditionCode *int     `json:"conditionCode"`
	Timestamp     *string  `json:"timestamp"`
}

// Reading is the canonical weather result for one location.
type Reading struct {
	Location geo.Coordinates     `json:"location"`
	Units    Units               `json:"units"`
	Current  Current             `json:"current"`
	Source   upstream.Provenance `json:"source"`
}

// metricUnits / imperialUnits label the unit system the primary provider
// was asked for. The secondary provider reports its own unit labels.
func unitsFor(units string) Units {
	if units == UnitsImperial {
		return Units{Temperature: "F", WindSpeed: "mph"}
	}
	return Units{Temperature: "C", WindSpeed: "m/s"}
}

const (
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"
)
