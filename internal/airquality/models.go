package airquality

import (
	"github.com/parkscope/parkscope/internal/geo"
	"github.com/parkscope/parkscope/internal/upstream"
)

// Report is the canonical air quality result. Fields the station did not
// report marshal as explicit null.
type Report struct {
	Location LocationInfo        `json:"location"`
	Current  CurrentInfo         `json:"current"`
	Source   upstream.Provenance `json:"source"`
}

type LocationInfo struct {
	City        *string         `json:"city"`
	State       *string         `json:"state"`
	Country     *string         `json:"country"`
	Coordinates geo.Coordinates `json:"coordinates"`
}

type CurrentInfo struct {
	Pollution Pollution   `json:"pollution"`
	Weather   Observation `json:"weather"`
}

// Pollution carries the US and Chinese AQI values with their dominant
// pollutants.
type Pollution struct {
	Timestamp *string `json:"timestamp"`
	AQIUS     *int    `json:"aqius"`
	MainUS    *string `json:"mainus"`
	AQICN     *int    `json:"aqicn"`
	MainCN    *string `json:"maincn"`
}

// Observation is the station's co-located weather measurement.
type Observation struct {
	Timestamp     *string  `json:"timestamp"`
	Temperature   *float64 `json:"temperature"`
	Pressure      *float64 `json:"pressure"`
	Humidity      *float64 `json:"humidity"`
	WindSpeed     *float64 `json:"windSpeed"`
	WindDirection *float64 `json:"windDirection"`
	Icon          *string  `json:"icon"`
}
