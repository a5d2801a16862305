package weather

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/parkscope/parkscope/internal/geo"
	"github.com/parkscope/parkscope/internal/upstream"
)

// openMeteoFields is the comma-joined field list requested from the
// current-conditions endpoint.
var openMeteoFields = []string{
	"temperature_2m",
	"relative_humidity_2m",
	"apparent_temperature",
	"wind_speed_10m",
	"wind_direction_10m",
	"weather_code",
}

// OpenMeteo is the secondary weather provider. It needs no credential and
// is queried with unit parameters matching the caller's request so its
// output shares the primary provider's unit system.
type OpenMeteo struct {
	client *upstream.Client
}

func NewOpenMeteo(client *upstream.Client) *OpenMeteo {
	return &OpenMeteo{client: client}
}

func (p *OpenMeteo) Name() string { return "Open-Meteo" }

func (p *OpenMeteo) Current(ctx context.Context, q Query) (Reading, *upstream.Error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(q.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(q.Longitude, 'f', -1, 64))
	params.Set("current", strings.Join(openMeteoFields, ","))
	if q.Units == UnitsImperial {
		params.Set("temperature_unit", "fahrenheit")
		params.Set("wind_speed_unit", "mph")
	}

	var payload openMeteoPayload
	if cerr := p.client.GetJSON(ctx, "/forecast", params, &payload); cerr != nil {
		return Reading{}, cerr
	}
	return normalizeOpenMeteo(payload, q), nil
}

type openMeteoPayload struct {
	Current struct {
		Temperature   *float64 `json:"temperature_2m"`
		FeelsLike     *float64 `json:"apparent_temperature"`
		Humidity      *float64 `json:"relative_humidity_2m"`
		WindSpeed     *float64 `json:"wind_speed_10m"`
		WindDirection *float64 `json:"wind_direction_10m"`
		WeatherCode   *int     `json:"weather_code"`
		Time          *string  `json:"time"`
	} `json:"current"`
	CurrentUnits struct {
		Temperature string `json:"temperature_2m"`
		WindSpeed   string `json:"wind_speed_10m"`
	} `json:"current_units"`
}

// normalizeOpenMeteo maps the provider payload onto the canonical shape.
// Unit labels come from the payload itself; the provider was already
// queried in the caller's unit system, so no conversion happens here.
func normalizeOpenMeteo(data openMeteoPayload, q Query) Reading {
	units := Units{
		Temperature: data.CurrentUnits.Temperature,
		WindSpeed:   data.CurrentUnits.WindSpeed,
	}
	if units.Temperature == "" {
		units.Temperature = "C"
	}
	if units.WindSpeed == "" {
		units.WindSpeed = "m/s"
	}

	return Reading{
		Location: geo.Coordinates{Latitude: q.Latitude, Longitude: q.Longitude},
		Units:    units,
		Current: Current{
			Temperature:   data.Current.Temperature,
			FeelsLike:     data.Current.FeelsLike,
			Humidity:      data.Current.Humidity,
			WindSpeed:     data.Current.WindSpeed,
			WindDirection: data.Current.WindDirection,
			ConditionCode: data.Current.WeatherCode,
			Timestamp:     data.Current.Time,
		},
	}
}
