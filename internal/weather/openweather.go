package weather

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/parkscope/parkscope/internal/geo"
	"github.com/parkscope/parkscope/internal/upstream"
)

// OpenWeather is the primary weather provider. It requires an API key and
// reports in the unit system requested by the caller.
type OpenWeather struct {
	apiKey string
	client *upstream.Client
}

func NewOpenWeather(client *upstream.Client, apiKey string) *OpenWeather {
	return &OpenWeather{apiKey: apiKey, client: client}
}

func (p *OpenWeather) Name() string { return "OpenWeather" }

func (p *OpenWeather) Current(ctx context.Context, q Query) (Reading, *upstream.Error) {
	if p.apiKey == "" {
		return Reading{}, upstream.MissingAPIKey(p.Name())
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(q.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(q.Longitude, 'f', -1, 64))
	params.Set("appid", p.apiKey)
	params.Set("units", q.Units)
	if q.Language != "" {
		params.Set("lang", q.Language)
	}

	var payload openWeatherPayload
	if cerr := p.client.GetJSON(ctx, "/weather", params, &payload); cerr != nil {
		return Reading{}, cerr
	}
	return normalizeOpenWeather(payload, q), nil
}

type openWeatherPayload struct {
	Dt   *int64 `json:"dt"`
	Main struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *float64 `json:"humidity"`
		Pressure  *float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed *float64 `json:"speed"`
		Deg   *float64 `json:"deg"`
	} `json:"wind"`
}

// normalizeOpenWeather maps the provider payload onto the canonical
// shape. Absent optional fields stay nil and marshal as null.
func normalizeOpenWeather(data openWeatherPayload, q Query) Reading {
	current := Current{
		Temperature:   data.Main.Temp,
		FeelsLike:     data.Main.FeelsLike,
		Humidity:      data.Main.Humidity,
		Pressure:      data.Main.Pressure,
		WindSpeed:     data.Wind.Speed,
		WindDirection: data.Wind.Deg,
	}
	if len(data.Weather) > 0 {
		cond := data.Weather[0].Main
		desc := data.Weather[0].Description
		current.Condition = &cond
		current.Description = &desc
	}
	if data.Dt != nil {
		ts := time.Unix(*data.Dt, 0).UTC().Format(time.RFC3339)
		current.Timestamp = &ts
	}

	return Reading{
		Location: geo.Coordinates{Latitude: q.Latitude, Longitude: q.Longitude},
		Units:    unitsFor(q.Units),
		Current:  current,
	}
}
