// Package airquality looks up air quality readings from the AirVisual
// nearest-city endpoint and normalizes them into a canonical report.
package airquality

import (
	"context"
	"net/url"
	"strconv"

	"github.com/parkscope/parkscope/internal/geo"
	"github.com/parkscope/parkscope/internal/upstream"
)

const providerName = "AirVisual"

// Client wraps the AirVisual API. An API key is mandatory; without one no
// network call is attempted.
type Client struct {
	apiKey string
	client *upstream.Client
}

func New(client *upstream.Client, apiKey string) *Client {
	return &Client{apiKey: apiKey, client: client}
}

// NearestCity returns the air quality report for the monitoring station
// closest to the given coordinates.
func (c *Client) NearestCity(ctx context.Context, lat, lon float64) (Report, *upstream.Error) {
	if c.apiKey == "" {
		return Report{}, upstream.MissingAPIKey(providerName)
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("key", c.apiKey)

	var payload airVisualPayload
	if cerr := c.client.GetJSON(ctx, "/nearest_city", params, &payload); cerr != nil {
		return Report{}, cerr
	}
	return normalize(payload, lat, lon), nil
}

type airVisualPayload struct {
	Data struct {
		City    *string `json:"city"`
		State   *string `json:"state"`
		Country *string `json:"country"`
		Current struct {
			Pollution struct {
				Ts     *string  `json:"ts"`
				AQIUS  *int     `json:"aqius"`
				MainUS *string  `json:"mainus"`
				AQICN  *int     `json:"aqicn"`
				MainCN *string  `json:"maincn"`
			} `json:"pollution"`
			Weather struct {
				Ts       *string  `json:"ts"`
				Tp       *float64 `json:"tp"`
				Pr       *float64 `json:"pr"`
				Hu       *float64 `json:"hu"`
				Ws       *float64 `json:"ws"`
				Wd       *float64 `json:"wd"`
				Ic       *string  `json:"ic"`
			} `json:"weather"`
		} `json:"current"`
	} `json:"data"`
}

func normalize(data airVisualPayload, lat, lon float64) Report {
	p := data.Data.Current.Pollution
	w := data.Data.Current.Weather

	return Report{
		Location: LocationInfo{
			City:        data.Data.City,
			State:       data.Data.State,
			Country:     data.Data.Country,
			Coordinates: geo.Coordinates{Latitude: lat, Longitude: lon},
		},
		Current: CurrentInfo{
			Pollution: Pollution{
				Timestamp: p.Ts,
				AQIUS:     p.AQIUS,
				MainUS:    p.MainUS,
				AQICN:     p.AQICN,
				MainCN:    p.MainCN,
			},
			Weather: Observation{
				Timestamp:     w.Ts,
				Temperature:   w.Tp,
				Pressure:      w.Pr,
				Humidity:      w.Hu,
				WindSpeed:     w.Ws,
				WindDirection: w.Wd,
				Icon:          w.Ic,
			},
		},
		Source: upstream.Provenance{Provider: providerName},
	}
}
