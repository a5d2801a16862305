// Package app wires the upstream and domain clients once at startup.
// Every client is constructed here and passed by reference; nothing in
// the call path holds global mutable state.
package app

import (
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/parkscope/parkscope/internal/airquality"
	"github.com/parkscope/parkscope/internal/config"
	"github.com/parkscope/parkscope/internal/geocode"
	"github.com/parkscope/parkscope/internal/parkctx"
	"github.com/parkscope/parkscope/internal/parks"
	"github.com/parkscope/parkscope/internal/tools"
	"github.com/parkscope/parkscope/internal/upstream"
	"github.com/parkscope/parkscope/internal/weather"
)

// Deps holds the process-wide client graph.
type Deps struct {
	Parks   *parks.Client
	Weather *weather.Chain
	Air     *airquality.Client
	Geo     *geocode.Client
	Context *parkctx.Coordinator

	// Breakers, one per guarded upstream, for the state monitor.
	Breakers []*gobreaker.CircuitBreaker
}

// Build constructs every client from configuration. The shared
// http.Client bounds each individual outbound call via its Timeout.
func Build(cfg *config.AppConfig, httpClient *http.Client) *Deps {
	retry := upstream.DefaultRetry()
	retry.MaxRetries = cfg.MaxRetries

	npsBreaker := newBreaker("nps")
	owBreaker := newBreaker("openweather")
	avBreaker := newBreaker("airvisual")

	npsClient := parks.New(
		upstream.New("nps", cfg.NPSBaseURL, httpClient,
			upstream.WithRetry(retry), upstream.WithBreaker(npsBreaker)),
		cfg.NPSAPIKey,
	)

	openWeather := weather.NewOpenWeather(
		upstream.New("openweather", cfg.OpenWeatherBaseURL, httpClient,
			upstream.WithRetry(retry), upstream.WithBreaker(owBreaker)),
		cfg.OpenWeatherAPIKey,
	)
	// The fallback provider is credential-free and cheap; failures
	// surface on first occurrence.
	openMeteo := weather.NewOpenMeteo(
		upstream.New("openmeteo", cfg.OpenMeteoBaseURL, httpClient,
			upstream.WithoutRetry()),
	)
	chain := weather.NewChain(openWeather, openMeteo)

	air := airquality.New(
		upstream.New("airvisual", cfg.AirVisualBaseURL, httpClient,
			upstream.WithRetry(retry), upstream.WithBreaker(avBreaker)),
		cfg.AirVisualAPIKey,
	)

	geo := geocode.New(
		upstream.New("nominatim", cfg.NominatimBaseURL, httpClient,
			upstream.WithRetry(retry),
			upstream.WithHeader("User-Agent", cfg.NominatimUserAgent)),
		cfg.NominatimContactEmail,
	)

	return &Deps{
		Parks:    npsClient,
		Weather:  chain,
		Air:      air,
		Geo:      geo,
		Context:  parkctx.New(npsClient, chain, air),
		Breakers: []*gobreaker.CircuitBreaker{npsBreaker, owBreaker, avBreaker},
	}
}

// Registry builds the named-operation registry over the client graph.
func (d *Deps) Registry() *tools.Registry {
	return tools.NewRegistry(tools.Deps{
		Parks:   d.Parks,
		Weather: d.Weather,
		Air:     d.Air,
		Geo:     d.Geo,
		Context: d.Context,
	})
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}
