// Package parkctx composes the park details lookup with weather and air
// quality sub-lookups into one provenance-tagged context document.
package parkctx

import (
	"context"
	"log"
	"time"

	"github.com/parkscope/parkscope/internal/airquality"
	"github.com/parkscope/parkscope/internal/geo"
	"github.com/parkscope/parkscope/internal/parks"
	"github.com/parkscope/parkscope/internal/upstream"
	"github.com/parkscope/parkscope/internal/weather"
)

// Context is the composite result. The Weather and AirQuality slots hold
// either their normalized result or an upstream.Document when that
// sub-lookup failed; callers discriminate by the presence of an "error"
// field, not by error handling.
type Context struct {
	Park        parks.Details   `json:"park"`
	Location    geo.Coordinates `json:"location"`
	Weather     any             `json:"weather"`
	AirQuality  any             `json:"airQuality"`
	GeneratedAt string          `json:"contextGeneratedAt"`
}

// ContextError is a composition failure local to the coordinator, such
// as a park without usable coordinates. It is never retried and never
// triggers fallback.
type ContextError struct {
	Message string
	Details map[string]any
}

func (e *ContextError) Error() string { return "context_error: " + e.Message }

// Document converts the error into its boundary form.
func (e *ContextError) Document() upstream.Document {
	return upstream.Document{Error: "context_error", Message: e.Message, Details: e.Details}
}

// Coordinator runs the composite lookup: the park details step is
// mandatory and fails the whole operation; weather and air quality are
// optional and degrade inline.
type Coordinator struct {
	parks   *parks.Client
	weather *weather.Chain
	air     *airquality.Client
	now     func() time.Time
}

func New(parksClient *parks.Client, chain *weather.Chain, air *airquality.Client) *Coordinator {
	return &Coordinator{
		parks:   parksClient,
		weather: chain,
		air:     air,
		now:     time.Now,
	}
}

// Build assembles the context for one park. The returned error is either
// the mandatory step's *upstream.Error or a *ContextError; in both cases
// no partial context is returned.
func (c *Coordinator) Build(ctx context.Context, parkCode, units string) (Context, error) {
	details, cerr := c.parks.Details(ctx, parkCode)
	if cerr != nil {
		return Context{}, cerr
	}

	if details.Location == nil {
		return Context{}, &ContextError{
			Message: "Park location coordinates are unavailable for this park",
			Details: map[string]any{"parkCode": parkCode},
		}
	}
	loc := *details.Location

	if units == "" {
		units = weather.UnitsMetric
	}

	out := Context{
		Park:        details,
		Location:    loc,
		GeneratedAt: c.now().UTC().Format(time.RFC3339),
	}

	q := weather.Query{Latitude: loc.Latitude, Longitude: loc.Longitude, Units: units}
	if reading, werr := c.weather.Current(ctx, q); werr != nil {
		log.Printf("park context %s: weather degraded (%s)", parkCode, werr.Kind)
		out.Weather = werr.Document()
	} else {
		out.Weather = reading
	}

	if report, aerr := c.air.NearestCity(ctx, loc.Latitude, loc.Longitude); aerr != nil {
		log.Printf("park context %s: air quality degraded (%s)", parkCode, aerr.Kind)
		out.AirQuality = aerr.Document()
	} else {
		out.AirQuality = report
	}

	return out, nil
}
