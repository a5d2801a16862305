// Package tools exposes the gateway's named operations as a registry of
// described, validated, dispatchable tools.
package tools

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/parkscope/parkscope/internal/airquality"
	"github.com/parkscope/parkscope/internal/geocode"
	"github.com/parkscope/parkscope/internal/parkctx"
	"github.com/parkscope/parkscope/internal/parks"
	"github.com/parkscope/parkscope/internal/upstream"
	"github.com/parkscope/parkscope/internal/weather"
)

// Deps are the domain clients the operations dispatch to. All clients
// are constructed once at startup and injected here.
type Deps struct {
	Parks   *parks.Client
	Weather *weather.Chain
	Air     *airquality.Client
	Geo     *geocode.Client
	Context *parkctx.Coordinator
}

// NewRegistry registers every named operation against its handler.
func NewRegistry(d Deps) *Registry {
	r := &Registry{tools: map[string]Tool{}}
	r.register(Tool{
		Name:        "findParks",
		Description: "Search for national parks by state, activity, or keyword",
		Parameters: objectSchema(map[string]*Schema{
			"stateCode":  {Type: "string", Description: "Comma-separated state codes, e.g. \"CA,OR\""},
			"q":          {Type: "string", Description: "Search term for name or description"},
			"limit":      {Type: "integer", Description: "Maximum results (1-50, default 10)"},
			"start":      {Type: "integer", Description: "Start position for pagination"},
			"activities": {Type: "string", Description: "Comma-separated activities, e.g. \"hiking,camping\""},
		}),
	}, d.findParks)
	r.register(Tool{
		Name:        "getParkDetails",
		Description: "Get detailed information about a specific national park",
		Parameters: objectSchema(map[string]*Schema{
			"parkCode": {Type: "string", Description: "Park code, e.g. \"yose\""},
		}, "parkCode"),
	}, d.getParkDetails)
	r.register(Tool{
		Name:        "getAlerts",
		Description: "Get current park alerts: closures, hazards, notices",
		Parameters:  listSchema(),
	}, d.getAlerts)
	r.register(Tool{
		Name:        "getVisitorCenters",
		Description: "Get visitor centers with directions and contact information",
		Parameters:  listSchema(),
	}, d.getVisitorCenters)
	r.register(Tool{
		Name:        "getCampgrounds",
		Description: "Get campgrounds with site counts and reservation information",
		Parameters:  listSchema(),
	}, d.getCampgrounds)
	r.register(Tool{
		Name:        "getEvents",
		Description: "Get park events, optionally bounded by a date range",
		Parameters: objectSchema(map[string]*Schema{
			"parkCode":  {Type: "string", Description: "Comma-separated park codes"},
			"q":         {Type: "string", Description: "Search term for title or description"},
			"limit":     {Type: "integer", Description: "Maximum results (1-50, default 10)"},
			"start":     {Type: "integer", Description: "Start position for pagination"},
			"dateStart": {Type: "string", Description: "Start date, YYYY-MM-DD"},
			"dateEnd":   {Type: "string", Description: "End date, YYYY-MM-DD"},
		}),
	}, d.getEvents)
	r.register(Tool{
		Name:        "geocodeLocation",
		Description: "Geocode an address, place name, or landmark into coordinates",
		Parameters: objectSchema(map[string]*Schema{
			"q":     {Type: "string", Description: "Location query"},
			"limit": {Type: "integer", Description: "Maximum results (1-10, default 5)"},
		}, "q"),
	}, d.geocodeLocation)
	r.register(Tool{
		Name:        "reverseGeocode",
		Description: "Reverse geocode coordinates into a structured address",
		Parameters:  coordinateSchema(nil),
	}, d.reverseGeocode)
	r.register(Tool{
		Name:        "getWeather",
		Description: "Get current weather for coordinates, with provider fallback",
		Parameters: coordinateSchema(map[string]*Schema{
			"units":    {Type: "string", Description: "\"metric\" or \"imperial\" (default metric)"},
			"language": {Type: "string", Description: "Language code for localized conditions"},
		}),
	}, d.getWeather)
	r.register(Tool{
		Name:        "getAirQuality",
		Description: "Get air quality near coordinates",
		Parameters:  coordinateSchema(nil),
	}, d.getAirQuality)
	r.register(Tool{
		Name:        "getParkContext",
		Description: "Get combined park, weather, and air quality context",
		Parameters: objectSchema(map[string]*Schema{
			"parkCode": {Type: "string", Description: "Park code, e.g. \"yose\""},
			"units":    {Type: "string", Description: "\"metric\" or \"imperial\" (default metric)"},
		}, "parkCode"),
	}, d.getParkContext)
	return r
}

func objectSchema(props map[string]*Schema, required ...string) Schema {
	return Schema{Type: "object", Properties: props, Required: required}
}

func listSchema() Schema {
	return objectSchema(map[string]*Schema{
		"parkCode": {Type: "string", Description: "Comma-separated park codes"},
		"q":        {Type: "string", Description: "Search term for name or description"},
		"limit":    {Type: "integer", Description: "Maximum results (1-50, default 10)"},
		"start":    {Type: "integer", Description: "Start position for pagination"},
	})
}

func coordinateSchema(extra map[string]*Schema) Schema {
	props := map[string]*Schema{
		"latitude":  {Type: "number", Description: "Latitude, -90 to 90"},
		"longitude": {Type: "number", Description: "Longitude, -180 to 180"},
	}
	for k, v := range extra {
		props[k] = v
	}
	return objectSchema(props, "latitude", "longitude")
}

func (d Deps) findParks(ctx context.Context, raw json.RawMessage) any {
	var p FindParksParams
	if doc := bind(raw, &p); doc != nil {
		return *doc
	}
	result, cerr := d.Parks.Find(ctx, parks.ListQuery{
		StateCode:  p.StateCode,
		Q:          p.Q,
		Limit:      p.Limit,
		Start:      p.Start,
		Activities: p.Activities,
	})
	if cerr != nil {
		return cerr.Document()
	}
	return result
}

func (d Deps) getParkDetails(ctx context.Context, raw json.RawMessage) any {
	var p ParkDetailsParams
	if doc := bind(raw, &p); doc != nil {
		return *doc
	}
	result, cerr := d.Parks.Details(ctx, p.ParkCode)
	if cerr != nil {
		return cerr.Document()
	}
	return result
}

func (d Deps) getAlerts(ctx context.Context, raw json.RawMessage) any {
	var p ListParams
	if doc := bind(raw, &p); doc != nil {
		return *doc
	}
	result, cerr := d.Parks.Alerts(ctx, listQuery(p))
	if cerr != nil {
		return cerr.Document()
	}
	return result
}

func (d Deps) getVisitorCenters(ctx context.Context, raw json.RawMessage) any {
	var p ListParams
	if doc := bind(raw, &p); doc != nil {
		return *doc
	}
	result, cerr := d.Parks.VisitorCenters(ctx, listQuery(p))
	if cerr != nil {
		return cerr.Document()
	}
	return result
}

func (d Deps) getCampgrounds(ctx context.Context, raw json.RawMessage) any {
	var p ListParams
	if doc := bind(raw, &p); doc != nil {
		return *doc
	}
	result, cerr := d.Parks.Campgrounds(ctx, listQuery(p))
	if cerr != nil {
		return cerr.Document()
	}
	return result
}

func (d Deps) getEvents(ctx context.Context, raw json.RawMessage) any {
	var p EventsParams
	if doc := bind(raw, &p); doc != nil {
		return *doc
	}
	q := listQuery(p.ListParams)
	q.DateStart = p.DateStart
	q.DateEnd = p.DateEnd
	result, cerr := d.Parks.Events(ctx, q)
	if cerr != nil {
		return cerr.Document()
	}
	return result
}

func (d Deps) geocodeLocation(ctx context.Context, raw json.RawMessage) any {
	var p GeocodeParams
	if doc := bind(raw, &p); doc != nil {
		return *doc
	}
	result, cerr := d.Geo.Search(ctx, p.Q, p.Limit)
	if cerr != nil {
		return cerr.Document()
	}
	return result
}

func (d Deps) reverseGeocode(ctx context.Context, raw json.RawMessage) any {
	var p CoordinateParams
	if doc := bind(raw, &p); doc != nil {
		return *doc
	}
	result, cerr := d.Geo.Reverse(ctx, *p.Latitude, *p.Longitude)
	if cerr != nil {
		return cerr.Document()
	}
	return result
}

func (d Deps) getWeather(ctx context.Context, raw json.RawMessage) any {
	var p WeatherParams
	if doc := bind(raw, &p); doc != nil {
		return *doc
	}
	units := p.Units
	if units == "" {
		units = weather.UnitsMetric
	}
	reading, cerr := d.Weather.Current(ctx, weather.Query{
		Latitude:  *p.Latitude,
		Longitude: *p.Longitude,
		Units:     units,
		Language:  p.Language,
	})
	if cerr != nil {
		return cerr.Document()
	}
	return reading
}

func (d Deps) getAirQuality(ctx context.Context, raw json.RawMessage) any {
	var p CoordinateParams
	if doc := bind(raw, &p); doc != nil {
		return *doc
	}
	result, cerr := d.Air.NearestCity(ctx, *p.Latitude, *p.Longitude)
	if cerr != nil {
		return cerr.Document()
	}
	return result
}

func (d Deps) getParkContext(ctx context.Context, raw json.RawMessage) any {
	var p ParkContextParams
	if doc := bind(raw, &p); doc != nil {
		return *doc
	}
	result, err := d.Context.Build(ctx, p.ParkCode, p.Units)
	if err != nil {
		return errorDocument(err)
	}
	return result
}

func listQuery(p ListParams) parks.ListQuery {
	return parks.ListQuery{ParkCode: p.ParkCode, Q: p.Q, Limit: p.Limit, Start: p.Start}
}

// errorDocument converts any operation failure into its boundary form.
func errorDocument(err error) upstream.Document {
	var uerr *upstream.Error
	if errors.As(err, &uerr) {
		return uerr.Document()
	}
	var cerr *parkctx.ContextError
	if errors.As(err, &cerr) {
		return cerr.Document()
	}
	return upstream.Document{Error: string(upstream.KindUnknown), Message: err.Error()}
}
