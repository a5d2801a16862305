// Package parks wraps the National Park Service registry API and
// normalizes its records. The registry encodes numbers as strings,
// including coordinates and pagination counters.
package parks

import (
	"context"
	"net/url"
	"strconv"

	"github.com/parkscope/parkscope/internal/upstream"
)

const (
	providerName = "NPS"
	defaultLimit = 10
)

// ListQuery carries the shared search and pagination parameters of the
// registry's list endpoints. Zero values are omitted from the request.
type ListQuery struct {
	ParkCode   string
	StateCode  string
	Q          string
	Activities string
	DateStart  string
	DateEnd    string
	Limit      int
	Start      int
}

func (q ListQuery) values() url.Values {
	params := url.Values{}
	if q.ParkCode != "" {
		params.Set("parkCode", q.ParkCode)
	}
	if q.StateCode != "" {
		params.Set("stateCode", q.StateCode)
	}
	if q.Q != "" {
		params.Set("q", q.Q)
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	params.Set("limit", strconv.Itoa(limit))
	if q.Start > 0 {
		params.Set("start", strconv.Itoa(q.Start))
	}
	return params
}

// Client wraps the registry API. An API key is mandatory; without one no
// network call is attempted.
type Client struct {
	apiKey string
	client *upstream.Client
}

func New(client *upstream.Client, apiKey string) *Client {
	return &Client{apiKey: apiKey, client: client}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) *upstream.Error {
	if c.apiKey == "" {
		return upstream.MissingAPIKey(providerName)
	}
	params.Set("api_key", c.apiKey)
	return c.client.GetJSON(ctx, endpoint, params, out)
}

// Find searches parks by state, activity, or keyword.
func (c *Client) Find(ctx context.Context, q ListQuery) (List[Park], *upstream.Error) {
	params := q.values()
	if q.Activities != "" {
		params.Set("activities", q.Activities)
	}

	var payload npsPage[npsPark]
	if cerr := c.get(ctx, "/parks", params, &payload); cerr != nil {
		return List[Park]{}, cerr
	}

	out := newList[Park](payload)
	for _, item := range payload.Data {
		out.Data = append(out.Data, normalizePark(item))
	}
	return out, nil
}

// Details fetches a single park by code. An empty result set maps to a
// not_found error: the park code does not exist, which is not an
// upstream failure.
func (c *Client) Details(ctx context.Context, parkCode string) (Details, *upstream.Error) {
	params := url.Values{}
	params.Set("parkCode", parkCode)
	params.Set("limit", "1")

	var payload npsPage[npsPark]
	if cerr := c.get(ctx, "/parks", params, &payload); cerr != nil {
		return Details{}, cerr
	}
	if len(payload.Data) == 0 {
		return Details{}, &upstream.Error{
			Kind:    upstream.KindNotFound,
			Message: "No park found with code " + parkCode,
			Details: map[string]any{"parkCode": parkCode},
		}
	}
	return normalizeDetails(payload.Data[0]), nil
}

// Alerts lists current alerts (closures, hazards, notices).
func (c *Client) Alerts(ctx context.Context, q ListQuery) (List[Alert], *upstream.Error) {
	var payload npsPage[npsAlert]
	if cerr := c.get(ctx, "/alerts", q.values(), &payload); cerr != nil {
		return List[Alert]{}, cerr
	}

	out := newList[Alert](payload)
	for _, item := range payload.Data {
		out.Data = append(out.Data, Alert(item))
	}
	return out, nil
}

// VisitorCenters lists visitor centers with directions info.
func (c *Client) VisitorCenters(ctx context.Context, q ListQuery) (List[VisitorCenter], *upstream.Error) {
	var payload npsPage[npsVisitorCenter]
	if cerr := c.get(ctx, "/visitorcenters", q.values(), &payload); cerr != nil {
		return List[VisitorCenter]{}, cerr
	}

	out := newList[VisitorCenter](payload)
	for _, item := range payload.Data {
		out.Data = append(out.Data, normalizeVisitorCenter(item))
	}
	return out, nil
}

// Campgrounds lists campgrounds with site counts and reservation info.
func (c *Client) Campgrounds(ctx context.Context, q ListQuery) (List[Campground], *upstream.Error) {
	var payload npsPage[npsCampground]
	if cerr := c.get(ctx, "/campgrounds", q.values(), &payload); cerr != nil {
		return List[Campground]{}, cerr
	}

	out := newList[Campground](payload)
	for _, item := range payload.Data {
		out.Data = append(out.Data, normalizeCampground(item))
	}
	return out, nil
}

// Events lists park events, optionally bounded by a date range.
func (c *Client) Events(ctx context.Context, q ListQuery) (List[Event], *upstream.Error) {
	params := q.values()
	if q.DateStart != "" {
		params.Set("dateStart", q.DateStart)
	}
	if q.DateEnd != "" {
		params.Set("dateEnd", q.DateEnd)
	}

	var payload npsPage[npsEvent]
	if cerr := c.get(ctx, "/events", params, &payload); cerr != nil {
		return List[Event]{}, cerr
	}

	out := newList[Event](payload)
	for _, item := range payload.Data {
		out.Data = append(out.Data, normalizeEvent(item))
	}
	return out, nil
}
