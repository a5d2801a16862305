// Package geocode wraps the Nominatim search and reverse endpoints and
// normalizes their results into canonical geocode hits.
package geocode

import (
	"context"
	"net/url"
	"strconv"

	"github.com/parkscope/parkscope/internal/common"
	"github.com/parkscope/parkscope/internal/upstream"
)

const providerName = "Nominatim"

// Client wraps the Nominatim API. No credential is required; a contact
// email is appended when configured, per the service's usage policy.
type Client struct {
	client       *upstream.Client
	contactEmail string
}

func New(client *upstream.Client, contactEmail string) *Client {
	return &Client{client: client, contactEmail: contactEmail}
}

// Search geocodes a free-form query into up to limit hits.
func (c *Client) Search(ctx context.Context, query string, limit int) (SearchResult, *upstream.Error) {
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("limit", strconv.Itoa(limit))
	if c.contactEmail != "" {
		params.Set("email", c.contactEmail)
	}

	var payload []nominatimPlace
	if cerr := c.client.GetJSON(ctx, "/search", params, &payload); cerr != nil {
		return SearchResult{}, cerr
	}

	hits := make([]Hit, 0, len(payload))
	for _, item := range payload {
		hits = append(hits, normalizeHit(item))
	}
	return SearchResult{
		Count:     len(hits),
		Locations: hits,
		Source:    upstream.Provenance{Provider: providerName},
	}, nil
}

// Reverse resolves coordinates into a structured place. An empty reply
// maps to a not_found error rather than an upstream failure.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (ReverseResult, *upstream.Error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	if c.contactEmail != "" {
		params.Set("email", c.contactEmail)
	}

	var payload nominatimPlace
	if cerr := c.client.GetJSON(ctx, "/reverse", params, &payload); cerr != nil {
		return ReverseResult{}, cerr
	}

	if payload.DisplayName == "" && payload.Lat == "" {
		return ReverseResult{}, &upstream.Error{
			Kind:    upstream.KindNotFound,
			Message: "No reverse geocode result found for the coordinates provided",
			Details: map[string]any{"latitude": lat, "longitude": lon},
		}
	}

	return ReverseResult{
		PlaceID: payload.PlaceID,
		Hit:     normalizeHit(payload),
		Source:  upstream.Provenance{Provider: providerName},
	}, nil
}

// nominatimPlace covers the fields read from both /search and /reverse.
// Coordinates arrive as numeric-in-string fields.
type nominatimPlace struct {
	PlaceID     *int64         `json:"place_id"`
	Name        string         `json:"name"`
	DisplayName string         `json:"display_name"`
	Lat         string         `json:"lat"`
	Lon         string         `json:"lon"`
	Category    *string        `json:"category"`
	Type        *string        `json:"type"`
	Importance  *float64       `json:"importance"`
	BoundingBox []string       `json:"boundingbox"`
	Address     map[string]any `json:"address"`
}

func normalizeHit(item nominatimPlace) Hit {
	hit := Hit{
		Category:    item.Category,
		Type:        item.Type,
		Importance:  item.Importance,
		BoundingBox: item.BoundingBox,
		Address:     item.Address,
	}
	if name := common.FirstNonEmpty(item.Name, item.DisplayName); name != "" {
		hit.Name = &name
	}
	if item.DisplayName != "" {
		dn := item.DisplayName
		hit.DisplayName = &dn
	}
	if lat, err := strconv.ParseFloat(item.Lat, 64); err == nil {
		hit.Latitude = &lat
	}
	if lon, err := strconv.ParseFloat(item.Lon, 64); err == nil {
		hit.Longitude = &lon
	}
	if hit.Address == nil {
		hit.Address = map[string]any{}
	}
	return hit
}
