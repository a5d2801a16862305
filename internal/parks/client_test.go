package parks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/parkscope/parkscope/internal/upstream"
)

const parksFixture = `{
	"total": "471",
	"limit": "10",
	"start": "0",
	"data": [
		{
			"parkCode": "yose",
			"name": "Yosemite",
			"fullName": "Yosemite National Park",
			"description": "Granite cliffs and giant sequoias.",
			"states": "CA",
			"designation": "National Park",
			"url": "https://www.nps.gov/yose/",
			"latitude": "37.84883288",
			"longitude": "-119.5571873",
			"weatherInfo": "Summers are warm and dry.",
			"directionsInfo": "Arrive via Highway 140.",
			"activities": [{"name": "Hiking"}, {"name": "Climbing"}],
			"entranceFees": [{"cost": "35.00", "description": "Per vehicle.", "title": "Entrance Fee"}],
			"images": [{"url": "https://img.example/yose.jpg", "title": "Valley", "altText": "Valley view", "caption": ""}]
		}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, apiKey string) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(upstream.New("nps", srv.URL, srv.Client(), upstream.WithoutRetry()), apiKey), srv
}

func TestFindParsesStringNumerics(t *testing.T) {
	var gotKey string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("api_key")
		if r.URL.Path != "/parks" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(parksFixture))
	}, "k")

	list, cerr := c.Find(context.Background(), ListQuery{StateCode: "CA"})
	if cerr != nil {
		t.Fatalf("unexpected error: %v", cerr)
	}
	if gotKey != "k" {
		t.Fatalf("api_key = %q", gotKey)
	}
	if list.Total != 471 || list.Limit != 10 || list.Start != 0 {
		t.Fatalf("pagination = %d/%d/%d, want parsed from string fields", list.Total, list.Limit, list.Start)
	}

	park := list.Data[0]
	if park.ParkCode != "yose" {
		t.Fatalf("parkCode = %q", park.ParkCode)
	}
	if park.Location == nil || park.Location.Latitude != 37.84883288 {
		t.Fatalf("location = %v, want parsed coordinates", park.Location)
	}
	if len(park.Activities) != 2 || park.Activities[0] != "Hiking" {
		t.Fatalf("activities = %v, want flattened names", park.Activities)
	}
}

func TestFindUnparseableCoordinates(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total": "1", "limit": "10", "start": "0", "data": [{"parkCode": "xyz", "latitude": "", "longitude": ""}]}`))
	}, "k")

	list, cerr := c.Find(context.Background(), ListQuery{})
	if cerr != nil {
		t.Fatalf("unexpected error: %v", cerr)
	}
	if list.Data[0].Location != nil {
		t.Fatalf("location = %v, want nil for blank coordinate strings", list.Data[0].Location)
	}
}

func TestDetails(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("parkCode") != "yose" || r.URL.Query().Get("limit") != "1" {
			t.Errorf("query = %v", r.URL.Query())
		}
		w.Write([]byte(parksFixture))
	}, "k")

	details, cerr := c.Details(context.Background(), "yose")
	if cerr != nil {
		t.Fatalf("unexpected error: %v", cerr)
	}
	if details.WeatherInfo != "Summers are warm and dry." {
		t.Fatalf("weatherInfo = %q", details.WeatherInfo)
	}
	if len(details.EntranceFees) != 1 || details.EntranceFees[0].Cost != "35.00" {
		t.Fatalf("entranceFees = %v", details.EntranceFees)
	}
}

func TestDetailsUnknownCode(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total": "0", "limit": "1", "start": "0", "data": []}`))
	}, "k")

	_, cerr := c.Details(context.Background(), "nope")
	if cerr == nil || cerr.Kind != upstream.KindNotFound {
		t.Fatalf("error = %v, want not_found", cerr)
	}
	if cerr.Details["parkCode"] != "nope" {
		t.Fatalf("details = %v", cerr.Details)
	}
}

func TestMissingKeyNoCall(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}, "")

	_, cerr := c.Find(context.Background(), ListQuery{Q: "canyon"})
	if cerr == nil || cerr.Kind != upstream.KindMissingAPIKey {
		t.Fatalf("error = %v, want missing_api_key", cerr)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatalf("server hit %d times, want 0", calls)
	}
}

func TestCampgroundsSiteCounts(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/campgrounds" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"total": "1", "limit": "10", "start": "0",
			"data": [{
				"id": "abc", "name": "Upper Pines", "parkCode": "yose",
				"reservationInfo": "Reservations required.",
				"latitude": "37.7360", "longitude": "-119.5645",
				"campsites": {"totalSites": "235"}
			}]
		}`))
	}, "k")

	list, cerr := c.Campgrounds(context.Background(), ListQuery{ParkCode: "yose"})
	if cerr != nil {
		t.Fatalf("unexpected error: %v", cerr)
	}
	cg := list.Data[0]
	if cg.TotalSites != "235" {
		t.Fatalf("totalSites = %q", cg.TotalSites)
	}
	if cg.Location == nil {
		t.Fatal("location missing")
	}
}

func TestEventsDateRange(t *testing.T) {
	var gotQuery map[string]string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"dateStart": r.URL.Query().Get("dateStart"),
			"dateEnd":   r.URL.Query().Get("dateEnd"),
		}
		w.Write([]byte(`{
			"total": "1", "limit": "10", "start": "0",
			"data": [{
				"id": "e1", "title": "Ranger Walk", "sitecode": "yose",
				"location": "Valley Visitor Center",
				"datestart": "2026-09-01", "dateend": "2026-09-01"
			}]
		}`))
	}, "k")

	list, cerr := c.Events(context.Background(), ListQuery{ParkCode: "yose", DateStart: "2026-09-01", DateEnd: "2026-09-30"})
	if cerr != nil {
		t.Fatalf("unexpected error: %v", cerr)
	}
	if gotQuery["dateStart"] != "2026-09-01" || gotQuery["dateEnd"] != "2026-09-30" {
		t.Fatalf("query = %v", gotQuery)
	}
	ev := list.Data[0]
	if ev.ParkCode != "yose" {
		t.Fatalf("parkCode = %q, want mapped from sitecode", ev.ParkCode)
	}
	if ev.DateStart != "2026-09-01" {
		t.Fatalf("dateStart = %q", ev.DateStart)
	}
}
