package parks

import (
	"strconv"

	"github.com/parkscope/parkscope/internal/geo"
)

// npsPage is the registry's list envelope. Total, limit, and start are
// numeric-in-string fields.
type npsPage[T any] struct {
	Total string `json:"total"`
	Limit string `json:"limit"`
	Start string `json:"start"`
	Data  []T    `json:"data"`
}

func newList[T, R any](page npsPage[R]) List[T] {
	return List[T]{
		Total: atoiLenient(page.Total),
		Limit: atoiLenient(page.Limit),
		Start: atoiLenient(page.Start),
		Data:  []T{},
	}
}

func atoiLenient(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

type npsPark struct {
	ParkCode       string `json:"parkCode"`
	Name           string `json:"name"`
	FullName       string `json:"fullName"`
	Description    string `json:"description"`
	States         string `json:"states"`
	Designation    string `json:"designation"`
	URL            string `json:"url"`
	Latitude       string `json:"latitude"`
	Longitude      string `json:"longitude"`
	WeatherInfo    string `json:"weatherInfo"`
	DirectionsInfo string `json:"directionsInfo"`
	Activities     []struct {
		Name string `json:"name"`
	} `json:"activities"`
	EntranceFees []Fee   `json:"entranceFees"`
	Images       []Image `json:"images"`
}

func normalizePark(item npsPark) Park {
	activities := make([]string, 0, len(item.Activities))
	for _, a := range item.Activities {
		activities = append(activities, a.Name)
	}

	return Park{
		ParkCode:    item.ParkCode,
		Name:        item.Name,
		FullName:    item.FullName,
		Description: item.Description,
		States:      item.States,
		Designation: item.Designation,
		URL:         item.URL,
		Location:    geo.ParsePair(item.Latitude, item.Longitude),
		Activities:  activities,
	}
}

func normalizeDetails(item npsPark) Details {
	d := Details{
		Park:           normalizePark(item),
		WeatherInfo:    item.WeatherInfo,
		DirectionsInfo: item.DirectionsInfo,
		EntranceFees:   item.EntranceFees,
		Images:         item.Images,
	}
	if d.EntranceFees == nil {
		d.EntranceFees = []Fee{}
	}
	if d.Images == nil {
		d.Images = []Image{}
	}
	return d
}

type npsAlert struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ParkCode    string `json:"parkCode"`
	URL         string `json:"url"`
	LastIndexed string `json:"lastIndexedDate"`
}

type npsVisitorCenter struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	ParkCode       string `json:"parkCode"`
	URL            string `json:"url"`
	DirectionsInfo string `json:"directionsInfo"`
	Latitude       string `json:"latitude"`
	Longitude      string `json:"longitude"`
}

func normalizeVisitorCenter(item npsVisitorCenter) VisitorCenter {
	return VisitorCenter{
		ID:             item.ID,
		Name:           item.Name,
		Description:    item.Description,
		ParkCode:       item.ParkCode,
		URL:            item.URL,
		DirectionsInfo: item.DirectionsInfo,
		Location:       geo.ParsePair(item.Latitude, item.Longitude),
	}
}

type npsCampground struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	ParkCode        string `json:"parkCode"`
	ReservationInfo string `json:"reservationInfo"`
	Latitude        string `json:"latitude"`
	Longitude       string `json:"longitude"`
	Campsites       struct {
		TotalSites string `json:"totalSites"`
	} `json:"campsites"`
}

func normalizeCampground(item npsCampground) Campground {
	return Campground{
		ID:              item.ID,
		Name:            item.Name,
		Description:     item.Description,
		ParkCode:        item.ParkCode,
		ReservationInfo: item.ReservationInfo,
		TotalSites:      item.Campsites.TotalSites,
		Location:        geo.ParsePair(item.Latitude, item.Longitude),
	}
}

type npsEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SiteCode    string `json:"sitecode"`
	Location    string `json:"location"`
	DateStart   string `json:"datestart"`
	DateEnd     string `json:"dateend"`
}

func normalizeEvent(item npsEvent) Event {
	return Event{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		ParkCode:    item.SiteCode,
		Location:    item.Location,
		DateStart:   item.DateStart,
		DateEnd:     item.DateEnd,
	}
}
