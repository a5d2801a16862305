package parks

import "github.com/parkscope/parkscope/internal/geo"

// Park is a normalized park summary. Location is nil when the registry
// did not supply parseable coordinates.
type Park struct {
	ParkCode    string           `json:"parkCode"`
	Name        string           `json:"name"`
	FullName    string           `json:"fullName"`
	Description string           `json:"description"`
	States      string           `json:"states"`
	Designation string           `json:"designation"`
	URL         string           `json:"url"`
	Location    *geo.Coordinates `json:"location"`
	Activities  []string         `json:"activities"`
}

// Details is the full normalized record for a single park.
type Details struct {
	Park
	WeatherInfo    string  `json:"weatherInfo"`
	DirectionsInfo string  `json:"directionsInfo"`
	EntranceFees   []Fee   `json:"entranceFees"`
	Images         []Image `json:"images"`
}

type Fee struct {
	Cost        string `json:"cost"`
	Description string `json:"description"`
	Title       string `json:"title"`
}

type Image struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	AltText string `json:"altText"`
	Caption string `json:"caption"`
}

// Alert is a normalized park alert (closure, hazard, notice).
type Alert struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ParkCode    string `json:"parkCode"`
	URL         string `json:"url"`
	LastIndexed string `json:"lastIndexedDate"`
}

// VisitorCenter is a normalized visitor center record.
type VisitorCenter struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	ParkCode       string           `json:"parkCode"`
	URL            string           `json:"url"`
	DirectionsInfo string           `json:"directionsInfo"`
	Location       *geo.Coordinates `json:"location"`
}

// Campground is a normalized campground record.
type Campground struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	ParkCode        string           `json:"parkCode"`
	ReservationInfo string           `json:"reservationInfo"`
	TotalSites      string           `json:"totalSites"`
	Location        *geo.Coordinates `json:"location"`
}

// Event is a normalized park event.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ParkCode    string `json:"parkCode"`
	Location    string `json:"location"`
	DateStart   string `json:"dateStart"`
	DateEnd     string `json:"dateEnd"`
}

// List wraps a page of normalized records with the registry's pagination
// counters.
type List[T any] struct {
	Total int `json:"total"`
	Limit int `json:"limit"`
	Start int `json:"start"`
	Data  []T `json:"data"`
}
