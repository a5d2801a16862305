package tools

// Parameter records for the named operations. Records arrive as JSON
// objects (RPC surface) or are filled from query strings (HTTP surface);
// either way they are validated with the same tags before dispatch.

// ListParams is shared by the registry list operations.
type ListParams struct {
	ParkCode string `json:"parkCode"`
	Q        string `json:"q"`
	Limit    int    `json:"limit" validate:"omitempty,min=1,max=50"`
	Start    int    `json:"start" validate:"omitempty,min=0"`
}

type FindParksParams struct {
	StateCode  string `json:"stateCode"`
	Q          string `json:"q"`
	Limit      int    `json:"limit" validate:"omitempty,min=1,max=50"`
	Start      int    `json:"start" validate:"omitempty,min=0"`
	Activities string `json:"activities"`
}

type ParkDetailsParams struct {
	ParkCode string `json:"parkCode" validate:"required"`
}

type EventsParams struct {
	ListParams
	DateStart string `json:"dateStart" validate:"omitempty,datetime=2006-01-02"`
	DateEnd   string `json:"dateEnd" validate:"omitempty,datetime=2006-01-02"`
}

type GeocodeParams struct {
	Q     string `json:"q" validate:"required"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=10"`
}

// CoordinateParams uses pointers so that a present-but-zero coordinate
// is distinguishable from an absent one.
type CoordinateParams struct {
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

type WeatherParams struct {
	CoordinateParams
	Units    string `json:"units" validate:"omitempty,oneof=metric imperial"`
	Language string `json:"language" validate:"omitempty,min=2,max=5"`
}

type ParkContextParams struct {
	ParkCode string `json:"parkCode" validate:"required"`
	Units    string `json:"units" validate:"omitempty,oneof=metric imperial"`
}
