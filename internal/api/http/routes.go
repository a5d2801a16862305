package httpapi

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/parkscope/parkscope/internal/app"
	"github.com/parkscope/parkscope/internal/parkctx"
	"github.com/parkscope/parkscope/internal/parks"
	"github.com/parkscope/parkscope/internal/tools"
	"github.com/parkscope/parkscope/internal/upstream"
	"github.com/parkscope/parkscope/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(r *fiber.App, deps *app.Deps) {
	v1 := r.Group("/api/v1")

	v1.Get("/parks", func(c *fiber.Ctx) error {
		p := tools.FindParksParams{
			StateCode:  c.Query("stateCode"),
			Q:          c.Query("q"),
			Limit:      c.QueryInt("limit"),
			Start:      c.QueryInt("start"),
			Activities: c.Query("activities"),
		}
		if err := validate.Struct(&p); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		result, cerr := deps.Parks.Find(c.Context(), parks.ListQuery{
			StateCode:  p.StateCode,
			Q:          p.Q,
			Limit:      p.Limit,
			Start:      p.Start,
			Activities: p.Activities,
		})
		if cerr != nil {
			return upstreamError(c, cerr)
		}
		return c.JSON(result)
	})

	v1.Get("/parks/:parkCode", func(c *fiber.Ctx) error {
		result, cerr := deps.Parks.Details(c.Context(), c.Params("parkCode"))
		if cerr != nil {
			return upstreamError(c, cerr)
		}
		return c.JSON(result)
	})

	v1.Get("/parks/:parkCode/context", func(c *fiber.Ctx) error {
		p := tools.ParkContextParams{
			ParkCode: c.Params("parkCode"),
			Units:    c.Query("units"),
		}
		if err := validate.Struct(&p); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		result, err := deps.Context.Build(c.Context(), p.ParkCode, p.Units)
		if err != nil {
			var cerr *parkctx.ContextError
			if errors.As(err, &cerr) {
				return c.Status(fiber.StatusUnprocessableEntity).JSON(cerr.Document())
			}
			var uerr *upstream.Error
			if errors.As(err, &uerr) {
				return upstreamError(c, uerr)
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(result)
	})

	v1.Get("/alerts", listHandler(deps.Parks.Alerts))
	v1.Get("/visitorcenters", listHandler(deps.Parks.VisitorCenters))
	v1.Get("/campgrounds", listHandler(deps.Parks.Campgrounds))

	v1.Get("/events", func(c *fiber.Ctx) error {
		p := tools.EventsParams{
			ListParams: bindListParams(c),
			DateStart:  c.Query("dateStart"),
			DateEnd:    c.Query("dateEnd"),
		}
		if err := validate.Struct(&p); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		result, cerr := deps.Parks.Events(c.Context(), parks.ListQuery{
			ParkCode:  p.ParkCode,
			Q:         p.Q,
			Limit:     p.Limit,
			Start:     p.Start,
			DateStart: p.DateStart,
			DateEnd:   p.DateEnd,
		})
		if cerr != nil {
			return upstreamError(c, cerr)
		}
		return c.JSON(result)
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		coords, err := bindCoordinates(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		p := tools.WeatherParams{
			CoordinateParams: coords,
			Units:            c.Query("units", "metric"),
			Language:         c.Query("language"),
		}
		if err := validate.Struct(&p); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		reading, cerr := deps.Weather.Current(c.Context(), weatherQuery(p))
		if cerr != nil {
			return upstreamError(c, cerr)
		}
		return c.JSON(reading)
	})

	v1.Get("/airquality", func(c *fiber.Ctx) error {
		coords, err := bindCoordinates(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(&coords); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		result, cerr := deps.Air.NearestCity(c.Context(), *coords.Latitude, *coords.Longitude)
		if cerr != nil {
			return upstreamError(c, cerr)
		}
		return c.JSON(result)
	})

	v1.Get("/geocode", func(c *fiber.Ctx) error {
		p := tools.GeocodeParams{
			Q:     c.Query("q"),
			Limit: c.QueryInt("limit"),
		}
		if err := validate.Struct(&p); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		result, cerr := deps.Geo.Search(c.Context(), p.Q, p.Limit)
		if cerr != nil {
			return upstreamError(c, cerr)
		}
		return c.JSON(result)
	})

	v1.Get("/geocode/reverse", func(c *fiber.Ctx) error {
		coords, err := bindCoordinates(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(&coords); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		result, cerr := deps.Geo.Reverse(c.Context(), *coords.Latitude, *coords.Longitude)
		if cerr != nil {
			return upstreamError(c, cerr)
		}
		return c.JSON(result)
	})
}

// listHandler builds the handler shared by the registry list endpoints.
func listHandler[T any](fetch func(ctx context.Context, q parks.ListQuery) (parks.List[T], *upstream.Error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := bindListParams(c)
		if err := validate.Struct(&p); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		result, cerr := fetch(c.Context(), parks.ListQuery{
			ParkCode: p.ParkCode,
			Q:        p.Q,
			Limit:    p.Limit,
			Start:    p.Start,
		})
		if cerr != nil {
			return upstreamError(c, cerr)
		}
		return c.JSON(result)
	}
}

func bindListParams(c *fiber.Ctx) tools.ListParams {
	return tools.ListParams{
		ParkCode: c.Query("parkCode"),
		Q:        c.Query("q"),
		Limit:    c.QueryInt("limit"),
		Start:    c.QueryInt("start"),
	}
}

// bindCoordinates parses the required latitude/longitude query pair.
func bindCoordinates(c *fiber.Ctx) (tools.CoordinateParams, error) {
	latStr := c.Query("latitude")
	lonStr := c.Query("longitude")
	if latStr == "" || lonStr == "" {
		return tools.CoordinateParams{}, errors.New("latitude and longitude query parameters are required")
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return tools.CoordinateParams{}, errors.New("invalid latitude")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return tools.CoordinateParams{}, errors.New("invalid longitude")
	}
	return tools.CoordinateParams{Latitude: &lat, Longitude: &lon}, nil
}

func weatherQuery(p tools.WeatherParams) weather.Query {
	return weather.Query{
		Latitude:  *p.Latitude,
		Longitude: *p.Longitude,
		Units:     p.Units,
		Language:  p.Language,
	}
}

// upstreamError maps a classified upstream failure onto an HTTP status
// and returns its boundary document as the body.
func upstreamError(c *fiber.Ctx, cerr *upstream.Error) error {
	return c.Status(statusFor(cerr.Kind)).JSON(cerr.Document())
}

func statusFor(kind upstream.Kind) int {
	switch kind {
	case upstream.KindNotFound:
		return fiber.StatusNotFound
	case upstream.KindMissingAPIKey:
		return fiber.StatusServiceUnavailable
	case upstream.KindTimeout, upstream.KindNetwork:
		return fiber.StatusGatewayTimeout
	case upstream.KindHTTP, upstream.KindParse:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
