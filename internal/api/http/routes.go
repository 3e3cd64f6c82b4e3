package httpapi

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/meteireann-weather/internal/warnings"
	"github.com/i474232898/meteireann-weather/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. Forecast target
// instants are computed in defaultTZ unless the request names another zone.
func RegisterRoutes(app *fiber.App, forecasts *weather.Service, warningSvc *warnings.Service, defaultTZ *time.Location) {
	if defaultTZ == nil {
		defaultTZ = time.UTC
	}
	v1 := app.Group("/api/v1")

	v1.Get("/locations", func(c *fiber.Ctx) error {
		out := make([]locationView, 0, len(forecasts.Locations()))
		for _, loc := range forecasts.Locations() {
			view := locationView{Location: loc}
			if ts, ok := forecasts.LastUpdated(loc); ok {
				view.LastUpdated = &ts
			}
			out = append(out, view)
		}
		return c.JSON(out)
	})

	v1.Get("/locations/:name/current", func(c *fiber.Ctx) error {
		loc, err := lookupLocation(c, forecasts)
		if err != nil {
			return err
		}

		snapshot := forecasts.CurrentWeather(loc)
		return c.JSON(fiber.Map{
			"location":        loc.Name,
			"weather":         snapshot,
			"condition_class": snapshot.Class(),
		})
	})

	v1.Get("/locations/:name/weather", func(c *fiber.Ctx) error {
		loc, err := lookupLocation(c, forecasts)
		if err != nil {
			return err
		}

		var req weatherQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshot := forecasts.Weather(loc, req.At, req.mode())
		return c.JSON(fiber.Map{
			"location":        loc.Name,
			"weather":         snapshot,
			"condition_class": snapshot.Class(),
		})
	})

	v1.Get("/locations/:name/forecast", func(c *fiber.Ctx) error {
		loc, err := lookupLocation(c, forecasts)
		if err != nil {
			return err
		}

		req := forecastQuery{
			Mode:     c.Query("mode", "hourly"),
			TimeZone: c.Query("tz"),
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		tz := defaultTZ
		if req.TimeZone != "" {
			if tz, err = time.LoadLocation(req.TimeZone); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}

		return c.JSON(fiber.Map{
			"location": loc.Name,
			"mode":     req.Mode,
			"timezone": tz.String(),
			"forecast": forecasts.GetForecast(loc, tz, req.Mode == "hourly"),
		})
	})

	v1.Get("/warnings/:region", func(c *fiber.Ctx) error {
		name, err := url.PathUnescape(c.Params("region"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid region")
		}
		code, ok := warnings.ResolveRegion(name)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "unknown warning region")
		}
		if !tracked(warningSvc.Regions(), code) {
			return fiber.NewError(fiber.StatusNotFound, "warning region is not tracked")
		}

		return c.JSON(warningSvc.Warnings(code))
	})
}

type locationView struct {
	weather.Location
	LastUpdated *time.Time `json:"last_updated"`
}

func lookupLocation(c *fiber.Ctx, forecasts *weather.Service) (weather.Location, error) {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return weather.Location{}, fiber.NewError(fiber.StatusBadRequest, "invalid location name")
	}
	loc, ok := forecasts.Location(name)
	if !ok {
		return weather.Location{}, fiber.NewError(fiber.StatusNotFound, "unknown location")
	}
	return loc, nil
}

func tracked(regions []string, code string) bool {
	for _, r := range regions {
		if r == code {
			return true
		}
	}
	return false
}

// forecastQuery holds query parameters for the forecast endpoint.
type forecastQuery struct {
	Mode     string `validate:"required,oneof=hourly daily"`
	TimeZone string `validate:"omitempty,timezone"`
}

// weatherQuery holds query parameters for the point-in-time endpoint.
type weatherQuery struct {
	At   time.Time `validate:"required"`
	Mode string    `validate:"required,oneof=hourly daily"`
}

func (q weatherQuery) mode() weather.Mode {
	if q.Mode == "daily" {
		return weather.ModeDaily
	}
	return weather.ModeHourly
}

func (q *weatherQuery) bind(c *fiber.Ctx) error {
	q.Mode = c.Query("mode", "hourly")

	atStr := c.Query("at")
	if atStr == "" {
		return errors.New("at query parameter is required")
	}
	at, err := parseTime(atStr)
	if err != nil {
		return err
	}
	q.At = at
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
