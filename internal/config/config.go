package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/meteireann-weather/internal/meteireann"
	"github.com/i474232898/meteireann-weather/internal/warnings"
	"github.com/i474232898/meteireann-weather/internal/weather"
)

// Built-in location used when none is configured.
const (
	defaultLatitude  = "54.7210798611"
	defaultLongitude = "-8.7237392806"
)

type AppConfig struct {
	ForecastURL string `validate:"required,url"`
	WarningURL  string `validate:"required,url"`

	HTTPTimeout time.Duration `validate:"gt=0"`

	// FetchInterval controls how often documents are refreshed.
	FetchInterval time.Duration `validate:"gte=1m"`

	// Stored documents older than this read as absent (0 = never).
	StoreMaxAge time.Duration `validate:"gte=0"`

	// TimeZone for hourly/daily forecast target instants.
	TimeZone string `validate:"required,timezone"`
	// MaxHours bounds the entry selection window.
	MaxHours float64 `validate:"gt=0"`

	// Locations to track.
	Locations []weather.Location `validate:"required,min=1,dive"`

	// Warning region codes, resolved from names or codes.
	Regions            []string `validate:"dive,required"`
	ConvertWarningsUTC bool
	ExcludeBlight      bool

	Port string `validate:"required,numeric"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		ForecastURL: getenvDefault("FORECAST_API_URL", meteireann.DefaultForecastURL),
		WarningURL:  getenvDefault("WARNING_API_URL", meteireann.DefaultWarningURL),
		TimeZone:    getenvDefault("FORECAST_TIMEZONE", "Europe/Dublin"),
		Port:        getenvDefault("PORT", "8080"),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.FetchInterval, err = getenvDuration("FETCH_INTERVAL", "30m"); err != nil {
		return nil, err
	}
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "6h"); err != nil {
		return nil, err
	}
	if cfg.MaxHours, err = getenvFloat("FORECAST_MAX_HOURS", weather.DefaultMaxHours); err != nil {
		return nil, err
	}
	if cfg.ConvertWarningsUTC, err = getenvBool("WARNINGS_UTC", true); err != nil {
		return nil, err
	}
	if cfg.ExcludeBlight, err = getenvBool("WARNINGS_EXCLUDE_BLIGHT", true); err != nil {
		return nil, err
	}

	if path := os.Getenv("LOCATIONS_FILE"); path != "" {
		cfg.Locations, err = loadLocationsFile(path)
	} else {
		cfg.Locations, err = loadEnvLocations()
	}
	if err != nil {
		return nil, err
	}

	if cfg.Regions, err = loadRegions(getenvDefault("WARNING_REGIONS", "Dublin")); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// TimeLocation loads the configured forecast time zone.
func (c *AppConfig) TimeLocation() (*time.Location, error) {
	return time.LoadLocation(c.TimeZone)
}

// WarningOptions returns the normalization options for warnings.
func (c *AppConfig) WarningOptions() warnings.Options {
	return warnings.Options{ConvertUTC: c.ConvertWarningsUTC, ExcludeBlight: c.ExcludeBlight}
}

type locationsFile struct {
	Locations []weather.Location `yaml:"locations"`
}

func loadLocationsFile(path string) ([]weather.Location, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read locations file %s: %w", path, err)
	}
	var f locationsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse locations file %s: %w", path, err)
	}
	if len(f.Locations) == 0 {
		return nil, fmt.Errorf("locations file %s defines no locations", path)
	}
	return f.Locations, nil
}

func loadEnvLocations() ([]weather.Location, error) {
	names := splitList(getenvDefault("WEATHER_LOCATION_NAME", "default"))
	lats := splitList(getenvDefault("WEATHER_LOCATION_LAT", defaultLatitude))
	lons := splitList(getenvDefault("WEATHER_LOCATION_LON", defaultLongitude))
	alts := splitList(getenvDefault("WEATHER_LOCATION_ALT", "0"))
	if len(names) != len(lats) || len(names) != len(lons) {
		return nil, fmt.Errorf("number of location names, latitudes and longitudes must be the same")
	}

	var locs []weather.Location
	for i := range names {
		lat, err := strconv.ParseFloat(lats[i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid WEATHER_LOCATION_LAT %q: %w", lats[i], err)
		}
		lon, err := strconv.ParseFloat(lons[i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid WEATHER_LOCATION_LON %q: %w", lons[i], err)
		}
		alt := 0
		if i < len(alts) {
			if alt, err = strconv.Atoi(alts[i]); err != nil {
				return nil, fmt.Errorf("invalid WEATHER_LOCATION_ALT %q: %w", alts[i], err)
			}
		}
		locs = append(locs, weather.Location{Name: names[i], Latitude: lat, Longitude: lon, Altitude: alt})
	}
	return locs, nil
}

func loadRegions(list string) ([]string, error) {
	var codes []string
	for _, r := range splitList(list) {
		code, ok := warnings.ResolveRegion(r)
		if !ok {
			return nil, fmt.Errorf("unknown warning region %q", r)
		}
		codes = append(codes, code)
	}
	return codes, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
