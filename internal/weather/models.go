package weather

import (
	"fmt"
	"time"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Location represents a point for which forecasts are fetched.
type Location struct {
	Name      string  `json:"name" yaml:"name" validate:"required"`
	Latitude  float64 `json:"latitude" yaml:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" yaml:"longitude" validate:"gte=-180,lte=180"`
	Altitude  int     `json:"altitude" yaml:"altitude"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return fmt.Sprintf("%.4f:%.4f:%d", l.Latitude, l.Longitude, l.Altitude)
}

// Parameter names as they appear in the forecast document.
const (
	ParamSymbol        = "symbol"
	ParamTemperature   = "temperature"
	ParamPressure      = "pressure"
	ParamHumidity      = "humidity"
	ParamDewpoint      = "dewpointTemperature"
	ParamPrecipitation = "precipitation"
	ParamWindSpeed     = "windSpeed"
	ParamWindGust      = "windGust"
	ParamWindDirection = "windDirection"
	ParamFog           = "fog"
	ParamCloudiness    = "cloudiness"
	ParamLowClouds     = "lowClouds"
	ParamMediumClouds  = "mediumClouds"
	ParamHighClouds    = "highClouds"
)

// Attributes holds the unit-tagged sub-values of one parameter, e.g.
// {"mps": "7.8", "beaufort": "4"}.
type Attributes map[string]string

// TimeEntry is one forecast record valid over [From, To].
type TimeEntry struct {
	From   time.Time
	To     time.Time
	Params map[string]Attributes
}

// Document is one decoded forecast response. It is never mutated after
// decoding; a newer fetch replaces it wholesale.
type Document struct {
	Entries []TimeEntry
}
