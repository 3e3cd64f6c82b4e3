package weather

import (
	"encoding/json"
	"time"

	"github.com/i474232898/meteireann-weather/internal/common"
)

// Mode selects how the temperature, precipitation and wind fields of a
// snapshot are computed.
type Mode int

const (
	// ModeHourly takes every field from the closest entry carrying it.
	ModeHourly Mode = iota
	// ModeDaily aggregates temperature, precipitation and wind over the
	// target's calendar day.
	ModeDaily
)

// Snapshot is the weather at one target instant. Nil fields are unknown.
// The zero Snapshot means no data was available.
type Snapshot struct {
	Mode     Mode
	Datetime time.Time

	Condition     *string
	Pressure      *float64
	Humidity      *float64
	WindBearing   *float64
	Temperature   *float64
	TempLow       *float64
	Precipitation *float64
	WindSpeed     *float64
	WindGust      *float64
	Cloudiness    *float64
}

// Empty reports whether the snapshot carries no data.
func (s Snapshot) Empty() bool {
	return s.Datetime.IsZero()
}

// MarshalJSON writes the logical field names. Hourly snapshots carry
// cloudiness, daily ones templow; the empty snapshot is {}.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	if s.Empty() {
		return []byte("{}"), nil
	}
	out := map[string]any{
		"datetime":      s.Datetime,
		"condition":     s.Condition,
		"pressure":      s.Pressure,
		"humidity":      s.Humidity,
		"wind_bearing":  s.WindBearing,
		"temperature":   s.Temperature,
		"precipitation": s.Precipitation,
		"wind_speed":    s.WindSpeed,
		"wind_gust":     s.WindGust,
	}
	if s.Mode == ModeDaily {
		out["templow"] = s.TempLow
	} else {
		out["cloudiness"] = s.Cloudiness
	}
	return json.Marshal(out)
}

// Class maps the condition symbol to a normalized Condition.
func (s Snapshot) Class() Condition {
	if s.Condition == nil {
		return ConditionUnknown
	}
	return ClassifyCondition(*s.Condition)
}

// BuildSnapshot assembles the snapshot for t from doc. A nil document, or
// one with no entry within maxHours of t, gives the empty snapshot.
func BuildSnapshot(doc *Document, t time.Time, mode Mode, maxHours float64) Snapshot {
	if doc == nil {
		return Snapshot{}
	}

	selected, daily := scan(doc.Entries, t, maxHours, mode == ModeDaily)
	if len(selected) == 0 {
		return Snapshot{}
	}

	snap := Snapshot{
		Mode:        mode,
		Datetime:    t,
		Condition:   extractText(selected, ParamSymbol),
		Pressure:    extractNumber(selected, ParamPressure),
		Humidity:    extractNumber(selected, ParamHumidity),
		WindBearing: extractNumber(selected, ParamWindDirection),
	}

	switch mode {
	case ModeHourly:
		snap.Temperature = extractNumber(selected, ParamTemperature)
		snap.Precipitation = extractNumber(selected, ParamPrecipitation)
		snap.WindSpeed = extractNumber(selected, ParamWindSpeed)
		snap.WindGust = extractNumber(selected, ParamWindGust)
		snap.Cloudiness = extractNumber(selected, ParamCloudiness)
	case ModeDaily:
		daily.apply(&snap)
	}
	return snap
}

// ClassifyCondition maps a Met Éireann symbol id (e.g. "LightRainSun",
// "PartlyCloud", "Fog") to a normalized Condition.
func ClassifyCondition(symbol string) Condition {
	switch {
	case symbol == "":
		return ConditionUnknown
	case common.HasAny(symbol, "thunder"):
		return ConditionStorm
	case common.HasAny(symbol, "snow", "sleet"):
		return ConditionSnow
	case common.HasAny(symbol, "rain", "drizzle"):
		return ConditionRain
	case common.HasAny(symbol, "fog"):
		return ConditionMist
	case common.HasAny(symbol, "cloud"):
		return ConditionCloudy
	case common.HasAny(symbol, "sun", "clear"):
		return ConditionClear
	default:
		return ConditionUnknown
	}
}
