package weather

import (
	"math"
	"strconv"
	"strings"

	"github.com/i474232898/meteireann-weather/internal/common"
)

// Value is one extracted field. Categorical values carry Text, numeric
// values carry Number.
type Value struct {
	Number      float64
	Text        string
	Categorical bool
}

// fieldRule says which attribute of a parameter holds its value and how to
// convert it.
type fieldRule struct {
	attr        string
	scale       float64
	categorical bool
}

const mpsToKmh = 3.6

var fieldRules = map[string]fieldRule{
	ParamSymbol: {attr: "id", categorical: true},

	ParamTemperature:   {attr: "value", scale: 1},
	ParamPressure:      {attr: "value", scale: 1},
	ParamHumidity:      {attr: "value", scale: 1},
	ParamDewpoint:      {attr: "value", scale: 1},
	ParamPrecipitation: {attr: "value", scale: 1},

	ParamWindSpeed: {attr: "mps", scale: mpsToKmh},
	ParamWindGust:  {attr: "mps", scale: mpsToKmh},

	ParamWindDirection: {attr: "deg", scale: 1},

	ParamFog:          {attr: "percent", scale: 1},
	ParamCloudiness:   {attr: "percent", scale: 1},
	ParamLowClouds:    {attr: "percent", scale: 1},
	ParamMediumClouds: {attr: "percent", scale: 1},
	ParamHighClouds:   {attr: "percent", scale: 1},
}

func (r fieldRule) apply(attrs Attributes) (Value, bool) {
	raw, ok := attrs[r.attr]
	if !ok {
		return Value{}, false
	}
	if r.categorical {
		return Value{Text: raw, Categorical: true}, true
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return Value{}, false
	}
	return Value{Number: common.Round1(n * r.scale)}, true
}

// valueOf converts param on a single entry. The bool reports whether the
// entry carries param at all; the Value is only usable when valid is true.
func valueOf(e *TimeEntry, param string) (v Value, present, valid bool) {
	attrs, present := e.Params[param]
	if !present {
		return Value{}, false, false
	}
	rule, known := fieldRules[param]
	if !known {
		return Value{}, true, false
	}
	v, valid = rule.apply(attrs)
	return v, true, valid
}

// ExtractField returns param from the first selected entry that carries it.
// A malformed value on that entry yields false; later entries are not
// consulted.
func ExtractField(selected []ScoredEntry, param string) (Value, bool) {
	for _, s := range selected {
		v, present, valid := valueOf(s.Entry, param)
		if !present {
			continue
		}
		return v, valid
	}
	return Value{}, false
}

func extractNumber(selected []ScoredEntry, param string) *float64 {
	v, ok := ExtractField(selected, param)
	if !ok || v.Categorical {
		return nil
	}
	n := v.Number
	return &n
}

func extractText(selected []ScoredEntry, param string) *string {
	v, ok := ExtractField(selected, param)
	if !ok || !v.Categorical {
		return nil
	}
	s := v.Text
	return &s
}
