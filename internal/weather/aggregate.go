package weather

import (
	"slices"

	"github.com/i474232898/meteireann-weather/internal/common"
)

// dailyAggregate collects the values of every entry overlapping one
// calendar day. Wind values are already in km/h when collected.
type dailyAggregate struct {
	temperatures  []float64
	precipitation []float64
	windSpeeds    []float64
	windGusts     []float64
}

func (a *dailyAggregate) add(e *TimeEntry) {
	collect := func(param string, dst *[]float64) {
		if v, _, ok := valueOf(e, param); ok {
			*dst = append(*dst, v.Number)
		}
	}
	collect(ParamTemperature, &a.temperatures)
	collect(ParamPrecipitation, &a.precipitation)
	collect(ParamWindSpeed, &a.windSpeeds)
	collect(ParamWindGust, &a.windGusts)
}

// apply fills the daily fields of snap. Empty collections leave the field nil.
func (a dailyAggregate) apply(snap *Snapshot) {
	snap.Temperature = maxOf(a.temperatures)
	snap.TempLow = minOf(a.temperatures)
	if sum := sumOf(a.precipitation); sum != nil {
		rounded := common.Round1(*sum)
		snap.Precipitation = &rounded
	}
	snap.WindSpeed = maxOf(a.windSpeeds)
	snap.WindGust = maxOf(a.windGusts)
}

func maxOf(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	m := slices.Max(values)
	return &m
}

func minOf(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	m := slices.Min(values)
	return &m
}

func sumOf(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var s float64
	for _, v := range values {
		s += v
	}
	return &s
}
