package weather

import "time"

const (
	hourlyForecastPoints = 24
	dailyForecastPoints  = 5
)

// Forecast is an ordered list of snapshots, one per target instant.
type Forecast []Snapshot

// HourlyTimes returns the next 24 whole hours after now, in tz. The current
// partial hour is excluded.
func HourlyTimes(now time.Time, tz *time.Location) []time.Time {
	local := now.In(tz)
	// Truncate in place so the current UTC offset is kept across a DST
	// fall-back, where the local wall hour is ambiguous.
	base := local.Add(-time.Duration(local.Minute())*time.Minute -
		time.Duration(local.Second())*time.Second -
		time.Duration(local.Nanosecond()))

	times := make([]time.Time, 0, hourlyForecastPoints)
	for k := 1; k <= hourlyForecastPoints; k++ {
		times = append(times, base.Add(time.Duration(k)*time.Hour))
	}
	return times
}

// DailyTimes returns local noon for each of the next five days in tz.
// Today is excluded.
func DailyTimes(now time.Time, tz *time.Location) []time.Time {
	local := now.In(tz)
	noon := time.Date(local.Year(), local.Month(), local.Day(), 12, 0, 0, 0, tz)

	times := make([]time.Time, 0, dailyForecastPoints)
	for k := 1; k <= dailyForecastPoints; k++ {
		times = append(times, noon.AddDate(0, 0, k))
	}
	return times
}

// BuildForecast builds one snapshot per hourly or daily target instant.
// Without a document the forecast is empty.
func BuildForecast(doc *Document, now time.Time, tz *time.Location, hourly bool, maxHours float64) Forecast {
	if doc == nil {
		return Forecast{}
	}

	times := DailyTimes(now, tz)
	mode := ModeDaily
	if hourly {
		times = HourlyTimes(now, tz)
		mode = ModeHourly
	}

	forecast := make(Forecast, 0, len(times))
	for _, t := range times {
		forecast = append(forecast, BuildSnapshot(doc, t, mode, maxHours))
	}
	return forecast
}
