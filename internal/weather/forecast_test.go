package weather

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHourlyTimes(t *testing.T) {
	tz := time.FixedZone("IST", 3600)
	now := time.Date(2024, 6, 10, 9, 37, 12, 500, time.UTC) // 10:37 local

	times := HourlyTimes(now, tz)
	require.Len(t, times, 24)

	assert.Equal(t, time.Date(2024, 6, 10, 11, 0, 0, 0, tz), times[0])
	for i := 1; i < len(times); i++ {
		assert.Equal(t, time.Hour, times[i].Sub(times[i-1]))
	}
	assert.Equal(t, time.Date(2024, 6, 11, 10, 0, 0, 0, tz), times[23])
}

func TestHourlyTimes_OnTheHour(t *testing.T) {
	now := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)

	times := HourlyTimes(now, time.UTC)
	assert.Equal(t, now.Add(time.Hour), times[0])
}

func TestHourlyTimes_DSTFallBack(t *testing.T) {
	dublin, err := time.LoadLocation("Europe/Dublin")
	require.NoError(t, err)

	// Clocks go back at 01:00 UTC on 2024-10-27, so 01:30 local occurs twice.
	tests := []struct {
		now  time.Time
		want time.Time
	}{
		{time.Date(2024, 10, 27, 0, 30, 0, 0, time.UTC), time.Date(2024, 10, 27, 1, 0, 0, 0, time.UTC)},
		{time.Date(2024, 10, 27, 1, 30, 0, 0, time.UTC), time.Date(2024, 10, 27, 2, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		times := HourlyTimes(tc.now, dublin)
		require.Len(t, times, 24)
		assert.True(t, times[0].Equal(tc.want), "now %s: got first %s", tc.now, times[0].UTC())
		for i := 1; i < len(times); i++ {
			assert.Equal(t, time.Hour, times[i].Sub(times[i-1]))
		}
	}
}

func TestDailyTimes(t *testing.T) {
	tz := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2024, 6, 10, 2, 0, 0, 0, time.UTC) // still the 9th locally

	times := DailyTimes(now, tz)
	require.Len(t, times, 5)
	for i, ts := range times {
		assert.Equal(t, time.Date(2024, 6, 10+i, 12, 0, 0, 0, tz), ts)
	}
}

func TestBuildForecast_NoDocument(t *testing.T) {
	forecast := BuildForecast(nil, target, time.UTC, true, DefaultMaxHours)
	assert.NotNil(t, forecast)
	assert.Empty(t, forecast)
}

func TestBuildForecast_Hourly(t *testing.T) {
	base := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	var entries []TimeEntry
	for h := 0; h <= 30; h++ {
		ts := base.Add(time.Duration(h) * time.Hour)
		entries = append(entries, TimeEntry{From: ts, To: ts, Params: map[string]Attributes{
			ParamTemperature: {"value": "10"},
		}})
	}
	doc := &Document{Entries: entries}

	forecast := BuildForecast(doc, base.Add(20*time.Minute), time.UTC, true, DefaultMaxHours)
	require.Len(t, forecast, 24)
	for i, snap := range forecast {
		require.False(t, snap.Empty())
		assert.Equal(t, base.Add(time.Duration(i+1)*time.Hour), snap.Datetime)
		assert.Equal(t, ModeHourly, snap.Mode)
		assert.Equal(t, 10.0, *snap.Temperature)
	}
}

func TestBuildForecast_DailyBeyondDocumentIsEmpty(t *testing.T) {
	base := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	doc := &Document{Entries: []TimeEntry{
		{From: base.Add(27 * time.Hour), To: base.Add(27 * time.Hour), Params: map[string]Attributes{
			ParamTemperature: {"value": "6"},
		}},
	}}

	forecast := BuildForecast(doc, base, time.UTC, false, DefaultMaxHours)
	require.Len(t, forecast, 5)
	assert.False(t, forecast[0].Empty())
	assert.Equal(t, ModeDaily, forecast[0].Mode)
	assert.Equal(t, 6.0, *forecast[0].Temperature)
	for _, snap := range forecast[1:] {
		assert.True(t, snap.Empty())
	}
}
