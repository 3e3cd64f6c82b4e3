package meteireann

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/meteireann-weather/internal/observability"
	"github.com/i474232898/meteireann-weather/internal/weather"
)

const sampleForecastXML = `<?xml version="1.0" encoding="UTF-8"?>
<weatherdata xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" created="2024-03-02T10:00:00Z">
  <meta>
    <model name="harmonie" termin="2024-03-02T06:00:00Z" runended="2024-03-02T08:46:13Z" nextrun="2024-03-02T16:00:00Z" from="2024-03-02T11:00:00Z" to="2024-03-04T12:00:00Z" />
  </meta>
  <product class="pointData">
    <time datatype="forecast" from="2024-03-02T12:00:00Z" to="2024-03-02T12:00:00Z">
      <location altitude="10" latitude="53.2707" longitude="-9.0568">
        <temperature id="TTT" unit="celsius" value="8.6"/>
        <windDirection id="dd" deg="233.6" name="SW"/>
        <windSpeed id="ff" mps="5.0" beaufort="3" name="Lett bris"/>
        <windGust id="ff_gust" mps="10.0"/>
        <globalRadiation value="120.3" unit="W/m^2"/>
        <humidity value="83.6" unit="percent"/>
        <pressure id="pr" unit="hPa" value="1012.3"/>
        <cloudiness id="NN" percent="99.7"/>
        <lowClouds id="LOW" percent="62.1"/>
        <mediumClouds id="MEDIUM" percent="40.0"/>
        <highClouds id="HIGH" percent="0.0"/>
        <dewpointTemperature id="TD" unit="celsius" value="5.9"/>
      </location>
    </time>
    <time datatype="forecast" from="2024-03-02T11:00:00Z" to="2024-03-02T12:00:00Z">
      <location altitude="10" latitude="53.2707" longitude="-9.0568">
        <precipitation unit="mm" value="0.3" minvalue="0.1" maxvalue="0.5"/>
        <symbol id="LightRain" number="46"/>
      </location>
    </time>
    <time datatype="forecast" from="2024-03-02T13:00:00+0100" to="2024-03-02T13:00:00+0100">
      <location altitude="10" latitude="53.2707" longitude="-9.0568">
        <temperature id="TTT" unit="celsius" value="9.1"/>
      </location>
    </time>
  </product>
</weatherdata>`

var galway = weather.Location{Name: "Galway", Latitude: 53.2707, Longitude: -9.0568, Altitude: 10}

func fastSession(client *http.Client) *Session {
	return NewSession(client, time.Second).WithBackoff(BackoffConfig{
		MaxRetries:      2,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
	})
}

func TestDecodeForecast(t *testing.T) {
	doc, err := DecodeForecast([]byte(sampleForecastXML))
	require.NoError(t, err)
	require.Len(t, doc.Entries, 3)

	first := doc.Entries[0]
	assert.True(t, first.From.Equal(time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "8.6", first.Params[weather.ParamTemperature]["value"])
	assert.Equal(t, "5.0", first.Params[weather.ParamWindSpeed]["mps"])
	assert.Equal(t, "TTT", first.Params[weather.ParamTemperature]["id"])
	assert.Contains(t, first.Params, "globalRadiation")

	second := doc.Entries[1]
	assert.Equal(t, "LightRain", second.Params[weather.ParamSymbol]["id"])

	third := doc.Entries[2]
	_, offset := third.From.Zone()
	assert.Equal(t, 3600, offset)
}

func TestDecodeForecast_FeedsSnapshot(t *testing.T) {
	doc, err := DecodeForecast([]byte(sampleForecastXML))
	require.NoError(t, err)

	snap := weather.BuildSnapshot(doc, time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC), weather.ModeHourly, weather.DefaultMaxHours)
	require.False(t, snap.Empty())
	assert.Equal(t, "LightRain", *snap.Condition)
	assert.Equal(t, 8.6, *snap.Temperature)
	assert.Equal(t, 18.0, *snap.WindSpeed)
	assert.Equal(t, 36.0, *snap.WindGust)
	assert.Equal(t, 0.3, *snap.Precipitation)
	assert.Equal(t, 99.7, *snap.Cloudiness)
}

func TestDecodeForecast_Malformed(t *testing.T) {
	_, err := DecodeForecast([]byte("<weatherdata><product>"))
	assert.ErrorIs(t, err, ErrDecode)

	_, err = DecodeForecast([]byte(`<weatherdata><product><time from="noon" to="2024-03-02T12:00:00Z"><location/></time></product></weatherdata>`))
	assert.ErrorIs(t, err, ErrDecode)

	_, err = DecodeForecast([]byte(`{"not":"xml"}`))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestForecastProvider_URL(t *testing.T) {
	p := NewForecastProvider(NewSession(nil, time.Second), "", nil)
	assert.Equal(t,
		"http://metwdb-openaccess.ichec.ie/metno-wdb2ts/locationforecast?lat=53.2707;long=-9.0568;alt=10",
		p.ForecastURL(galway))
}

func TestForecastProvider_Fetch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(sampleForecastXML))
	}))
	defer srv.Close()

	metrics := observability.NewMetricsForTesting()
	p := NewForecastProvider(fastSession(srv.Client()), srv.URL, metrics)

	doc, err := p.FetchForecast(context.Background(), galway)
	require.NoError(t, err)
	assert.Len(t, doc.Entries, 3)
	assert.Equal(t, "lat=53.2707;long=-9.0568;alt=10", gotQuery)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FetchRequests.WithLabelValues("forecast", "success")))
}

func TestForecastProvider_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(sampleForecastXML))
	}))
	defer srv.Close()

	p := NewForecastProvider(fastSession(srv.Client()), srv.URL, nil)

	_, err := p.FetchForecast(context.Background(), galway)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestForecastProvider_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	metrics := observability.NewMetricsForTesting()
	p := NewForecastProvider(fastSession(srv.Client()), srv.URL, metrics)

	_, err := p.FetchForecast(context.Background(), galway)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FetchRequests.WithLabelValues("forecast", "error")))
}

func TestForecastProvider_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html"))
	}))
	defer srv.Close()

	p := NewForecastProvider(fastSession(srv.Client()), srv.URL, nil)

	_, err := p.FetchForecast(context.Background(), galway)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestForecastProvider_CancelledContext(t *testing.T) {
	p := NewForecastProvider(fastSession(nil), "http://127.0.0.1:1", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.FetchForecast(ctx, galway)
	assert.ErrorIs(t, err, context.Canceled)
}
