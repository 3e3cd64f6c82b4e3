package meteireann

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/meteireann-weather/internal/common"
	"github.com/i474232898/meteireann-weather/internal/observability"
	"github.com/i474232898/meteireann-weather/internal/weather"
)

// DefaultForecastURL is the Met Éireann locationforecast endpoint.
const DefaultForecastURL = "http://metwdb-openaccess.ichec.ie/metno-wdb2ts/locationforecast"

// ForecastProvider implements the weather.Provider interface for Met Éireann.
type ForecastProvider struct {
	name    string
	baseURL string
	session *Session
	circuit *gobreaker.CircuitBreaker
	metrics *observability.Metrics
}

// NewForecastProvider creates a provider fetching from baseURL. An empty
// baseURL uses DefaultForecastURL; metrics may be nil.
func NewForecastProvider(session *Session, baseURL string, metrics *observability.Metrics) *ForecastProvider {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	return &ForecastProvider{
		name:    "meteireann-forecast",
		baseURL: baseURL,
		session: session,
		circuit: newCircuitBreaker("meteireann-forecast"),
		metrics: metrics,
	}
}

func (p *ForecastProvider) Name() string {
	return p.name
}

// ForecastURL returns the request URL for loc.
func (p *ForecastProvider) ForecastURL(loc weather.Location) string {
	return fmt.Sprintf("%s?lat=%s;long=%s;alt=%d",
		p.baseURL,
		strconv.FormatFloat(loc.Latitude, 'f', -1, 64),
		strconv.FormatFloat(loc.Longitude, 'f', -1, 64),
		loc.Altitude,
	)
}

func (p *ForecastProvider) FetchForecast(ctx context.Context, loc weather.Location) (doc *weather.Document, err error) {
	started := time.Now()
	defer func() { p.metrics.ObserveFetch("forecast", loc.Key(), started, err) }()

	u := p.ForecastURL(loc)
	resp, err := p.session.get(ctx, p.circuit, u)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", u, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", u, err)
	}
	return DecodeForecast(body)
}

// Wire format of the locationforecast XML document. Parameter elements
// under <location> are kept generically with all their attributes.
type xmlWeatherData struct {
	XMLName xml.Name `xml:"weatherdata"`
	Product struct {
		Times []xmlTime `xml:"time"`
	} `xml:"product"`
}

type xmlTime struct {
	From     string      `xml:"from,attr"`
	To       string      `xml:"to,attr"`
	Location xmlLocation `xml:"location"`
}

type xmlLocation struct {
	Params []xmlParam `xml:",any"`
}

type xmlParam struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
}

// DecodeForecast parses a locationforecast XML body. A malformed document
// or an unparseable validity timestamp fails the whole decode.
func DecodeForecast(body []byte) (*weather.Document, error) {
	var data xmlWeatherData
	if err := xml.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	doc := &weather.Document{Entries: make([]weather.TimeEntry, 0, len(data.Product.Times))}
	for i, t := range data.Product.Times {
		from, err := common.ParseTimestamp(t.From)
		if err != nil {
			return nil, fmt.Errorf("%w: time[%d] from: %v", ErrDecode, i, err)
		}
		to, err := common.ParseTimestamp(t.To)
		if err != nil {
			return nil, fmt.Errorf("%w: time[%d] to: %v", ErrDecode, i, err)
		}

		params := make(map[string]weather.Attributes, len(t.Location.Params))
		for _, p := range t.Location.Params {
			name := p.XMLName.Local
			if _, dup := params[name]; dup {
				continue
			}
			attrs := make(weather.Attributes, len(p.Attrs))
			for _, a := range p.Attrs {
				attrs[a.Name.Local] = a.Value
			}
			params[name] = attrs
		}

		doc.Entries = append(doc.Entries, weather.TimeEntry{From: from, To: to, Params: params})
	}
	return doc, nil
}
