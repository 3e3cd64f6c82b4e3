package meteireann

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/meteireann-weather/internal/observability"
	"github.com/i474232898/meteireann-weather/internal/warnings"
)

// DefaultWarningURL is the prefix of the per-region warning feeds; the
// region code and ".json" are appended.
const DefaultWarningURL = "https://www.met.ie/Open_Data/json/warning_"

// WarningProvider implements the warnings.Provider interface for Met Éireann.
type WarningProvider struct {
	name    string
	baseURL string
	session *Session
	circuit *gobreaker.CircuitBreaker
	metrics *observability.Metrics
}

// NewWarningProvider creates a provider fetching from baseURL. An empty
// baseURL uses DefaultWarningURL; metrics may be nil.
func NewWarningProvider(session *Session, baseURL string, metrics *observability.Metrics) *WarningProvider {
	if baseURL == "" {
		baseURL = DefaultWarningURL
	}
	return &WarningProvider{
		name:    "meteireann-warnings",
		baseURL: baseURL,
		session: session,
		circuit: newCircuitBreaker("meteireann-warnings"),
		metrics: metrics,
	}
}

func (p *WarningProvider) Name() string {
	return p.name
}

// WarningURL returns the feed URL for a region code.
func (p *WarningProvider) WarningURL(region string) string {
	return p.baseURL + region + ".json"
}

func (p *WarningProvider) FetchWarnings(ctx context.Context, region string) (doc warnings.RawDocument, err error) {
	started := time.Now()
	defer func() { p.metrics.ObserveFetch("warnings", region, started, err) }()

	u := p.WarningURL(region)
	resp, err := p.session.get(ctx, p.circuit, u)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", u, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", u, err)
	}
	return DecodeWarnings(body)
}

// DecodeWarnings parses a warning feed body: a JSON array of objects.
func DecodeWarnings(body []byte) (warnings.RawDocument, error) {
	var doc warnings.RawDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if doc == nil {
		doc = warnings.RawDocument{}
	}
	return doc, nil
}
