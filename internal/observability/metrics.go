package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "meteireann"

// Metrics holds the Prometheus collectors for upstream fetches.
type Metrics struct {
	FetchRequests  *prometheus.CounterVec   // labels: kind={forecast,warnings}, outcome={success,error}
	FetchDuration  *prometheus.HistogramVec // labels: kind
	LastSuccess    *prometheus.GaugeVec     // labels: kind, key
	ActiveWarnings *prometheus.GaugeVec     // labels: region
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_requests_total",
			Help:      "Upstream fetches by document kind and outcome.",
		}, []string{"kind", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of upstream fetches including retries.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"kind"}),
		LastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful fetch per document.",
		}, []string{"kind", "key"}),
		ActiveWarnings: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_warnings",
			Help:      "Normalized warnings currently stored per region.",
		}, []string{"region"}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.FetchRequests, m.FetchDuration, m.LastSuccess, m.ActiveWarnings)
	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, so
// tests can create as many as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// ObserveFetch records one upstream fetch of kind for key.
func (m *Metrics) ObserveFetch(kind, key string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.FetchDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
	if err != nil {
		m.FetchRequests.WithLabelValues(kind, "error").Inc()
		return
	}
	m.FetchRequests.WithLabelValues(kind, "success").Inc()
	m.LastSuccess.WithLabelValues(kind, key).SetToCurrentTime()
}

// SetActiveWarnings records the warning count for region.
func (m *Metrics) SetActiveWarnings(region string, count int) {
	if m == nil {
		return
	}
	m.ActiveWarnings.WithLabelValues(region).Set(float64(count))
}
