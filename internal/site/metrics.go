package site

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mesh-intelligence/archief/pkg/types"
)

// Resolution outcomes recorded by Metrics.Resolutions.
const (
	outcomeResolved  = "resolved"
	outcomeMalformed = "malformed"
	outcomeNotFound  = "not_found"
	outcomeIntegrity = "integrity"
	outcomeError     = "error"
)

// Metrics holds the Prometheus collectors of the site. Each Metrics owns its
// registry so several sites can run in one process.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Resolutions     *prometheus.CounterVec
}

// NewMetrics creates a collector set registered on a fresh registry together
// with the Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "archief",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "archief",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"method", "route"},
		),
		Resolutions: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "archief",
				Name:      "resolutions_total",
				Help:      "Catalogue key resolutions by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveResolution counts one resolution attempt.
func (m *Metrics) ObserveResolution(err error) {
	m.Resolutions.WithLabelValues(resolutionOutcome(err)).Inc()
}

func resolutionOutcome(err error) string {
	switch {
	case err == nil:
		return outcomeResolved
	case errors.Is(err, types.ErrMalformedKey):
		return outcomeMalformed
	case errors.Is(err, types.ErrObjectNotFound):
		return outcomeNotFound
	case types.IsIntegrity(err):
		return outcomeIntegrity
	default:
		return outcomeError
	}
}
