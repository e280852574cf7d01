// Package metrics holds the Prometheus collectors for sharing, grading,
// generation and HTTP traffic.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "edusheet"

// Metrics is a set of collectors registered on their own registry.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	SharesTotal     *prometheus.CounterVec
	DecodesTotal    *prometheus.CounterVec
	GradesTotal     prometheus.Counter
	ScorePercent    prometheus.Histogram
	GenerationTotal *prometheus.CounterVec
}

// New creates and registers all collectors, plus the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		SharesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "share_links_total",
				Help:      "Share links built, by outcome",
			},
			[]string{"result"},
		),
		DecodesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "share_decodes_total",
				Help:      "Share tokens decoded, by outcome",
			},
			[]string{"result"},
		),
		GradesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "grades_total",
				Help:      "Submissions graded",
			},
		),
		ScorePercent: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "grade_score_percent",
				Help:      "Distribution of graded scores",
				Buckets:   prometheus.LinearBuckets(0, 10, 11),
			},
		),
		GenerationTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Worksheet generation requests, by outcome",
			},
			[]string{"result"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestsTotal,
		m.RequestDuration,
		m.SharesTotal,
		m.DecodesTotal,
		m.GradesTotal,
		m.ScorePercent,
		m.GenerationTotal,
	)
	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordRequest records one HTTP request.
func (m *Metrics) RecordRequest(method, route, status string, d time.Duration) {
	m.RequestsTotal.WithLabelValues(method, route, status).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordShare counts a link build.
func (m *Metrics) RecordShare(err error) {
	m.SharesTotal.WithLabelValues(outcome(err)).Inc()
}

// RecordDecode counts a token decode.
func (m *Metrics) RecordDecode(err error) {
	m.DecodesTotal.WithLabelValues(outcome(err)).Inc()
}

// RecordGrade counts a graded submission and its score.
func (m *Metrics) RecordGrade(percentage int) {
	m.GradesTotal.Inc()
	m.ScorePercent.Observe(float64(percentage))
}

// RecordGeneration counts a generation request.
func (m *Metrics) RecordGeneration(err error) {
	m.GenerationTotal.WithLabelValues(outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
