package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"yaml-fixer/internal/fixer"
)

const namespace = "yaml_fixer"

type metrics struct {
	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	fixes      *prometheus.CounterVec
	documents  *prometheus.CounterVec
	confidence prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		fixes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fixes_applied_total",
			Help:      "Applied fixes by category.",
		}, []string{"category"}),
		documents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Processed documents by outcome.",
		}, []string{"outcome"}),
		confidence: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fix_confidence",
			Help:      "Aggregate confidence of fix results.",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}),
	}
}

func (m *metrics) recordFix(res *fixer.Result) {
	for _, ch := range res.Changes {
		m.fixes.WithLabelValues(ch.Category).Inc()
	}

	outcome := "valid"
	if !res.Valid {
		outcome = "invalid"
	}

	m.documents.WithLabelValues(outcome).Add(float64(res.Documents))
	m.confidence.Observe(res.Confidence)
}
