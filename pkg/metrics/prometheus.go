package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	marketsScanned *prometheus.CounterVec
	signalsTotal   *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	topScore       prometheus.Gauge
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		marketsScanned: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polysig_markets_scanned_total",
				Help: "Total number of market records scored",
			},
			[]string{"source"},
		),
		signalsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polysig_signals_total",
				Help: "Total number of signals generated",
			},
			[]string{"action", "tier"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polysig_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		topScore: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "polysig_top_opportunity_score",
				Help: "Opportunity score of the best market in the last scan",
			},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polysig_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordMarketsScanned records how many markets one scan scored.
func (r *Recorder) RecordMarketsScanned(source string, n int) {
	r.marketsScanned.WithLabelValues(source).Add(float64(n))
}

// RecordSignal records one generated signal by action and tier.
func (r *Recorder) RecordSignal(action, tier string) {
	r.signalsTotal.WithLabelValues(action, tier).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordTopScore records the best opportunity score seen in the last scan.
func (r *Recorder) RecordTopScore(score float64) {
	r.topScore.Set(score)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
