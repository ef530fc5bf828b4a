package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	rowsIngested  *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	feedCache     *prometheus.CounterVec
	alertsEval    *prometheus.CounterVec
	lastModal     *prometheus.GaugeVec
	latency       *prometheus.HistogramVec
	syntheticGens *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		rowsIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agripulse_price_rows_ingested_total",
				Help: "Total number of price rows written to storage",
			},
			[]string{"source", "commodity"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agripulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		feedCache: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agripulse_feed_cache_requests_total",
				Help: "Feed cache lookups partitioned by outcome",
			},
			[]string{"outcome"},
		),
		alertsEval: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agripulse_alert_evaluations_total",
				Help: "Alert evaluations partitioned by resulting status",
			},
			[]string{"status"},
		),
		lastModal: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "agripulse_last_modal_price",
				Help: "Last observed modal price for a commodity at a market",
			},
			[]string{"commodity", "market"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "agripulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		syntheticGens: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agripulse_synthetic_series_total",
				Help: "Synthetic series generated when real history was too sparse",
			},
			[]string{"reason"},
		),
	}
}

// RecordRowsIngested records price rows written for a commodity.
func (r *Recorder) RecordRowsIngested(source, commodity string, n int) {
	r.rowsIngested.WithLabelValues(source, commodity).Add(float64(n))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordFeedCache records a feed cache lookup outcome ("hit" or "miss").
func (r *Recorder) RecordFeedCache(outcome string) {
	r.feedCache.WithLabelValues(outcome).Inc()
}

// RecordAlertEvaluation records an alert evaluation result.
func (r *Recorder) RecordAlertEvaluation(status string) {
	r.alertsEval.WithLabelValues(status).Inc()
}

// RecordLastModalPrice records the last modal price for a commodity at a market.
func (r *Recorder) RecordLastModalPrice(commodity, market string, price float64) {
	r.lastModal.WithLabelValues(commodity, market).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordSyntheticSeries records a synthetic backfill event.
func (r *Recorder) RecordSyntheticSeries(reason string) {
	r.syntheticGens.WithLabelValues(reason).Inc()
}
