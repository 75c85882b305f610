package http

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus metrics for the extraction API.
type Metrics struct {
	TranscriptsProcessedTotal *prometheus.CounterVec
	ItemsExtractedTotal       prometheus.Counter
	ExtractDuration           prometheus.Histogram
}

// NewMetrics creates and registers the API metrics.
//
// Registration happens once per process; repeated calls return the same
// instance, preventing duplicate collector registration panics.
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			TranscriptsProcessedTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "minuted_transcripts_processed_total",
					Help: "Total number of transcripts processed",
				},
				[]string{"outcome"}, // "ok", "empty", "malformed", "error"
			),

			ItemsExtractedTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "minuted_items_extracted_total",
					Help: "Total number of action items extracted",
				},
			),

			ExtractDuration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "minuted_extract_duration_seconds",
					Help:    "Duration of transcript extraction in seconds",
					Buckets: prometheus.ExponentialBuckets(0.001, 2, 10), // 1ms to ~1s
				},
			),
		}
	})

	return globalMetrics
}

// RecordRun records one transcript run with its outcome and duration.
func (m *Metrics) RecordRun(outcome string, items int, durationSeconds float64) {
	m.TranscriptsProcessedTotal.WithLabelValues(outcome).Inc()
	m.ItemsExtractedTotal.Add(float64(items))
	m.ExtractDuration.Observe(durationSeconds)
}
