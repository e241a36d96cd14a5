package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	runsTotal      *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
	pointsProduced prometheus.Histogram
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		runsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forecast_runs_total",
				Help: "Total number of forecast pipeline runs",
			},
			[]string{"subcategory", "result"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forecast_errors_total",
				Help: "Total number of pipeline errors by kind",
			},
			[]string{"kind"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "forecast_operation_duration_seconds",
				Help:    "Duration of pipeline operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		pointsProduced: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "forecast_points_produced",
				Help:    "Number of forecast points produced per run",
				Buckets: []float64{30, 60, 120, 240, 365, 500, 730},
			},
		),
	}
}

// RecordRun records a completed pipeline run.
func (r *Recorder) RecordRun(subcategory, result string) {
	r.runsTotal.WithLabelValues(subcategory, result).Inc()
}

// RecordError records an error occurrence by kind.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordPointsProduced records the output size of a run.
func (r *Recorder) RecordPointsProduced(n int) {
	r.pointsProduced.Observe(float64(n))
}
