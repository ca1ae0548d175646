package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WorkerMetrics groups the publish job and configuration metrics.
type WorkerMetrics struct {
	JobRunsTotal         *prometheus.CounterVec
	JobDurationSeconds   prometheus.Histogram
	PublishedTotal       prometheus.Counter
	LastSuccessTimestamp prometheus.Gauge

	ConfigFallbacksTotal *prometheus.CounterVec
	ConfigFallbackActive prometheus.Gauge
}

// NewWorkerMetrics registers the worker metrics with reg.
// Pass prometheus.DefaultRegisterer in production.
func NewWorkerMetrics(reg prometheus.Registerer) *WorkerMetrics {
	factory := promauto.With(reg)
	return &WorkerMetrics{
		JobRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_publish_job_runs_total",
			Help: "Publish job runs by status (success/failure)",
		}, []string{"status"}),

		JobDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_publish_job_duration_seconds",
			Help:    "Duration of a publish job run",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}),

		PublishedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "worker_announcements_published_total",
			Help: "Scheduled announcements published by the worker",
		}),

		LastSuccessTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "worker_publish_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful publish job",
		}),

		ConfigFallbacksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_config_fallbacks_total",
			Help: "Configuration fields that fell back to their default",
		}, []string{"field"}),

		ConfigFallbackActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "worker_config_fallback_active",
			Help: "1 when any configuration field is running on its default after an invalid value",
		}),
	}
}

func (m *WorkerMetrics) RecordJobRun(status string) {
	m.JobRunsTotal.WithLabelValues(status).Inc()
}

func (m *WorkerMetrics) RecordJobDuration(seconds float64) {
	m.JobDurationSeconds.Observe(seconds)
}

func (m *WorkerMetrics) RecordPublished(count int) {
	m.PublishedTotal.Add(float64(count))
}

func (m *WorkerMetrics) RecordLastSuccess() {
	m.LastSuccessTimestamp.SetToCurrentTime()
}

func (m *WorkerMetrics) RecordConfigFallback(field string) {
	m.ConfigFallbacksTotal.WithLabelValues(field).Inc()
}

func (m *WorkerMetrics) SetFallbackActive(active bool) {
	if active {
		m.ConfigFallbackActive.Set(1)
		return
	}
	m.ConfigFallbackActive.Set(0)
}
