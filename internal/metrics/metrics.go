// Package metrics exposes analysis counters and latencies to Prometheus
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "spam_insight"

// Recorder implements core.MetricsRecorder on a private registry
type Recorder struct {
	registry *prometheus.Registry

	analyzed *prometheus.CounterVec
	cache    *prometheus.CounterVec
	errors   *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewRecorder creates a recorder with its collectors registered
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		analyzed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_analyzed_total",
			Help:      "Total number of messages analyzed, by predicted label",
		}, []string{"label"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_cache_lookups_total",
			Help:      "Total number of prediction cache lookups",
		}, []string{"result"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_errors_total",
			Help:      "Total number of failed analyses, by stage",
		}, []string{"stage"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Time spent analyzing one message",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}

	r.registry.MustRegister(
		r.analyzed, r.cache, r.errors, r.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveAnalysis counts one analyzed message and records its latency
func (r *Recorder) ObserveAnalysis(label string, d time.Duration) {
	r.analyzed.WithLabelValues(label).Inc()
	r.duration.Observe(d.Seconds())
}

// ObserveCache counts a cache lookup
func (r *Recorder) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cache.WithLabelValues(result).Inc()
}

// ObserveError counts a failure in stage
func (r *Recorder) ObserveError(stage string) {
	r.errors.WithLabelValues(stage).Inc()
}

// Handler serves the registry in the Prometheus text format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry returns the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
