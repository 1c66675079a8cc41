// Package metrics adapts scanio metrics to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/scanio"
)

// PrometheusCollector implements scanio.MetricsCollector with Prometheus
// counters and histograms.
type PrometheusCollector struct {
	drains        *prometheus.CounterVec
	drainLatency  *prometheus.HistogramVec
	drainBytes    prometheus.Histogram
	drainGrows    prometheus.Counter
	releases      *prometheus.CounterVec
	sanitizations *prometheus.CounterVec
}

var _ scanio.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheusCollector creates the collector and registers its metrics
// with reg. A nil reg selects prometheus.DefaultRegisterer.
func NewPrometheusCollector(reg prometheus.Registerer, namespace string) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "scanio"
	}

	c := &PrometheusCollector{
		drains: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drains_total",
			Help:      "Total drains by strategy and status",
		}, []string{"strategy", "status"}),
		drainLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "drain_duration_seconds",
			Help:      "Latency of drains",
			Buckets:   prometheus.DefBuckets,
		}, []string{"strategy"}),
		drainBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "drain_size_bytes",
			Help:      "Size of successfully drained inputs",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 10), // 1 KiB .. 256 MiB
		}),
		drainGrows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drain_buffer_grows_total",
			Help:      "Total buffer doublings caused by understated size hints",
		}),
		releases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mmap_releases_total",
			Help:      "Early release attempts of mapped buffers",
		}, []string{"result"}),
		sanitizations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entry_sanitizations_total",
			Help:      "Entry names sanitized, by whether they were rewritten",
		}, []string{"changed"}),
	}

	for _, col := range []prometheus.Collector{
		c.drains, c.drainLatency, c.drainBytes, c.drainGrows, c.releases, c.sanitizations,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordDrain implements scanio.MetricsCollector.
func (c *PrometheusCollector) RecordDrain(bytes, grows int, mapped bool, duration time.Duration, err error) {
	strategy := "stream"
	if mapped {
		strategy = "mmap"
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	c.drains.WithLabelValues(strategy, status).Inc()
	c.drainLatency.WithLabelValues(strategy).Observe(duration.Seconds())
	if err == nil {
		c.drainBytes.Observe(float64(bytes))
		c.drainGrows.Add(float64(grows))
	}
}

// RecordRelease implements scanio.MetricsCollector.
func (c *PrometheusCollector) RecordRelease(released bool) {
	result := "released"
	if !released {
		result = "skipped"
	}
	c.releases.WithLabelValues(result).Inc()
}

// RecordSanitize implements scanio.MetricsCollector.
func (c *PrometheusCollector) RecordSanitize(changed bool) {
	label := "false"
	if changed {
		label = "true"
	}
	c.sanitizations.WithLabelValues(label).Inc()
}
