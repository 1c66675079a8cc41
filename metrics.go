package scanio

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/scanio/drain"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; see
// metrics.PrometheusCollector for a Prometheus implementation.
type MetricsCollector interface {
	// RecordDrain is called after each drain.
	// bytes is the drained length, grows the number of buffer doublings,
	// mapped whether the input was a memory-mapped file, err is nil if successful.
	RecordDrain(bytes, grows int, mapped bool, duration time.Duration, err error)

	// RecordRelease is called after each attempted early release of a mapped buffer.
	RecordRelease(released bool)

	// RecordSanitize is called after each entry name sanitization.
	// changed reports whether the name had to be rewritten.
	RecordSanitize(changed bool)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordDrain(int, int, bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordRelease(bool)                               {}
func (NoopMetricsCollector) RecordSanitize(bool)                              {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	DrainCount       atomic.Int64
	DrainErrors      atomic.Int64
	DrainBytes       atomic.Int64
	DrainGrows       atomic.Int64
	DrainMapped      atomic.Int64
	DrainTotalNanos  atomic.Int64
	ReleaseCount     atomic.Int64
	ReleaseSucceeded atomic.Int64
	SanitizeCount    atomic.Int64
	SanitizeChanged  atomic.Int64
}

// RecordDrain implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDrain(bytes, grows int, mapped bool, duration time.Duration, err error) {
	b.DrainCount.Add(1)
	b.DrainTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.DrainErrors.Add(1)
		return
	}
	b.DrainBytes.Add(int64(bytes))
	b.DrainGrows.Add(int64(grows))
	if mapped {
		b.DrainMapped.Add(1)
	}
}

// RecordRelease implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelease(released bool) {
	b.ReleaseCount.Add(1)
	if released {
		b.ReleaseSucceeded.Add(1)
	}
}

// RecordSanitize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSanitize(changed bool) {
	b.SanitizeCount.Add(1)
	if changed {
		b.SanitizeChanged.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		DrainCount:       b.DrainCount.Load(),
		DrainErrors:      b.DrainErrors.Load(),
		DrainBytes:       b.DrainBytes.Load(),
		DrainGrows:       b.DrainGrows.Load(),
		DrainMapped:      b.DrainMapped.Load(),
		DrainAvgNanos:    b.getAvgDrainNanos(),
		ReleaseCount:     b.ReleaseCount.Load(),
		ReleaseSucceeded: b.ReleaseSucceeded.Load(),
		SanitizeCount:    b.SanitizeCount.Load(),
		SanitizeChanged:  b.SanitizeChanged.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgDrainNanos() int64 {
	count := b.DrainCount.Load()
	if count == 0 {
		return 0
	}
	return b.DrainTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	DrainCount       int64
	DrainErrors      int64
	DrainBytes       int64
	DrainGrows       int64
	DrainMapped      int64
	DrainAvgNanos    int64
	ReleaseCount     int64
	ReleaseSucceeded int64
	SanitizeCount    int64
	SanitizeChanged  int64
}

// collectorObserver forwards drain events to a MetricsCollector. It keeps no
// state and can be shared by concurrent drains.
type collectorObserver struct {
	mc MetricsCollector
}

func (collectorObserver) OnGrow(int, int) {}

func (o collectorObserver) OnComplete(stats drain.Stats, err error) {
	o.mc.RecordDrain(stats.Bytes, stats.Grows, stats.Mapped, stats.Duration, err)
}

// metricsObserver observes a single drain and keeps its stats for logging.
type metricsObserver struct {
	collectorObserver
	stats drain.Stats
}

func newMetricsObserver(mc MetricsCollector) *metricsObserver {
	return &metricsObserver{collectorObserver: collectorObserver{mc: mc}}
}

func (o *metricsObserver) OnComplete(stats drain.Stats, err error) {
	o.stats = stats
	o.collectorObserver.OnComplete(stats, err)
}
