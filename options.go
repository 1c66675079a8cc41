package scanio

import (
	"github.com/hupe1980/scanio/drain"
	"github.com/hupe1980/scanio/resource"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	controller       *resource.Controller
	threshold        drain.Threshold
}

// Option configures a Scanner.
type Option func(*options)

// WithLogger sets the logger for a Scanner.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithController charges drains against a shared memory, concurrency and IO
// budget.
//
// Example:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   512 << 20,
//	    MaxConcurrentReads: 16,
//	    IOLimitBytesPerSec: 200 << 20,
//	})
//	s := scanio.New(scanio.WithController(rc))
func WithController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithThreshold replaces the lookup that decides when ReadFile maps a file.
// The default is drain.DefaultThreshold.
func WithThreshold(t drain.Threshold) Option {
	return func(o *options) {
		if t == nil {
			t = drain.DefaultThreshold
		}
		o.threshold = t
	}
}
