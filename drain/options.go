package drain

import (
	"log/slog"
	"time"

	"github.com/hupe1980/scanio/internal/fs"
	"github.com/hupe1980/scanio/resource"
)

// Stats describes a finished drain.
type Stats struct {
	SizeHint   int64
	Bytes      int
	Grows      int
	Reads      int
	EmptyReads int
	Mapped     bool // read from a memory-mapped file
	Duration   time.Duration
}

// Observer receives drain events, typically to feed metrics.
// Implementations must be safe for concurrent use when shared across drains.
type Observer interface {
	// OnGrow is called after the buffer grew from one capacity to another.
	OnGrow(from, to int)
	// OnComplete is called once per drain, err is nil on success.
	OnComplete(stats Stats, err error)
}

type options struct {
	controller *resource.Controller
	logger     *slog.Logger
	observer   Observer
	threshold  Threshold
	fs         fs.FileSystem
}

// Option configures a drain.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{
		threshold: DefaultThreshold,
		fs:        fs.Default,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithController charges every buffer allocation against c's memory budget.
// The charge is returned when the drain finishes.
func WithController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithLogger sets the logger for growth diagnostics. nil disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithObserver registers an observer for drain events.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithThreshold replaces the lookup deciding when ReadFile maps a file.
//
// If nil is passed, DefaultThreshold is used.
func WithThreshold(t Threshold) Option {
	return func(o *options) {
		if t == nil {
			t = DefaultThreshold
		}
		o.threshold = t
	}
}

// WithFileSystem sets the file system ReadFile reads from.
//
// If nil is passed, fs.Default is used.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys == nil {
			fsys = fs.Default
		}
		o.fs = fsys
	}
}
