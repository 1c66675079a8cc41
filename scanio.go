package scanio

import (
	"context"
	"io"

	"github.com/hupe1980/scanio/blobstore"
	"github.com/hupe1980/scanio/drain"
	"github.com/hupe1980/scanio/entrypath"
	"github.com/hupe1980/scanio/mmap"
	"github.com/hupe1980/scanio/resource"
)

// Scanner applies shared logging, metrics and resource limits to the drain,
// entrypath and mmap primitives. It is safe for concurrent use.
type Scanner struct {
	logger     *Logger
	metrics    MetricsCollector
	controller *resource.Controller
	threshold  drain.Threshold
}

// New creates a Scanner.
func New(opts ...Option) *Scanner {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		threshold:        drain.DefaultThreshold,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Scanner{
		logger:     o.logger,
		metrics:    o.metricsCollector,
		controller: o.controller,
		threshold:  o.threshold,
	}
}

// Logger returns the scanner's logger.
func (s *Scanner) Logger() *Logger { return s.logger }

// Controller returns the resource controller, or nil if none is configured.
func (s *Scanner) Controller() *resource.Controller { return s.controller }

func (s *Scanner) drainOptions(obs drain.Observer) []drain.Option {
	return []drain.Option{
		drain.WithController(s.controller),
		drain.WithLogger(s.logger.Logger),
		drain.WithObserver(obs),
		drain.WithThreshold(s.threshold),
	}
}

// Drain reads r to the end. sizeHint is advisory; -1 means unknown.
func (s *Scanner) Drain(r io.Reader, sizeHint int64) (drain.Result, error) {
	obs := newMetricsObserver(s.metrics)
	res, err := drain.Drain(r, sizeHint, s.drainOptions(obs)...)
	s.logger.LogDrain(context.Background(), obs.stats.Bytes, obs.stats.Grows, false, err)
	return res, translateError(err)
}

// DrainString reads r to the end and returns it as text.
func (s *Scanner) DrainString(r io.Reader, sizeHint int64) (string, error) {
	res, err := s.Drain(r, sizeHint)
	if err != nil {
		return "", err
	}
	return string(res.Bytes()), nil
}

// ReadFile reads the named file, memory-mapping it when it is at least as
// large as the configured threshold.
func (s *Scanner) ReadFile(ctx context.Context, path string) (drain.Result, error) {
	obs := newMetricsObserver(s.metrics)
	res, err := drain.ReadFileContext(ctx, path, s.drainOptions(obs)...)
	s.logger.WithPath(path).LogDrain(ctx, obs.stats.Bytes, obs.stats.Grows, obs.stats.Mapped, err)
	return res, pathError("read", path, err)
}

// ReadBlob drains the named blob from store.
func (s *Scanner) ReadBlob(ctx context.Context, store blobstore.BlobStore, name string) (drain.Result, error) {
	if err := s.controller.AcquireRead(ctx); err != nil {
		return drain.Result{}, err
	}
	defer s.controller.ReleaseRead()

	obs := newMetricsObserver(s.metrics)
	res, err := blobstore.Read(ctx, store, name, s.drainOptions(obs)...)
	s.logger.WithPath(name).LogDrain(ctx, obs.stats.Bytes, obs.stats.Grows, false, err)
	return res, pathError("read blob", name, err)
}

// ReadBlobs drains the named blobs with at most limit reads in flight.
func (s *Scanner) ReadBlobs(ctx context.Context, store blobstore.BlobStore, names []string, limit int) ([]drain.Result, error) {
	res, err := blobstore.ReadAll(ctx, store, names, limit,
		drain.WithController(s.controller),
		drain.WithLogger(s.logger.Logger),
		drain.WithObserver(collectorObserver{mc: s.metrics}),
	)
	return res, translateError(err)
}

// Sanitize returns name with traversal segments removed. See entrypath.Sanitize.
func (s *Scanner) Sanitize(name string) string {
	sanitized := entrypath.Sanitize(name)
	s.metrics.RecordSanitize(sanitized != name)
	s.logger.LogSanitize(context.Background(), name, sanitized)
	return sanitized
}

// Join sanitizes entry and places it under root.
func (s *Scanner) Join(root, entry string) (string, error) {
	p, err := entrypath.Join(root, entry)
	s.metrics.RecordSanitize(entrypath.Sanitize(entry) != entry)
	return p, pathError("join", entry, err)
}

// Release unmaps buf early. It reports whether this call released the memory;
// see mmap.Release.
func (s *Scanner) Release(buf mmap.Buffer) bool {
	size := 0
	if buf != nil && buf.Direct() {
		size = len(buf.Bytes())
	}
	released := mmap.Release(buf, s.logger.Logger)
	s.metrics.RecordRelease(released)
	s.logger.WithSize(int64(size)).LogRelease(context.Background(), released)
	return released
}

// Capability reports whether mapped buffers can be released early on this platform.
func (s *Scanner) Capability() mmap.Capability {
	return mmap.Probe()
}
