// Package scanio provides the low-level I/O primitives of a classpath and
// resource scanner.
//
// It covers three concerns:
//
//   - Draining untrusted streams into memory without trusting their declared
//     size (package drain).
//   - Sanitizing archive entry names against zip slip (package entrypath).
//   - Releasing memory-mapped buffers early instead of waiting for the
//     garbage collector (package mmap).
//
// The subpackages can be used on their own. A Scanner ties them together
// with shared logging, metrics and a resource budget.
//
// # Quick Start
//
//	s := scanio.New(
//	    scanio.WithLogger(scanio.NewTextLogger(slog.LevelInfo)),
//	    scanio.WithController(resource.NewController(resource.Config{
//	        MemoryLimitBytes:   256 << 20,
//	        MaxConcurrentReads: 8,
//	    })),
//	)
//
//	name := s.Sanitize(entry.Name)      // "../../etc/passwd" -> "etc/passwd"
//	res, err := s.Drain(r, entry.Size)  // Size is only a hint
//	if errors.Is(err, scanio.ErrTooLarge) {
//	    // skip the entry
//	}
//
// Files are read through ReadFile, which maps large files and unmaps them as
// soon as their bytes are copied:
//
//	res, err := s.ReadFile(ctx, "lib/app.jar")
//
// # Memory-Mapped Buffers
//
// Release forces the unmapping of an owning mapping. Views derived from a
// mapping are never released on their own:
//
//	m, _ := mmap.Open(path)
//	view, _ := m.Region(0, 512)
//	s.Release(view) // false
//	s.Release(m)    // true where the platform supports it
//
// Where early release is unavailable (see mmap.Probe), close mappings with
// defer m.Close() instead.
//
// # Metrics
//
// WithMetricsCollector receives one event per drain, release and sanitize.
// BasicMetricsCollector keeps counters in memory; the metrics package
// exports the same events to Prometheus.
//
// # Error Handling
//
// Errors from the subpackages are translated to the sentinels in this
// package (ErrTooLarge, ErrReadFailed, ErrMemoryBudget, ErrNotFound,
// ErrInvalidPath) while keeping the original error in the chain.
package scanio
