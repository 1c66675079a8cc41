// Package mmap provides memory-mapped file access and deterministic release of
// mapped memory.
//
// # Overview
//
// Go's garbage collector never unmaps memory obtained from mmap(2). A mapping
// that is dropped without being unmapped stays resident until a cleanup runs or
// the process exits. This package lets callers force the unmap as soon as they
// are done with a region, while keeping a runtime cleanup as the fallback.
//
// # Usage
//
//	m, err := mmap.Open("lib/classes.jar")
//	if err != nil { ... }
//	defer m.Close()
//
//	// Zero-copy access to file contents
//	data := m.Bytes()
//
//	// Create a view into a specific region
//	region, _ := m.Region(offset, size)
//
//	// Unmap early, as soon as the scan is finished
//	mmap.Release(m, logger)
//
// # Owners and Views
//
// A [Mapping] owns its memory. A [Region] is a view that carries a
// back-reference to the Mapping it was derived from. [Release] only ever
// unmaps owners; views are rejected, since releasing a view would unmap memory
// other views still point into.
//
// # Capability
//
// Whether forced release is supported is decided once per process by [Probe],
// which maps and unmaps a single anonymous page:
//
//   - Unix (Linux, macOS, BSD): mmap(2)/munmap(2) via golang.org/x/sys/unix
//   - Windows: MapViewOfFile/UnmapViewOfFile via golang.org/x/sys/windows
//   - Other platforms: unavailable; Open falls back to a heap copy and callers
//     rely on Close (typically deferred) instead of early release.
//
// # Thread Safety
//
// Mapping and Region are safe for concurrent read access. Close and Release
// are idempotent and protected by atomic operations; at most one of them
// unmaps. Callers must ensure no goroutine touches Bytes() after either
// returns successfully.
package mmap
