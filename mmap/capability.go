package mmap

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Capability describes whether mapped memory can be released on demand.
type Capability uint8

const (
	// CapabilityUnavailable means the platform offers no explicit unmap;
	// memory is reclaimed when the owner is closed or collected.
	CapabilityUnavailable Capability = iota
	// CapabilityDirectRelease means owners can be unmapped immediately.
	CapabilityDirectRelease
)

func (c Capability) String() string {
	switch c {
	case CapabilityDirectRelease:
		return "direct-release"
	default:
		return "unavailable"
	}
}

var probeLogger atomic.Pointer[slog.Logger]

// SetLogger sets the logger used to report a failed capability probe.
// It must be called before the first Probe or Release to have any effect.
func SetLogger(l *slog.Logger) {
	probeLogger.Store(l)
}

var probe = sync.OnceValue(func() Capability {
	c, err := osProbe()
	if err != nil {
		l := probeLogger.Load()
		if l == nil {
			l = slog.Default()
		}
		l.Warn("mmap: direct release unavailable, falling back to scoped release", "error", err)
		return CapabilityUnavailable
	}
	return c
})

// Probe returns the release capability of the current platform.
//
// The probe runs once per process; concurrent first callers block until it
// completes and all callers observe the same value.
func Probe() Capability {
	return probe()
}
