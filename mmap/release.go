package mmap

import (
	"fmt"
	"log/slog"
)

// Release unmaps the memory behind buf immediately. It reports whether the
// memory was released by this call.
//
// Release never fails loudly: buffers that are not direct, views derived from
// another mapping, already released mappings and platforms without the
// capability all yield false. Unmap failures are logged to log (if non-nil)
// and also yield false; the mapping then stays registered for cleanup.
//
// After a true return, the contents of buf must not be accessed.
func Release(buf Buffer, log *slog.Logger) (released bool) {
	if buf == nil || !buf.Direct() {
		return false
	}
	if Probe() == CapabilityUnavailable {
		if log != nil {
			log.Debug("could not unmap buffer", "reason", "direct release unavailable")
		}
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			if log != nil {
				log.Warn("could not unmap buffer", "error", fmt.Sprint(r))
			}
			released = false
		}
	}()

	switch b := buf.(type) {
	case *Mapping:
		ok, err := b.release()
		if err != nil && log != nil {
			log.Warn("could not unmap buffer", "size", b.size, "error", err)
		}
		return ok
	case *Region:
		// Views share their owner's memory and are never released on their own.
		if log != nil {
			log.Debug("not unmapping derived view", "offset", b.offset, "size", b.size)
		}
		return false
	default:
		if log != nil {
			log.Debug("could not unmap buffer", "reason", fmt.Sprintf("unsupported buffer type %T", buf))
		}
		return false
	}
}
