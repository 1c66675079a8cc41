// Package drain reads whole streams into memory without trusting their
// declared size.
//
// A size hint (for example an archive entry header) only seeds the initial
// allocation, capped at [MaxInitialBufferSize]. The buffer then doubles as
// data arrives, up to [MaxBufferSize], and is trimmed to the bytes actually
// read:
//
//	res, err := drain.Drain(r, entry.Size)
//	if errors.Is(err, drain.ErrTooLarge) {
//	    // skip entry
//	}
//	data := res.Bytes()
//
// [ReadFile] picks between a streamed read and a memory-mapped read using a
// pluggable [Threshold], releasing the mapping as soon as the bytes are copied.
package drain
