package drain

import (
	"errors"
	"fmt"
)

var (
	// ErrTooLarge is returned when the declared or actual stream size exceeds MaxBufferSize.
	ErrTooLarge = errors.New("drain: stream too large")

	// ErrRead matches every *ReadError.
	ErrRead = errors.New("drain: read failed")

	// ErrMemoryBudget is returned when a buffer allocation is refused by the
	// configured resource.Controller.
	ErrMemoryBudget = errors.New("drain: memory budget exceeded")

	errInvalidRead = errors.New("reader returned invalid count")
)

// ReadError reports a failure of the underlying reader.
//
// The partially filled buffer is discarded. The reader's error can be
// accessed via errors.Unwrap.
type ReadError struct {
	Offset int64 // bytes successfully read before the failure
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("drain: read failed at offset %d: %v", e.Offset, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Is reports whether target is ErrRead.
func (e *ReadError) Is(target error) bool { return target == ErrRead }

func tooLarge(size int64) error {
	return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrTooLarge, size, int64(MaxBufferSize))
}
