package scanio

import (
	"errors"
	"fmt"
	"os"

	"github.com/hupe1980/scanio/drain"
	"github.com/hupe1980/scanio/entrypath"
)

var (
	// ErrTooLarge is returned when an input exceeds drain.MaxBufferSize.
	ErrTooLarge = errors.New("input too large")

	// ErrReadFailed is returned when the underlying stream or file fails.
	ErrReadFailed = errors.New("read failed")

	// ErrMemoryBudget is returned when the resource controller refuses a buffer.
	ErrMemoryBudget = errors.New("memory budget exceeded")

	// ErrNotFound is returned when a file or blob does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidPath is returned when an entry name cannot be placed under a root.
	ErrInvalidPath = errors.New("invalid entry path")
)

// PathError records the path an operation failed on.
//
// The original underlying error can be accessed via errors.Unwrap.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, drain.ErrTooLarge):
		return fmt.Errorf("%w: %w", ErrTooLarge, err)
	case errors.Is(err, drain.ErrMemoryBudget):
		return fmt.Errorf("%w: %w", ErrMemoryBudget, err)
	case errors.Is(err, drain.ErrRead):
		return fmt.Errorf("%w: %w", ErrReadFailed, err)
	case errors.Is(err, os.ErrNotExist):
		// blobstore.ErrNotFound is os.ErrNotExist.
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, entrypath.ErrEscapesRoot), errors.Is(err, entrypath.ErrEmptyPath):
		return fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}

	return err
}

func pathError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &PathError{Op: op, Path: path, Err: translateError(err)}
}
