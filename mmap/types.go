package mmap

import "errors"

// AccessPattern provides hints to the kernel about how the data will be accessed.
type AccessPattern int

const (
	// AccessDefault is the default access pattern (no specific advice).
	AccessDefault AccessPattern = iota
	// AccessSequential expects data to be accessed sequentially.
	AccessSequential
	// AccessRandom expects data to be accessed randomly.
	AccessRandom
	// AccessWillNeed expects data to be accessed in the near future.
	AccessWillNeed
	// AccessDontNeed expects data to not be accessed in the near future.
	AccessDontNeed
)

// Buffer is a byte buffer that may be backed by memory outside the Go heap.
//
// The caller owns the buffer. Release never takes ownership; it only unmaps
// the backing memory early when that is safe.
type Buffer interface {
	// Bytes returns the buffer contents, or nil once the memory was released.
	Bytes() []byte
	// Direct reports whether the buffer is backed by mapped memory.
	Direct() bool
}

// Heap is a Buffer backed by ordinary Go memory. It is never direct.
type Heap []byte

// Bytes returns the underlying slice.
func (h Heap) Bytes() []byte { return h }

// Direct always returns false.
func (Heap) Direct() bool { return false }

var (
	// ErrClosed is returned when attempting to access a closed mapping.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned when the file size is invalid (e.g. negative or too large).
	ErrInvalidSize = errors.New("mmap: invalid file size")
	// ErrOutOfBounds is returned when attempting to access a region outside the mapping.
	ErrOutOfBounds = errors.New("mmap: out of bounds")
	// ErrInvalidOffset is returned when the offset is invalid (e.g. negative).
	ErrInvalidOffset = errors.New("mmap: invalid offset")
	// ErrUnsupported is returned by the capability probe on platforms without mmap.
	ErrUnsupported = errors.New("mmap: memory mapping unsupported on this platform")
)
