package mmap

import (
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"sync/atomic"
)

// Mapping represents a memory-mapped file or anonymous region.
// It owns the underlying byte slice and is responsible for unmapping it.
type Mapping struct {
	data     []byte
	size     int
	released atomic.Bool
	// unmap is the platform-specific function to unmap the memory.
	// It is nil for heap-backed and empty mappings.
	unmap   func([]byte) error
	cleanup runtime.Cleanup
}

// mapped is the cleanup argument. It must not reference the Mapping itself.
type mapped struct {
	data  []byte
	unmap func([]byte) error
}

func newMapping(data []byte, unmap func([]byte) error) *Mapping {
	m := &Mapping{
		data:  data,
		size:  len(data),
		unmap: unmap,
	}
	if unmap != nil && len(data) > 0 {
		// Unmap on collection if nobody released the mapping explicitly.
		m.cleanup = runtime.AddCleanup(m, func(r mapped) {
			_ = r.unmap(r.data)
		}, mapped{data: data, unmap: unmap})
	}
	return m
}

// Open maps the file at path into memory.
// The file is mapped as read-only. On platforms without mmap support the file
// is read into heap memory instead and the returned Mapping is not direct.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size := fi.Size()
	if size == 0 {
		return &Mapping{}, nil
	}
	if size < 0 || size > math.MaxInt {
		return nil, ErrInvalidSize
	}

	// Platform-specific mapping
	data, unmapFunc, err := osMap(f, int(size))
	if err != nil {
		return nil, fmt.Errorf("mmap: map %s: %w", path, err)
	}

	return newMapping(data, unmapFunc), nil
}

// MapAnon creates a read-write anonymous mapping of size bytes.
func MapAnon(size int) (*Mapping, error) {
	if size < 0 {
		return nil, ErrInvalidSize
	}
	if size == 0 {
		return &Mapping{}, nil
	}
	data, unmapFunc, err := osMapAnon(size)
	if err != nil {
		return nil, fmt.Errorf("mmap: map anonymous region of %d bytes: %w", size, err)
	}
	return newMapping(data, unmapFunc), nil
}

// Close unmaps the memory. It is idempotent and safe to call after Release.
func (m *Mapping) Close() error {
	_, err := m.release()
	return err
}

// release unmaps the memory if it is still mapped. It reports whether this
// call performed the unmap. A failed unmap leaves the mapping registered for
// cleanup so it is not leaked.
func (m *Mapping) release() (ok bool, err error) {
	if m == nil {
		return false, nil
	}
	if !m.released.CompareAndSwap(false, true) {
		return false, nil // Already released
	}
	if m.unmap == nil || len(m.data) == 0 {
		return false, nil
	}

	defer func() {
		if r := recover(); r != nil {
			m.released.Store(false)
			ok, err = false, fmt.Errorf("mmap: unmap panicked: %v", r)
		}
	}()

	if err := m.unmap(m.data); err != nil {
		m.released.Store(false)
		return false, err
	}
	m.cleanup.Stop()
	return true, nil
}

// Direct reports whether the mapping is backed by mapped memory that can be
// released early.
func (m *Mapping) Direct() bool {
	return m != nil && m.unmap != nil && len(m.data) > 0
}

// Released reports whether the memory was unmapped.
func (m *Mapping) Released() bool {
	return m != nil && m.released.Load()
}

// Bytes returns the underlying byte slice.
// Warning: The slice is valid only until Close() or Release is called.
// Accessing the slice after that results in undefined behavior (likely a crash).
func (m *Mapping) Bytes() []byte {
	if m == nil || m.released.Load() {
		return nil
	}
	return m.data
}

// Size returns the size of the mapping in bytes.
func (m *Mapping) Size() int {
	return m.size
}

// Advise provides hints to the kernel about how the memory will be accessed.
func (m *Mapping) Advise(pattern AccessPattern) error {
	if m.released.Load() {
		return ErrClosed
	}
	if m.unmap == nil || m.data == nil {
		return nil
	}
	return osAdvise(m.data, pattern)
}

// ReadAt implements io.ReaderAt.
func (m *Mapping) ReadAt(p []byte, off int64) (n int, err error) {
	if m.released.Load() {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n = copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
