package blobstore

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/hupe1980/scanio/entrypath"
)

// MemoryStore is an in-memory BlobStore implementation for testing.
// It stores blobs in memory without any filesystem dependency.
// Thread-safe for concurrent reads and writes.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
	sizes map[string]int64
}

// NewMemoryStore creates a new in-memory blob store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string][]byte),
		sizes: make(map[string]int64),
	}
}

// Open opens a blob for reading.
func (m *MemoryStore) Open(_ context.Context, name string) (Blob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name = entrypath.Sanitize(name)
	data, ok := m.blobs[name]
	if !ok {
		return nil, ErrNotFound
	}

	size, ok := m.sizes[name]
	if !ok {
		size = int64(len(data))
	}

	// Blobs are immutable once stored.
	return &memoryBlob{data: data, size: size}, nil
}

// Put stores a blob under its sanitized name.
func (m *MemoryStore) Put(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Copy to prevent external mutation
	copied := make([]byte, len(data))
	copy(copied, data)
	name = entrypath.Sanitize(name)
	m.blobs[name] = copied
	delete(m.sizes, name)
}

// PutWithSize stores a blob that reports size instead of its real length,
// like a crafted archive entry header.
func (m *MemoryStore) PutWithSize(name string, data []byte, size int64) {
	m.Put(name, data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sizes[entrypath.Sanitize(name)] = size
}

// List returns all blobs matching the prefix.
func (m *MemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for name := range m.blobs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// memoryBlob implements Blob for in-memory data.
type memoryBlob struct {
	data []byte
	size int64
}

func (b *memoryBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *memoryBlob) Close() error {
	return nil
}

func (b *memoryBlob) Size() int64 {
	return b.size
}

// ReadRange streams length bytes from off. A negative length reads to the end.
func (b *memoryBlob) ReadRange(_ context.Context, off, length int64) (io.ReadCloser, error) {
	if off >= int64(len(b.data)) {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}
	end := int64(len(b.data))
	if length >= 0 && off+length < end {
		end = off + length
	}
	return io.NopCloser(bytes.NewReader(b.data[off:end])), nil
}
