package blobstore

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hupe1980/scanio/entrypath"
	"github.com/hupe1980/scanio/mmap"
)

// LocalStore implements BlobStore using the local file system.
// Blob names are confined to the root directory.
type LocalStore struct {
	root   string
	logger *slog.Logger
}

// LocalOption configures a LocalStore.
type LocalOption func(*LocalStore)

// WithLogger sets the logger used when releasing mapped blobs.
func WithLogger(l *slog.Logger) LocalOption {
	return func(s *LocalStore) {
		s.logger = l
	}
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
func NewLocalStore(root string, opts ...LocalOption) *LocalStore {
	s := &LocalStore{root: root}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open maps the named blob. The mapping is released on Close.
func (s *LocalStore) Open(_ context.Context, name string) (Blob, error) {
	path, err := entrypath.Join(s.root, name)
	if err != nil {
		return nil, err
	}
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	return &localBlob{m: m, logger: s.logger}, nil
}

// List walks the root directory and returns the slash-separated names of all
// regular files with the given prefix.
func (s *LocalStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// localBlob serializes Close against in-flight ReadAt calls so the mapping is
// never unmapped under a copy.
type localBlob struct {
	mu     sync.RWMutex
	m      *mmap.Mapping
	logger *slog.Logger
}

func (b *localBlob) ReadAt(_ context.Context, p []byte, off int64) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.m.Released() {
		return 0, mmap.ErrClosed
	}
	data := b.m.Bytes()
	if off < 0 || off >= int64(len(data)) {
		return 0, io.EOF
	}
	n = copy(p, data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Close unmaps the blob right away, falling back to a scoped close where
// early release is unavailable.
func (b *localBlob) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if mmap.Release(b.m, b.logger) {
		return nil
	}
	return b.m.Close()
}

func (b *localBlob) Size() int64 {
	return int64(b.m.Size())
}

// Bytes returns the mapped content. The slice is valid until Close; callers
// must finish with it before closing the blob.
func (b *localBlob) Bytes() ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.m.Released() {
		return nil, mmap.ErrClosed
	}
	return b.m.Bytes(), nil
}
