package fs

import (
	"io"
	"os"

	"github.com/hupe1980/scanio/mmap"
)

// File represents an open file.
type File interface {
	io.ReadCloser
	io.ReaderAt
	Stat() (os.FileInfo, error)
}

// FileSystem abstracts the file system operations reads need, for testability.
type FileSystem interface {
	Open(name string) (File, error)
	Stat(name string) (os.FileInfo, error)
}

// Mapper is implemented by file systems whose files can be memory-mapped.
type Mapper interface {
	Map(name string) (*mmap.Mapping, error)
}

// LocalFS implements FileSystem using the local os package.
type LocalFS struct{}

func (LocalFS) Open(name string) (File, error)        { return os.Open(name) }
func (LocalFS) Stat(name string) (os.FileInfo, error) { return os.Stat(name) }

// Map memory-maps the named file read-only.
func (LocalFS) Map(name string) (*mmap.Mapping, error) { return mmap.Open(name) }

// Default is the default local file system.
var Default FileSystem = LocalFS{}
