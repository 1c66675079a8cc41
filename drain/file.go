package drain

import (
	"context"
	"runtime"

	"github.com/hupe1980/scanio/internal/fs"
	"github.com/hupe1980/scanio/mmap"
	"github.com/hupe1980/scanio/resource"
)

// ReadFile reads the named file into memory.
//
// Files smaller than the configured Threshold are streamed with their size as
// hint. Larger files are memory-mapped, copied out through a RegionReader and
// unmapped immediately with mmap.Release. File systems that cannot map always
// stream.
func ReadFile(path string, opts ...Option) (Result, error) {
	return ReadFileContext(context.Background(), path, opts...)
}

// ReadFileContext is ReadFile bounded by ctx. With a controller configured it
// waits for a read slot and applies the controller's IO rate limit.
func ReadFileContext(ctx context.Context, path string, opts ...Option) (Result, error) {
	o := newOptions(opts)

	if err := o.controller.AcquireRead(ctx); err != nil {
		return Result{}, err
	}
	defer o.controller.ReleaseRead()

	info, err := o.fs.Stat(path)
	if err != nil {
		return Result{}, err
	}
	size := info.Size()
	if size > MaxBufferSize {
		return Result{}, tooLarge(size)
	}

	if mapper, ok := o.fs.(fs.Mapper); ok && info.Mode().IsRegular() && size >= o.threshold(runtime.GOOS) {
		return readMapped(mapper, path, size, o)
	}

	f, err := o.fs.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	return drainWith(resource.NewRateLimitedReader(ctx, f, o.controller), size, o, false)
}

// ReadFileString reads the named file as text.
func ReadFileString(path string, opts ...Option) (string, error) {
	res, err := ReadFile(path, opts...)
	if err != nil {
		return "", err
	}
	return string(res.Bytes()), nil
}

func readMapped(mapper fs.Mapper, path string, size int64, o *options) (Result, error) {
	m, err := mapper.Map(path)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		// Scoped release when forced unmapping is unavailable or failed.
		if !mmap.Release(m, o.logger) {
			_ = m.Close()
		}
	}()

	_ = m.Advise(mmap.AccessSequential)

	return drainWith(NewRegionReader(m.Bytes()), size, o, true)
}
