package blobstore

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/scanio/drain"
)

// Read drains the named blob into memory, using the blob's reported size as
// an untrusted hint.
//
// Mappable blobs are copied out of their mapping, RangeReader blobs are
// streamed, and all others are read through ReadAt.
func Read(ctx context.Context, store BlobStore, name string, opts ...drain.Option) (res drain.Result, err error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return drain.Result{}, err
	}
	defer func() {
		if cerr := blob.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	size := blob.Size()

	switch b := blob.(type) {
	case Mappable:
		data, err := b.Bytes()
		if err != nil {
			return drain.Result{}, err
		}
		return drain.Drain(drain.NewRegionReader(data), size, opts...)
	case RangeReader:
		rc, err := b.ReadRange(ctx, 0, -1)
		if err != nil {
			return drain.Result{}, err
		}
		defer rc.Close()
		return drain.Drain(rc, size, opts...)
	default:
		return drain.Drain(&blobReader{ctx: ctx, blob: blob}, size, opts...)
	}
}

// ReadAll drains the named blobs with at most limit reads in flight.
// Results are returned in the order of names. The first failure cancels the
// remaining reads.
func ReadAll(ctx context.Context, store BlobStore, names []string, limit int, opts ...drain.Option) ([]drain.Result, error) {
	results := make([]drain.Result, len(names))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, name := range names {
		g.Go(func() error {
			res, err := Read(ctx, store, name, opts...)
			if err != nil {
				return fmt.Errorf("blobstore: read %s: %w", name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// blobReader adapts a Blob to io.Reader.
type blobReader struct {
	ctx  context.Context
	blob Blob
	off  int64
}

func (r *blobReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := r.blob.ReadAt(r.ctx, p, r.off)
	r.off += int64(n)
	if err == io.EOF && n > 0 {
		// Report the data now, EOF on the next call.
		return n, nil
	}
	return n, err
}
