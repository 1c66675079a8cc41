package drain

import (
	"fmt"
	"io"
	"time"
	"unicode/utf8"
)

const (
	// MaxBufferSize is the largest buffer Drain will allocate, kept below
	// 2^31 so results stay addressable with 32-bit lengths.
	MaxBufferSize = 1<<31 - 9

	// DefaultBufferSize is the initial capacity when the size is unknown.
	DefaultBufferSize = 16384

	// MaxInitialBufferSize caps the initial allocation driven by a size hint.
	MaxInitialBufferSize = 16 << 20

	maxConsecutiveEmptyReads = 100
)

// Result is a drained stream. Only Buf[:Len] holds stream data.
type Result struct {
	Buf []byte
	Len int
}

// Bytes returns the populated prefix of the buffer.
func (r Result) Bytes() []byte { return r.Buf[:r.Len] }

// Drain reads r until io.EOF and returns everything it produced.
//
// sizeHint is advisory: values below 1 mean unknown, larger values seed the
// initial capacity up to MaxInitialBufferSize. A hint above MaxBufferSize
// fails immediately with ErrTooLarge, as does a stream that outgrows it.
// Reader failures are returned as *ReadError.
func Drain(r io.Reader, sizeHint int64, opts ...Option) (Result, error) {
	return drainWith(r, sizeHint, newOptions(opts), false)
}

// Bytes drains r and returns a slice of exactly the stream's length.
func Bytes(r io.Reader, sizeHint int64, opts ...Option) ([]byte, error) {
	res, err := Drain(r, sizeHint, opts...)
	if err != nil {
		return nil, err
	}
	return res.Bytes(), nil
}

// String drains r and returns its content as text. Invalid UTF-8 sequences
// are kept byte for byte.
func String(r io.Reader, sizeHint int64, opts ...Option) (string, error) {
	b, err := Bytes(r, sizeHint, opts...)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ValidUTF8 reports whether a drained result is well-formed UTF-8 text.
func (r Result) ValidUTF8() bool { return utf8.Valid(r.Bytes()) }

func drainWith(r io.Reader, sizeHint int64, o *options, mapped bool) (res Result, err error) {
	d := &drainer{
		r:     r,
		o:     o,
		stats: Stats{SizeHint: sizeHint, Mapped: mapped},
	}
	start := time.Now()
	defer func() {
		d.releaseCharge()
		d.stats.Bytes = res.Len
		d.stats.Duration = time.Since(start)
		if o.observer != nil {
			o.observer.OnComplete(d.stats, err)
		}
	}()

	if sizeHint > MaxBufferSize {
		return Result{}, tooLarge(sizeHint)
	}

	size := DefaultBufferSize
	if sizeHint >= 1 {
		size = int(min(sizeHint, MaxInitialBufferSize))
	}

	return d.run(size)
}

type drainer struct {
	r       io.Reader
	o       *options
	buf     []byte
	off     int
	empty   int
	charged int64
	stats   Stats
}

func (d *drainer) run(size int) (Result, error) {
	if err := d.alloc(size); err != nil {
		return Result{}, err
	}

	var probe [1]byte
	for {
		if d.off == len(d.buf) {
			// The buffer is full. Look for one more byte before paying for a
			// doubling, so streams matching the hint exactly are not copied.
			n, err := d.read(probe[:])
			if err == io.EOF && n == 0 {
				break
			}
			if err != nil && err != io.EOF {
				return Result{}, err
			}
			if n == 0 {
				continue
			}
			if err := d.grow(); err != nil {
				return Result{}, err
			}
			d.buf[d.off] = probe[0]
			d.off++
			if err == io.EOF {
				break
			}
			continue
		}

		n, err := d.read(d.buf[d.off:])
		d.off += n
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, err
		}
	}

	if d.off != len(d.buf) {
		if d.off == 0 {
			return Result{Buf: []byte{}}, nil
		}
		trimmed := make([]byte, d.off)
		copy(trimmed, d.buf[:d.off])
		d.buf = trimmed
	}
	return Result{Buf: d.buf, Len: d.off}, nil
}

// read performs one Read, enforcing the io.Reader count contract and the
// empty-read limit. It returns io.EOF unwrapped and other failures as *ReadError.
func (d *drainer) read(p []byte) (int, error) {
	n, err := d.r.Read(p)
	d.stats.Reads++
	if n < 0 || n > len(p) {
		return 0, &ReadError{Offset: int64(d.off), Err: fmt.Errorf("%w: %d", errInvalidRead, n)}
	}
	if err == io.EOF {
		return n, io.EOF
	}
	if err != nil {
		return 0, &ReadError{Offset: int64(d.off + n), Err: err}
	}
	if n > 0 {
		d.empty = 0
		return n, nil
	}
	d.empty++
	d.stats.EmptyReads++
	if d.empty > maxConsecutiveEmptyReads {
		return 0, &ReadError{Offset: int64(d.off), Err: io.ErrNoProgress}
	}
	return 0, nil
}

func (d *drainer) grow() error {
	next, ok := nextSize(len(d.buf))
	if !ok {
		return tooLarge(int64(len(d.buf)) + 1)
	}
	old := d.buf
	if err := d.alloc(next); err != nil {
		return err
	}
	copy(d.buf, old[:d.off])
	d.uncharge(int64(len(old)))

	d.stats.Grows++
	if d.o.logger != nil {
		d.o.logger.Debug("growing drain buffer", "from", len(old), "to", next, "offset", d.off)
	}
	if d.o.observer != nil {
		d.o.observer.OnGrow(len(old), next)
	}
	return nil
}

// nextSize doubles cur, clamping to MaxBufferSize. It reports false once cur
// has reached the maximum.
func nextSize(cur int) (int, bool) {
	if cur >= MaxBufferSize {
		return 0, false
	}
	next := cur * 2
	if next > MaxBufferSize || next < cur {
		next = MaxBufferSize
	}
	return next, true
}

func (d *drainer) alloc(size int) error {
	if err := d.o.controller.AcquireMemory(int64(size)); err != nil {
		return fmt.Errorf("%w: %w", ErrMemoryBudget, err)
	}
	d.charged += int64(size)
	d.buf = make([]byte, size)
	return nil
}

func (d *drainer) uncharge(size int64) {
	d.o.controller.ReleaseMemory(size)
	d.charged -= size
}

func (d *drainer) releaseCharge() {
	if d.charged > 0 {
		d.uncharge(d.charged)
	}
}
