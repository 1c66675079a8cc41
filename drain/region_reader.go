package drain

import "io"

// RegionReader adapts a fixed byte region, such as a mapped file, to the
// stream interfaces Drain consumes. It is not safe for concurrent use.
type RegionReader struct {
	data []byte
	pos  int
}

// NewRegionReader returns a reader over data. The region is not copied.
func NewRegionReader(data []byte) *RegionReader {
	return &RegionReader{data: data}
}

// Read copies min(len(p), Remaining()) bytes and advances. It returns io.EOF
// once the region is exhausted.
func (r *RegionReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// ReadByte returns the next byte, or io.EOF once the region is exhausted.
func (r *RegionReader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// WriteTo writes the unread part of the region to w.
func (r *RegionReader) WriteTo(w io.Writer) (int64, error) {
	if r.pos >= len(r.data) {
		return 0, nil
	}
	n, err := w.Write(r.data[r.pos:])
	if n > len(r.data)-r.pos {
		panic("drain: invalid Write count")
	}
	r.pos += n
	if err == nil && r.pos < len(r.data) {
		err = io.ErrShortWrite
	}
	return int64(n), err
}

// Remaining returns the number of unread bytes.
func (r *RegionReader) Remaining() int { return len(r.data) - r.pos }

// Len returns the total size of the region.
func (r *RegionReader) Len() int { return len(r.data) }

var (
	_ io.Reader     = (*RegionReader)(nil)
	_ io.ByteReader = (*RegionReader)(nil)
	_ io.WriterTo   = (*RegionReader)(nil)
)
