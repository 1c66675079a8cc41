package testutil

import (
	"errors"
	"io"
	"math/rand"
	"sync"
)

// ErrInjected is returned by readers that fail without an explicit error.
var ErrInjected = errors.New("testutil: injected read error")

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewSource(r.seed))
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Bytes returns n pseudo-random bytes.
func (r *RNG) Bytes(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := make([]byte, n)
	_, _ = r.rand.Read(b)
	return b
}

// Text returns n pseudo-random printable ASCII bytes, which compress well.
func (r *RNG) Text(n int) []byte {
	const alphabet = "abcdefghijklmnopqrstuvwxyz \n"
	r.mu.Lock()
	defer r.mu.Unlock()
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[r.rand.Intn(len(alphabet))]
	}
	return b
}

type chunkedReader struct {
	r   io.Reader
	max int
}

// ChunkedReader returns a reader that delivers at most max bytes per Read.
func ChunkedReader(r io.Reader, max int) io.Reader {
	if max < 1 {
		max = 1
	}
	return &chunkedReader{r: r, max: max}
}

func (c *chunkedReader) Read(p []byte) (int, error) {
	if len(p) > c.max {
		p = p[:c.max]
	}
	return c.r.Read(p)
}

type stutterReader struct {
	r       io.Reader
	empties int
	pending int
}

// StutterReader returns a reader that answers empties reads with (0, nil)
// before every non-empty delivery from r.
func StutterReader(r io.Reader, empties int) io.Reader {
	return &stutterReader{r: r, empties: empties, pending: empties}
}

func (s *stutterReader) Read(p []byte) (int, error) {
	if len(p) > 0 && s.pending > 0 {
		s.pending--
		return 0, nil
	}
	s.pending = s.empties
	return s.r.Read(p)
}

// StalledReader never makes progress: every Read returns (0, nil).
type StalledReader struct {
	Calls int
}

func (s *StalledReader) Read(p []byte) (int, error) {
	s.Calls++
	return 0, nil
}

type failAfterReader struct {
	r    io.Reader
	left int64
	err  error
}

// FailAfter returns a reader that yields the first n bytes of r and then err.
// A nil err selects ErrInjected.
func FailAfter(r io.Reader, n int64, err error) io.Reader {
	if err == nil {
		err = ErrInjected
	}
	return &failAfterReader{r: r, left: n, err: err}
}

func (f *failAfterReader) Read(p []byte) (int, error) {
	if f.left <= 0 {
		return 0, f.err
	}
	if int64(len(p)) > f.left {
		p = p[:f.left]
	}
	n, err := f.r.Read(p)
	f.left -= int64(n)
	return n, err
}

type eofWithDataReader struct {
	data []byte
}

// EOFWithData returns a reader that delivers all of data together with
// io.EOF in a single Read, as some readers are allowed to.
func EOFWithData(data []byte) io.Reader {
	return &eofWithDataReader{data: data}
}

func (e *eofWithDataReader) Read(p []byte) (int, error) {
	n := copy(p, e.data)
	e.data = e.data[n:]
	if len(e.data) == 0 {
		return n, io.EOF
	}
	return n, nil
}

// CountingReader counts Read calls and delivered bytes.
type CountingReader struct {
	R     io.Reader
	Calls int
	Bytes int64
}

func (c *CountingReader) Read(p []byte) (int, error) {
	c.Calls++
	n, err := c.R.Read(p)
	c.Bytes += int64(n)
	return n, err
}
