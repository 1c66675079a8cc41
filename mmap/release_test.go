package mmap

import (
	"bytes"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func requireDirectRelease(t *testing.T) {
	t.Helper()
	if Probe() == CapabilityUnavailable {
		t.Skip("direct release unavailable on this platform")
	}
}

func TestProbe_Consistent(t *testing.T) {
	first := Probe()

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			assert.Equal(t, first, Probe())
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.NotEmpty(t, first.String())
}

func TestRelease_NonDirect(t *testing.T) {
	assert.False(t, Release(nil, nil))
	assert.False(t, Release(Heap("not mapped"), nil))

	var nilMapping *Mapping
	assert.False(t, Release(nilMapping, nil))

	h := Heap([]byte{1, 2, 3})
	assert.False(t, Release(h, nil))
	assert.Equal(t, []byte{1, 2, 3}, h.Bytes())
}

func TestRelease_Mapping(t *testing.T) {
	requireDirectRelease(t)

	path := writeTemp(t, []byte("release me"))
	m, err := Open(path)
	require.NoError(t, err)
	require.True(t, m.Direct())

	assert.True(t, Release(m, nil))
	assert.True(t, m.Released())
	assert.Nil(t, m.Bytes())

	// Second release must be a harmless no-op.
	assert.False(t, Release(m, nil))
	assert.NoError(t, m.Close())
}

func TestRelease_RejectsViews(t *testing.T) {
	requireDirectRelease(t)

	m, err := MapAnon(8192)
	require.NoError(t, err)
	defer m.Close()

	r, err := m.Region(0, 4096)
	require.NoError(t, err)

	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	assert.False(t, Release(r, log))
	assert.False(t, m.Released())
	assert.Contains(t, logs.String(), "derived view")

	// The owner is still usable and releasable.
	m.Bytes()[0] = 1
	assert.True(t, Release(m, log))
}

func TestRelease_ConcurrentOnce(t *testing.T) {
	requireDirectRelease(t)

	m, err := MapAnon(1 << 16)
	require.NoError(t, err)

	var wins atomic.Int32
	var g errgroup.Group
	for i := 0; i < 32; i++ {
		g.Go(func() error {
			if Release(m, nil) {
				wins.Add(1)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int32(1), wins.Load())
}

type foreignBuffer struct{}

func (foreignBuffer) Bytes() []byte { return []byte("x") }
func (foreignBuffer) Direct() bool  { return true }

func TestRelease_UnknownDirectBuffer(t *testing.T) {
	requireDirectRelease(t)
	assert.False(t, Release(foreignBuffer{}, nil))
}

func BenchmarkRelease(b *testing.B) {
	if Probe() == CapabilityUnavailable {
		b.Skip("direct release unavailable on this platform")
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		m, err := MapAnon(1 << 16)
		if err != nil {
			b.Fatal(err)
		}
		if !Release(m, nil) {
			b.Fatal("release failed")
		}
	}
}
