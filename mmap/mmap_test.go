package mmap

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mmap_test")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestMmap_OpenReadClose(t *testing.T) {
	content := []byte("Hello, Mmap!")
	path := writeTemp(t, content)

	m, err := Open(path)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, int64(len(content)), int64(m.Size()))
	assert.Equal(t, content, m.Bytes())

	// ReadAt
	buf := make([]byte, 5)
	n, err := m.ReadAt(buf, 7) // "Mmap!"
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "Mmap!", string(buf))

	// ReadAt out of bounds
	buf2 := make([]byte, 10)
	n, err = m.ReadAt(buf2, 100)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)

	// ReadAt partial
	buf3 := make([]byte, 10)
	n, err = m.ReadAt(buf3, 7)
	assert.Equal(t, 5, n)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, "Mmap!", string(buf3[:n]))

	// ReadAt negative offset
	_, err = m.ReadAt(buf, -1)
	assert.Equal(t, ErrInvalidOffset, err)
}

func TestMmap_EmptyFile(t *testing.T) {
	path := writeTemp(t, nil)

	m, err := Open(path)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 0, m.Size())
	assert.False(t, m.Direct())
	assert.False(t, Release(m, nil))
}

func TestMmap_OpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMmap_Region_And_Advise(t *testing.T) {
	path := writeTemp(t, make([]byte, 1024))

	m, err := Open(path)
	require.NoError(t, err)

	err = m.Advise(AccessRandom)
	require.NoError(t, err)

	r, err := m.Region(100, 200)
	require.NoError(t, err)
	assert.Len(t, r.Bytes(), 200)
	assert.Same(t, m, r.Owner())

	err = r.Advise(AccessSequential)
	require.NoError(t, err)

	// Views of views still point at the owner.
	rr, err := r.Region(10, 20)
	require.NoError(t, err)
	assert.Same(t, m, rr.Owner())
	assert.Equal(t, 110, rr.Offset())
	assert.Equal(t, 20, rr.Size())

	// Error cases
	_, err = m.Region(-1, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = m.Region(1000, 100)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = r.Region(150, 100)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	err = m.Close()
	require.NoError(t, err)

	// Region after close
	assert.Nil(t, r.Bytes())
	assert.Error(t, r.Advise(AccessDefault))
}

func TestRegion_Detached(t *testing.T) {
	for name, r := range map[string]*Region{
		"nil":        nil,
		"zero value": {},
	} {
		t.Run(name, func(t *testing.T) {
			assert.False(t, r.Direct())
			assert.Nil(t, r.Bytes())
			assert.NoError(t, r.Advise(AccessSequential))
			assert.False(t, Release(r, nil))
		})
	}
}

func TestMmap_AfterClose(t *testing.T) {
	path := writeTemp(t, []byte("data"))

	m, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, m.Close())

	assert.Nil(t, m.Bytes())
	assert.True(t, m.Released())
	assert.ErrorIs(t, m.Advise(AccessRandom), ErrClosed)
	_, err = m.Region(0, 1)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = m.ReadAt(make([]byte, 1), 0)
	assert.ErrorIs(t, err, ErrClosed)

	// Close is idempotent.
	assert.NoError(t, m.Close())
}

func TestMmap_MapAnon(t *testing.T) {
	m, err := MapAnon(4096)
	require.NoError(t, err)
	defer m.Close()

	data := m.Bytes()
	require.Len(t, data, 4096)
	data[0] = 42
	data[4095] = 7
	assert.Equal(t, byte(42), m.Bytes()[0])

	empty, err := MapAnon(0)
	require.NoError(t, err)
	assert.Nil(t, empty.Bytes())

	_, err = MapAnon(-1)
	assert.ErrorIs(t, err, ErrInvalidSize)
}
