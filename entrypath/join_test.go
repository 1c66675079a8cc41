package entrypath

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoin(t *testing.T) {
	root := t.TempDir()

	got, err := Join(root, "../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "etc", "passwd"), got)

	got, err = Join(root, "a//b/./c/../d")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", "b", "d"), got)

	rel, err := filepath.Rel(root, got)
	require.NoError(t, err)
	assert.True(t, filepath.IsLocal(rel))

	_, err = Join(root, "../")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = Join(root, "")
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestIsClassfile(t *testing.T) {
	assert.True(t, IsClassfile("com/example/Foo.class"))
	assert.True(t, IsClassfile("Foo.CLASS"))
	assert.True(t, IsClassfile("x.Class"))
	assert.False(t, IsClassfile(".class"))
	assert.False(t, IsClassfile("Foo.java"))
	assert.False(t, IsClassfile("classes/"))
	assert.False(t, IsClassfile(""))
}
