package os

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	created, err := EnsureDir(dir, true)
	require.NoError(t, err)
	require.True(t, created)

	created, err = EnsureDir(dir, true)
	require.NoError(t, err)
	require.False(t, created)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0644))

	_, err = EnsureDir(dir, true)
	require.Error(t, err)

	_, err = EnsureDir(dir, false)
	require.NoError(t, err)

	_, err = EnsureDir(filepath.Join(dir, "f"), false)
	require.Error(t, err)
}

func TestCopyFileAndListFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b"), []byte("bb"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "c"), []byte("ccc"), 0644))

	files, err := ListFiles(dir)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "a"),
		filepath.Join(dir, "b"),
		filepath.Join(dir, "sub", "c"),
	}, files)

	files, err = ListFiles(filepath.Join(dir, "a"))
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "a")}, files)

	var buf bytes.Buffer
	for _, f := range []string{"a", "b"} {
		_, err := CopyFile(&buf, filepath.Join(dir, f))
		require.NoError(t, err)
	}
	require.Equal(t, "abb", buf.String())

	_, err = CopyFile(&buf, filepath.Join(dir, "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
