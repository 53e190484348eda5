//go:build linux

package fuse

import (
	"bytes"
	"context"
	"testing"

	"bazil.org/fuse"
	"github.com/stretchr/testify/require"
)

func newTestFS(t *testing.T) *CarveFS {
	t.Helper()

	image := []byte("..JPGDATA..PNGDATA")
	cfs, err := NewCarveFS(bytes.NewReader(image), []FileEntry{
		{Name: "png_0.png", Offset: 11, Size: 7},
		{Name: "jpg_0.jpg", Offset: 2, Size: 7},
	})
	require.NoError(t, err)
	return cfs
}

func TestReadDirAll(t *testing.T) {
	root, err := newTestFS(t).Root()
	require.NoError(t, err)

	dirents, err := root.(*Dir).ReadDirAll(context.Background())
	require.NoError(t, err)
	require.Len(t, dirents, 2)
	require.Equal(t, "jpg_0.jpg", dirents[0].Name)
	require.Equal(t, "png_0.png", dirents[1].Name)
	require.NotEqual(t, dirents[0].Inode, dirents[1].Inode)
}

func TestLookupAndRead(t *testing.T) {
	root, err := newTestFS(t).Root()
	require.NoError(t, err)
	dir := root.(*Dir)

	_, err = dir.Lookup(context.Background(), "gif_0.gif")
	require.ErrorIs(t, err, fuse.ENOENT)

	node, err := dir.Lookup(context.Background(), "png_0.png")
	require.NoError(t, err)
	f := node.(*File)

	var attr fuse.Attr
	require.NoError(t, f.Attr(context.Background(), &attr))
	require.Equal(t, uint64(7), attr.Size)

	var resp fuse.ReadResponse
	require.NoError(t, f.Read(context.Background(), &fuse.ReadRequest{Offset: 3, Size: 64}, &resp))
	require.Equal(t, []byte("DATA"), resp.Data)

	require.NoError(t, f.Read(context.Background(), &fuse.ReadRequest{Offset: 7, Size: 64}, &resp))
	require.Empty(t, resp.Data)
}

func TestNewCarveFSRejectsDuplicates(t *testing.T) {
	_, err := NewCarveFS(bytes.NewReader(nil), []FileEntry{{Name: "a"}, {Name: "a"}})
	require.Error(t, err)

	_, err = NewCarveFS(bytes.NewReader(nil), []FileEntry{{Name: "x/y"}})
	require.Error(t, err)
}
