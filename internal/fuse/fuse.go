//go:build linux

// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package fuse

import (
	"context"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
)

// CarveFS is a flat, read-only directory of carved files.
type CarveFS struct {
	r       io.ReaderAt
	entries []FileEntry // sorted by name
	mtime   time.Time
}

func NewCarveFS(r io.ReaderAt, entries []FileEntry) (*CarveFS, error) {
	sorted, err := sortEntries(entries)
	if err != nil {
		return nil, err
	}
	return &CarveFS{
		r:       r,
		entries: sorted,
		mtime:   time.Now(),
	}, nil
}

func (cfs *CarveFS) Root() (fs.Node, error) {
	return &Dir{fs: cfs}, nil
}

// Dir implements both fs.Node and fs.HandleReadDirAller
type Dir struct {
	fs *CarveFS
}

func (*Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = 1
	a.Mode = os.ModeDir | 0555
	return nil
}

func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	i, found := slices.BinarySearchFunc(d.fs.entries, name, func(e FileEntry, name string) int {
		return strings.Compare(e.Name, name)
	})
	if !found {
		return nil, fuse.ENOENT
	}

	e := d.fs.entries[i]
	return &File{
		r:     io.NewSectionReader(d.fs.r, int64(e.Offset), int64(e.Size)),
		inode: inodeOf(i),
		size:  e.Size,
		mtime: d.fs.mtime,
	}, nil
}

func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	dirents := make([]fuse.Dirent, len(d.fs.entries))
	for i, e := range d.fs.entries {
		dirents[i] = fuse.Dirent{
			Inode: inodeOf(i),
			Name:  e.Name,
			Type:  fuse.DT_File,
		}
	}
	return dirents, nil
}

// inode 1 is the root directory.
func inodeOf(i int) uint64 {
	return uint64(i) + 2
}

// File implements both fs.Node and fs.HandleReader
type File struct {
	r     io.ReaderAt
	inode uint64
	size  uint64
	mtime time.Time
}

func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = f.inode
	a.Mode = 0444
	a.Size = f.size
	a.Mtime = f.mtime
	return nil
}

func (f *File) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	offset := req.Offset
	if offset >= int64(f.size) {
		resp.Data = []byte{}
		return nil
	}

	size := min(int64(req.Size), int64(f.size)-offset)
	buf := make([]byte, size)

	n, err := f.r.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return err
	}
	resp.Data = buf[:n]
	return nil
}
