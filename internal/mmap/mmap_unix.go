//go:build unix

package mmap

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Open maps the file at path. Empty files and non regular files (pipes,
// devices reporting no size) are read into memory instead.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info for %q: %w", path, err)
	}

	if !fi.Mode().IsRegular() || fi.Size() == 0 {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		return &File{Data: data}, nil
	}

	if int64(int(fi.Size())) != fi.Size() {
		return nil, fmt.Errorf("file %q is too large to be mapped", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(fi.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("failed to mmap file %q: %w", path, err)
	}

	return &File{
		Data: data,
		unmap: func() error {
			if err := unix.Munmap(data); err != nil {
				return fmt.Errorf("failed to munmap: %w", err)
			}
			return nil
		},
	}, nil
}
