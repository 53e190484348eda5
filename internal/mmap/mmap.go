// Package mmap maps files read-only into memory.
package mmap

// File is the content of a file, mapped or read in memory.
type File struct {
	Data  []byte
	unmap func() error
}

// Close releases the mapping. Data must not be used afterwards.
func (f *File) Close() error {
	unmap := f.unmap
	f.unmap = nil
	f.Data = nil

	if unmap == nil {
		return nil
	}
	return unmap()
}

// Mapped reports whether Data is backed by a memory mapping.
func (f *File) Mapped() bool {
	return f.unmap != nil
}
