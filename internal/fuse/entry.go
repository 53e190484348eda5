// Package fuse exposes the files listed in a carve report as a read-only
// filesystem, reading their content straight from the input image.
package fuse

import (
	"fmt"
	"slices"
	"strings"
)

// FileEntry is a file of the mounted view, stored at Offset in the image.
type FileEntry struct {
	Name   string
	Offset uint64
	Size   uint64
}

// sortEntries returns the entries ordered by name. Names must be unique and
// must not contain a path separator since the view is a single directory.
func sortEntries(entries []FileEntry) ([]FileEntry, error) {
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b FileEntry) int {
		return strings.Compare(a.Name, b.Name)
	})

	for i, e := range sorted {
		if e.Name == "" || strings.ContainsRune(e.Name, '/') {
			return nil, fmt.Errorf("invalid file name %q", e.Name)
		}
		if i > 0 && sorted[i-1].Name == e.Name {
			return nil, fmt.Errorf("duplicate file name %q", e.Name)
		}
	}
	return sorted, nil
}
