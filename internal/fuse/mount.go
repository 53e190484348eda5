//go:build !linux

package fuse

import (
	"fmt"
	"io"

	"github.com/ostafen/carver/internal/logger"
)

func Mount(mountpoint string, r io.ReaderAt, entries []FileEntry, log *logger.Logger) error {
	if _, err := sortEntries(entries); err != nil {
		return err
	}
	return fmt.Errorf("FUSE mount is only supported on Linux")
}
