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
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"
	"github.com/ostafen/carver/internal/logger"
	osutils "github.com/ostafen/carver/pkg/util/os"
)

const maxUnmountRetries = 3

// Mount serves entries, read from r, at mountpoint until the process is
// interrupted and the filesystem is unmounted.
func Mount(mountpoint string, r io.ReaderAt, entries []FileEntry, log *logger.Logger) error {
	cfs, err := NewCarveFS(r, entries)
	if err != nil {
		return err
	}

	created, err := PrepareMountpoint(mountpoint)
	if err != nil {
		return err
	}
	if created {
		defer os.Remove(mountpoint)
	}

	c, err := fuse.Mount(mountpoint, fuse.ReadOnly(), fuse.FSName("carver"))
	if err != nil {
		return err
	}
	defer c.Close()

	log.Successf("Mounted %d files at %s.", len(entries), mountpoint)

	errc := make(chan error, 1)
	go func() {
		errc <- fusefs.New(c, nil).Serve(cfs)
	}()
	return waitForUnmount(mountpoint, errc, log)
}

func waitForUnmount(mountpoint string, errc <-chan error, log *logger.Logger) error {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigc)

	log.Info("Waiting for termination signal...")

	attempts := 0
	for {
		select {
		case err := <-errc:
			if err != nil {
				return fmt.Errorf("serving %s: %w", mountpoint, err)
			}
			return nil
		case sig := <-sigc:
			log.Infof("Signal received: %v.", sig)

			attempts++
			log.Infof("Attempting unmount of %s (attempt %d/%d)...", mountpoint, attempts, maxUnmountRetries)

			err := fuse.Unmount(mountpoint)
			if err == nil {
				log.Success("Unmounted successfully.")
				return <-errc
			}
			if attempts >= maxUnmountRetries {
				return fmt.Errorf("unable to unmount %s after %d attempts: %w", mountpoint, attempts, err)
			}
			log.Warnf("Unmount failed: %v. Send another signal to retry.", err)
		}
	}
}

// PrepareMountpoint ensures the given path is an empty directory, creating it
// if it does not exist. It reports whether the directory was created.
func PrepareMountpoint(mountpoint string) (bool, error) {
	finfo, err := os.Stat(mountpoint)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.Mkdir(mountpoint, 0755); err != nil {
			return false, fmt.Errorf("failed to create mountpoint %s: %w", mountpoint, err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat mountpoint %s: %w", mountpoint, err)
	}

	if !finfo.IsDir() {
		return false, fmt.Errorf("mountpoint %s is not a directory", mountpoint)
	}

	empty, err := osutils.IsDirEmpty(mountpoint)
	if err != nil {
		return false, fmt.Errorf("failed to check if mountpoint %s is empty: %w", mountpoint, err)
	}
	if !empty {
		return false, fmt.Errorf("mountpoint %s is not empty", mountpoint)
	}
	return false, nil
}
