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
package carve

import (
	"bufio"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/ostafen/carver/internal/errs"
	"github.com/ostafen/carver/internal/logger"
	"github.com/ostafen/carver/pkg/digest"
	osutils "github.com/ostafen/carver/pkg/util/os"
)

// Written describes a segment handled by WriteSegments.
type Written struct {
	Name    string
	Path    string // empty on dry runs
	Type    string
	Offset  int // hex text offset
	Size    int
	Digests []digest.Digest
}

// ByteOffset returns the position of the segment in the raw buffer.
func (w *Written) ByteOffset() int {
	return w.Offset / 2
}

type WriteOptions struct {
	Hashes []digest.Algorithm
	DryRun bool
}

// WriteSegments writes every segment to dir, creating it if needed, and
// reports one event per file plus a final summary. It stops at the first
// split or write error; files written until then are left in place.
func WriteSegments(dir string, segments iter.Seq2[Segment, error], opts WriteOptions, rep logger.Reporter) ([]Written, error) {
	if rep == nil {
		rep = logger.Discard
	}

	if !opts.DryRun {
		if _, err := osutils.EnsureDir(dir, false); err != nil {
			return nil, errs.IO("preparing output directory: %w", err)
		}
	}

	var written []Written
	for seg, err := range segments {
		if err != nil {
			return written, err
		}

		w := Written{
			Name:    seg.Name(),
			Type:    seg.Type,
			Offset:  seg.Offset,
			Size:    len(seg.Data),
			Digests: digest.Sum(opts.Hashes, seg.Data),
		}

		msg := fmt.Sprintf("File %s found (%d bytes).", w.Name, w.Size)
		if !opts.DryRun {
			w.Path = filepath.Join(dir, w.Name)
			if err := writeFile(w.Path, seg.Data); err != nil {
				return written, err
			}
			msg = fmt.Sprintf("File %s written.", w.Path)
		}
		written = append(written, w)

		rep.Report(logger.Event{
			Stage:   logger.StageSplit,
			Level:   logger.SuccessLevel,
			Message: msg,
			Offset:  logger.NoOffset,
			File:    w.Name,
		})
	}

	rep.Report(logger.Event{
		Stage:   logger.StageSplit,
		Level:   logger.SuccessLevel,
		Message: fmt.Sprintf("Extracted %d files.", len(written)),
		Offset:  logger.NoOffset,
	})
	return written, nil
}

func writeFile(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.IO("creating file %q: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 1024*1024) // 1MB buffer

	if _, err := w.Write(data); err != nil {
		return errs.IO("writing file %q: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return errs.IO("writing file %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return errs.IO("closing file %q: %w", path, err)
	}
	return nil
}
