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

// Package combine concatenates files into a single blob, the inverse of
// carving.
package combine

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ostafen/carver/internal/errs"
	"github.com/ostafen/carver/internal/logger"
	osutils "github.com/ostafen/carver/pkg/util/os"
)

type Options struct {
	// Padding is the number of zero bytes inserted between two inputs.
	Padding int64
}

// Combine appends the content of every input, in order, to output and
// returns the number of bytes written. The output directory is created if
// missing. It stops at the first unreadable input: the output is left
// holding whatever was written so far.
func Combine(inputs []string, output string, opts Options, rep logger.Reporter) (int64, error) {
	if rep == nil {
		rep = logger.Discard
	}
	if opts.Padding < 0 {
		return 0, fmt.Errorf("padding must not be negative (got %d)", opts.Padding)
	}

	if dir := filepath.Dir(output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, errs.IO("creating directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(output)
	if err != nil {
		return 0, errs.IO("creating file %s: %w", output, err)
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 1024*1024) // 1MB buffer

	var written int64
	for i, path := range inputs {
		if i > 0 && opts.Padding > 0 {
			n, err := io.CopyN(w, zeros{}, opts.Padding)
			written += n
			if err != nil {
				return written, errs.IO("writing padding to %s: %w", output, err)
			}
		}

		n, err := osutils.CopyFile(w, path)
		written += n
		if err != nil {
			return written, errs.IO("appending %s to %s: %w", path, output, err)
		}

		rep.Report(logger.Event{
			Stage:   logger.StageCombine,
			Level:   logger.InfoLevel,
			Message: fmt.Sprintf("File %s written to %s.", path, output),
			Offset:  logger.NoOffset,
			File:    path,
		})
	}

	if err := w.Flush(); err != nil {
		return written, errs.IO("flushing %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return written, errs.IO("closing %s: %w", output, err)
	}
	return written, nil
}

type zeros struct{}

func (zeros) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}
