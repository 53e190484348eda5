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
	"os"
	"path/filepath"

	"github.com/ostafen/carver/internal/blob"
	"github.com/ostafen/carver/internal/errs"
	"github.com/ostafen/carver/internal/logger"
	"github.com/ostafen/carver/pkg/dfxml"
	"github.com/ostafen/carver/pkg/digest"
	osutils "github.com/ostafen/carver/pkg/util/os"
)

// Extent locates a carved file inside the (decoded) input.
type Extent struct {
	Name    string
	Offset  uint64
	Size    uint64
	Digests []digest.Digest
}

// Report is a carve report loaded back from disk.
type Report struct {
	Encoding blob.Encoding
	Extents  []Extent
}

// ReadReport loads a DFXML report written by WriteReport. A report that
// cannot be opened is an io error, one that cannot be parsed a config error.
func ReadReport(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.IO("opening report %s: %w", path, err)
	}
	defer f.Close()

	doc, err := dfxml.ReadReport(bufio.NewReader(f))
	if err != nil {
		return nil, errs.Config("parsing report %s: %w", path, err)
	}

	report := &Report{Encoding: blob.Raw}
	if doc.Source.Encoding != "" {
		enc, err := blob.ParseEncoding(doc.Source.Encoding)
		if err != nil {
			return nil, errs.Config("report %s: %w", path, err)
		}
		report.Encoding = enc
	}

	for _, obj := range doc.Files {
		off, size, ok := obj.Extent()
		if !ok || obj.Filename == "" {
			return nil, errs.Config("report %s: invalid file object %q", path, obj.Filename)
		}

		ext := Extent{Name: filepath.Base(obj.Filename), Offset: off, Size: size}
		for _, h := range obj.HashDigest {
			alg, err := digest.ParseAlgorithm(h.Type)
			if err != nil {
				// digests we cannot compute are not verified
				continue
			}
			ext.Digests = append(ext.Digests, digest.Digest{Algorithm: alg, Value: h.Value})
		}
		report.Extents = append(report.Extents, ext)
	}
	return report, nil
}

// Recover writes every extent of data to dir. When verify is set, the
// digests recorded for an extent are recomputed and a mismatch is reported
// as a warning. An extent falling outside data is an io error.
func Recover(data []byte, extents []Extent, dir string, verify bool, rep logger.Reporter) ([]Written, error) {
	if rep == nil {
		rep = logger.Discard
	}

	if _, err := osutils.EnsureDir(dir, false); err != nil {
		return nil, errs.IO("preparing output directory: %w", err)
	}

	var written []Written
	for _, e := range extents {
		end := e.Offset + e.Size
		if end < e.Offset || end > uint64(len(data)) {
			return written, errs.IO("file %s: extent [%d, %d) is out of the input bounds (%d bytes)",
				e.Name, e.Offset, end, len(data))
		}
		chunk := data[e.Offset:end]

		w := Written{
			Name:   e.Name,
			Path:   filepath.Join(dir, e.Name),
			Offset: int(e.Offset) * 2,
			Size:   len(chunk),
		}
		if err := writeFile(w.Path, chunk); err != nil {
			return written, err
		}

		level, msg := logger.SuccessLevel, fmt.Sprintf("File %s recovered.", w.Path)
		if verify {
			if bad := mismatches(e.Digests, chunk); len(bad) > 0 {
				level, msg = logger.WarnLevel, fmt.Sprintf("File %s recovered, %v digest mismatch.", w.Path, bad)
			}
		}
		w.Digests = e.Digests
		written = append(written, w)

		rep.Report(logger.Event{
			Stage:   logger.StageSplit,
			Level:   level,
			Message: msg,
			Offset:  int64(w.Offset),
			File:    w.Name,
		})
	}

	rep.Report(logger.Event{
		Stage:   logger.StageSplit,
		Level:   logger.SuccessLevel,
		Message: fmt.Sprintf("Recovered %d files.", len(written)),
		Offset:  logger.NoOffset,
	})
	return written, nil
}

func mismatches(expected []digest.Digest, data []byte) []digest.Algorithm {
	var bad []digest.Algorithm
	for _, d := range expected {
		got := digest.Sum([]digest.Algorithm{d.Algorithm}, data)
		if got[0].Value != d.Value {
			bad = append(bad, d.Algorithm)
		}
	}
	return bad
}
