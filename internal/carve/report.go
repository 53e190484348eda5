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
	"os"

	"github.com/ostafen/carver/internal/blob"
	"github.com/ostafen/carver/internal/env"
	"github.com/ostafen/carver/internal/errs"
	"github.com/ostafen/carver/pkg/dfxml"
)

type ReportInfo struct {
	SignatureFile string
	InputFile     string
	InputSize     int
	Encoding      blob.Encoding
}

// WriteReport saves a DFXML report listing the extent and digests of every
// carved file. Offsets are byte offsets in the (decoded) input.
func WriteReport(path string, info ReportInfo, files []Written) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.IO("creating report %q: %w", path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	w := dfxml.NewWriter(bw)

	err = w.WriteHeader(dfxml.Header{
		XmlOutput: dfxml.XmlOutputVersion,
		Metadata:  dfxml.DefaultMetadata,
		Creator: dfxml.Creator{
			Package:              env.AppName,
			Version:              env.Version,
			ExecutionEnvironment: dfxml.GetExecEnv(),
			Config:               info.SignatureFile,
		},
		Source: dfxml.Source{
			ImageFilename: info.InputFile,
			ImageSize:     uint64(info.InputSize),
			Encoding:      string(info.Encoding),
		},
	})
	if err != nil {
		return errs.IO("writing report %q: %w", path, err)
	}

	for _, file := range files {
		obj := dfxml.FileObject{
			Filename: file.Name,
			FileSize: uint64(file.Size),
			ByteRuns: dfxml.ByteRuns{
				Runs: []dfxml.ByteRun{{
					Offset:    0,
					ImgOffset: uint64(file.ByteOffset()),
					Length:    uint64(file.Size),
				}},
			},
		}
		for _, d := range file.Digests {
			obj.HashDigest = append(obj.HashDigest, dfxml.HashDigest{Type: string(d.Algorithm), Value: d.Value})
		}

		if err := w.WriteFileObject(obj); err != nil {
			return errs.IO("writing report %q: %w", path, err)
		}
	}

	if err := w.Close(); err != nil {
		return errs.IO("writing report %q: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return errs.IO("writing report %q: %w", path, err)
	}
	return f.Close()
}
