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
	"encoding/hex"
	"fmt"
	"time"

	"github.com/ostafen/carver/internal/blob"
	"github.com/ostafen/carver/internal/logger"
	"github.com/ostafen/carver/internal/signature"
	"github.com/ostafen/carver/pkg/digest"
	fmtutil "github.com/ostafen/carver/pkg/util/format"
)

type Options struct {
	SignatureFile string
	InputFile     string
	OutputDir     string
	Mode          Mode
	Encoding      blob.Encoding
	MaxInputSize  uint64 // zero means unlimited
	ReportFile    string // DFXML report, optional
	Hashes        []digest.Algorithm
	DryRun        bool // only report the segments, do not write them
}

type Result struct {
	Types      int
	Signatures int
	InputSize  int
	Encoding   blob.Encoding
	Matches    int
	Files      []Written
	Duration   time.Duration
}

// Carve runs the whole pipeline: it loads the signature table and the input,
// finds the signatures, and writes one file per segment to opts.OutputDir.
// Finding no signature at all is not an error.
//
// On failure the partial result is returned along with the error; files
// already written are not removed.
func Carve(opts Options, rep logger.Reporter) (*Result, error) {
	if rep == nil {
		rep = logger.Discard
	}
	start := time.Now()

	sigs, err := signature.Load(opts.SignatureFile)
	if err != nil {
		return nil, err
	}
	report(rep, logger.StageConfig, logger.SuccessLevel, "Configuration file %s read.", opts.SignatureFile)
	report(rep, logger.StageConfig, logger.SuccessLevel, "Loaded %d file types and %d headers.", sigs.Len(), sigs.Count())

	b, err := blob.Load(opts.InputFile, opts.Encoding, opts.MaxInputSize)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	report(rep, logger.StageLoad, logger.InfoLevel, "Read %s (%s, %s).",
		opts.InputFile, fmtutil.FormatBytes(int64(b.Size())), b.Encoding)

	res := &Result{
		Types:      sigs.Len(),
		Signatures: sigs.Count(),
		InputSize:  b.Size(),
		Encoding:   b.Encoding,
	}

	hexText := make([]byte, hex.EncodedLen(len(b.Data)))
	hex.Encode(hexText, b.Data)

	report(rep, logger.StageMatch, logger.InfoLevel, "Searching file for headers (%s match mode)...", opts.Mode)

	cuts := Partition(FindMatches(hexText, sigs, opts.Mode, rep))
	res.Matches = len(cuts)

	report(rep, logger.StageMatch, logger.SuccessLevel, "Found %d files.", len(cuts))
	if len(cuts) > 0 && cuts[0].Offset > 0 {
		report(rep, logger.StageMatch, logger.WarnLevel,
			"%d hex characters before the first header are not extracted.", cuts[0].Offset)
	}

	report(rep, logger.StageSplit, logger.InfoLevel, "Extracting & splitting files...")

	res.Files, err = WriteSegments(opts.OutputDir, Split(hexText, cuts), WriteOptions{
		Hashes: opts.Hashes,
		DryRun: opts.DryRun,
	}, rep)
	res.Duration = time.Since(start)
	if err != nil {
		return res, err
	}

	if opts.ReportFile != "" {
		if err := WriteReport(opts.ReportFile, ReportInfo{
			SignatureFile: opts.SignatureFile,
			InputFile:     opts.InputFile,
			InputSize:     b.Size(),
			Encoding:      b.Encoding,
		}, res.Files); err != nil {
			return res, err
		}
		report(rep, logger.StageReport, logger.SuccessLevel, "Report saved to %s.", opts.ReportFile)
	}
	return res, nil
}

func report(rep logger.Reporter, stage logger.Stage, level logger.Level, format string, args ...any) {
	rep.Report(logger.Event{
		Stage:   stage,
		Level:   level,
		Message: fmt.Sprintf(format, args...),
		Offset:  logger.NoOffset,
	})
}
