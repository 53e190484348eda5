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
package carve_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/carver/internal/blob"
	"github.com/ostafen/carver/internal/carve"
	"github.com/ostafen/carver/internal/errs"
	"github.com/ostafen/carver/internal/logger"
	"github.com/ostafen/carver/pkg/digest"
	"github.com/stretchr/testify/require"
)

func carveWithReport(t *testing.T) (*fixture, string) {
	t.Helper()

	f := newFixture(t)
	opts := f.options()
	opts.ReportFile = filepath.Join(t.TempDir(), "report.xml")
	opts.Hashes = []digest.Algorithm{digest.BLAKE3}
	opts.DryRun = true

	_, err := carve.Carve(opts, nil)
	require.NoError(t, err)
	return f, opts.ReportFile
}

func TestRecoverFromReport(t *testing.T) {
	f, reportPath := carveWithReport(t)

	report, err := carve.ReadReport(reportPath)
	require.NoError(t, err)
	require.Equal(t, blob.Raw, report.Encoding)
	require.Len(t, report.Extents, 2)
	require.Equal(t, uint64(len(f.jpg)), report.Extents[1].Offset)

	b, err := blob.Load(f.input, report.Encoding, 0)
	require.NoError(t, err)
	defer b.Close()

	out := filepath.Join(t.TempDir(), "recovered")

	rec := &logger.Recorder{}
	files, err := carve.Recover(b.Data, report.Extents, out, true, rec)
	require.NoError(t, err)
	require.Len(t, files, 2)

	data, err := os.ReadFile(filepath.Join(out, "png_0.png"))
	require.NoError(t, err)
	require.Equal(t, f.png, data)

	for _, e := range rec.Events(logger.StageSplit) {
		require.NotEqual(t, logger.WarnLevel, e.Level)
	}
}

func TestRecoverDigestMismatch(t *testing.T) {
	f, reportPath := carveWithReport(t)

	report, err := carve.ReadReport(reportPath)
	require.NoError(t, err)
	report.Extents[0].Digests[0].Value = "00"

	data, err := os.ReadFile(f.input)
	require.NoError(t, err)

	rec := &logger.Recorder{}
	_, err = carve.Recover(data, report.Extents, t.TempDir(), true, rec)
	require.NoError(t, err)

	events := rec.Events(logger.StageSplit)
	require.Equal(t, logger.WarnLevel, events[0].Level)
	require.Equal(t, logger.SuccessLevel, events[1].Level)
}

func TestRecoverOutOfBounds(t *testing.T) {
	extents := []carve.Extent{{Name: "a.bin", Offset: 2, Size: 8}}

	_, err := carve.Recover(make([]byte, 4), extents, t.TempDir(), false, nil)
	require.ErrorIs(t, err, errs.ErrIO)
}

func TestReadReportErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := carve.ReadReport(filepath.Join(dir, "missing.xml"))
	require.ErrorIs(t, err, errs.ErrIO)

	bad := filepath.Join(dir, "bad.xml")
	require.NoError(t, os.WriteFile(bad, []byte("<dfxml><fileobject><filename>x</filename></fileobject></dfxml>"), 0o644))

	_, err = carve.ReadReport(bad)
	require.ErrorIs(t, err, errs.ErrConfig)
}
