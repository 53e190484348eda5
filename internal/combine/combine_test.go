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
package combine_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/carver/internal/combine"
	"github.com/ostafen/carver/internal/errs"
	"github.com/ostafen/carver/internal/logger"
	"github.com/stretchr/testify/require"
)

func writeInputs(t *testing.T, dir string, sizes ...int) ([]string, [][]byte) {
	t.Helper()

	var (
		paths    []string
		contents [][]byte
	)
	for i, size := range sizes {
		data := bytes.Repeat([]byte{byte(i + 1)}, size)
		path := filepath.Join(dir, "in", string(rune('a'+i))+".bin")

		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, data, 0o644))

		paths = append(paths, path)
		contents = append(contents, data)
	}
	return paths, contents
}

func TestCombine(t *testing.T) {
	dir := t.TempDir()
	inputs, contents := writeInputs(t, dir, 10, 20, 30)

	out := filepath.Join(dir, "nested", "out", "blob.bin")

	rec := &logger.Recorder{}
	n, err := combine.Combine(inputs, out, combine.Options{}, rec)
	require.NoError(t, err)
	require.Equal(t, int64(60), n)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Len(t, data, 60)
	require.Equal(t, contents[0], data[:10])
	require.Equal(t, contents[1], data[10:30])
	require.Equal(t, contents[2], data[30:])

	events := rec.Events(logger.StageCombine)
	require.Len(t, events, 3)
	require.Equal(t, inputs[1], events[1].File)
}

func TestCombinePadding(t *testing.T) {
	dir := t.TempDir()
	inputs, contents := writeInputs(t, dir, 3, 5)

	out := filepath.Join(dir, "blob.bin")
	n, err := combine.Combine(inputs, out, combine.Options{Padding: 4}, nil)
	require.NoError(t, err)
	require.Equal(t, int64(12), n)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, bytes.Join([][]byte{contents[0], make([]byte, 4), contents[1]}, nil), data)
}

func TestCombineSingleInput(t *testing.T) {
	dir := t.TempDir()
	inputs, contents := writeInputs(t, dir, 7)

	out := filepath.Join(dir, "blob.bin")
	_, err := combine.Combine(inputs, out, combine.Options{Padding: 16}, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, contents[0], data)
}

func TestCombineMissingInput(t *testing.T) {
	dir := t.TempDir()
	inputs, _ := writeInputs(t, dir, 10)
	inputs = append(inputs, filepath.Join(dir, "missing.bin"))

	rec := &logger.Recorder{}
	_, err := combine.Combine(inputs, filepath.Join(dir, "blob.bin"), combine.Options{}, rec)
	require.ErrorIs(t, err, errs.ErrIO)
	require.Len(t, rec.Events(logger.StageCombine), 1)
}

func TestCombineUncreatableOutput(t *testing.T) {
	dir := t.TempDir()
	inputs, _ := writeInputs(t, dir, 10)

	// the output parent is a regular file
	_, err := combine.Combine(inputs, filepath.Join(inputs[0], "blob.bin"), combine.Options{}, nil)
	require.ErrorIs(t, err, errs.ErrIO)
}
