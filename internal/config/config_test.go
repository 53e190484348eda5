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
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/carver/internal/config"
	"github.com/ostafen/carver/internal/errs"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	s, err := config.Load("", nil)
	require.NoError(t, err)

	require.Equal(t, ".", s.OutputDir)
	require.Equal(t, "aligned", s.MatchMode)
	require.Equal(t, "raw", s.Decode)
	require.Equal(t, "info", s.LogLevel)
	require.Empty(t, s.Hash)
	require.False(t, s.NoColor)
}

func TestLoadPriorities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carver.yaml")
	err := os.WriteFile(path, []byte(`
output_dir: /tmp/from-file
match_mode: text
decode: auto
hash: [sha256]
padding: 512
`), 0o644)
	require.NoError(t, err)

	t.Setenv("CARVER_DECODE", "zstd")
	t.Setenv("CARVER_LOG_LEVEL", "debug")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output-dir", ".", "")
	flags.String("match-mode", "aligned", "")
	flags.StringSlice("hash", nil, "")
	require.NoError(t, flags.Parse([]string{"--output-dir", "/tmp/from-flag"}))

	s, err := config.Load(path, flags)
	require.NoError(t, err)

	require.Equal(t, "/tmp/from-flag", s.OutputDir) // flag over file
	require.Equal(t, "text", s.MatchMode)           // unset flag keeps file value
	require.Equal(t, "zstd", s.Decode)              // env over file
	require.Equal(t, "debug", s.LogLevel)           // env over default
	require.Equal(t, []string{"sha256"}, s.Hash)
	require.Equal(t, int64(512), s.Padding)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carver.toml")
	require.NoError(t, os.WriteFile(path, []byte("no_color = true\nmax_input_size = \"2GB\"\n"), 0o644))

	s, err := config.Load(path, nil)
	require.NoError(t, err)
	require.True(t, s.NoColor)
	require.Equal(t, "2GB", s.MaxInputSize)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.ErrorIs(t, err, errs.ErrConfig)
}

func TestFlagName(t *testing.T) {
	require.Equal(t, "max-input-size", config.FlagName(config.KeyMaxInputSize))
}
