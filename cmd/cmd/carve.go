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
package cmd

import (
	"time"

	"github.com/ostafen/carver/internal/blob"
	"github.com/ostafen/carver/internal/carve"
	"github.com/ostafen/carver/internal/config"
	"github.com/ostafen/carver/internal/errs"
	"github.com/ostafen/carver/pkg/digest"
	"github.com/ostafen/carver/pkg/util/format"
	"github.com/spf13/cobra"
)

func DefineCarveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "carve <signatures> <input>",
		Short: "Split a blob into the files found by their magic headers",
		Long: `The 'carve' command searches the input for every signature of the signatures file and splits it into one file per match.
Each file spans from its header to the next match (or to the end of the input) and is named {type}_{n}.{type}.
The signatures file is a CSV file of "type,hex_signature" rows, or a YAML/TOML document.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunCarve,
	}

	cmd.Flags().StringP(config.FlagName(config.KeyOutputDir), "o", ".", "directory where carved files are written")
	cmd.Flags().String(config.FlagName(config.KeyMatchMode), "aligned", "where signatures may match: aligned (byte boundaries) or text (any hex digit)")
	cmd.Flags().String(config.FlagName(config.KeyReport), "", "write a DFXML report of the carved files")
	cmd.Flags().StringSlice(config.FlagName(config.KeyHash), nil, "digests added to the report (sha256, blake3)")
	cmd.Flags().String(config.FlagName(config.KeyDecode), "raw", "input encoding: raw, auto, zstd, lz4 or ihex")
	cmd.Flags().String(config.FlagName(config.KeyMaxInputSize), "", "refuse inputs larger than this size (e.g. 4GB)")
	cmd.Flags().Bool("dry-run", false, "list the files without writing them")

	return cmd
}

func RunCarve(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	opts, err := carveOptions(s.settings)
	if err != nil {
		return err
	}
	opts.SignatureFile = args[0]
	opts.InputFile = args[1]
	opts.DryRun, _ = cmd.Flags().GetBool("dry-run")

	res, err := carve.Carve(opts, s.reporter)
	if err != nil {
		return err
	}

	s.console.Successf("Carving completed in %s: %d files from %s.",
		res.Duration.Round(time.Millisecond), len(res.Files), format.FormatBytes(int64(res.InputSize)))
	return nil
}

func carveOptions(settings *config.Settings) (carve.Options, error) {
	mode, err := carve.ParseMode(settings.MatchMode)
	if err != nil {
		return carve.Options{}, errs.Config("%w", err)
	}

	enc, err := blob.ParseEncoding(settings.Decode)
	if err != nil {
		return carve.Options{}, errs.Config("%w", err)
	}

	hashes, err := digest.ParseAlgorithms(settings.Hash)
	if err != nil {
		return carve.Options{}, errs.Config("%w", err)
	}

	maxSize, err := format.ParseBytes(settings.MaxInputSize)
	if err != nil {
		return carve.Options{}, errs.Config("invalid max input size: %w", err)
	}

	return carve.Options{
		OutputDir:    settings.OutputDir,
		Mode:         mode,
		Encoding:     enc,
		MaxInputSize: maxSize,
		ReportFile:   settings.Report,
		Hashes:       hashes,
	}, nil
}
