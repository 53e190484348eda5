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
	"path/filepath"
	"strings"

	"github.com/ostafen/carver/internal/blob"
	"github.com/ostafen/carver/internal/carve"
	"github.com/ostafen/carver/internal/config"
	"github.com/spf13/cobra"
)

func DefineRecoverCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recover <input> <report_file>",
		Short: "Recover files from an input using a carve report",
		Long: `The 'recover' command extracts again the files listed in a DFXML report written by 'carve --report'.
The input is decoded the same way it was when the report was written.
Digests stored in the report are verified, and mismatching files are reported.
Recovered files will be saved to the specified output directory.`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunRecover,
	}
	cmd.Flags().StringP(config.FlagName(config.KeyOutputDir), "o", ".", "directory where recovered files are written (default: <report>-dump)")
	cmd.Flags().Bool("no-verify", false, "do not verify the digests stored in the report")
	return cmd
}

func RunRecover(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	inputPath, reportPath := args[0], args[1]

	report, err := carve.ReadReport(reportPath)
	if err != nil {
		return err
	}

	b, err := blob.Load(inputPath, report.Encoding, 0)
	if err != nil {
		return err
	}
	defer b.Close()

	outDir := s.settings.OutputDir
	if outDir == "." || outDir == "" {
		base := filepath.Base(reportPath)
		outDir = strings.TrimSuffix(base, filepath.Ext(base)) + "-dump"
	}

	noVerify, _ := cmd.Flags().GetBool("no-verify")

	s.console.Infof("Recovering %d files to %s", len(report.Extents), outDir)

	_, err = carve.Recover(b.Data, report.Extents, outDir, !noVerify, s.reporter)
	return err
}
