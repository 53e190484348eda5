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
	"github.com/ostafen/carver/internal/combine"
	"github.com/ostafen/carver/internal/config"
	"github.com/ostafen/carver/internal/errs"
	osutils "github.com/ostafen/carver/pkg/util/os"
	"github.com/spf13/cobra"
)

func DefineCombineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "combine <file1> [<file2> ...] <output>",
		Short: "Concatenate multiple files into a single blob",
		Long: `The 'combine' command appends the given files, in order, to a single output blob.
This is the inverse of 'carve' and is useful to build test images with known content.
Directories are expanded to the regular files they contain, in lexical order.
You can optionally add zero-byte padding between files to simulate gaps.`,
		Args:         cobra.MinimumNArgs(2),
		SilenceUsage: true,
		RunE:         RunCombine,
	}

	cmd.Flags().Int64(config.FlagName(config.KeyPadding), 0, "number of zero bytes to insert between files")
	return cmd
}

func RunCombine(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	inputs, output := args[:len(args)-1], args[len(args)-1]

	filePaths := make([]string, 0, len(inputs))
	for _, arg := range inputs {
		paths, err := osutils.ListFiles(arg)
		if err != nil {
			return errs.IO("listing %s: %w", arg, err)
		}
		filePaths = append(filePaths, paths...)
	}

	s.console.Infof("Combining %d files into %s", len(filePaths), output)

	n, err := combine.Combine(filePaths, output, combine.Options{Padding: s.settings.Padding}, s.reporter)
	if err != nil {
		return err
	}

	s.console.Successf("Combining successfully completed. %d bytes written.", n)
	return nil
}
