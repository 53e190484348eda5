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
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/ostafen/carver/internal/signature"
	"github.com/spf13/cobra"
)

func DefineSignaturesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signatures <signatures>",
		Short: "List the file types and signatures of a signatures file",
		Long: `The 'signatures' command loads a signatures file and displays a table of its file types.
Types are listed in file order, which is also the order used to resolve two types matching at the same offset: the later one wins.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunSignatures,
	}
	return cmd
}

func RunSignatures(cmd *cobra.Command, args []string) error {
	table, err := signature.Load(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tTYPE\tSIGNATURES")

	for rank, tag := range table.Types() {
		fmt.Fprintf(w, "%d\t%s\t%s\n",
			rank,
			tag,
			strings.Join(table.Signatures(tag), ","),
		)
	}
	fmt.Fprintf(w, "\n%s\n", table)
	return w.Flush()
}
