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

// Package carve splits a blob into the files embedded in it, using the magic
// headers of a signature table to find where each file starts.
//
// The blob is searched as hex text (two characters per byte): matching
// produces the hex offsets where a signature starts, partitioning orders
// them into cut points, and splitting decodes the hex text between two
// consecutive cut points back into the bytes of one output file.
package carve

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/ostafen/carver/internal/logger"
	"github.com/ostafen/carver/internal/signature"
	"github.com/ostafen/carver/pkg/table"
)

// Mode selects which hex text offsets a signature may match at.
type Mode int

const (
	// ModeAligned only matches at even hex offsets, i.e. on byte boundaries.
	ModeAligned Mode = iota
	// ModeText matches at any hex offset. A match at an odd offset starts in
	// the middle of a byte, and the segments around it are nibble shifted.
	ModeText
)

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "aligned":
		return ModeAligned, nil
	case "text":
		return ModeText, nil
	}
	return 0, fmt.Errorf("unknown match mode %q (expected aligned or text)", s)
}

func (m Mode) String() string {
	if m == ModeText {
		return "text"
	}
	return "aligned"
}

func (m Mode) step() int {
	if m == ModeText {
		return 1
	}
	return 2
}

// Matches maps a hex text offset to the file type found there.
type Matches map[int]string

// candidate is a signature owner. rank is the position of the type in the
// signature table: the highest rank wins when several types match at the
// same offset.
type candidate struct {
	rank int
	tag  string
}

func buildTable(sigs *signature.Table) *table.PrefixTable[[]candidate] {
	t := table.New[[]candidate]()
	sigs.Each(func(rank int, tag, sig string) {
		owners, _ := t.Get([]byte(sig))
		if slices.ContainsFunc(owners, func(c candidate) bool { return c.tag == tag }) {
			return
		}
		t.Insert([]byte(sig), append(owners, candidate{rank: rank, tag: tag}))
	})
	return t
}

// FindMatches returns the offset of every occurrence of every signature of
// sigs in hexText, overlapping occurrences included. When signatures of
// different types start at the same offset, the type inserted last in the
// table wins. One event is reported per signature occurrence.
func FindMatches(hexText []byte, sigs *signature.Table, mode Mode, rep logger.Reporter) Matches {
	if rep == nil {
		rep = logger.Discard
	}

	t := buildTable(sigs)
	matches := make(Matches)

	for off := 0; off < len(hexText); off += mode.step() {
		best := -1
		t.Walk(hexText[off:], func(_ int, owners []candidate) bool {
			for _, c := range owners {
				rep.Report(logger.Event{
					Stage:   logger.StageMatch,
					Level:   logger.InfoLevel,
					Message: fmt.Sprintf("%s header found", strings.ToUpper(c.tag)),
					Offset:  int64(off),
				})
				if c.rank > best {
					best = c.rank
					matches[off] = c.tag
				}
			}
			return false
		})
	}
	return matches
}

// CutPoint is the start of an output segment.
type CutPoint struct {
	Offset int // hex text offset
	Type   string
}

// ByteOffset converts the hex offset to a position in the raw buffer. It
// reports false when the cut falls in the middle of a byte.
func (c CutPoint) ByteOffset() (int, bool) {
	return c.Offset / 2, c.Offset%2 == 0
}

// Partition orders matches by offset. Offsets are unique since matches are
// keyed by offset.
func Partition(m Matches) []CutPoint {
	cuts := make([]CutPoint, 0, len(m))
	for _, off := range slices.Sorted(maps.Keys(m)) {
		cuts = append(cuts, CutPoint{Offset: off, Type: m[off]})
	}
	return cuts
}
