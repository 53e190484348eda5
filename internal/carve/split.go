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
	"iter"

	"github.com/ostafen/carver/internal/errs"
)

// Segment is one carved file.
type Segment struct {
	Type   string
	Index  int // sequential among segments of the same type, from 0
	Offset int // hex text offset of the first character
	Data   []byte
}

// Name returns the output file name, "{type}_{index}.{type}".
func (s *Segment) Name() string {
	return fmt.Sprintf("%s_%d.%s", s.Type, s.Index, s.Type)
}

// Split yields the segments delimited by cuts, in cut order. Segment i spans
// from cuts[i] to cuts[i+1], the last one up to the end of hexText. Anything
// before the first cut is not part of any segment.
//
// Each segment is decoded back to bytes; iteration ends with a decode error
// on the first segment whose hex text has odd length or invalid digits.
func Split(hexText []byte, cuts []CutPoint) iter.Seq2[Segment, error] {
	return func(yield func(Segment, error) bool) {
		counts := make(map[string]int)

		for i, c := range cuts {
			end := len(hexText)
			if i+1 < len(cuts) {
				end = cuts[i+1].Offset
			}

			seg := Segment{
				Type:   c.Type,
				Index:  counts[c.Type],
				Offset: c.Offset,
			}

			data, err := decodeHex(hexText[c.Offset:end])
			if err != nil {
				yield(seg, fmt.Errorf("segment %s at offset 0x%x: %w", seg.Name(), c.Offset, err))
				return
			}
			seg.Data = data
			counts[c.Type]++

			if !yield(seg, nil) {
				return
			}
		}
	}
}

func decodeHex(src []byte) ([]byte, error) {
	dst := make([]byte, hex.DecodedLen(len(src)))
	if _, err := hex.Decode(dst, src); err != nil {
		return nil, errs.Decode("%d hex characters: %w", len(src), err)
	}
	return dst, nil
}
