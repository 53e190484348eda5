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

// Package signature holds the table of magic headers the carver looks for.
//
// A table maps a file type tag (e.g. "jpg") to one or more signatures, each
// written as lowercase hex text (e.g. "ffd8ff"). Tags are kept in the order in
// which they are first inserted: the matcher relies on that order to resolve
// two types matching at the same offset.
package signature

import (
	"fmt"
	"strings"

	"github.com/ostafen/carver/internal/errs"
)

type Table struct {
	types []string
	sigs  map[string][]string
	count int
}

func NewTable() *Table {
	return &Table{
		sigs: make(map[string][]string),
	}
}

// Normalize trims and lower-cases a tag or signature.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Add appends sig to the signatures of tag, registering tag if it is new.
// Both are normalized first. It fails with a config error if either is empty
// or sig contains non hex characters.
func (t *Table) Add(tag, sig string) error {
	tag, sig = Normalize(tag), Normalize(sig)

	if tag == "" {
		return errs.Config("empty file type for signature %q", sig)
	}
	if sig == "" {
		return errs.Config("empty signature for file type %q", tag)
	}
	if i := strings.IndexFunc(sig, func(r rune) bool { return !isHexDigit(r) }); i >= 0 {
		return errs.Config("signature %q of type %q: invalid hex character %q", sig, tag, sig[i])
	}

	if _, ok := t.sigs[tag]; !ok {
		t.types = append(t.types, tag)
	}
	t.sigs[tag] = append(t.sigs[tag], sig)
	t.count++
	return nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')
}

// Types returns the type tags in insertion order.
func (t *Table) Types() []string {
	return append([]string(nil), t.types...)
}

// Signatures returns the signatures of tag, in the order they were added.
func (t *Table) Signatures(tag string) []string {
	return append([]string(nil), t.sigs[Normalize(tag)]...)
}

// Len returns the number of file types.
func (t *Table) Len() int {
	return len(t.types)
}

// Count returns the total number of signatures.
func (t *Table) Count() int {
	return t.count
}

// Each calls fn for every (type, signature) pair: types in insertion order,
// signatures in row order. rank is the position of the type in Types().
func (t *Table) Each(fn func(rank int, tag, sig string)) {
	for rank, tag := range t.types {
		for _, sig := range t.sigs[tag] {
			fn(rank, tag, sig)
		}
	}
}

func (t *Table) String() string {
	return fmt.Sprintf("%d file types, %d signatures", t.Len(), t.Count())
}
