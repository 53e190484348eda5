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

// Package blob loads the image to carve into memory, optionally unpacking it
// first when the dump was stored compressed or as an Intel HEX listing.
package blob

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/marcinbor85/gohex"
	"github.com/ostafen/carver/internal/errs"
	"github.com/ostafen/carver/internal/mmap"
	"github.com/pierrec/lz4/v4"
)

// Encoding is the representation of the input file.
type Encoding string

const (
	Raw  Encoding = "raw"
	Auto Encoding = "auto"
	Zstd Encoding = "zstd"
	LZ4  Encoding = "lz4"
	IHex Encoding = "ihex"
)

var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
)

func ParseEncoding(s string) (Encoding, error) {
	switch e := Encoding(strings.ToLower(strings.TrimSpace(s))); e {
	case "":
		return Raw, nil
	case Raw, Auto, Zstd, LZ4, IHex:
		return e, nil
	}
	return "", fmt.Errorf("unknown input encoding %q", s)
}

// Sniff guesses the encoding of data. Intel HEX is only considered for
// files with a .hex, .ihex or .ihx extension, since its only marker is a
// leading colon.
func Sniff(path string, data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return Zstd
	case bytes.HasPrefix(data, lz4Magic):
		return LZ4
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".hex", ".ihex", ".ihx":
		if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte(":")) {
			return IHex
		}
	}
	return Raw
}

// Blob is a fully loaded input image.
type Blob struct {
	Path     string
	Data     []byte
	Encoding Encoding // the encoding actually decoded, never Auto

	file *mmap.File
}

func (b *Blob) Size() int {
	return len(b.Data)
}

func (b *Blob) Close() error {
	if b.file == nil {
		return nil
	}
	return b.file.Close()
}

// Load reads the file at path and decodes it according to enc. maxSize bounds
// the decoded size; zero means no limit. Every failure is an io error.
func Load(path string, enc Encoding, maxSize uint64) (*Blob, error) {
	f, err := mmap.Open(path)
	if err != nil {
		return nil, errs.IO("reading file %s: %w", path, err)
	}

	if enc == Auto {
		enc = Sniff(path, f.Data)
	}

	if enc == Raw || enc == "" {
		if maxSize > 0 && uint64(len(f.Data)) > maxSize {
			f.Close()
			return nil, errs.IO("file %s: size %d exceeds limit of %d bytes", path, len(f.Data), maxSize)
		}
		return &Blob{Path: path, Data: f.Data, Encoding: Raw, file: f}, nil
	}
	defer f.Close()

	data, err := decode(f.Data, enc, maxSize)
	if err != nil {
		return nil, errs.IO("decoding %s input %s: %w", enc, path, err)
	}
	return &Blob{Path: path, Data: data, Encoding: enc}, nil
}

func decode(data []byte, enc Encoding, maxSize uint64) ([]byte, error) {
	switch enc {
	case Zstd:
		dec, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return readAll(dec, maxSize)
	case LZ4:
		return readAll(lz4.NewReader(bytes.NewReader(data)), maxSize)
	case IHex:
		return decodeIntelHex(data, maxSize)
	}
	return nil, fmt.Errorf("unsupported encoding %q", enc)
}

func readAll(r io.Reader, maxSize uint64) ([]byte, error) {
	if maxSize == 0 {
		return io.ReadAll(r)
	}

	data, err := io.ReadAll(io.LimitReader(r, int64(maxSize)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(data)) > maxSize {
		return nil, fmt.Errorf("decoded size exceeds limit of %d bytes", maxSize)
	}
	return data, nil
}

// decodeIntelHex flattens the records into one image spanning from the lowest
// to the highest address; holes between records are filled with 0xFF, the
// value of erased flash.
func decodeIntelHex(data []byte, maxSize uint64) ([]byte, error) {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	segments := mem.GetDataSegments()
	if len(segments) == 0 {
		return []byte{}, nil
	}

	start, end := segments[0].Address, uint32(0)
	for _, seg := range segments {
		start = min(start, seg.Address)
		end = max(end, seg.Address+uint32(len(seg.Data)))
	}
	size := end - start

	if maxSize > 0 && uint64(size) > maxSize {
		return nil, fmt.Errorf("decoded size %d exceeds limit of %d bytes", size, maxSize)
	}
	return mem.ToBinary(start, size, 0xFF), nil
}
