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
package signature

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ostafen/carver/internal/errs"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Format is the syntax of a signature file.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf guesses the format from the file extension. Anything that is
// not YAML or TOML is read as CSV.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatCSV
	}
}

// Load reads the signature file at path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Config("reading configuration file %s: %w", path, err)
	}
	return Parse(bytes.NewReader(data), FormatOf(path))
}

func Parse(r io.Reader, f Format) (*Table, error) {
	switch f {
	case FormatYAML:
		return ReadYAML(r)
	case FormatTOML:
		return ReadTOML(r)
	default:
		return ReadCSV(r)
	}
}

// ReadCSV parses rows of the form "type,signature[,...]". Fields past the
// second are ignored, and lines starting with '#' are comments. A row with
// fewer than two fields is a config error.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	t := NewTable()
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errs.Config("parsing csv: %w", err)
		}

		line, _ := cr.FieldPos(0)
		if len(row) < 2 {
			return nil, errs.Config("line %d: expected at least 2 fields, got %d", line, len(row))
		}
		if err := t.Add(row[0], row[1]); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	return t, nil
}

type document struct {
	Signatures []entry `yaml:"signatures" toml:"signatures"`
}

type entry struct {
	Type  string   `yaml:"type" toml:"type"`
	Magic []string `yaml:"magic" toml:"magic"`
}

func ReadYAML(r io.Reader) (*Table, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errs.Config("parsing yaml: %w", err)
	}
	return doc.table()
}

func ReadTOML(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Config("reading toml: %w", err)
	}

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errs.Config("parsing toml: %w", err)
	}
	return doc.table()
}

func (doc *document) table() (*Table, error) {
	t := NewTable()
	for i, e := range doc.Signatures {
		if len(e.Magic) == 0 {
			return nil, errs.Config("entry %d (%q): no signatures", i+1, e.Type)
		}
		for _, sig := range e.Magic {
			if err := t.Add(e.Type, sig); err != nil {
				return nil, fmt.Errorf("entry %d: %w", i+1, err)
			}
		}
	}
	return t, nil
}
