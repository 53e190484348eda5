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

// Package errs defines the error kinds shared by the carving and combining
// pipelines. Errors are wrapped around one of the sentinels below, so callers
// can tell them apart with errors.Is while keeping the underlying cause.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig reports an unreadable or malformed signature configuration.
	ErrConfig = errors.New("config error")
	// ErrIO reports a failure reading an input or writing an output.
	ErrIO = errors.New("io error")
	// ErrDecode reports segment hex text that cannot be decoded into bytes.
	ErrDecode = errors.New("decode error")
)

type Kind int

const (
	KindUnknown Kind = iota
	KindConfig
	KindIO
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindIO:
		return "io"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// ExitCode returns the process exit status used by the command line tool.
func (k Kind) ExitCode() int {
	switch k {
	case KindConfig:
		return 2
	case KindIO:
		return 3
	case KindDecode:
		return 4
	default:
		return 1
	}
}

// Classify returns the kind of err. A nil error is KindUnknown.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrConfig):
		return KindConfig
	case errors.Is(err, ErrIO):
		return KindIO
	case errors.Is(err, ErrDecode):
		return KindDecode
	}
	return KindUnknown
}

func Config(format string, args ...any) error {
	return wrap(ErrConfig, format, args...)
}

func IO(format string, args ...any) error {
	return wrap(ErrIO, format, args...)
}

func Decode(format string, args ...any) error {
	return wrap(ErrDecode, format, args...)
}

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %w", kind, fmt.Errorf(format, args...))
}
