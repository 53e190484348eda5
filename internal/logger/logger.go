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
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Level type for log levels
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	SuccessLevel
	WarnLevel
	ErrorLevel
)

func ParseLevel(level string) Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return DebugLevel
	case "INFO":
		return InfoLevel
	case "SUCCESS":
		return SuccessLevel
	case "WARN":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	}
	return InfoLevel
}

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case SuccessLevel:
		return "SUCCESS"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

var prefixes = map[Level]struct {
	mark  string
	color *color.Color
}{
	DebugLevel:   {"[.]", color.New(color.FgHiBlack)},
	InfoLevel:    {"[*]", color.New(color.FgCyan)},
	SuccessLevel: {"[+]", color.New(color.FgGreen)},
	WarnLevel:    {"[!]", color.New(color.FgYellow)},
	ErrorLevel:   {"[-]", color.New(color.FgRed)},
}

// Logger is the console reporter. It prints one status line per event,
// prefixed by a colored severity tag.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	level   Level
	noColor bool
}

// New creates a new logger writing to a writer with minimum log level
func New(w io.Writer, level Level) *Logger {
	return &Logger{
		out:   w,
		level: level,
	}
}

// WithoutColor disables ANSI colors regardless of the terminal.
func (l *Logger) WithoutColor() *Logger {
	l.noColor = true
	return l
}

func (l *Logger) Report(e Event) {
	msg := e.Message
	if e.Offset >= 0 {
		msg = fmt.Sprintf("%s (offset 0x%x)", msg, e.Offset)
	}
	l.log(e.Level, msg)
}

func (l *Logger) log(level Level, msg string) {
	if level < l.level {
		return
	}

	p, ok := prefixes[level]
	if !ok {
		p = prefixes[InfoLevel]
	}
	tag := fmt.Sprintf("%s %s :", p.mark, level)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.noColor {
		fmt.Fprintf(l.out, "%s %s\n", tag, msg)
		return
	}
	fmt.Fprintf(l.out, "%s %s\n", p.color.Sprint(tag), msg)
}

// --- Logging Methods ---

func (l *Logger) Debug(msg string)   { l.log(DebugLevel, msg) }
func (l *Logger) Info(msg string)    { l.log(InfoLevel, msg) }
func (l *Logger) Success(msg string) { l.log(SuccessLevel, msg) }
func (l *Logger) Warn(msg string)    { l.log(WarnLevel, msg) }
func (l *Logger) Error(msg string)   { l.log(ErrorLevel, msg) }

func (l *Logger) Debugf(format string, args ...any) { l.log(DebugLevel, fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(format string, args ...any)  { l.log(InfoLevel, fmt.Sprintf(format, args...)) }
func (l *Logger) Successf(format string, args ...any) {
	l.log(SuccessLevel, fmt.Sprintf(format, args...))
}
func (l *Logger) Warnf(format string, args ...any)  { l.log(WarnLevel, fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...any) { l.log(ErrorLevel, fmt.Sprintf(format, args...)) }
