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
	"context"
	"log/slog"
	"sync"
)

// Stage identifies the pipeline step that emitted an event.
type Stage string

const (
	StageConfig  Stage = "config"
	StageLoad    Stage = "load"
	StageMatch   Stage = "match"
	StageSplit   Stage = "split"
	StageReport  Stage = "report"
	StageCombine Stage = "combine"
)

// NoOffset marks events that do not refer to a buffer position.
const NoOffset int64 = -1

// Event is a structured status notification emitted by the carving and
// combining pipelines.
type Event struct {
	Stage   Stage
	Level   Level
	Message string
	Offset  int64  // hex text offset, or NoOffset
	File    string // output or input file, if any
}

// Reporter receives pipeline events. Implementations decide how (and whether)
// to render them; the pipelines never print directly.
type Reporter interface {
	Report(e Event)
}

type ReporterFunc func(e Event)

func (f ReporterFunc) Report(e Event) { f(e) }

// Discard drops every event.
var Discard Reporter = ReporterFunc(func(Event) {})

type multiReporter []Reporter

func (m multiReporter) Report(e Event) {
	for _, r := range m {
		r.Report(e)
	}
}

// Multi returns a reporter forwarding each event to all the given reporters.
// Nil reporters are skipped.
func Multi(reporters ...Reporter) Reporter {
	rs := make(multiReporter, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			rs = append(rs, r)
		}
	}
	return rs
}

// SlogReporter writes events as structured records, typically to a detailed
// log file.
type SlogReporter struct {
	l *slog.Logger
}

func NewSlogReporter(l *slog.Logger) *SlogReporter {
	return &SlogReporter{l: l}
}

func (r *SlogReporter) Report(e Event) {
	attrs := []slog.Attr{slog.String("stage", string(e.Stage))}
	if e.Offset >= 0 {
		attrs = append(attrs, slog.Int64("offset", e.Offset))
	}
	if e.File != "" {
		attrs = append(attrs, slog.String("file", e.File))
	}
	r.l.LogAttrs(context.Background(), slogLevel(e.Level), e.Message, attrs...)
}

func slogLevel(l Level) slog.Level {
	switch l {
	case DebugLevel:
		return slog.LevelDebug
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SlogLevel converts a console level to the equivalent slog level.
func (l Level) SlogLevel() slog.Level {
	return slogLevel(l)
}

// Recorder keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Report(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events, optionally restricted to
// the given stage.
func (r *Recorder) Events(stage Stage) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Event
	for _, e := range r.events {
		if stage == "" || e.Stage == stage {
			out = append(out, e)
		}
	}
	return out
}
