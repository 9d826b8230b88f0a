// Package diag collects the warnings and errors reported while a song
// database is built.
//
// Components never print or exit on their own; they hand a
// models.Diagnostic to a Sink. The CLI wires a MultiSink that fans each
// diagnostic out to the console logger, the optional file logger and a
// Collector, and derives the process exit status from the Collector.
package diag

import (
	"sync"

	"github.com/harrison/rsqsongdb/internal/models"
)

// Sink receives diagnostics as they are encountered.
type Sink interface {
	Report(d models.Diagnostic)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(d models.Diagnostic)

// Report calls f(d).
func (f SinkFunc) Report(d models.Diagnostic) {
	f(d)
}

// Discard is a Sink that drops everything.
var Discard Sink = SinkFunc(func(models.Diagnostic) {})

// MultiSink forwards every diagnostic to each non-nil sink in order.
type MultiSink []Sink

// Report forwards d to every sink.
func (m MultiSink) Report(d models.Diagnostic) {
	for _, s := range m {
		if s != nil {
			s.Report(d)
		}
	}
}

// Collector records diagnostics in arrival order.
type Collector struct {
	mu    sync.Mutex
	items []models.Diagnostic
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Report appends d.
func (c *Collector) Report(d models.Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, d)
}

// All returns a copy of every recorded diagnostic.
func (c *Collector) All() []models.Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// Count returns how many diagnostics of the given kind were recorded.
func (c *Collector) Count(kind models.DiagnosticKind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.items {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Len returns the total number of recorded diagnostics.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Errors returns the number of error-level diagnostics.
func (c *Collector) Errors() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.items {
		if d.Level == models.LevelError {
			n++
		}
	}
	return n
}
