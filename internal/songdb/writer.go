// Package songdb writes the RSQ flat-text song database.
//
// A database is one header line followed by one fixed-width line per song,
// every line terminated by CRLF. The Writer is a small state machine:
//
//	Unopened --Open--> Open --Close--> Closed
//
// Close is idempotent and callers defer it right after a successful Open so
// the file handle and lock are always released. There is no transactional
// guarantee: lines written before a failure stay on disk.
package songdb

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/harrison/rsqsongdb/internal/diag"
	"github.com/harrison/rsqsongdb/internal/filelock"
	"github.com/harrison/rsqsongdb/internal/models"
)

// State is the lifecycle state of a Writer.
type State int

// Writer states
const (
	StateUnopened State = iota
	StateOpen
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnopened:
		return "unopened"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrWriterClosed is returned by operations on a closed Writer.
	ErrWriterClosed = errors.New("song database writer is closed")
	// ErrNotOpen is returned when writing before Open.
	ErrNotOpen = errors.New("song database writer is not open")
)

// Writer streams song records to a database file.
type Writer struct {
	path  string
	state State
	file  *os.File
	buf   *bufio.Writer
	lock  *filelock.FileLock
	lines int
}

// NewWriter returns an unopened Writer for path.
func NewWriter(path string) *Writer {
	return &Writer{path: path, state: StateUnopened}
}

// Create opens a new Writer for path; see Open.
func Create(path string, sink diag.Sink) (*Writer, error) {
	w := NewWriter(path)
	if err := w.Open(sink); err != nil {
		return nil, err
	}
	return w, nil
}

// Path returns the database file path.
func (w *Writer) Path() string {
	return w.path
}

// State returns the current lifecycle state.
func (w *Writer) State() State {
	return w.state
}

// Lines returns the number of lines written so far, header included.
func (w *Writer) Lines() int {
	return w.lines
}

// Open locks the database path, reports an OverwriteWarning to sink when the
// file already exists, truncates it and writes the header line.
func (w *Writer) Open(sink diag.Sink) error {
	switch w.state {
	case StateOpen:
		return nil
	case StateClosed:
		return ErrWriterClosed
	}
	if sink == nil {
		sink = diag.Discard
	}

	lock := filelock.ForDatabase(w.path)
	if err := lock.Acquire(); err != nil {
		return fmt.Errorf("failed to lock song database: %w", err)
	}

	if info, err := os.Stat(w.path); err == nil && !info.IsDir() {
		sink.Report(models.NewDiagnostic(models.KindOverwriteWarning, w.path, "Overwriting existing song database"))
	}

	file, err := os.Create(w.path)
	if err != nil {
		lock.Unlock()
		return fmt.Errorf("failed to create song database: %w", err)
	}

	w.file = file
	w.buf = bufio.NewWriter(file)
	w.lock = lock
	w.state = StateOpen

	if err := w.writeLine(Header()); err != nil {
		return errors.Join(err, w.Close())
	}
	return nil
}

// WriteRecord appends one data line.
func (w *Writer) WriteRecord(rec models.SongRecord) error {
	switch w.state {
	case StateUnopened:
		return ErrNotOpen
	case StateClosed:
		return ErrWriterClosed
	}
	return w.writeLine(FormatRecord(rec))
}

func (w *Writer) writeLine(line string) error {
	if _, err := w.buf.WriteString(line); err != nil {
		return fmt.Errorf("failed to write song database: %w", err)
	}
	if _, err := w.buf.WriteString(LineTerminator); err != nil {
		return fmt.Errorf("failed to write song database: %w", err)
	}
	w.lines++
	return nil
}

// Close flushes buffered lines, closes the file and releases the lock.
// Closing an unopened or already closed Writer is a no-op.
func (w *Writer) Close() error {
	if w.state != StateOpen {
		w.state = StateClosed
		return nil
	}
	w.state = StateClosed

	var errs []error
	if err := w.buf.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("failed to flush song database: %w", err))
	}
	if err := w.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close song database: %w", err))
	}
	if err := w.lock.Unlock(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
