// Package builder runs the scan-match-parse-number-emit pipeline that turns a
// music directory into an RSQ song database.
package builder

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/harrison/rsqsongdb/internal/diag"
	"github.com/harrison/rsqsongdb/internal/models"
	"github.com/harrison/rsqsongdb/internal/numbering"
	"github.com/harrison/rsqsongdb/internal/parser"
	"github.com/harrison/rsqsongdb/internal/pathmap"
	"github.com/harrison/rsqsongdb/internal/resolver"
	"github.com/harrison/rsqsongdb/internal/songdb"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Options are the plain values the pipeline consumes.
type Options struct {
	MusicDir        string           // Directory to scan (required); made absolute by New
	AltDir          string           // Root written into the database instead of MusicDir
	FirstSongNumber int              // Number of the first record
	SongDBPath      string           // Database file to write
	Resolver        resolver.Options // Extensions and exclusions
}

// Builder owns one pipeline run: its number counter, remapper and parser are
// not shared with any other run.
type Builder struct {
	opts      Options
	sink      diag.Sink
	parser    *parser.FilenameParser
	remapper  *pathmap.Remapper
	allocator *numbering.Allocator
	upper     cases.Caser
	skipped   map[models.DiagnosticKind][]string
	tracer    Tracer
}

// Tracer receives one line per record the pipeline resolves.
type Tracer interface {
	LogTrace(message string)
}

// New creates a Builder reporting diagnostics to sink (nil discards them).
func New(opts Options, sink diag.Sink) *Builder {
	if sink == nil {
		sink = diag.Discard
	}
	if opts.MusicDir != "" {
		if abs, err := filepath.Abs(opts.MusicDir); err == nil {
			opts.MusicDir = abs
		}
	}
	b := &Builder{
		opts:      opts,
		parser:    parser.NewFilenameParser(),
		remapper:  pathmap.New(opts.MusicDir, opts.AltDir),
		allocator: numbering.NewAllocator(opts.FirstSongNumber),
		upper:     cases.Upper(language.Und),
		skipped:   make(map[models.DiagnosticKind][]string),
	}
	b.sink = diag.MultiSink{sink, diag.SinkFunc(b.trackSkipped)}
	return b
}

// WithTracer sends a trace line for every resolved record to t.
func (b *Builder) WithTracer(t Tracer) *Builder {
	b.tracer = t
	return b
}

func (b *Builder) trackSkipped(d models.Diagnostic) {
	switch d.Kind {
	case models.KindMissingPairFile, models.KindMalformedName, models.KindUnreadableDirectory:
		b.skipped[d.Kind] = append(b.skipped[d.Kind], d.Path)
	}
}

// Build scans the music directory and writes every resolved record to the
// database file. Per-file problems are reported and skipped; a missing music
// directory or any failure creating or writing the database is fatal. Lines
// written before a fatal error stay on disk.
func (b *Builder) Build() (result *models.BuildResult, err error) {
	if err := b.checkInput(); err != nil {
		return nil, err
	}

	w, err := songdb.Create(b.opts.SongDBPath, b.sink)
	if err != nil {
		b.reportIO(err)
		return nil, err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil {
			b.reportIO(cerr)
			err = errors.Join(err, cerr)
		}
	}()

	result, err = b.run(func(rec models.SongRecord) error {
		if werr := w.WriteRecord(rec); werr != nil {
			b.reportIO(werr)
			return werr
		}
		return nil
	})
	if result != nil {
		result.DatabasePath = b.opts.SongDBPath
	}
	return result, err
}

// Scan runs the pipeline without touching the database file and hands every
// record to emit. emit may be nil.
func (b *Builder) Scan(emit func(models.SongRecord) error) (*models.BuildResult, error) {
	if err := b.checkInput(); err != nil {
		return nil, err
	}
	if emit == nil {
		emit = func(models.SongRecord) error { return nil }
	}
	return b.run(emit)
}

func (b *Builder) checkInput() error {
	if b.opts.MusicDir == "" {
		b.sink.Report(models.NewDiagnostic(models.KindMissingRequiredInput, "", models.ErrMissingMusicDir.Error()))
		return models.ErrMissingMusicDir
	}
	return nil
}

func (b *Builder) reportIO(err error) {
	b.sink.Report(models.NewDiagnostic(models.KindIOFailure, b.opts.SongDBPath, err.Error()))
}

func (b *Builder) run(emit func(models.SongRecord) error) (*models.BuildResult, error) {
	start := time.Now()
	res := resolver.New(b.opts.MusicDir, b.opts.Resolver, b.sink)

	result := &models.BuildResult{
		FirstNumber: b.allocator.First(),
		Skipped:     b.skipped,
	}
	finish := func() *models.BuildResult {
		stats := res.Stats()
		result.Directories = stats.Directories
		result.AudioFiles = stats.AudioFiles
		result.Records = b.allocator.Allocated()
		result.LastNumber = b.allocator.Peek() - 1
		result.Duration = time.Since(start)
		return result
	}

	for pair, err := range res.Pairs() {
		if err != nil {
			return finish(), err
		}

		rec, err := b.resolve(pair)
		if errors.Is(err, parser.ErrMalformedName) {
			b.sink.Report(models.NewDiagnostic(models.KindMalformedName, pair.AudioPath,
				"File name is not in correct format"))
			continue
		}
		if err != nil {
			return finish(), err
		}

		if err := emit(rec); err != nil {
			return finish(), err
		}
		if b.tracer != nil {
			b.tracer.LogTrace(fmt.Sprintf("#%d %s - %s <- '%s'", rec.Number, rec.Singer, rec.Title, pair.AudioPath))
		}
	}

	return finish(), nil
}

// resolve parses the pair's base name and builds its record. A number is
// only allocated once the name has parsed.
func (b *Builder) resolve(pair models.CandidatePair) (models.SongRecord, error) {
	name, err := b.parser.Parse(resolver.BaseName(pair.AudioPath))
	if err != nil {
		return models.SongRecord{}, err
	}

	audio, err := b.remapper.Remap(pair.AudioPath)
	if err != nil {
		return models.SongRecord{}, err
	}
	graphics, err := b.remapper.Remap(pair.GraphicsPath)
	if err != nil {
		return models.SongRecord{}, err
	}

	return models.NewSongRecord(
		b.allocator.Next(),
		b.upper.String(name.Title),
		b.upper.String(name.Singer),
		audio,
		graphics,
	), nil
}

// DiagnosticsError reports that a run finished but emitted warnings or errors.
// The CLI turns it into a non-zero exit status.
type DiagnosticsError struct {
	Warnings int
	Errors   int
}

func (e *DiagnosticsError) Error() string {
	return fmt.Sprintf("run completed with %d warning(s) and %d error(s)", e.Warnings, e.Errors)
}

// CheckDiagnostics returns a *DiagnosticsError when c holds any diagnostic.
func CheckDiagnostics(c *diag.Collector) error {
	if c.Len() == 0 {
		return nil
	}
	errs := c.Errors()
	return &DiagnosticsError{Warnings: c.Len() - errs, Errors: errs}
}
