// Package resolver discovers audio/graphics pairs under a music directory.
package resolver

import (
	"fmt"
	"iter"
	"path/filepath"
	"strings"

	"github.com/harrison/rsqsongdb/internal/diag"
	"github.com/harrison/rsqsongdb/internal/fileutil"
	"github.com/harrison/rsqsongdb/internal/models"
)

// Default file extensions of a karaoke pair.
const (
	DefaultAudioExt    = ".mp3"
	DefaultGraphicsExt = ".cdg"
)

// Options configures pair discovery.
type Options struct {
	AudioExt    string   // Extension of the audio file (default ".mp3")
	GraphicsExt string   // Extension of the graphics file (default ".cdg")
	ExcludeDirs []string // Directory names not to descend into
	SkipHidden  bool     // Skip dot-directories
}

// Stats counts what a resolver has seen so far.
type Stats struct {
	Directories int // Directories listed successfully
	AudioFiles  int // Audio files found, paired or not
}

// PairResolver walks a music directory breadth-first and yields every audio
// file whose graphics sibling exists. Audio files without a sibling are
// reported to the sink as MissingPairFile and skipped.
type PairResolver struct {
	root  string
	opts  Options
	sink  diag.Sink
	stats Stats
}

// New creates a PairResolver for root. A nil sink discards diagnostics.
func New(root string, opts Options, sink diag.Sink) *PairResolver {
	if opts.AudioExt == "" {
		opts.AudioExt = DefaultAudioExt
	}
	if opts.GraphicsExt == "" {
		opts.GraphicsExt = DefaultGraphicsExt
	}
	opts.AudioExt = normalizeExt(opts.AudioExt)
	opts.GraphicsExt = normalizeExt(opts.GraphicsExt)
	if sink == nil {
		sink = diag.Discard
	}
	return &PairResolver{root: root, opts: opts, sink: sink}
}

// Stats returns the counters accumulated by Pairs.
func (r *PairResolver) Stats() Stats {
	return r.stats
}

// Pairs returns the lazy sequence of resolved pairs in discovery order.
//
// A non-nil error is fatal and ends the sequence: it is only produced when
// the root directory itself cannot be read. Unreadable subdirectories are
// reported as UnreadableDirectory warnings and skipped.
func (r *PairResolver) Pairs() iter.Seq2[models.CandidatePair, error] {
	pattern := "*" + r.opts.AudioExt
	scan := fileutil.ScanOptions{
		ExcludeDirs: r.opts.ExcludeDirs,
		SkipHidden:  r.opts.SkipHidden,
	}

	return func(yield func(models.CandidatePair, error) bool) {
		for dir, err := range fileutil.WalkBreadthFirst(r.root, scan) {
			if err != nil {
				if dir.Path == r.root {
					yield(models.CandidatePair{}, fmt.Errorf("cannot scan music directory: %w", err))
					return
				}
				r.sink.Report(models.NewDiagnostic(models.KindUnreadableDirectory, dir.Path, "Directory could not be read; skipped."))
				continue
			}
			r.stats.Directories++

			audioFiles, err := dir.Match(pattern)
			if err != nil {
				yield(models.CandidatePair{}, err)
				return
			}

			for _, audio := range audioFiles {
				r.stats.AudioFiles++

				graphics, ok := dir.Lookup(GraphicsName(audio, r.opts.GraphicsExt))
				if !ok {
					r.sink.Report(models.NewDiagnostic(models.KindMissingPairFile, audio,
						fmt.Sprintf("%s has no %s file.", extLabel(r.opts.AudioExt), extLabel(r.opts.GraphicsExt))))
					continue
				}

				if !yield(models.CandidatePair{AudioPath: audio, GraphicsPath: graphics}, nil) {
					return
				}
			}
		}
	}
}

// GraphicsName returns the base name of the graphics file expected next to
// audioPath: same base name, extension replaced by graphicsExt.
func GraphicsName(audioPath, graphicsExt string) string {
	base := filepath.Base(audioPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + graphicsExt
}

// BaseName returns the file name of path without directory or extension.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func normalizeExt(ext string) string {
	if !strings.HasPrefix(ext, ".") {
		return "." + ext
	}
	return ext
}

// extLabel turns ".mp3" into "MP3" for messages.
func extLabel(ext string) string {
	return strings.ToUpper(strings.TrimPrefix(ext, "."))
}
