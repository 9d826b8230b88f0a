// Package pathmap rewrites paths under the scanned music directory so they
// point at the substitute ("alt") directory used by the karaoke machine.
//
// The song database is consumed on Windows-style systems, so remapped paths
// always use backslash separators regardless of the host platform.
package pathmap

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Separator is the path separator written into the song database.
const Separator = `\`

// ErrOutsideRoot is returned when a path does not live under the source root.
var ErrOutsideRoot = errors.New("path is not under the source directory")

// Remapper substitutes AltRoot for SourceRoot at the front of a path.
type Remapper struct {
	sourceRoot string // cleaned, with trailing host separator
	altRoot    string // as given, with trailing separator
}

// New creates a Remapper. sourceRoot is a host directory path; altRoot is
// taken literally (it may name a drive on another machine, e.g. `H:\Music`)
// and defaults to sourceRoot when empty.
func New(sourceRoot, altRoot string) *Remapper {
	src := withTrailingSeparator(filepath.Clean(sourceRoot), string(filepath.Separator))
	alt := src
	if altRoot != "" {
		alt = withTrailingSeparator(altRoot, string(filepath.Separator))
	}
	return &Remapper{sourceRoot: src, altRoot: alt}
}

// SourceRoot returns the normalized source root (with trailing separator).
func (r *Remapper) SourceRoot() string {
	return r.sourceRoot
}

// AltRoot returns the substitute root in database form.
func (r *Remapper) AltRoot() string {
	return toDatabaseSeparators(r.altRoot)
}

// Remap returns path with the source root replaced by the alt root and every
// separator rewritten to a backslash.
func (r *Remapper) Remap(path string) (string, error) {
	if !strings.HasPrefix(path, r.sourceRoot) {
		return "", fmt.Errorf("remap %s: %w", path, ErrOutsideRoot)
	}
	rel := path[len(r.sourceRoot):]
	return toDatabaseSeparators(r.altRoot + rel), nil
}

// withTrailingSeparator appends sep unless p already ends in a separator.
// Both slash styles count so Windows-style alt roots are left alone.
func withTrailingSeparator(p, sep string) string {
	if strings.HasSuffix(p, "/") || strings.HasSuffix(p, `\`) {
		return p
	}
	return p + sep
}

func toDatabaseSeparators(p string) string {
	return strings.ReplaceAll(p, "/", Separator)
}
