package fileutil

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// ScanOptions configures the directory walk
type ScanOptions struct {
	// ExcludeDirs is a list of directory names to skip (matched case-insensitively)
	ExcludeDirs []string
	// SkipHidden skips directories whose name starts with "."
	SkipHidden bool
}

// Dir is one listed directory
type Dir struct {
	// Path is the directory's path, rooted at the walk root
	Path string
	// Entries are the directory's entries in lexical order
	Entries []os.DirEntry
}

// WalkBreadthFirst returns a lazy breadth-first walk of root and all of its
// subdirectories. Each directory is yielded once with its entries. A
// directory that cannot be read is yielded with a nil Entries slice and the
// read error.
func WalkBreadthFirst(root string, opts ScanOptions) iter.Seq2[Dir, error] {
	excludeMap := make(map[string]bool)
	for _, name := range opts.ExcludeDirs {
		excludeMap[strings.ToLower(name)] = true
	}

	return func(yield func(Dir, error) bool) {
		queue := []string{root}

		for len(queue) > 0 {
			path := queue[0]
			queue = queue[1:]

			entries, err := os.ReadDir(path)
			if err != nil {
				if !yield(Dir{Path: path}, fmt.Errorf("failed to read directory %s: %w", path, err)) {
					return
				}
				continue
			}

			for _, e := range entries {
				if !e.IsDir() {
					continue
				}
				name := e.Name()
				if excludeMap[strings.ToLower(name)] {
					continue
				}
				if opts.SkipHidden && strings.HasPrefix(name, ".") {
					continue
				}
				queue = append(queue, filepath.Join(path, name))
			}

			if !yield(Dir{Path: path, Entries: entries}, nil) {
				return
			}
		}
	}
}

// Match returns the full paths of the regular files in d whose name matches
// the wildcard pattern (filepath.Match syntax). Matching ignores case, so
// "*.mp3" also selects "Song.MP3". Results keep the directory's lexical order.
func (d Dir) Match(pattern string) ([]string, error) {
	lowered := strings.ToLower(pattern)
	if _, err := filepath.Match(lowered, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	var files []string
	for _, e := range d.Entries {
		if e.IsDir() {
			continue
		}
		ok, _ := filepath.Match(lowered, strings.ToLower(e.Name()))
		if ok {
			files = append(files, filepath.Join(d.Path, e.Name()))
		}
	}
	return files, nil
}

// Lookup finds a non-directory entry named name. An exact match wins;
// otherwise the first entry whose name matches ignoring case is returned.
// Entries that cannot be stat'ed, such as dangling symlinks, never match.
func (d Dir) Lookup(name string) (string, bool) {
	var fold []string
	for _, e := range d.Entries {
		if e.IsDir() {
			continue
		}
		if e.Name() == name {
			if p := filepath.Join(d.Path, e.Name()); isFile(p) {
				return p, true
			}
			continue
		}
		if strings.EqualFold(e.Name(), name) {
			fold = append(fold, filepath.Join(d.Path, e.Name()))
		}
	}
	for _, p := range fold {
		if isFile(p) {
			return p, true
		}
	}
	return "", false
}

// isFile reports whether path resolves to an existing non-directory.
func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
