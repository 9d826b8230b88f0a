// Package fileutil provides the directory-listing primitives used to discover
// karaoke files.
//
// # Traversal order
//
// WalkBreadthFirst visits the root directory first and then every
// subdirectory level by level. Within a directory, entries are visited in
// lexical byte order (the order os.ReadDir returns), so for a fixed tree the
// sequence is fully deterministic. Song numbers are assigned in this order,
// which makes re-running against an unchanged tree reproduce the same
// database byte for byte.
//
// # Laziness
//
// The walk is an iter.Seq2: a directory is only read when the consumer asks
// for it, and breaking out of the range loop stops the walk.
//
// # Error tolerance
//
// A directory that cannot be read is yielded with a non-nil error and its
// subtree is skipped; the walk continues with the next directory. Callers
// decide whether the failure is fatal (for example, when it is the root).
//
// # Exclusions
//
// Symlinked directories are not followed. Directory names listed in
// ScanOptions.ExcludeDirs are skipped, as are dot-directories when
// ScanOptions.SkipHidden is set.
//
// # Usage
//
//	for dir, err := range fileutil.WalkBreadthFirst(root, fileutil.ScanOptions{}) {
//	    if err != nil {
//	        log.Printf("skipping %s: %v", dir.Path, err)
//	        continue
//	    }
//	    mp3s, _ := dir.Match("*.mp3")
//	    ...
//	}
package fileutil
