package models

import "time"

// BuildResult represents the aggregate result of one scan over a music directory
type BuildResult struct {
	DatabasePath string                      // Database file written (empty for a dry run)
	Records      int                         // Number of records emitted
	FirstNumber  int                         // Number of the first emitted record
	LastNumber   int                         // Number of the last emitted record (FirstNumber-1 when none)
	Directories  int                         // Directories visited
	AudioFiles   int                         // Audio files considered
	Skipped      map[DiagnosticKind][]string // Skipped audio paths grouped by reason
	Duration     time.Duration               // Total wall time
}

// SkippedCount returns how many audio files and directories were skipped.
func (r BuildResult) SkippedCount() int {
	n := 0
	for _, paths := range r.Skipped {
		n += len(paths)
	}
	return n
}
