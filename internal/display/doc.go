// Package display provides terminal output for rsqsongdb: the record
// preview printed by the check command and the skipped-file warnings
// shown after a run.
//
// # Record Preview
//
// Use Preview to list the records a run would write:
//
//	preview := display.NewPreview(os.Stdout, musicDir)
//	preview.Start()
//	for _, rec := range records {
//	    preview.Step(rec)
//	}
//	preview.Complete()
//
// # Warning Messages
//
// Display warnings with optional components:
//
//	warning := display.Warning{
//	    Title:      "Audio files without a graphics file",
//	    Files:      []string{"/music/a.mp3"},
//	    Suggestion: "Add the matching .cdg file next to each audio file",
//	}
//	warning.Display(os.Stderr)
//
// Or build one warning per skip reason from a run result:
//
//	for _, w := range display.SkippedFileWarnings(result.Skipped) {
//	    w.Display(os.Stderr)
//	}
//
// # Colors
//
// Colors come from fatih/color and are only emitted when the writer is a
// terminal, so redirected output and tests see plain text.
package display
