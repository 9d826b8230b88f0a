package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/rsqsongdb/internal/models"
	"github.com/mattn/go-isatty"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning, in yellow on a terminal
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected file:\n")
		} else {
			b.WriteString("Affected files:\n")
		}

		for i, file := range w.Files {
			b.WriteString("      ")
			b.WriteString(fmt.Sprintf("%d. %s", i+1, file))
			b.WriteString("\n")
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	yellow := newColor(out, color.FgYellow)
	fmt.Fprint(out, yellow.Sprint(b.String()))
}

// skipReasons lists the skip kinds in display order with their wording.
var skipReasons = []struct {
	kind       models.DiagnosticKind
	title      string
	suggestion string
}{
	{
		kind:       models.KindMissingPairFile,
		title:      "Audio files without a graphics file",
		suggestion: "Add the matching graphics file next to each audio file, using the same base name",
	},
	{
		kind:       models.KindMalformedName,
		title:      "File names not in 'Singer - NN - Title' format",
		suggestion: "Rename the files to 'Singer - 01 - Title' (the track number may be empty)",
	},
	{
		kind:       models.KindUnreadableDirectory,
		title:      "Directories that could not be read",
		suggestion: "Check the directory permissions and run again",
	},
}

// SkippedFileWarnings builds one warning per skip reason that has files.
// Reasons appear in a fixed order and files keep discovery order.
func SkippedFileWarnings(skipped map[models.DiagnosticKind][]string) []Warning {
	var warnings []Warning
	for _, reason := range skipReasons {
		files := skipped[reason.kind]
		if len(files) == 0 {
			continue
		}
		warnings = append(warnings, Warning{
			Title:      reason.title,
			Message:    fmt.Sprintf("%d skipped, no song record written", len(files)),
			Files:      files,
			Suggestion: reason.suggestion,
		})
	}
	return warnings
}

// newColor returns a color that is enabled only when out is a terminal.
func newColor(out io.Writer, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if isTerminal(out) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// isTerminal reports whether out is a TTY and NO_COLOR is unset.
func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok || f == nil || color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
