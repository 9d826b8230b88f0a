package logger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/rsqsongdb/internal/models"
)

// colorScheme defines consistent colors for summary metrics.
// Green: records written
// Yellow: skipped files
// Cyan: labels
type colorScheme struct {
	header  *color.Color
	success *color.Color
	warn    *color.Color
	label   *color.Color
	value   *color.Color
}

// newColorScheme creates the standard color scheme for metrics.
// When enabled is false every color renders plain text.
func newColorScheme(enabled bool) *colorScheme {
	s := &colorScheme{
		header:  color.New(color.Bold),
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
	for _, c := range []*color.Color{s.header, s.success, s.warn, s.label, s.value} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// formatColorizedMetric formats a single metric with colorized label and value.
// Format: "label: value"
func formatColorizedMetric(label string, value interface{}, scheme *colorScheme) string {
	labelColored := scheme.label.Sprint(label)
	valueColored := scheme.value.Sprintf("%v", value)
	return fmt.Sprintf("%s: %s", labelColored, valueColored)
}

// formatColorizedSkipped formats skipped-file counts per diagnostic kind.
// Returns empty string when nothing was skipped.
// Format: "3 (MalformedName: 1, MissingPairFile: 2)"
func formatColorizedSkipped(skipped map[models.DiagnosticKind][]string, scheme *colorScheme) string {
	kinds := make([]string, 0, len(skipped))
	total := 0
	for kind, paths := range skipped {
		if len(paths) == 0 {
			continue
		}
		kinds = append(kinds, string(kind))
		total += len(paths)
	}
	if total == 0 {
		return ""
	}
	sort.Strings(kinds)

	parts := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		parts = append(parts, fmt.Sprintf("%s: %d", kind, len(skipped[models.DiagnosticKind(kind)])))
	}

	return scheme.warn.Sprintf("%d (%s)", total, strings.Join(parts, ", "))
}
