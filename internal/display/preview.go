package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/harrison/rsqsongdb/internal/models"
)

// Preview lists the song records a run would write, one line each
type Preview struct {
	writer  io.Writer
	source  string
	current int
	label   *color.Color
	done    *color.Color
}

// NewPreview creates a new preview for records found under source
func NewPreview(w io.Writer, source string) *Preview {
	return &Preview{
		writer: w,
		source: source,
		label:  newColor(w, color.FgCyan),
		done:   newColor(w, color.FgGreen),
	}
}

// Start displays the header message
func (p *Preview) Start() {
	fmt.Fprintf(p.writer, "Songs found in %s:\n", p.source)
}

// Step displays one record: [N] #number SINGER - TITLE (cyan number)
func (p *Preview) Step(rec models.SongRecord) {
	p.current++
	fmt.Fprintf(p.writer, "  [%d] %s %s - %s\n", p.current, p.label.Sprintf("#%d", rec.Number), rec.Singer, rec.Title)
}

// Count returns how many records have been shown
func (p *Preview) Count() int {
	return p.current
}

// Complete displays the total with a green checkmark
func (p *Preview) Complete() {
	noun := "songs"
	if p.current == 1 {
		noun = "song"
	}
	fmt.Fprintf(p.writer, "%s %d %s would be written\n", p.done.Sprint("✓"), p.current, noun)
}
