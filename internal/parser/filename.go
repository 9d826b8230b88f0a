// Package parser extracts singer and title information from karaoke file names.
//
// File names follow the convention used by most karaoke disc rips:
//
//	<singer> - <track> - <title>
//
// where the track number may be empty ("Singer - - Title", "Singer -- Title")
// and the spaces around each hyphen are optional.
package parser

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/harrison/rsqsongdb/internal/models"
	"golang.org/x/text/unicode/norm"
)

// ErrMalformedName is returned when a base name does not match the grammar.
var ErrMalformedName = errors.New("file name is not in correct format")

// namePattern captures a non-greedy singer, a "- [digits] -" separator with
// optional single spaces, and a greedy title running to the end of the name.
// Track digits may be any Unicode decimal digit. (?s) lets the title span
// embedded line breaks.
const namePattern = `(?is)^(?P<singer>.+?)(?: ?- ?\p{Nd}*? ?- ?)(?P<title>.+)`

// FilenameParser matches base names against the singer/title grammar.
type FilenameParser struct {
	re        *regexp.Regexp
	singerIdx int
	titleIdx  int
}

// NewFilenameParser compiles the file name grammar.
func NewFilenameParser() *FilenameParser {
	re := regexp.MustCompile(namePattern)
	return &FilenameParser{
		re:        re,
		singerIdx: re.SubexpIndex("singer"),
		titleIdx:  re.SubexpIndex("title"),
	}
}

// Parse extracts singer and title from baseName, which must not include the
// directory or extension. The name is normalized to NFC first so that
// decomposed names produce the same text as composed ones.
func (p *FilenameParser) Parse(baseName string) (models.ParsedName, error) {
	name := norm.NFC.String(baseName)

	m := p.re.FindStringSubmatch(name)
	if m == nil {
		return models.ParsedName{}, fmt.Errorf("%q: %w", baseName, ErrMalformedName)
	}

	return models.ParsedName{
		Singer: m[p.singerIdx],
		Title:  m[p.titleIdx],
	}, nil
}
