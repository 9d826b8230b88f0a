package songdb

import (
	"fmt"
	"strconv"

	"github.com/harrison/rsqsongdb/internal/models"
)

// DefaultFileName is the database file name used when none is configured.
const DefaultFileName = "songdb.txt"

// LineTerminator ends every line regardless of host platform.
const LineTerminator = "\r\n"

// FieldMarker prefixes every field of a data line.
const FieldMarker = "#"

// lineFormat left-justifies the first six columns in widths 7, 6, 8, 8, 32
// and 32; the two path columns are not padded. Widths count runes.
const lineFormat = "%-7s %-6s %-8s %-8s %-32s %-32s %s %s"

// Header returns the header line without its terminator.
func Header() string {
	return fmt.Sprintf(lineFormat, "SongNum", "Nation", "Songtype", "Language", "Title", "Singer", "", "")
}

// FormatRecord returns the data line for rec without its terminator.
func FormatRecord(rec models.SongRecord) string {
	return fmt.Sprintf(lineFormat,
		FieldMarker+strconv.Itoa(rec.Number),
		FieldMarker+strconv.Itoa(rec.Nation),
		FieldMarker+strconv.Itoa(rec.SongType),
		FieldMarker+strconv.Itoa(rec.Language),
		FieldMarker+rec.Title,
		FieldMarker+rec.Singer,
		FieldMarker+rec.AudioPath,
		FieldMarker+rec.GraphicsPath,
	)
}
