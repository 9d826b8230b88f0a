package models

// Fixed RSQ catalogue codes written into every record.
const (
	NationCode   = 2 // Nation column
	SongTypeCode = 5 // Songtype column
	LanguageCode = 2 // Language column
)

// CandidatePair is an audio file together with its same-named graphics file.
// Both paths are absolute and live under the scanned music directory.
type CandidatePair struct {
	AudioPath    string
	GraphicsPath string
}

// ParsedName holds the singer and title extracted from an audio file's base name.
type ParsedName struct {
	Singer string
	Title  string
}

// SongRecord is one fully resolved, numbered song database entry.
// Title and Singer are already upper-cased; the paths are already remapped.
type SongRecord struct {
	Number       int
	Nation       int
	SongType     int
	Language     int
	Title        string
	Singer       string
	AudioPath    string
	GraphicsPath string
}

// NewSongRecord builds a record with the fixed catalogue codes filled in.
func NewSongRecord(number int, title, singer, audioPath, graphicsPath string) SongRecord {
	return SongRecord{
		Number:       number,
		Nation:       NationCode,
		SongType:     SongTypeCode,
		Language:     LanguageCode,
		Title:        title,
		Singer:       singer,
		AudioPath:    audioPath,
		GraphicsPath: graphicsPath,
	}
}
