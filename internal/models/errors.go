package models

import "errors"

// ErrMissingMusicDir is returned when no music (source) directory is configured.
var ErrMissingMusicDir = errors.New("music directory must be specified")
