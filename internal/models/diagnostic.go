package models

import "fmt"

// DiagnosticLevel is the severity of a Diagnostic.
type DiagnosticLevel string

// Diagnostic levels
const (
	LevelWarning DiagnosticLevel = "WARNING"
	LevelError   DiagnosticLevel = "ERROR"
)

// DiagnosticKind classifies what went wrong.
type DiagnosticKind string

// Diagnostic kinds reported while building a song database
const (
	KindMissingPairFile      DiagnosticKind = "MissingPairFile"      // audio file has no graphics file
	KindMalformedName        DiagnosticKind = "MalformedName"        // base name does not match singer/title grammar
	KindOverwriteWarning     DiagnosticKind = "OverwriteWarning"     // database file exists and will be replaced
	KindUnreadableDirectory  DiagnosticKind = "UnreadableDirectory"  // a subdirectory could not be listed
	KindMissingRequiredInput DiagnosticKind = "MissingRequiredInput" // no music directory given
	KindIOFailure            DiagnosticKind = "IOFailure"            // database file could not be created or written
)

// Level returns the severity attached to a kind.
func (k DiagnosticKind) Level() DiagnosticLevel {
	switch k {
	case KindMissingRequiredInput, KindIOFailure:
		return LevelError
	default:
		return LevelWarning
	}
}

// Diagnostic is a single warning or error reported during a run.
type Diagnostic struct {
	Kind    DiagnosticKind
	Level   DiagnosticLevel
	Path    string // File or directory the diagnostic is about (may be empty)
	Message string
}

// NewDiagnostic creates a Diagnostic whose level is derived from kind.
func NewDiagnostic(kind DiagnosticKind, path, message string) Diagnostic {
	return Diagnostic{
		Kind:    kind,
		Level:   kind.Level(),
		Path:    path,
		Message: message,
	}
}

// String renders the diagnostic the way the console shows it: '<path>' - <message>.
func (d Diagnostic) String() string {
	if d.Path == "" {
		return d.Message
	}
	return fmt.Sprintf("'%s' - %s", d.Path, d.Message)
}
