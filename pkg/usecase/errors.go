package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Search errors
	ErrStaleSearch = errors.New("search superseded by a newer request")
	ErrNoResult    = errors.New("no search result to export")

	// Filter errors
	ErrMalformedFilterSource = errors.New("filter source is not valid JSON")

	// Export errors
	ErrArchiveDisabled = errors.New("export archive is not configured")
	ErrShareDisabled   = errors.New("export sharing is not configured")

	// Report errors
	ErrReportNotFound = errors.New("report request not found")
)

// Context keys for error values
const (
	FieldIDKey  = "field_id"
	ScreenKey   = "screen"
	SessionKey  = "session"
	SequenceKey = "sequence"
	FormatKey   = "format"
)
