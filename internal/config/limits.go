package config

const (
	// MaxRoomNameLength is the maximum length for room names, in characters.
	MaxRoomNameLength = 255

	// MaxNameLength is the maximum length for folder and file names, in characters.
	MaxNameLength = 255

	// DefaultMaxUploadBytes caps a single upload at 100 MB.
	DefaultMaxUploadBytes int64 = 100 << 20

	// MaxAutocompleteResults is the number of suggestions returned per query.
	MaxAutocompleteResults = 10

	// MinAutocompleteQueryLength is the shortest query that yields suggestions.
	MinAutocompleteQueryLength = 2

	// ExtractionConcurrency bounds parallel lazy text extraction during search.
	ExtractionConcurrency = 4
)
