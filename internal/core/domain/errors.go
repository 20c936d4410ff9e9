package domain

import "errors"

// ============================================================================
// Catalogue Errors
// ============================================================================

// Not found errors
var (
	ErrMusicianNotFound   = errors.New("musician not found")
	ErrAlbumNotFound      = errors.New("album not found")
	ErrInstrumentNotFound = errors.New("musical instrument not found")
)

// Validation errors
var (
	ErrInvalidMusicianName       = errors.New("musician name must be non-blank and contain a space")
	ErrInvalidMusicianURL        = errors.New("musician url must be an absolute url")
	ErrInvalidRecordNumber       = errors.New("record number must start with 'ECM '")
	ErrInvalidAlbumName          = errors.New("album name must be non-blank and at most 100 characters")
	ErrInvalidReleaseYear        = errors.New("release year must be between 1900 and the current year")
	ErrInvalidTracks             = errors.New("tracks cannot be blank")
	ErrInvalidAlbumURL           = errors.New("album url must be an absolute url")
	ErrInvalidInstrumentName     = errors.New("musical instrument name is required")
	ErrInvalidMusicianInstrument = errors.New("musician instrument needs a musician and at least one instrument")
	ErrInvalidEntity             = errors.New("invalid catalogue entity")
)

// ============================================================================
// Mining Errors
// ============================================================================

// Contract violations. Caller input problems such as a non-positive k never
// produce an error; they produce an empty result.
var (
	ErrReferenceAlbumRequired = errors.New("reference album is required")
	ErrReferenceAlbumEmpty    = errors.New("reference album has no featured musicians")
	ErrMalformedSnapshot      = errors.New("catalogue snapshot is malformed")
)
