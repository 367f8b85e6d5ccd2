package page

import "errors"

var (
	// ErrNoProvider is returned by NewBook when the provider is nil.
	ErrNoProvider = errors.New("page: nil provider")

	// ErrPageOutOfRange is returned for a page index outside the provider
	// or book range.
	ErrPageOutOfRange = errors.New("page: index out of range")

	// ErrInvalidSize is returned when a page bitmap is requested with a
	// non-positive width or height.
	ErrInvalidSize = errors.New("page: invalid bitmap size")
)
