package util

import "errors"

// Sentinel errors for common failure modes
var (
	// ErrNotFound indicates a required record was not found
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a uniqueness violation (path, tag name, ...)
	ErrDuplicate = errors.New("duplicate")

	// ErrUnsupported indicates a file format is not supported
	ErrUnsupported = errors.New("unsupported")

	// ErrInvalidSort indicates an unknown sort field or direction
	ErrInvalidSort = errors.New("invalid sort")

	// ErrInvalidQuery indicates a malformed search query
	ErrInvalidQuery = errors.New("invalid query")
)
