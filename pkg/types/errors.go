package types

import "errors"

// Store operation errors.
var (
	ErrNotFound    = errors.New("entity not found")
	ErrInvalidID   = errors.New("invalid entity ID")
	ErrStoreClosed = errors.New("store is closed")
)

// Entity validation errors.
var (
	ErrInvalidURL    = errors.New("invalid URL")
	ErrInvalidRating = errors.New("rating must be between 0 and 5")
	ErrInvalidName   = errors.New("invalid name")
	ErrInvalidKind   = errors.New("invalid kind")
	ErrDuplicateURL  = errors.New("URL already bookmarked")
	ErrDuplicateName = errors.New("name already in use")
	ErrInvalidFilter = errors.New("invalid filter value type")
)
