package domain

import "errors"

// Shared sentinel errors. Entity-specific sentinels live next to their entity.
var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the requester may not manage the target event.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput is returned when a field is outside its declared range.
	ErrInvalidInput = errors.New("invalid input")
)
