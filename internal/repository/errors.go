// internal/repository/errors.go
package repository

import "errors"

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for malformed identifiers or payloads.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict is returned when a uniqueness constraint is violated.
	ErrConflict = errors.New("conflict")
)
