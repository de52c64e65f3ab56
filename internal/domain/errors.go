package domain

import "errors"

var (
	// ErrNotFound is returned when a lookup by id or business key misses.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned for malformed or out-of-range input before
	// anything is persisted.
	ErrValidation = errors.New("invalid input")
	// ErrInvalidTransition is returned when a requested status change is not
	// an edge of the entity's state graph.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrConflict is returned when the store detects a concurrent
	// modification of the same row.
	ErrConflict = errors.New("concurrent modification")
)
