package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrConflict is returned when a conditional update loses to a
	// concurrent write (the record's version no longer matches).
	ErrConflict = errors.New("concurrent update conflict")
)
