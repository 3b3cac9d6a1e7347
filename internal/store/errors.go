package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a unique constraint rejects a create,
// e.g. registering an email that is already taken.
var ErrConflict = errors.New("conflict")
