package services

import "errors"

// ErrInvalidInput is returned when a create or update carries malformed or
// out-of-range fields. Handlers surface it as 422.
var ErrInvalidInput = errors.New("invalid input")

// ErrForbidden is returned when a resolved identity does not own the
// resource it is trying to mutate.
var ErrForbidden = errors.New("forbidden")

// ErrPriceMismatch is returned when a client-submitted booking total does
// not match the server-computed nights x nightly price.
var ErrPriceMismatch = errors.New("price mismatch")

// ErrFetchFailed is returned when a remote photo fetch fails. It is not
// retried automatically.
var ErrFetchFailed = errors.New("fetch failed")
