package domain

import "errors"

// ErrNotFound is returned by service functions when the requested session
// does not exist in the collection.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. blank subject, non-positive duration, missing date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
