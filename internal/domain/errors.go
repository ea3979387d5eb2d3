package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation.
// Every specific validation failure below wraps it, so callers can match
// either the family (errors.Is(err, ErrValidation)) or the exact cause.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrIndexOutOfRange is returned by positional schedule operations when an
// index falls outside [0, count).
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrEmptyInput is returned when a computation needs at least one coordinate
// (map framing, camera stepping) and received none.
var ErrEmptyInput = errors.New("empty input")

// Validation failures. The set is closed: callers map each one to a
// user-facing message.
var (
	ErrTitleRequired       = fmt.Errorf("%w: title is required", ErrValidation)
	ErrFromDateMissing     = fmt.Errorf("%w: from_date is required when to_date is set", ErrValidation)
	ErrToDateMissing       = fmt.Errorf("%w: to_date is required when from_date is set", ErrValidation)
	ErrFromDateAfterToDate = fmt.Errorf("%w: from_date must not be after to_date", ErrValidation)
	ErrInvalidCoordinate   = fmt.Errorf("%w: coordinate is out of range", ErrValidation)
	ErrInvalidMemorySlot   = fmt.Errorf("%w: memory slot must not be negative", ErrValidation)
)

// indexError wraps ErrIndexOutOfRange with the offending index and bound.
func indexError(index, count int) error {
	return fmt.Errorf("%w: index %d, count %d", ErrIndexOutOfRange, index, count)
}
