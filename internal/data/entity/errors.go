package entity

import "errors"

// Domain error taxonomy. Callers classify with errors.Is; everything here is
// expected and non-fatal.
var (
	// ErrInvalidInput marks malformed caller input (bad dates, negative price).
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict marks a date-range overlap with an existing active booking.
	ErrConflict = errors.New("booking conflict")

	// ErrNotFound marks an unknown booking or car ID.
	ErrNotFound = errors.New("not found")

	// ErrIllegalTransition marks a lifecycle violation, e.g. cancelling a
	// completed booking.
	ErrIllegalTransition = errors.New("illegal transition")

	// ErrUnavailable marks a storage failure. Safe to retry with backoff: the
	// store guarantees no partial mutation happened.
	ErrUnavailable = errors.New("storage unavailable")
)
