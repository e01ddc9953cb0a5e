// Package apperr defines the error taxonomy of the step aggregation
// engine. Handlers at the transport boundary map these kinds to HTTP
// status codes; the engine itself only ever wraps or returns them.
package apperr

import "errors"

var (
	// ErrValidationFailed indicates an absent or structurally malformed
	// input object (e.g. a nil report).
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidUserID indicates a missing or empty user identifier.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidTimeRange indicates a missing timestamp or an ordering
	// violation among start, end and upload times.
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrIllegalArgument indicates a non-positive step count or an
	// engine-internal contract violation (input that should have been
	// rejected by validation).
	ErrIllegalArgument = errors.New("illegal argument")

	// ErrNotFound indicates a query against a user or period with no
	// stored data. It is an expected outcome on read paths.
	ErrNotFound = errors.New("not found")
)

// IsInvalidInput reports whether err is one of the validation kinds
// raised before any storage access.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrInvalidUserID) ||
		errors.Is(err, ErrInvalidTimeRange) ||
		errors.Is(err, ErrIllegalArgument)
}
