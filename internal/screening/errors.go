package screening

import "errors"

var (
	// ErrNotFound indicates the requested resource does not exist for this session.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates a validation failure.
	ErrInvalidInput = errors.New("invalid input")
)
