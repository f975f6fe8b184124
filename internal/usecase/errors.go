package usecase

import "errors"

// Error classes returned by the services. Callers match them with errors.Is;
// the message after the class names the offending input or state.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("state conflict")
	ErrTimeout    = errors.New("payment window elapsed")
)
