package retry

import "errors"

// Package-specific errors
var (
	// ErrNilOperation is returned when Do is called without an operation.
	ErrNilOperation = errors.New("retry operation cannot be nil")

	// ErrInvalidConfig is returned when the retry configuration is unusable.
	ErrInvalidConfig = errors.New("invalid retry configuration")
)
