package uniqueness

import "errors"

// Package-specific errors
var (
	// ErrMissingEndpoint is returned when the HTTP checker is created
	// without a usable endpoint URL.
	ErrMissingEndpoint = errors.New("uniqueness endpoint is missing or invalid")

	// ErrCheckFailed wraps transport or protocol failures of a single
	// existence check. Callers typically fail open on it.
	ErrCheckFailed = errors.New("uniqueness check failed")

	// ErrFailedToParseRedisURL is returned when the Redis connection URL is invalid.
	ErrFailedToParseRedisURL = errors.New("failed to parse redis connection URL")

	// ErrRedisNotReady is returned when all Redis connection attempts fail.
	ErrRedisNotReady = errors.New("redis connection is not ready")

	// ErrNilRedisClient is returned when a checker is created without a client.
	ErrNilRedisClient = errors.New("redis client cannot be nil")
)
