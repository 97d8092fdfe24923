package exception

import "errors"

// Package-specific errors
var (
	// ErrUnknownState is returned when a policy document names a state that
	// is not part of the known exception-state set.
	ErrUnknownState = errors.New("unknown exception state")

	// ErrFailedToReadPolicies is returned when the policy source cannot be read.
	ErrFailedToReadPolicies = errors.New("failed to read policy overrides")

	// ErrFailedToParsePolicies is returned when the policy document is not valid YAML.
	ErrFailedToParsePolicies = errors.New("failed to parse policy overrides")
)
