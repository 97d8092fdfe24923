package exception

import "time"

// State names a frontend exception condition that can suspend or alter
// normal validation behavior.
type State string

const (
	NetworkOffline     State = "NETWORK_OFFLINE"
	ServerUnavailable  State = "SERVER_UNAVAILABLE"
	PermissionDenied   State = "PERMISSION_DENIED"
	SessionExpired     State = "SESSION_EXPIRED"
	RateLimited        State = "RATE_LIMITED"
	MaintenanceMode    State = "MAINTENANCE_MODE"
	BrowserUnsupported State = "BROWSER_UNSUPPORTED"
	FeatureDisabled    State = "FEATURE_DISABLED"
)

// States returns every known exception state.
func States() []State {
	return []State{
		NetworkOffline,
		ServerUnavailable,
		PermissionDenied,
		SessionExpired,
		RateLimited,
		MaintenanceMode,
		BrowserUnsupported,
		FeatureDisabled,
	}
}

// Valid reports whether s names a known exception state.
func (s State) Valid() bool {
	switch s {
	case NetworkOffline, ServerUnavailable, PermissionDenied, SessionExpired,
		RateLimited, MaintenanceMode, BrowserUnsupported, FeatureDisabled:
		return true
	}
	return false
}

// RetryConfig is declarative retry metadata for an exception state. The
// validation store never executes retries itself; the config is consumed by
// an external retry-executing collaborator (see the retry package).
type RetryConfig struct {
	MaxRetries         int
	RetryDelay         time.Duration
	ExponentialBackoff bool
}

// Policy describes how the validation store and its callers should behave
// while an exception state is active.
type Policy struct {
	// SkipValidation makes validation pass optimistically while the state
	// is active.
	SkipValidation bool
	// ShowFallbackUI tells the caller to render FallbackMessage instead of
	// the normal surface.
	ShowFallbackUI bool
	// EnableOfflineMode signals that local-only operation is appropriate.
	EnableOfflineMode bool
	// Retry, when non-nil, parameterizes an external retry executor.
	Retry *RetryConfig
	// FallbackMessage is the user-facing text for the condition.
	FallbackMessage string
}

// PolicyTable maps exception states to their behavior policies.
type PolicyTable map[State]Policy

// Lookup returns the policy for the given state.
func (t PolicyTable) Lookup(state State) (Policy, bool) {
	p, ok := t[state]
	return p, ok
}

// SkipValidation reports whether the given state's policy suppresses
// validation. Unknown states never skip.
func (t PolicyTable) SkipValidation(state State) bool {
	p, ok := t[state]
	return ok && p.SkipValidation
}

// DefaultPolicies returns the built-in behavior table covering every known
// exception state.
func DefaultPolicies() PolicyTable {
	return PolicyTable{
		NetworkOffline: {
			SkipValidation:    true,
			ShowFallbackUI:    true,
			EnableOfflineMode: true,
			Retry:             &RetryConfig{MaxRetries: 3, RetryDelay: 2 * time.Second, ExponentialBackoff: true},
			FallbackMessage:   "You are offline. Changes will be validated when the connection returns.",
		},
		ServerUnavailable: {
			SkipValidation:  true,
			ShowFallbackUI:  true,
			Retry:           &RetryConfig{MaxRetries: 5, RetryDelay: 5 * time.Second, ExponentialBackoff: true},
			FallbackMessage: "The server is temporarily unavailable. Please try again shortly.",
		},
		PermissionDenied: {
			ShowFallbackUI:  true,
			FallbackMessage: "You do not have permission to perform this action.",
		},
		SessionExpired: {
			SkipValidation:  true,
			ShowFallbackUI:  true,
			FallbackMessage: "Your session has expired. Please sign in again.",
		},
		RateLimited: {
			Retry:           &RetryConfig{MaxRetries: 3, RetryDelay: time.Second, ExponentialBackoff: true},
			FallbackMessage: "Too many requests. Please slow down.",
		},
		MaintenanceMode: {
			SkipValidation:  true,
			ShowFallbackUI:  true,
			FallbackMessage: "The system is under maintenance. Please check back later.",
		},
		BrowserUnsupported: {
			ShowFallbackUI:  true,
			FallbackMessage: "Your browser is not supported. Please upgrade to continue.",
		},
		FeatureDisabled: {
			SkipValidation:  true,
			FallbackMessage: "This feature is currently disabled.",
		},
	}
}
