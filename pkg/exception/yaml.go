package exception

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

type yamlRetry struct {
	MaxRetries         int  `yaml:"max_retries"`
	RetryDelayMs       int  `yaml:"retry_delay_ms"`
	ExponentialBackoff bool `yaml:"exponential_backoff"`
}

type yamlPolicy struct {
	SkipValidation    *bool      `yaml:"skip_validation"`
	ShowFallbackUI    *bool      `yaml:"show_fallback_ui"`
	EnableOfflineMode *bool      `yaml:"enable_offline_mode"`
	Retry             *yamlRetry `yaml:"retry"`
	FallbackMessage   *string    `yaml:"fallback_message"`
}

// LoadPolicies reads YAML policy overrides and merges them onto the default
// table. Only the fields present in the document are overridden, so a
// deployment can adjust a single message without restating the whole policy.
// Unknown state keys are rejected with ErrUnknownState.
func LoadPolicies(r io.Reader) (PolicyTable, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadPolicies, err)
	}

	var doc map[string]yamlPolicy
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Join(ErrFailedToParsePolicies, err)
	}

	table := DefaultPolicies()
	for key, override := range doc {
		state := State(key)
		if !state.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownState, key)
		}

		policy := table[state]
		if override.SkipValidation != nil {
			policy.SkipValidation = *override.SkipValidation
		}
		if override.ShowFallbackUI != nil {
			policy.ShowFallbackUI = *override.ShowFallbackUI
		}
		if override.EnableOfflineMode != nil {
			policy.EnableOfflineMode = *override.EnableOfflineMode
		}
		if override.Retry != nil {
			policy.Retry = &RetryConfig{
				MaxRetries:         override.Retry.MaxRetries,
				RetryDelay:         time.Duration(override.Retry.RetryDelayMs) * time.Millisecond,
				ExponentialBackoff: override.Retry.ExponentialBackoff,
			}
		}
		if override.FallbackMessage != nil {
			policy.FallbackMessage = *override.FallbackMessage
		}
		table[state] = policy
	}

	return table, nil
}
