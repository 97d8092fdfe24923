package retry

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v4"

	"github.com/dmitrymomot/formstate/pkg/exception"
)

// Do executes op according to the declarative retry parameters attached to
// an exception-state policy. The validation store itself never retries;
// callers that react to SERVER_UNAVAILABLE or RATE_LIMITED run their
// recovery operations through this executor.
//
// MaxRetries bounds the number of re-attempts after the initial call.
// ExponentialBackoff selects exponential growth starting at RetryDelay,
// otherwise the delay is constant.
func Do(ctx context.Context, cfg exception.RetryConfig, op func(ctx context.Context) error) error {
	if op == nil {
		return ErrNilOperation
	}
	if cfg.MaxRetries < 0 {
		return ErrInvalidConfig
	}

	var policy backoff.BackOff
	if cfg.ExponentialBackoff {
		exp := backoff.NewExponentialBackOff()
		exp.InitialInterval = cfg.RetryDelay
		policy = exp
	} else {
		policy = backoff.NewConstantBackOff(cfg.RetryDelay)
	}

	policy = backoff.WithMaxRetries(policy, uint64(cfg.MaxRetries))
	policy = backoff.WithContext(policy, ctx)

	return backoff.Retry(func() error { return op(ctx) }, policy)
}

// ForState runs op under the retry policy registered for the given exception
// state. States without retry metadata execute op exactly once.
func ForState(ctx context.Context, table exception.PolicyTable, state exception.State, op func(ctx context.Context) error) error {
	policy, ok := table.Lookup(state)
	if !ok || policy.Retry == nil {
		if op == nil {
			return ErrNilOperation
		}
		return op(ctx)
	}
	return Do(ctx, *policy.Retry, op)
}

// Permanent marks err as non-retryable: Do stops immediately and returns it.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(err)
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var perm *backoff.PermanentError
	return errors.As(err, &perm)
}
