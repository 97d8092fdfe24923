package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formstate/pkg/exception"
	"github.com/dmitrymomot/formstate/pkg/retry"
)

func TestDo(t *testing.T) {
	ctx := context.Background()
	fast := exception.RetryConfig{MaxRetries: 5, RetryDelay: time.Millisecond}

	t.Run("returns immediately on success", func(t *testing.T) {
		calls := 0
		err := retry.Do(ctx, fast, func(context.Context) error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until the operation succeeds", func(t *testing.T) {
		calls := 0
		err := retry.Do(ctx, fast, func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("not yet")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops after max retries", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		err := retry.Do(ctx, exception.RetryConfig{MaxRetries: 2, RetryDelay: time.Millisecond}, func(context.Context) error {
			calls++
			return boom
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		// Initial attempt plus two retries.
		assert.Equal(t, 3, calls)
	})

	t.Run("permanent error aborts retrying", func(t *testing.T) {
		fatal := errors.New("fatal")
		calls := 0
		err := retry.Do(ctx, fast, func(context.Context) error {
			calls++
			return retry.Permanent(fatal)
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, fatal)
		assert.Equal(t, 1, calls)
	})

	t.Run("exponential backoff configuration is accepted", func(t *testing.T) {
		cfg := exception.RetryConfig{MaxRetries: 1, RetryDelay: time.Millisecond, ExponentialBackoff: true}
		calls := 0
		err := retry.Do(ctx, cfg, func(context.Context) error {
			calls++
			return errors.New("always")
		})
		require.Error(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		err := retry.Do(cancelled, fast, func(context.Context) error {
			return errors.New("still failing")
		})
		require.Error(t, err)
	})

	t.Run("nil operation is rejected", func(t *testing.T) {
		err := retry.Do(ctx, fast, nil)
		assert.ErrorIs(t, err, retry.ErrNilOperation)
	})

	t.Run("negative max retries is rejected", func(t *testing.T) {
		err := retry.Do(ctx, exception.RetryConfig{MaxRetries: -1}, func(context.Context) error { return nil })
		assert.ErrorIs(t, err, retry.ErrInvalidConfig)
	})
}

func TestForState(t *testing.T) {
	ctx := context.Background()

	t.Run("uses the state's retry policy", func(t *testing.T) {
		table := exception.PolicyTable{
			exception.RateLimited: {
				Retry: &exception.RetryConfig{MaxRetries: 2, RetryDelay: time.Millisecond},
			},
		}

		calls := 0
		retryErr := retry.ForState(ctx, table, exception.RateLimited, func(context.Context) error {
			calls++
			return errors.New("limited")
		})
		require.Error(t, retryErr)
		assert.Equal(t, 3, calls)
	})

	t.Run("runs once for states without retry metadata", func(t *testing.T) {
		table := exception.PolicyTable{
			exception.SessionExpired: {SkipValidation: true},
		}

		calls := 0
		err := retry.ForState(ctx, table, exception.SessionExpired, func(context.Context) error {
			calls++
			return errors.New("expired")
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("runs once for unknown states", func(t *testing.T) {
		calls := 0
		err := retry.ForState(ctx, exception.PolicyTable{}, exception.MaintenanceMode, func(context.Context) error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestIsPermanent(t *testing.T) {
	t.Run("recognizes wrapped permanent errors", func(t *testing.T) {
		err := retry.Permanent(errors.New("fatal"))
		assert.True(t, retry.IsPermanent(err))
	})

	t.Run("plain errors are not permanent", func(t *testing.T) {
		assert.False(t, retry.IsPermanent(errors.New("transient")))
		assert.False(t, retry.IsPermanent(nil))
	})

	t.Run("permanent of nil stays nil", func(t *testing.T) {
		assert.NoError(t, retry.Permanent(nil))
	})
}
