package uniqueness_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formstate/pkg/uniqueness"
)

func TestNewHTTPChecker(t *testing.T) {
	t.Run("rejects empty endpoint", func(t *testing.T) {
		_, err := uniqueness.NewHTTPChecker(uniqueness.HTTPConfig{})
		assert.ErrorIs(t, err, uniqueness.ErrMissingEndpoint)
	})

	t.Run("accepts valid config", func(t *testing.T) {
		checker, err := uniqueness.NewHTTPChecker(uniqueness.HTTPConfig{
			Endpoint: "http://localhost:8080/check",
			Timeout:  time.Second,
			Param:    "value",
			FieldKey: "field",
		})
		require.NoError(t, err)
		assert.NotNil(t, checker)
	})
}

func TestHTTPChecker_IsUnique(t *testing.T) {
	newChecker := func(t *testing.T, handler http.HandlerFunc) *uniqueness.HTTPChecker {
		t.Helper()
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)

		checker, err := uniqueness.NewHTTPChecker(uniqueness.HTTPConfig{
			Endpoint: srv.URL,
			Timeout:  time.Second,
			Param:    "value",
			FieldKey: "field",
		})
		require.NoError(t, err)
		return checker
	}

	t.Run("reports unique when value does not exist", func(t *testing.T) {
		checker := newChecker(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "email", r.URL.Query().Get("field"))
			assert.Equal(t, "a@b.com", r.URL.Query().Get("value"))
			w.Write([]byte(`{"exists": false}`))
		})

		unique, err := checker.IsUnique(context.Background(), "email", "a@b.com")
		require.NoError(t, err)
		assert.True(t, unique)
	})

	t.Run("reports taken when value exists", func(t *testing.T) {
		checker := newChecker(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"exists": true}`))
		})

		unique, err := checker.IsUnique(context.Background(), "email", "taken@b.com")
		require.NoError(t, err)
		assert.False(t, unique)
	})

	t.Run("errors on non-200 status", func(t *testing.T) {
		checker := newChecker(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := checker.IsUnique(context.Background(), "email", "x")
		assert.ErrorIs(t, err, uniqueness.ErrCheckFailed)
	})

	t.Run("errors on malformed body", func(t *testing.T) {
		checker := newChecker(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("not json"))
		})

		_, err := checker.IsUnique(context.Background(), "email", "x")
		assert.ErrorIs(t, err, uniqueness.ErrCheckFailed)
	})

	t.Run("errors when server is unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		checker, err := uniqueness.NewHTTPChecker(uniqueness.HTTPConfig{
			Endpoint: srv.URL,
			Timeout:  100 * time.Millisecond,
			Param:    "value",
			FieldKey: "field",
		})
		require.NoError(t, err)

		_, err = checker.IsUnique(context.Background(), "email", "x")
		assert.ErrorIs(t, err, uniqueness.ErrCheckFailed)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		checker := newChecker(t, func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(`{"exists": false}`))
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := checker.IsUnique(ctx, "email", "x")
		assert.ErrorIs(t, err, uniqueness.ErrCheckFailed)
	})
}

func TestNewRedisChecker(t *testing.T) {
	t.Run("rejects nil client", func(t *testing.T) {
		_, err := uniqueness.NewRedisChecker(nil, uniqueness.RedisConfig{})
		assert.ErrorIs(t, err, uniqueness.ErrNilRedisClient)
	})
}
