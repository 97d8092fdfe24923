package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formstate/pkg/config"
)

type checkerConfig struct {
	Endpoint string        `env:"TEST_CHECKER_ENDPOINT" envDefault:"http://localhost/check"`
	Timeout  time.Duration `env:"TEST_CHECKER_TIMEOUT" envDefault:"5s"`
	Attempts int           `env:"TEST_CHECKER_ATTEMPTS" envDefault:"3"`
}

type requiredConfig struct {
	Value string `env:"TEST_REQUIRED_VALUE,required"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults when env is unset", func(t *testing.T) {
		config.ResetCache()

		var cfg checkerConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "http://localhost/check", cfg.Endpoint)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, 3, cfg.Attempts)
	})

	t.Run("reads values from the environment", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("TEST_CHECKER_ENDPOINT", "http://example.com/exists")
		t.Setenv("TEST_CHECKER_TIMEOUT", "250ms")

		var cfg checkerConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "http://example.com/exists", cfg.Endpoint)
		assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	})

	t.Run("caches the first successful load per type", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("TEST_CHECKER_ATTEMPTS", "7")

		var first checkerConfig
		require.NoError(t, config.Load(&first))
		assert.Equal(t, 7, first.Attempts)

		// Later environment changes are not observed for the same type.
		t.Setenv("TEST_CHECKER_ATTEMPTS", "99")
		var second checkerConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, 7, second.Attempts)
	})

	t.Run("missing required variable is an error", func(t *testing.T) {
		config.ResetCache()
		os.Unsetenv("TEST_REQUIRED_VALUE")

		var cfg requiredConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil pointer is rejected", func(t *testing.T) {
		err := config.Load[checkerConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})
}

func TestLoadEnv(t *testing.T) {
	t.Run("loads variables from an explicit file", func(t *testing.T) {
		config.ResetCache()
		os.Unsetenv("TEST_CHECKER_ENDPOINT")

		dir := t.TempDir()
		envFile := filepath.Join(dir, ".env.test")
		require.NoError(t, os.WriteFile(envFile, []byte("TEST_CHECKER_ENDPOINT=http://from-file/check\n"), 0o600))

		require.NoError(t, config.LoadEnv(envFile))
		t.Cleanup(func() { os.Unsetenv("TEST_CHECKER_ENDPOINT") })

		var cfg checkerConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "http://from-file/check", cfg.Endpoint)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		err := config.LoadEnv("does-not-exist.env")
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	})

	t.Run("missing default file is not an error", func(t *testing.T) {
		assert.NoError(t, config.LoadEnv())
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics when loading fails", func(t *testing.T) {
		config.ResetCache()
		os.Unsetenv("TEST_REQUIRED_VALUE")

		assert.Panics(t, func() {
			var cfg requiredConfig
			config.MustLoad(&cfg)
		})
	})

	t.Run("returns normally on success", func(t *testing.T) {
		config.ResetCache()

		assert.NotPanics(t, func() {
			var cfg checkerConfig
			config.MustLoad(&cfg)
		})
	})
}
