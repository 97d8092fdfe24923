// Package config provides a type-safe, cached way to load configuration
// from environment variables, wrapping github.com/joho/godotenv and
// github.com/caarlos0/env/v11.
//
// Each configuration struct type is parsed at most once per process and the
// parsed copy is cached, so independent packages loading the same config
// type always observe identical values. ResetCache clears the cache between
// tests.
//
// # Usage
//
//	type LoggerConfig struct {
//		Level  string `env:"LOG_LEVEL" envDefault:"info"`
//		Format string `env:"LOG_FORMAT" envDefault:"json"`
//	}
//
//	var cfg LoggerConfig
//	config.MustLoad(&cfg)
//
// Load an explicit .env file first when the default lookup is not enough:
//
//	_ = config.LoadEnv(".env.local")
package config
