// Package logger provides a small factory over log/slog with consistent
// attribute helpers for the formstate packages.
//
// New applies functional options over production-safe defaults (JSON at
// INFO); NewFromEnv reads LOG_LEVEL and LOG_FORMAT through the config
// package so deployments tune logging without code changes.
//
//	log, err := logger.NewFromEnv(logger.WithAttr(logger.Component("formstate")))
//	store := formstate.New(formstate.WithLogger(log))
package logger
