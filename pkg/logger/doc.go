// Package logger provides structured logging for the travel assistant.
//
// It wraps zerolog behind a small Logger interface so that library packages
// (most importantly pkg/retry, which takes a Logger as its injected
// diagnostic sink) never depend on a concrete logging backend.
//
// Basic usage:
//
//	cfg := &config.LoggingConfig{Level: "info"}
//	if err := logger.Initialize(cfg); err != nil {
//		// handle
//	}
//
//	log := logger.GetLogger()
//	log.WithField("agent", "FlightAgent").Info("running agent")
//	log.WithError(err).Error("model call failed")
//
// Tests use NewTestLogger, which records every message for assertions
// instead of writing anywhere.
package logger
