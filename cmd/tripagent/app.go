package main

import (
	"context"
	"fmt"

	"tripagent/pkg/agent"
	"tripagent/pkg/auth"
	"tripagent/pkg/config"
	errs "tripagent/pkg/errors"
	"tripagent/pkg/logger"
	"tripagent/pkg/ratelimit"
	"tripagent/pkg/retry"
)

// app bundles everything a command needs to run agents.
type app struct {
	cfg    *config.Config
	runner *agent.Runner
}

// newApp loads configuration, initializes logging, resolves the API key
// and builds a runner wired with retry and rate limiting.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if logLevel != "info" {
		cfg.Logging.Level = logLevel
	}
	if err := logger.Initialize(&cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	apiKey, err := auth.NewManager().Resolve()
	if err != nil {
		return nil, err
	}

	llm, err := agent.NewGeminiClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	runner, err := agent.NewRunner(agent.RunnerConfig{
		LLM:          llm,
		DefaultModel: cfg.API.Model,
		Retry:        retryConfig(cfg),
		Limiter:      ratelimit.NewPerMinute(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.BurstSize),
	})
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, runner: runner}, nil
}

// retryConfig maps the loaded retry settings onto a retry policy for
// model calls. Only transient provider failures are retried.
func retryConfig(cfg *config.Config) *retry.Config {
	return &retry.Config{
		MaxAttempts: cfg.Retry.MaxAttempts,
		Backoff: &retry.ExponentialBackoff{
			InitialDelay: cfg.Retry.InitialDelay,
			Multiplier:   cfg.Retry.BackoffMultiplier,
			MaxDelay:     cfg.Retry.MaxDelay,
		},
		RetryableKinds: []errs.Kind{
			errs.KindRateLimit,
			errs.KindNetwork,
			errs.KindServer,
		},
		Jitter: cfg.Retry.Jitter,
	}
}

// newSession creates a fresh session for a command invocation.
func (a *app) newSession(userID, sessionID string) (*agent.Session, error) {
	return agent.NewInMemorySessionService().Create(a.cfg.API.AppName, userID, sessionID)
}
