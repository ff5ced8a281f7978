package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"tripagent/pkg/agent"
	"tripagent/pkg/auth"
	"tripagent/pkg/config"
	errs "tripagent/pkg/errors"
	"tripagent/pkg/logger"
	"tripagent/pkg/ratelimit"
	"tripagent/pkg/retry"
	"tripagent/pkg/ui"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	model      = flag.String("model", "", "Model name override")
	userID     = flag.String("user", "traveler_1", "User identifier")
	sessionID  = flag.String("session", "trip_1", "Session identifier")
	noSearch   = flag.Bool("no-search", false, "Disable web search grounding")
)

const defaultRequest = `I need to plan a trip to Paris for 3 days next month.
Please find:
1. Round-trip flights from New York
2. Mid-range hotels in central Paris
3. Top 3 must-see attractions with current ticket prices`

func main() {
	flag.Parse()

	ui.PrintBanner()

	request := defaultRequest
	if args := flag.Args(); len(args) > 0 {
		request = strings.TrimSpace(strings.Join(args, " "))
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}
	if *model != "" {
		cfg.API.Model = *model
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logger", err.Error())
		os.Exit(1)
	}
	logger.GetLogger().WithField("model", cfg.API.Model).Info("Trip Agent starting")

	ctx := context.Background()

	apiKey, err := auth.NewManager().Resolve()
	if err != nil {
		ui.PrintError("Missing API key", err.Error())
		os.Exit(1)
	}

	llm, err := agent.NewGeminiClient(ctx, apiKey)
	if err != nil {
		ui.PrintError("Failed to create model client", err.Error())
		os.Exit(1)
	}

	runner, err := agent.NewRunner(agent.RunnerConfig{
		LLM:          llm,
		DefaultModel: cfg.API.Model,
		Retry: &retry.Config{
			MaxAttempts: cfg.Retry.MaxAttempts,
			Backoff: &retry.ExponentialBackoff{
				InitialDelay: cfg.Retry.InitialDelay,
				Multiplier:   cfg.Retry.BackoffMultiplier,
				MaxDelay:     cfg.Retry.MaxDelay,
			},
			RetryableKinds: []errs.Kind{errs.KindRateLimit, errs.KindNetwork, errs.KindServer},
			Jitter:         cfg.Retry.Jitter,
		},
		Limiter: ratelimit.NewPerMinute(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.BurstSize),
	})
	if err != nil {
		ui.PrintError("Failed to create runner", err.Error())
		os.Exit(1)
	}

	sessions := agent.NewInMemorySessionService()
	sess, err := sessions.Create(cfg.API.AppName, *userID, *sessionID)
	if err != nil {
		ui.PrintError("Failed to create session", err.Error())
		os.Exit(1)
	}

	ui.PrintHeader("Travel Plan")

	coordinator := demoCoordinator(!*noSearch)
	if _, err := runner.RunCoordinator(ctx, sess, coordinator, request); err != nil {
		logger.GetLogger().WithError(err).Error("travel planning failed")
		ui.PrintError("Failed to complete travel planning", err.Error())
		ui.PrintDim("Please try again later.")
		os.Exit(1)
	}

	for _, event := range sess.Events() {
		if event.Author == "user" {
			continue
		}
		ui.PrintAgentResponse(event.Author, event.Content)
	}

	ui.PrintSuccess("Travel planning completed successfully!")
}

// demoCoordinator builds the flight, hotel and activity specialists with a
// synthesizing coordinator.
func demoCoordinator(useSearch bool) *agent.Coordinator {
	return &agent.Coordinator{
		Name: "travel_coordinator",
		Specialists: []*agent.Agent{
			{
				Name:        "flight_agent",
				Description: "Handles flight-related queries with real-time price data",
				Instruction: "You handle flight bookings and information. Use web search to find real current flight prices on major booking sites. Include airlines, times, duration and prices.",
				OutputKey:   "flights",
				UseSearch:   useSearch,
			},
			{
				Name:        "hotel_agent",
				Description: "Handles hotel-related queries with real-time price data",
				Instruction: "You handle hotel bookings and recommendations. Use web search to find real current hotel prices, ratings and amenities at different price points.",
				OutputKey:   "hotels",
				UseSearch:   useSearch,
			},
			{
				Name:        "activity_agent",
				Description: "Suggests activities with real-time information",
				Instruction: "You suggest tourist activities and attractions. Use web search for opening hours, ticket prices and booking requirements.",
				OutputKey:   "activities",
				UseSearch:   useSearch,
			},
		},
		Synthesizer: &agent.Agent{
			Name:        "travel_coordinator",
			Description: "Coordinates travel planning across multiple agents",
			Instruction: "You are a travel coordinator. Synthesize the specialist findings into a cohesive travel plan with a summary of total estimated costs.",
		},
	}
}
