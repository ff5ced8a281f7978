package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tripagent/pkg/agent"
	"tripagent/pkg/logger"
	"tripagent/pkg/ui"
)

var (
	planUserID    string
	planSessionID string
	planNoSearch  bool
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan <request>",
	Short: "Plan a trip with flight, hotel and activity specialists",
	Long: `Plan a trip by fanning the request out to specialist agents.

Each specialist grounds its answer with web search: the flight agent
searches current prices on booking sites, the hotel agent compares
options at different price points, and the activity agent checks opening
hours and ticket prices. A coordinator synthesizes their findings into a
single plan with estimated costs.`,
	Example: `  # Plan a trip
  tripagent plan "3 days in Paris next month, flying from New York"

  # Plan without web search grounding
  tripagent plan "a weekend in Tallinn" --no-search`,
	Args: cobra.MinimumNArgs(1),
	Run:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVar(&planUserID, "user", "traveler_1", "user identifier for the session")
	planCmd.Flags().StringVar(&planSessionID, "session", "trip_1", "session identifier")
	planCmd.Flags().BoolVar(&planNoSearch, "no-search", false, "disable web search grounding")
}

// travelCoordinator builds the planner agents. Specialists use web search
// so answers carry current prices rather than placeholder data.
func travelCoordinator(useSearch bool) *agent.Coordinator {
	return &agent.Coordinator{
		Name: "travel_coordinator",
		Specialists: []*agent.Agent{
			{
				Name:        "flight_agent",
				Description: "Handles flight-related queries with real-time price data",
				Instruction: `You handle flight bookings and information.

When searching for flights:
1. Use web search to find REAL current flight prices and availability
2. Search for flights on major booking sites (Google Flights, Kayak, Skyscanner)
3. Include airline names, departure/arrival times, duration, and current prices
4. Compare multiple options when available
5. Mention if prices are approximate and suggest booking sites

Always provide actual, current data from your searches, not placeholder information.`,
				OutputKey: "flights",
				UseSearch: useSearch,
			},
			{
				Name:        "hotel_agent",
				Description: "Handles hotel-related queries with real-time price data",
				Instruction: `You handle hotel bookings and recommendations.

When searching for hotels:
1. Use web search to find REAL current hotel prices and availability
2. Search on Booking.com, Hotels.com, Expedia, or hotel websites
3. Include hotel names, ratings, amenities, location details, and current prices per night
4. Provide multiple options at different price points
5. Include guest ratings and reviews when available

Always provide actual, current data from your searches, not placeholder information.`,
				OutputKey: "hotels",
				UseSearch: useSearch,
			},
			{
				Name:        "activity_agent",
				Description: "Suggests activities with real-time information",
				Instruction: `You suggest tourist activities and attractions.

When suggesting activities:
1. Use web search to find current information about attractions
2. Include opening hours, ticket prices, and booking requirements
3. Recommend based on season, weather, and current events
4. Provide links to official websites or booking platforms
5. Suggest both popular and hidden gem locations

Always provide actual, current data from your searches.`,
				OutputKey: "activities",
				UseSearch: useSearch,
			},
		},
		Synthesizer: &agent.Agent{
			Name:        "travel_coordinator",
			Description: "Coordinates travel planning across multiple agents",
			Instruction: `You are a travel coordinator. You receive a user's travel request
together with findings from flight, hotel and activity specialists.

1. Synthesize the specialist findings into a cohesive travel plan
2. Organize the plan day by day where the request allows
3. Provide a summary with total estimated costs
4. Flag anything the specialists could not answer`,
		},
	}
}

func runPlan(cmd *cobra.Command, args []string) {
	request := strings.TrimSpace(strings.Join(args, " "))

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		ui.PrintError("Failed to start", err.Error())
		os.Exit(1)
	}

	sess, err := a.newSession(planUserID, planSessionID)
	if err != nil {
		ui.PrintError("Failed to create session", err.Error())
		os.Exit(1)
	}

	log := logger.GetLogger().WithField("session", planSessionID)
	log.Info("planning trip")

	ui.PrintHeader("Travel Plan")

	if _, err := a.runner.RunCoordinator(ctx, sess, travelCoordinator(!planNoSearch), request); err != nil {
		log.WithError(err).Error("planning failed")
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
