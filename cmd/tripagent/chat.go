package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tripagent/pkg/ui"
)

var (
	chatUserID    string
	chatSessionID string
	chatNoSearch  bool
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive travel planning session",
	Long: `Start an interactive travel planning session.

Each message is routed through the travel coordinator and its
specialists. Conversation history accumulates in the session, so
follow-up questions can build on earlier answers.

Type 'exit' or 'quit' to end the session.`,
	Args: cobra.NoArgs,
	Run:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVar(&chatUserID, "user", "traveler_1", "user identifier for the session")
	chatCmd.Flags().StringVar(&chatSessionID, "session", "trip_1", "session identifier")
	chatCmd.Flags().BoolVar(&chatNoSearch, "no-search", false, "disable web search grounding")
}

func runChat(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		ui.PrintError("Failed to start", err.Error())
		os.Exit(1)
	}

	sess, err := a.newSession(chatUserID, chatSessionID)
	if err != nil {
		ui.PrintError("Failed to create session", err.Error())
		os.Exit(1)
	}

	coordinator := travelCoordinator(!chatNoSearch)

	ui.PrintHeader("Interactive Travel Planning Session")
	ui.PrintDim("Type 'exit' or 'quit' to end the session")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "exit", "quit", "bye":
			ui.PrintSuccess("Thanks for using Trip Agent! Have a great trip!")
			return
		}

		answer, err := a.runner.RunCoordinator(ctx, sess, coordinator, input)
		if err != nil {
			ui.PrintError("Error", err.Error())
			fmt.Println()
			continue
		}

		fmt.Println()
		ui.PrintAgentResponse("agent", answer)
		fmt.Println()
	}
}
