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
	reviewUserID    string
	reviewSessionID string
	reviewLanguage  string
)

// reviewCmd represents the review command
var reviewCmd = &cobra.Command{
	Use:   "review <specification>",
	Short: "Run a write-review-refactor code pipeline",
	Long: `Run a sequential three-agent code pipeline.

A writer agent produces code from your specification, a reviewer agent
critiques it for bugs, efficiency and style, and a refactorer agent
applies the review comments. Each stage feeds the next; the final output
is the refactored code.`,
	Example: `  # Generate reviewed code
  tripagent review "a function to calculate fibonacci numbers"

  # Target a different language
  tripagent review "a stack with push and pop" --language go`,
	Args: cobra.MinimumNArgs(1),
	Run:  runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)

	reviewCmd.Flags().StringVar(&reviewUserID, "user", "dev_001", "user identifier for the session")
	reviewCmd.Flags().StringVar(&reviewSessionID, "session", "pipeline_1", "session identifier")
	reviewCmd.Flags().StringVar(&reviewLanguage, "language", "python", "target programming language")
}

// codePipeline builds the writer, reviewer and refactorer stages.
func codePipeline(language string) *agent.Pipeline {
	return &agent.Pipeline{
		Name: "code_pipeline",
		Agents: []*agent.Agent{
			{
				Name:        "code_writer",
				Description: "Writes initial code",
				Instruction: "Write clean " + language + " code based on the specification.\nOutput only the code, no explanations.",
				OutputKey:   "generated_code",
			},
			{
				Name:        "code_reviewer",
				Description: "Reviews code quality",
				Instruction: "Review the code for bugs, efficiency, and style.\nProvide specific improvement suggestions.",
				OutputKey:   "review_comments",
			},
			{
				Name:        "code_refactorer",
				Description: "Refactors code",
				Instruction: "Refactor the code based on review comments.\nOutput the improved code.",
				OutputKey:   "refactored_code",
			},
		},
	}
}

func runReview(cmd *cobra.Command, args []string) {
	spec := strings.TrimSpace(strings.Join(args, " "))

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		ui.PrintError("Failed to start", err.Error())
		os.Exit(1)
	}

	sess, err := a.newSession(reviewUserID, reviewSessionID)
	if err != nil {
		ui.PrintError("Failed to create session", err.Error())
		os.Exit(1)
	}

	log := logger.GetLogger().WithField("session", reviewSessionID)
	log.Info("running code pipeline")

	ui.PrintHeader("Code Pipeline")

	if _, err := a.runner.RunPipeline(ctx, sess, codePipeline(reviewLanguage), spec); err != nil {
		log.WithError(err).Error("pipeline failed")
		ui.PrintError("Pipeline failed", err.Error())
		os.Exit(1)
	}

	for _, event := range sess.Events() {
		if event.Author == "user" {
			continue
		}
		ui.PrintAgentResponse(event.Author, event.Content)
	}

	ui.PrintSuccess("Pipeline completed successfully!")
}
