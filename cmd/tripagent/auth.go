package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tripagent/pkg/auth"
	"tripagent/pkg/ui"
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the Gemini API key",
	Long: `Manage the stored Gemini API key.

The key is resolved in priority order:
  - TRIPAGENT_API_KEY environment variable (also GEMINI_API_KEY, GOOGLE_API_KEY)
  - System keychain (stored via 'tripagent auth login')

Never share your API key or config files!`,
}

// authLoginCmd represents the auth login command
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the Gemini API key in the system keychain",
	Long: `Store the Gemini API key securely in the system keychain.

To get an API key:
1. Visit https://aistudio.google.com/apikey
2. Create or select a project
3. Generate an API key`,
	Example: `  # Interactive prompt (input is hidden)
  tripagent auth login`,
	Args: cobra.NoArgs,
	Run:  runAuthLogin,
}

// authLogoutCmd represents the auth logout command
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the API key from the system keychain",
	Args:  cobra.NoArgs,
	Run:   runAuthLogout,
}

// authStatusCmd represents the auth status command
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the API key is resolved from",
	Args:  cobra.NoArgs,
	Run:   runAuthStatus,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
}

func runAuthLogin(cmd *cobra.Command, args []string) {
	manager := auth.NewManager()

	fmt.Print("Gemini API key (input hidden): ")
	apiKey, err := readPassword()
	if err != nil {
		ui.PrintError("Failed to read API key", err.Error())
		os.Exit(1)
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		ui.PrintError("API key is required")
		os.Exit(1)
	}

	if err := manager.Save(apiKey); err != nil {
		ui.PrintError("Failed to store API key", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess("API key stored in the system keychain")
	fmt.Println("\nQuick start:")
	fmt.Println("  $ tripagent plan \"3 days in Paris next month, flying from New York\"")
	fmt.Println("  $ tripagent chat")
}

func runAuthLogout(cmd *cobra.Command, args []string) {
	manager := auth.NewManager()

	if err := manager.Forget(); err != nil {
		ui.PrintError("Failed to remove API key", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess("API key removed from the system keychain")
}

func runAuthStatus(cmd *cobra.Command, args []string) {
	manager := auth.NewManager()

	source := manager.Status()
	ui.PrintInfo("API key source", source)

	if source == "none" {
		ui.PrintDim("Set TRIPAGENT_API_KEY or run 'tripagent auth login'")
	}
}

// readPassword reads a line from stdin without echoing
func readPassword() (string, error) {
	if term.IsTerminal(int(syscall.Stdin)) {
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err == nil {
			return string(password), nil
		}
	}

	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
