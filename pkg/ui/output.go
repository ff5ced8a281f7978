package ui

import (
	"fmt"
	"strings"
	"sync"
)

// Banner shown when the application starts.
const Banner = `tripagent :: travel planning with real-time data`

var (
	mu    sync.Mutex
	quiet bool
)

// SetQuietMode suppresses everything except errors.
func SetQuietMode(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = enabled
}

func isQuiet() bool {
	mu.Lock()
	defer mu.Unlock()
	return quiet
}

// PrintBanner prints the application banner.
func PrintBanner() {
	if isQuiet() {
		return
	}
	fmt.Println(bannerStyle.Render(Banner))
}

// PrintHeader prints a section header.
func PrintHeader(title string) {
	if isQuiet() {
		return
	}
	fmt.Println()
	fmt.Println(headerStyle.Render(title))
}

// PrintError prints an error message with optional detail.
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Println(errorStyle.Render(msg + ": " + fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Println(errorStyle.Render(msg))
	}
}

// PrintSuccess prints a success message.
func PrintSuccess(msg string) {
	if isQuiet() {
		return
	}
	fmt.Println(successStyle.Render(msg))
}

// PrintWarning prints a warning message.
func PrintWarning(msg string) {
	if isQuiet() {
		return
	}
	fmt.Println(warningStyle.Render(msg))
}

// PrintInfo prints a labeled value.
func PrintInfo(label, value string) {
	if isQuiet() {
		return
	}
	fmt.Printf("%s: %s\n", labelStyle.Render(label), valueStyle.Render(value))
}

// PrintDim prints de-emphasized text.
func PrintDim(msg string) {
	if isQuiet() {
		return
	}
	fmt.Println(dimStyle.Render(msg))
}

// PrintAgentResponse prints one agent's contribution with an author line
// and a separator, skipping empty responses.
func PrintAgentResponse(author, content string) {
	if strings.TrimSpace(content) == "" {
		return
	}
	fmt.Printf("%s\n%s\n", agentNameStyle.Render("["+author+"]"), content)
	fmt.Println(dimStyle.Render(strings.Repeat("-", 60)))
}

// RenderPanel wraps content in a rounded border.
func RenderPanel(content string) string {
	return panelStyle.Render(content)
}
