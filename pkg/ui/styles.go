package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Color palette
	skyBlue     = lipgloss.Color("#00BFFF")
	sunYellow   = lipgloss.Color("#FFD700")
	leafGreen   = lipgloss.Color("#39FF14")
	coralRed    = lipgloss.Color("#FF4040")
	orange      = lipgloss.Color("#FF8C00")
	lavender    = lipgloss.Color("#BF8FFF")
	dimWhite    = lipgloss.Color("#B0B0B0")
	brightWhite = lipgloss.Color("#FFFFFF")

	bannerStyle = lipgloss.NewStyle().
			Foreground(skyBlue).
			Bold(true).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(brightWhite).
			Background(skyBlue).
			Bold(true).
			Padding(0, 1)

	agentNameStyle = lipgloss.NewStyle().
			Foreground(lavender).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(skyBlue).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(sunYellow)

	successStyle = lipgloss.NewStyle().
			Foreground(leafGreen).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(coralRed).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(orange).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimWhite).
			Faint(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(skyBlue).
			Padding(0, 1)
)
