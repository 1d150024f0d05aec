package ui

import "github.com/charmbracelet/lipgloss"

// Color palette - Earthy tones (lighter for dark backgrounds)
var (
	primaryColor   = lipgloss.Color("#E8C4A0") // Light warm beige
	accentColor    = lipgloss.Color("#A8C9A4") // Soft sage green
	messageColor   = lipgloss.Color("#8FB8DE") // Soft blue
	inputColor     = lipgloss.Color("#F0DEB4") // Cream
	highlightColor = lipgloss.Color("#F5E6A8") // Light yellow
	darkColor      = lipgloss.Color("#2B2B2B")
)

// Styles
var (
	chatBorderStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	inputBorderStyle = lipgloss.NewStyle().
				Foreground(primaryColor)

	boxTitleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(messageColor)

	selectedMessageStyle = lipgloss.NewStyle().
				Foreground(darkColor).
				Background(highlightColor).
				Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(inputColor)

	cursorStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)
)
