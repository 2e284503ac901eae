// Package tui implements the interactive withdrawal request picker.
package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the picker.
type Theme struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Selected   lipgloss.Style
	Help       lipgloss.Style
	Amount     lipgloss.Style
	Chosen     lipgloss.Style
	Border     lipgloss.Color
	Muted      lipgloss.Color
	Primary    lipgloss.Color
	Foreground lipgloss.Color
}

// DefaultTheme is the felt-green picker theme.
var DefaultTheme = Theme{
	Primary:    lipgloss.Color("#2ECC71"),
	Foreground: lipgloss.Color("#fafafa"),
	Border:     lipgloss.Color("#404040"),
	Muted:      lipgloss.Color("#737373"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#2ECC71")).
		MarginBottom(1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#2ECC71")).
		Foreground(lipgloss.Color("#1a1a1a")).
		Bold(true),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),
	Amount: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFE66D")),
	Chosen: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ECDC4")).
		Bold(true),
}
