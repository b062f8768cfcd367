// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(InfoColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats errors or failure messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().Bold(true)
)

// categoryColors maps rule color tags to terminal colors.
var categoryColors = map[string]lipgloss.Color{
	"red":     lipgloss.Color("#FF6B6B"),
	"orange":  lipgloss.Color("#FFA94D"),
	"yellow":  lipgloss.Color("#FFE66D"),
	"green":   lipgloss.Color("#69DB7C"),
	"teal":    lipgloss.Color("#4ECDC4"),
	"blue":    lipgloss.Color("#74C0FC"),
	"purple":  lipgloss.Color("#B197FC"),
	"magenta": lipgloss.Color("#F783AC"),
	"gray":    lipgloss.Color("#ADB5BD"),
}

// CategoryStyle returns the lipgloss style for a rule color tag.
func CategoryStyle(tag string) lipgloss.Style {
	if c, ok := categoryColors[tag]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return SubtleStyle
}
