// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#4ECDC4") // Teal
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#95E1D3") // Light teal
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
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

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// AssistantStyle formats assistant chat turns.
	AssistantStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// UserStyle formats echoed user chat turns.
	UserStyle = lipgloss.NewStyle().
			Bold(true)
)

// PriorityStyle returns the style matching an insight or goal priority.
func PriorityStyle(priority string) lipgloss.Style {
	switch priority {
	case "high":
		return ErrorStyle
	case "medium":
		return WarningStyle
	default:
		return SubtleStyle
	}
}

// FormatAmount renders a dollar amount with two decimals.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
