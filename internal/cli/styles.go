// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#7C9EF5")
	// SuccessColor indicates high-confidence rows and successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates medium-confidence rows.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates low-confidence rows and failures.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages and high-confidence values.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warnings and medium-confidence values.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats errors and low-confidence values.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// HeaderStyle is used for table headers.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#333"))
)

// Confidence thresholds driving row coloring: at or above ReviewThreshold a
// row needs no attention; below FixThreshold it should be quick-fixed.
const (
	ReviewThreshold = 0.8
	FixThreshold    = 0.5
)

// ConfidenceStyle picks the style for a confidence value.
func ConfidenceStyle(confidence float64) lipgloss.Style {
	switch {
	case confidence >= ReviewThreshold:
		return SuccessStyle
	case confidence >= FixThreshold:
		return WarningStyle
	default:
		return ErrorStyle
	}
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render("✓ " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render("✗ " + message)
}
