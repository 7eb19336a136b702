package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/agenda/internal/models"
)

// Color constants for the agenda TUI theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2"
	ColorSecondaryText = "#B1B8C7"
	ColorDisabledText  = "#6D7383"
	ColorHelpText      = "240"

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED"
	ColorAccentBright = "#A78BFA"

	// State Colors
	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
	ColorWarning = "#F59E0B"
	ColorInfo    = "#38BDF8"
)

// statusColor is the header color of a board column
func statusColor(s models.Status) lipgloss.Color {
	switch s {
	case models.StatusInProgress:
		return lipgloss.Color(ColorInfo)
	case models.StatusCompleted:
		return lipgloss.Color(ColorSuccess)
	case models.StatusDeleted:
		return lipgloss.Color(ColorDisabledText)
	default:
		return lipgloss.Color(ColorWarning)
	}
}

// priorityColor highlights urgent cards
func priorityColor(p models.Priority) lipgloss.Color {
	switch p {
	case models.PriorityP1:
		return lipgloss.Color(ColorError)
	case models.PriorityP2:
		return lipgloss.Color(ColorWarning)
	case models.PriorityP3:
		return lipgloss.Color(ColorInfo)
	default:
		return lipgloss.Color(ColorSecondaryText)
	}
}

var (
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
)
