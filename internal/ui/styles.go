package ui

import "github.com/charmbracelet/lipgloss"

// Shared styles for command output. Colors match across all components.
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	selectedItem = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true)
	normalItem   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// Success renders s in the success color.
func Success(s string) string { return successStyle.Render(s) }

// Error renders s in the error color.
func Error(s string) string { return errorStyle.Render(s) }

// Muted renders s in the muted color.
func Muted(s string) string { return mutedStyle.Render(s) }

// Accent renders s in the accent color.
func Accent(s string) string { return accentStyle.Render(s) }
