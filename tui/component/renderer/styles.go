package renderer

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles configures the answer box.
type Styles struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Question  lipgloss.Style
	Professor lipgloss.Style
	Hint      lipgloss.Style
	Error     lipgloss.Style
	Info      lipgloss.Style
}

// DefaultStyles returns the default palette.
func DefaultStyles() *Styles {
	return &Styles{
		Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("#bb9af7")).Bold(true).Padding(1, 0),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("#c0caf5")),
		Question:  lipgloss.NewStyle().Foreground(lipgloss.Color("#7dcfff")).Bold(true),
		Professor: lipgloss.NewStyle().Foreground(lipgloss.Color("#bb9af7")).Bold(true),
		Hint:      lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89")).Italic(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")).Bold(true),
		Info: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Padding(0, 1),
	}
}
