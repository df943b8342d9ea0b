package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/liarsbar/internal/deck"
)

var (
	amber = lipgloss.Color("#E0A526")
	cream = lipgloss.Color("#F4ECD8")
	moss  = lipgloss.Color("#8FBF7F")
	blood = lipgloss.Color("#D9534F")
	smoke = lipgloss.Color("#6C6C6C")
)

// Styles shared by the log, sidebar and action panes
var (
	HeaderStyle     = lipgloss.NewStyle().Foreground(cream).Background(lipgloss.Color("#5B3A29")).Bold(true)
	HandInfoStyle   = lipgloss.NewStyle().Foreground(moss).Bold(true)
	ActionsStyle    = lipgloss.NewStyle().Foreground(amber).Bold(true)
	TargetCardStyle = lipgloss.NewStyle().Foreground(amber).Bold(true).Underline(true)
	CardStyle       = lipgloss.NewStyle().Foreground(cream).Bold(true)
	SuccessStyle    = lipgloss.NewStyle().Foreground(moss).Bold(true)
	ErrorStyle      = lipgloss.NewStyle().Foreground(blood).Bold(true)
	WarningStyle    = lipgloss.NewStyle().Foreground(amber)
	InfoStyle       = lipgloss.NewStyle().Foreground(smoke)
)

// formatCards renders a hand with target cards highlighted
func formatCards(cards deck.Cards, target deck.Card) string {
	if len(cards) == 0 {
		return "[]"
	}

	formatted := make([]string, len(cards))
	for i, card := range cards {
		if card == target {
			formatted[i] = TargetCardStyle.Render(card.String())
		} else {
			formatted[i] = CardStyle.Render(card.String())
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}
