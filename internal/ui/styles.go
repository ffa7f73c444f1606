package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/game/card"
)

const (
	attackerIcon = "⚔"
	defenderIcon = "🛡"
)

var (
	docStyle   = lipgloss.NewStyle().Margin(1, 2)
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	trumpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	redCardStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	blackCardStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	selectedStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(lipgloss.Color("228"))
)

// renderCard paints one card, red suits on white like a real deck.
func renderCard(c card.Card, selected bool) string {
	style := blackCardStyle
	if c.Suit == card.Hearts || c.Suit == card.Diamonds {
		style = redCardStyle
	}
	face := style.Render(" " + c.String() + " ")
	if selected {
		return selectedStyle.Render(face)
	}
	return face
}
