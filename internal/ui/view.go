package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/game/session"
)

func (m Model) View() string {
	var body string
	switch m.scr {
	case screenLobby:
		body = m.lobbyView()
	case screenConnecting:
		body = m.connectingView()
	case screenTable:
		body = m.tableView()
	}

	if notes := m.notesView(); notes != "" {
		body += "\n" + notes
	}
	return docStyle.Render(body)
}

func (m Model) lobbyView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("🃏 Durak") + "\n\n")

	if m.lobbyBroken {
		sb.WriteString(errorStyle.Render("Lobby stream is down") + "\n\n")
	}

	if len(m.games) == 0 {
		sb.WriteString(hintStyle.Render("No open games yet") + "\n")
	}
	for i, g := range m.games {
		cursor := "  "
		if i == m.gameIdx {
			cursor = "> "
		}
		lock := ""
		if g.Password {
			lock = " 🔒"
		}
		fmt.Fprintf(&sb, "%s%s  %d/%d%s\n", cursor, g.GameID, g.PlayersInside, g.PlayersLimit, lock)
	}

	sb.WriteString("\n" + m.gameInput.View() + "\n\n")
	sb.WriteString(hintStyle.Render("↑/↓ select · enter join · ctrl+n new game · esc quit"))
	return sb.String()
}

func (m Model) connectingView() string {
	return fmt.Sprintf("%s Connecting as %s...\n\n%s",
		m.spin.View(), m.identity.Name, hintStyle.Render("esc cancel"))
}

func (m Model) tableView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("🃏 Durak") + "  " + m.headerLine() + "\n\n")
	sb.WriteString(m.opponentsView())
	sb.WriteString(boxStyle.Render(m.pairsView()) + "\n")
	fmt.Fprintf(&sb, "%s deck %d · discard %d\n\n",
		hintStyle.Render("pile:"), m.state.DeckSize, m.state.DiscardCount())
	sb.WriteString(m.handView() + "\n")
	sb.WriteString(hintStyle.Render(m.keysHint()))

	if m.state.Phase == session.PhaseGameOver {
		banner := "Game over"
		if winner, ok := m.state.PlayerByID(m.state.WinnerID); ok {
			banner = "Game over. " + winner.Name + " wins!"
		}
		sb.WriteString("\n\n" + titleStyle.Render(banner))
	}
	return sb.String()
}

func (m Model) headerLine() string {
	header := m.state.Phase.String()
	if m.state.HasTrump {
		header += "  trump " + trumpStyle.Render(m.state.TrumpSuit.Symbol())
	}
	if m.offline {
		header += "  " + hintStyle.Render("[offline]")
	}
	return header
}

func (m Model) opponentsView() string {
	var sb strings.Builder
	for _, p := range m.state.Players {
		if p.ID == m.state.SelfID {
			continue
		}
		role := " "
		if p.IsAttacker {
			role = attackerIcon
		} else if p.IsDefender {
			role = defenderIcon
		}
		fmt.Fprintf(&sb, "%s %-12s %2d cards  %s\n", role, p.Name, p.HandSize, statusLabel(p.Status))
	}
	if sb.Len() == 0 {
		sb.WriteString(hintStyle.Render("waiting for players...") + "\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) pairsView() string {
	if len(m.state.TablePairs) == 0 {
		return hintStyle.Render("table is empty")
	}
	parts := make([]string, 0, len(m.state.TablePairs))
	for i, pair := range m.state.TablePairs {
		cell := renderCard(pair.Base, m.picking != nil && i == m.pairIdx)
		if pair.Cover != nil {
			cell += "/" + renderCard(*pair.Cover, false)
		}
		parts = append(parts, cell)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(parts, "  "))
}

func (m Model) handView() string {
	if len(m.state.SelfHand) == 0 {
		return hintStyle.Render("hand is empty")
	}
	parts := make([]string, 0, len(m.state.SelfHand))
	for i, c := range m.state.SelfHand {
		parts = append(parts, renderCard(c, m.picking == nil && i == m.handIdx))
	}
	return strings.Join(parts, " ")
}

func (m Model) keysHint() string {
	if m.picking != nil {
		return "←/→ pick a card to cover · enter confirm · esc cancel"
	}
	hints := []string{"←/→ select"}
	if m.state.Allowed.Has(session.ActionAttack) || m.state.Allowed.Has(session.ActionDefend) {
		hints = append(hints, "enter play")
	}
	if m.state.Allowed.Has(session.ActionPass) {
		hints = append(hints, "p pass")
	}
	if m.state.Allowed.Has(session.ActionReady) || m.state.Allowed.Has(session.ActionUnready) {
		hints = append(hints, "r ready")
	}
	hints = append(hints, "esc leave")
	return strings.Join(hints, " · ")
}

func (m Model) notesView() string {
	active := m.notes.Active()
	if len(active) == 0 {
		return ""
	}
	lines := make([]string, 0, len(active))
	for _, n := range active {
		lines = append(lines, errorStyle.Render("• "+n.Message))
	}
	return strings.Join(lines, "\n")
}

func statusLabel(s session.PlayerStatus) string {
	switch s {
	case session.StatusReady:
		return "ready"
	case session.StatusDisconnected:
		return hintStyle.Render("offline")
	default:
		return hintStyle.Render("not ready")
	}
}
