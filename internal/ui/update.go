package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/game/session"
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/logger"
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/network/client"
)

var logz = logger.For("ui")

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case lobbyGamesMsg:
		m.games = msg.Games
		if m.gameIdx >= len(m.games) {
			m.gameIdx = 0
		}
		return m, waitLobby(m.stream)

	case lobbyErrorMsg:
		m.notes.Push("lobby", "Lobby stream: "+msg.Err.Error())
		return m, tea.Batch(expireNote("lobby"), waitLobby(m.stream))

	case lobbyClosedMsg:
		m.lobbyBroken = true
		return m, nil

	case joinedMsg:
		return m.dialGame(msg)

	case connectedMsg:
		m.scr = screenTable
		m.notes.Clear("connect")
		return m, waitServer(m.conn)

	case connectionErrorMsg:
		m.notes.Push("connect", "Connection failed: "+msg.Err.Error())
		m.dropConn()
		m.scr = screenLobby
		return m, expireNote("connect")

	case connectionLostMsg:
		m.notes.Push("connect", "Connection closed by server")
		m.dropConn()
		m.scr = screenLobby
		return m, expireNote("connect")

	case serverMsg:
		if m.conn == nil {
			// The session was torn down while this frame sat in
			// flight; there is nothing left to apply it to.
			return m, nil
		}
		cmd := m.applyFrame(msg)
		return m, tea.Batch(cmd, waitServer(m.conn))

	case clearNoteMsg:
		m.notes.Clear(msg.Code)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// dialGame turns an HTTP-secured seat into a live socket session.
func (m Model) dialGame(msg joinedMsg) (tea.Model, tea.Cmd) {
	m.playerID = msg.PlayerID
	conn, err := client.NewClient(m.cfg.Server.WebsocketURL, msg.GameID, msg.PlayerID, m.identity.Token)
	if err != nil {
		m.notes.Push("connect", "Bad server address: "+err.Error())
		m.scr = screenLobby
		return m, expireNote("connect")
	}
	m.conn = conn
	m.engine = session.NewEngine(conn)
	m.state = session.NewState(msg.PlayerID)
	return m, connectCmd(conn)
}

// applyFrame decodes one frame and folds it into the session state.
// Undecodable payloads are logged and dropped; the session survives.
// The returned command, if any, expires a pushed notification.
func (m *Model) applyFrame(msg serverMsg) tea.Cmd {
	ev, err := session.DecodeEvent(msg.Msg)
	if err != nil {
		logz.Errorf("dropping frame %q: %v", msg.Msg.Type, err)
		return nil
	}

	var cmd tea.Cmd
	switch ev := ev.(type) {
	case session.ServerError:
		m.notes.Push(ev.Err.Code, ev.Err.Message)
		cmd = expireNote(ev.Err.Code)
	case session.GameOver:
		m.state = session.Reduce(m.state, ev)
		if winner, ok := m.state.PlayerByID(ev.WinnerID); ok {
			m.notes.Push("game_over", winner.Name+" wins")
		}
	case session.Unrecognized:
		logz.Infof("ignoring frame of unknown type %q", ev.Type)
	default:
		m.state = session.Reduce(m.state, ev)
	}
	m.clampSelection()
	return cmd
}

// clampSelection re-anchors the hand cursor and any in-progress defend
// pick after the state changed underneath them.
func (m *Model) clampSelection() {
	if m.handIdx >= len(m.state.SelfHand) {
		m.handIdx = len(m.state.SelfHand) - 1
	}
	if m.handIdx < 0 {
		m.handIdx = 0
	}
	if m.picking != nil {
		open := m.openPairs()
		if len(open) == 0 {
			m.picking = nil
			return
		}
		for _, idx := range open {
			if idx == m.pairIdx {
				return
			}
		}
		// The picked pair is gone or covered; snap to the first open one.
		m.pairIdx = open[0]
	}
}

// openPairs lists indexes of table pairs still awaiting a covering card.
func (m *Model) openPairs() []int {
	var idxs []int
	for i, pair := range m.state.TablePairs {
		if !pair.Covered() {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, m.quit()
	}
	switch m.scr {
	case screenLobby:
		return m.handleLobbyKey(msg)
	case screenConnecting:
		if msg.Type == tea.KeyEsc {
			m.dropConn()
			m.scr = screenLobby
		}
		return m, nil
	case screenTable:
		return m.handleTableKey(msg)
	}
	return m, nil
}

func (m Model) handleLobbyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, m.quit()
	case tea.KeyUp:
		if len(m.games) > 0 {
			m.gameIdx = (m.gameIdx + len(m.games) - 1) % len(m.games)
		}
		return m, nil
	case tea.KeyDown:
		if len(m.games) > 0 {
			m.gameIdx = (m.gameIdx + 1) % len(m.games)
		}
		return m, nil
	case tea.KeyEnter:
		gameID := strings.TrimSpace(m.gameInput.Value())
		if gameID == "" && m.gameIdx < len(m.games) {
			gameID = m.games[m.gameIdx].GameID
		}
		return m.joinGame(gameID)
	case tea.KeyCtrlN:
		m.notes.ClearAll()
		m.scr = screenConnecting
		return m, createCmd(m.rest, m.identity.Name, m.playerID)
	}

	var cmd tea.Cmd
	m.gameInput, cmd = m.gameInput.Update(msg)
	return m, cmd
}

// joinGame starts the HTTP join flow. An empty gameID asks the server
// to match any open room.
func (m Model) joinGame(gameID string) (tea.Model, tea.Cmd) {
	m.notes.ClearAll()
	m.scr = screenConnecting
	return m, joinCmd(m.rest, m.identity.Name, m.playerID, gameID)
}

func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.picking != nil {
			m.picking = nil
			return m, nil
		}
		if m.offline {
			return m, m.quit()
		}
		m.dropConn()
		m.scr = screenLobby
		return m, nil
	case tea.KeyLeft:
		m.moveSelection(-1)
		return m, nil
	case tea.KeyRight:
		m.moveSelection(1)
		return m, nil
	case tea.KeyEnter:
		m.confirmCard()
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, m.quit()
	case "p":
		if m.engine.ProposePass(m.state) {
			m.picking = nil
		}
		return m, nil
	case "r":
		if next, ok := m.engine.ToggleReady(m.state); ok {
			m.state = next
		}
		return m, nil
	case "c":
		m.notes.ClearAll()
		return m, nil
	}
	return m, nil
}

// moveSelection walks the hand, or the open pairs when a defend card
// has been picked.
func (m *Model) moveSelection(delta int) {
	if m.picking != nil {
		open := m.openPairs()
		if len(open) == 0 {
			return
		}
		pos := 0
		for i, idx := range open {
			if idx == m.pairIdx {
				pos = i
				break
			}
		}
		m.pairIdx = open[(pos+delta+len(open))%len(open)]
		return
	}
	if n := len(m.state.SelfHand); n > 0 {
		m.handIdx = (m.handIdx + delta + n) % n
	}
}

// confirmCard either plays the selected card as an attack, or starts
// and finishes the two-step defend flow.
func (m *Model) confirmCard() {
	if len(m.state.SelfHand) == 0 {
		return
	}

	if m.picking != nil {
		if m.pairIdx >= len(m.state.TablePairs) {
			// Stale pick against a table that shrank; re-anchor.
			m.clampSelection()
			return
		}
		target := m.state.TablePairs[m.pairIdx].Base
		if next, ok := m.engine.ProposeMove(m.state, *m.picking, &target); ok {
			m.state = next
			m.picking = nil
			m.clampSelection()
		}
		return
	}

	selected := m.state.SelfHand[m.handIdx]
	if m.state.Allowed.Has(session.ActionDefend) {
		if open := m.openPairs(); len(open) > 0 {
			m.picking = &selected
			m.pairIdx = open[0]
			return
		}
	}
	if next, ok := m.engine.ProposeMove(m.state, selected, nil); ok {
		m.state = next
		m.clampSelection()
	}
}

// dropConn tears the websocket down and forgets the session. The HTTP
// seat is released in the background; its outcome changes nothing here.
func (m *Model) dropConn() {
	if m.conn != nil {
		m.conn.Close()
		m.conn = nil

		if m.rest != nil && m.playerID != "" {
			api, playerID := m.rest, m.playerID
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := api.ExitGame(ctx, playerID); err != nil {
					logz.Errorf("seat not released: %v", err)
				}
			}()
		}
	}
	m.engine = nil
	m.picking = nil
	m.handIdx = 0
}

func (m *Model) quit() tea.Cmd {
	m.dropConn()
	if m.stopLobby != nil {
		m.stopLobby()
	}
	return tea.Quit
}
