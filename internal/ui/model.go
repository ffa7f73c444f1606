// Package ui is the terminal front end. It owns the bubbletea program
// whose update loop is the only goroutine that touches session state;
// the network pumps hand frames over as messages.
package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/auth"
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/config"
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/game/card"
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/game/session"
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/network/client"
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/network/lobby"
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/network/rest"
)

type screen int

const (
	screenLobby screen = iota
	screenConnecting
	screenTable
)

// noteTTL is how long a transient notification stays on screen.
const noteTTL = 4 * time.Second

// createLimit is the room size for games opened from the lobby.
const createLimit = 2

// Model is the root bubbletea model.
type Model struct {
	cfg      *config.Config
	identity *auth.Identity

	scr    screen
	width  int
	height int

	spin      spinner.Model
	gameInput textinput.Model

	// lobby
	stream      *lobby.Stream
	stopLobby   context.CancelFunc
	games       []lobby.Game
	gameIdx     int
	lobbyBroken bool

	// active session
	rest     *rest.Client
	playerID string // server-issued by auth_guest; empty until registered
	conn     *client.Client
	engine   *session.Engine
	state    session.State
	notes    *session.Notifier
	offline  bool

	// table navigation
	handIdx int
	pairIdx int
	picking *card.Card // attack card awaiting a pair to cover
}

// NewModel builds the root model. An offline config skips the lobby
// entirely and seats the player at a scripted table.
func NewModel(cfg *config.Config, identity *auth.Identity) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	input := textinput.New()
	input.Placeholder = "game id"
	input.CharLimit = 64
	input.Width = 40

	m := Model{
		cfg:       cfg,
		identity:  identity,
		spin:      sp,
		gameInput: input,
		notes:     session.NewNotifier(),
	}

	if cfg.Offline() {
		m.offline = true
		m.scr = screenTable
		m.engine = session.NewEngine(nil)
		m.state = session.OfflineState(session.Scenario(cfg.Game.OfflineScenario))
		m.notes.Push("offline", "Offline mode: scripted table, no server")
	} else {
		m.scr = screenLobby
		m.rest = rest.NewClient(cfg.Server.HTTPURL)
		m.gameInput.Focus()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if !m.offline {
		if cmd := m.startLobbyCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// startLobbyCmd spins up the SSE consumer and waits for its first
// publication.
func (m *Model) startLobbyCmd() tea.Cmd {
	stream, err := lobby.NewStream(m.cfg.Server.HTTPURL, m.cfg.Game.LobbyRetryDelay())
	if err != nil {
		m.lobbyBroken = true
		m.notes.Push("lobby", "Lobby unavailable: "+err.Error())
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.stream = stream
	m.stopLobby = cancel
	go stream.Run(ctx)
	return waitLobby(stream)
}

func waitLobby(s *lobby.Stream) tea.Cmd {
	return func() tea.Msg {
		select {
		case games, ok := <-s.Updates():
			if !ok {
				return lobbyClosedMsg{}
			}
			return lobbyGamesMsg{Games: games}
		case err := <-s.Errors():
			return lobbyErrorMsg{Err: err}
		}
	}
}

// joinCmd secures a seat over HTTP before any socket work: an
// unregistered guest is introduced through auth_guest, then join_game
// claims the room. The server refuses websocket upgrades for players
// it has not seen this way.
func joinCmd(api *rest.Client, playerName, playerID, gameID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if playerID == "" {
			id, err := api.AuthGuest(ctx, playerName)
			if err != nil {
				return connectionErrorMsg{Err: err}
			}
			playerID = id
		}
		res, err := api.JoinGame(ctx, playerID, gameID)
		if err != nil {
			return connectionErrorMsg{Err: err}
		}
		return joinedMsg{PlayerID: playerID, GameID: res.GameID}
	}
}

// createCmd opens a fresh room, then runs the usual join flow on it.
func createCmd(api *rest.Client, playerName, playerID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		gameID, err := api.CreateGame(ctx, createLimit)
		if err != nil {
			return connectionErrorMsg{Err: err}
		}
		return joinCmd(api, playerName, playerID, gameID)()
	}
}

// connectCmd dials the game websocket off the update loop.
func connectCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		if err := c.Connect(); err != nil {
			return connectionErrorMsg{Err: err}
		}
		return connectedMsg{}
	}
}

// waitServer blocks on the next inbound frame.
func waitServer(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		msg, err := c.Receive()
		if err != nil {
			if errors.Is(err, client.ErrClosed) {
				return connectionLostMsg{}
			}
			return connectionErrorMsg{Err: err}
		}
		return serverMsg{Msg: msg}
	}
}

// expireNote schedules removal of a transient notification.
func expireNote(code string) tea.Cmd {
	return tea.Tick(noteTTL, func(time.Time) tea.Msg {
		return clearNoteMsg{Code: code}
	})
}
