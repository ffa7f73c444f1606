package ui

import (
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/network/lobby"
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/protocol"
)

// serverMsg wraps one inbound protocol frame for the update loop. All
// state mutation happens there, so the session stays single-threaded.
type serverMsg struct {
	Msg *protocol.Message
}

// joinedMsg reports that the HTTP join flow secured a seat; the
// websocket dial may now proceed.
type joinedMsg struct {
	PlayerID string
	GameID   string
}

// connectedMsg reports a successful websocket handshake.
type connectedMsg struct{}

// clearNoteMsg expires one transient notification.
type clearNoteMsg struct {
	Code string
}

// connectionErrorMsg reports a failed connection attempt.
type connectionErrorMsg struct {
	Err error
}

// connectionLostMsg reports that an established connection dropped.
type connectionLostMsg struct{}

// lobbyGamesMsg carries a fresh room list from the lobby stream.
type lobbyGamesMsg struct {
	Games []lobby.Game
}

// lobbyErrorMsg reports a lobby stream failure; the stream itself keeps
// retrying.
type lobbyErrorMsg struct {
	Err error
}

// lobbyClosedMsg reports that the lobby stream shut down for good.
type lobbyClosedMsg struct{}
