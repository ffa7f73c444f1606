// Package protocol defines the wire contract of the game service: the
// message envelope, the closed set of message types and their payloads.
//
// Frames are UTF-8 JSON text of the shape {"type": string, "data": object}.
// The one exception is play_card, whose card fields the service reads from
// the envelope root; see PlayCardMessage.
package protocol

import "encoding/json"

// Message is the common frame envelope.
type Message struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// MessageType tags a frame.
type MessageType string

// Client → server intents.
const (
	MsgPlayerConnected    MessageType = "player_connected"
	MsgPlayerDisconnected MessageType = "player_disconnected"
	MsgChangeStatus       MessageType = "change_status"
	MsgPlayCard           MessageType = "play_card"
	MsgPassTurn           MessageType = "pass_turn"
)

// Server → client events.
const (
	MsgConnectionConfirmed MessageType = "connection_confirmed" // full session snapshot
	MsgCardPlayed          MessageType = "card_played"          // authoritative table update
	MsgPlayerJoined        MessageType = "player_joined"        // roster upsert
	MsgPlayerStatus        MessageType = "player_status"        // legacy alias of player_status_changed
	MsgPlayerStatusChanged MessageType = "player_status_changed"
	MsgSelfStatusUpdate    MessageType = "self_status_update" // own status + allowed actions
	MsgGamePhaseChanged    MessageType = "game_phase_changed"
	MsgGameOver            MessageType = "game_over"
	MsgError               MessageType = "error"
)

// Inbound reports whether the type is one the server is expected to send.
// Anything else is ignored by the session rather than treated as a fault.
func (t MessageType) Inbound() bool {
	switch t {
	case MsgConnectionConfirmed, MsgCardPlayed, MsgPlayerJoined,
		MsgPlayerDisconnected, MsgPlayerStatus, MsgPlayerStatusChanged,
		MsgSelfStatusUpdate, MsgGamePhaseChanged, MsgGameOver, MsgError:
		return true
	}
	return false
}
