package protocol

import "github.com/IlyaTakhtay/Fool-game-for-tg/internal/game/card"

// --- Client request payloads ---

// PlayerConnectedPayload announces the session this socket belongs to.
type PlayerConnectedPayload struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
}

// PlayerDisconnectedPayload is the best-effort goodbye sent before close.
type PlayerDisconnectedPayload struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
}

// ChangeStatusPayload toggles the ready state in the lobby.
type ChangeStatusPayload struct {
	PlayerID string `json:"player_id"`
	Status   string `json:"status"` // "ready" or "not_ready"
}

// PlayCardMessage is the full play_card frame. The service reads the card
// fields from the envelope root, not from "data", so this is marshaled as a
// standalone message rather than wrapped in Message.
type PlayCardMessage struct {
	Type       MessageType `json:"type"`
	AttackCard card.Card   `json:"attack_card"`
	DefendCard *card.Card  `json:"defend_card,omitempty"`
}

// --- Server event payloads ---

// RoomPlayer is the public view of one player in the room.
type RoomPlayer struct {
	PlayerID   string `json:"player_id"`
	Name       string `json:"name"`
	Position   int    `json:"position"`
	CardsCount int    `json:"cards_count"`
	Status     string `json:"status"`
}

// TablePairData is one attack card with its optional cover.
type TablePairData struct {
	AttackCard *card.Card `json:"attack_card"`
	DefendCard *card.Card `json:"defend_card,omitempty"`
}

// ConnectionConfirmedPayload is the full authoritative snapshot pushed on
// connect and after every server-side state change.
type ConnectionConfirmedPayload struct {
	CurrentState     string          `json:"current_state"`
	Status           string          `json:"status"`
	Position         int             `json:"position"`
	Cards            []card.Card     `json:"cards"`
	AllowedActions   []string        `json:"allowed_actions"`
	RoomSize         int             `json:"room_size"`
	RoomPlayers      []RoomPlayer    `json:"room_players"`
	DeckSize         int             `json:"deck_size"`
	TrumpSuit        string          `json:"trump_suit"`
	TrumpRank        string          `json:"trump_rank"`
	AttackerPosition int             `json:"attacker_position"`
	DefenderPosition int             `json:"defender_position"`
	TableCards       []TablePairData `json:"table_cards"`
}

// CardPlayedPayload carries the placed card, the authoritative table after
// the move and the acting player's new hand size.
type CardPlayedPayload struct {
	PlayerID   string          `json:"player_id"`
	Card       *card.Card      `json:"card,omitempty"`
	CardsCount int             `json:"cards_count"`
	TableCards []TablePairData `json:"table_cards"`
	AttackerID string          `json:"attacker_id,omitempty"`
	DefenderID string          `json:"defender_id,omitempty"`
}

// PlayerStatusPayload reports another player's ready-state change.
type PlayerStatusPayload struct {
	PlayerID string `json:"player_id"`
	Status   string `json:"status"`
}

// SelfStatusUpdatePayload is addressed to the acting player only and is
// the authoritative source of the permitted-action set.
type SelfStatusUpdatePayload struct {
	Status         string   `json:"status"`
	AllowedActions []string `json:"allowed_actions"`
}

// GamePhaseChangedPayload announces a phase transition. Positions are
// pointers because the lobby phase carries none.
type GamePhaseChangedPayload struct {
	Phase            string `json:"phase"`
	AttackerPosition *int   `json:"attacker_position,omitempty"`
	DefenderPosition *int   `json:"defender_position,omitempty"`
}

// GameOverPayload names the winner; everyone else lost.
type GameOverPayload struct {
	WinnerID string   `json:"winner_id"`
	LoserIDs []string `json:"loser_ids"`
}

// ErrorPayload is a server-reported fault with a machine-readable code.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
