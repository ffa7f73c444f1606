package client

import (
	"encoding/json"
	"fmt"

	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/game/card"
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/protocol"
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/protocol/codec"
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/protocol/encoding"
)

// Outgoing intents. Together these implement session.Sender.

// PlayerConnected announces the session right after the handshake.
func (c *Client) PlayerConnected() error {
	return c.sendIntent(protocol.MsgPlayerConnected, protocol.PlayerConnectedPayload{
		GameID:   c.gameID,
		PlayerID: c.playerID,
	})
}

// ChangeStatus toggles the lobby ready flag.
func (c *Client) ChangeStatus(status string) error {
	return c.sendIntent(protocol.MsgChangeStatus, protocol.ChangeStatusPayload{
		PlayerID: c.playerID,
		Status:   status,
	})
}

// PassTurn yields the current turn.
func (c *Client) PassTurn() error {
	return c.sendIntent(protocol.MsgPassTurn, nil)
}

// PlayCard plays an attack, or a defense when defend is set. The card
// fields sit at the envelope root; this is the one frame shape the
// service reads that way.
func (c *Client) PlayCard(attack card.Card, defend *card.Card) error {
	data, err := json.Marshal(protocol.PlayCardMessage{
		Type:       protocol.MsgPlayCard,
		AttackCard: attack,
		DefendCard: defend,
	})
	if err != nil {
		return fmt.Errorf("encode play_card: %w", err)
	}
	return c.sendRaw(data)
}

func (c *Client) sendIntent(msgType protocol.MessageType, payload any) error {
	msg, err := encoding.NewMessage(msgType, payload)
	if err != nil {
		return err
	}
	defer codec.PutMessage(msg)
	return c.SendMessage(msg)
}

func encodeFrame(msg *protocol.Message) ([]byte, error) {
	return encoding.Encode(msg)
}

func disconnectMessage(gameID, playerID string) *protocol.Message {
	return encoding.MustNewMessage(protocol.MsgPlayerDisconnected, protocol.PlayerDisconnectedPayload{
		GameID:   gameID,
		PlayerID: playerID,
	})
}
