package session

import (
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/game/card"
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/protocol"
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/protocol/encoding"
)

// Event is one decoded inbound protocol message, normalized into domain
// types. The set is closed: frames of unknown type decode to Unrecognized
// and are ignored by the reducer rather than failing the session.
type Event interface {
	isEvent()
}

// Snapshot is the full authoritative session state pushed by the server.
type Snapshot struct {
	Phase            Phase
	SelfStatus       PlayerStatus
	SelfPosition     int
	SelfHand         []card.Card
	Allowed          ActionSet
	RoomSize         int
	Others           []Player
	DeckSize         int
	TrumpSuit        card.Suit
	TrumpRank        card.Rank
	HasTrump         bool
	AttackerPosition int
	DefenderPosition int
	TablePairs       []TablePair
}

// CardPlayed reports a placed attack or defend card, with the new
// authoritative table and the acting player's hand size.
type CardPlayed struct {
	PlayerID   string
	Card       *card.Card
	CardsCount int
	TablePairs []TablePair
	AttackerID string
	DefenderID string
}

// PlayerJoined upserts one seat in the roster.
type PlayerJoined struct {
	Player Player
}

// PlayerLeft removes one seat.
type PlayerLeft struct {
	PlayerID string
}

// StatusChanged reports a player's new readiness status.
type StatusChanged struct {
	PlayerID string
	Status   PlayerStatus
}

// SelfStatus carries the local player's status together with the server's
// explicit authorization list.
type SelfStatus struct {
	Status  PlayerStatus
	Allowed ActionSet
}

// PhaseChanged is an authoritative phase transition, optionally carrying
// new attacker/defender positions.
type PhaseChanged struct {
	Phase            Phase
	AttackerPosition *int
	DefenderPosition *int
}

// GameOver names the winner.
type GameOver struct {
	WinnerID string
}

// ServerError is a server-reported fault. It never mutates state; the
// caller surfaces it as a de-duplicated notification.
type ServerError struct {
	Err *protocol.ProtocolError
}

// Unrecognized is the sentinel for frames of a type this client does not
// know.
type Unrecognized struct {
	Type protocol.MessageType
}

func (Snapshot) isEvent()      {}
func (CardPlayed) isEvent()    {}
func (PlayerJoined) isEvent()  {}
func (PlayerLeft) isEvent()    {}
func (StatusChanged) isEvent() {}
func (SelfStatus) isEvent()    {}
func (PhaseChanged) isEvent()  {}
func (GameOver) isEvent()      {}
func (ServerError) isEvent()   {}
func (Unrecognized) isEvent()  {}

// DecodeEvent turns a protocol message into a typed event. Payloads that
// fail to parse are reported as errors for the caller to log and drop;
// they never tear the session down.
func DecodeEvent(msg *protocol.Message) (Event, error) {
	switch msg.Type {
	case protocol.MsgConnectionConfirmed:
		payload, err := encoding.ParsePayload[protocol.ConnectionConfirmedPayload](msg)
		if err != nil {
			return nil, err
		}
		return snapshotFromPayload(payload), nil

	case protocol.MsgCardPlayed:
		payload, err := encoding.ParsePayload[protocol.CardPlayedPayload](msg)
		if err != nil {
			return nil, err
		}
		return CardPlayed{
			PlayerID:   payload.PlayerID,
			Card:       payload.Card,
			CardsCount: payload.CardsCount,
			TablePairs: pairsFromPayload(payload.TableCards),
			AttackerID: payload.AttackerID,
			DefenderID: payload.DefenderID,
		}, nil

	case protocol.MsgPlayerJoined:
		payload, err := encoding.ParsePayload[protocol.RoomPlayer](msg)
		if err != nil {
			return nil, err
		}
		return PlayerJoined{Player: Player{
			ID:       payload.PlayerID,
			Name:     payload.Name,
			HandSize: payload.CardsCount,
			Position: payload.Position,
			Status:   ParseStatus(payload.Status),
		}}, nil

	case protocol.MsgPlayerDisconnected:
		payload, err := encoding.ParsePayload[protocol.PlayerStatusPayload](msg)
		if err != nil {
			return nil, err
		}
		return PlayerLeft{PlayerID: payload.PlayerID}, nil

	case protocol.MsgPlayerStatus, protocol.MsgPlayerStatusChanged:
		payload, err := encoding.ParsePayload[protocol.PlayerStatusPayload](msg)
		if err != nil {
			return nil, err
		}
		return StatusChanged{
			PlayerID: payload.PlayerID,
			Status:   ParseStatus(payload.Status),
		}, nil

	case protocol.MsgSelfStatusUpdate:
		payload, err := encoding.ParsePayload[protocol.SelfStatusUpdatePayload](msg)
		if err != nil {
			return nil, err
		}
		return SelfStatus{
			Status:  ParseStatus(payload.Status),
			Allowed: ParseActions(payload.AllowedActions),
		}, nil

	case protocol.MsgGamePhaseChanged:
		payload, err := encoding.ParsePayload[protocol.GamePhaseChangedPayload](msg)
		if err != nil {
			return nil, err
		}
		return PhaseChanged{
			Phase:            ParsePhase(payload.Phase),
			AttackerPosition: payload.AttackerPosition,
			DefenderPosition: payload.DefenderPosition,
		}, nil

	case protocol.MsgGameOver:
		payload, err := encoding.ParsePayload[protocol.GameOverPayload](msg)
		if err != nil {
			return nil, err
		}
		return GameOver{WinnerID: payload.WinnerID}, nil

	case protocol.MsgError:
		payload, err := encoding.ParsePayload[protocol.ErrorPayload](msg)
		if err != nil {
			return nil, err
		}
		return ServerError{Err: payload.AsError()}, nil

	default:
		return Unrecognized{Type: msg.Type}, nil
	}
}

func snapshotFromPayload(p *protocol.ConnectionConfirmedPayload) Snapshot {
	snap := Snapshot{
		Phase:            ParsePhase(p.CurrentState),
		SelfStatus:       ParseStatus(p.Status),
		SelfPosition:     p.Position,
		SelfHand:         append([]card.Card(nil), p.Cards...),
		Allowed:          ParseActions(p.AllowedActions),
		RoomSize:         p.RoomSize,
		DeckSize:         p.DeckSize,
		AttackerPosition: p.AttackerPosition,
		DefenderPosition: p.DefenderPosition,
		TablePairs:       pairsFromPayload(p.TableCards),
	}

	for _, rp := range p.RoomPlayers {
		snap.Others = append(snap.Others, Player{
			ID:       rp.PlayerID,
			Name:     rp.Name,
			HandSize: rp.CardsCount,
			Position: rp.Position,
			Status:   ParseStatus(rp.Status),
		})
	}

	// Trump is absent in the lobby; tolerate unparsable values the same
	// way as absence.
	if p.TrumpSuit != "" {
		if suit, err := card.ParseSuit(p.TrumpSuit); err == nil {
			snap.TrumpSuit = suit
			snap.HasTrump = true
			if p.TrumpRank != "" {
				if rank, err := card.ParseRank(p.TrumpRank); err == nil {
					snap.TrumpRank = rank
				}
			}
		}
	}
	return snap
}

// pairsFromPayload drops malformed pairs without a base card; a cover can
// never exist on its own.
func pairsFromPayload(pairs []protocol.TablePairData) []TablePair {
	out := make([]TablePair, 0, len(pairs))
	for _, p := range pairs {
		if p.AttackCard == nil {
			continue
		}
		pair := TablePair{Base: *p.AttackCard}
		if p.DefendCard != nil {
			cover := *p.DefendCard
			pair.Cover = &cover
		}
		out = append(out, pair)
	}
	return out
}
