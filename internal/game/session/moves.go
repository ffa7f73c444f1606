package session

import (
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/game/card"
)

// Sender delivers outgoing intents upstream. The connection manager
// implements it for live sessions; offline sessions run with a nil sender
// and only apply moves locally.
type Sender interface {
	PlayCard(attack card.Card, defend *card.Card) error
	PassTurn() error
	ChangeStatus(status string) error
}

// Engine validates proposed local moves against the server-authorized
// action set, applies them optimistically and forwards them upstream.
//
// An accepted move is not rolled back if the server later rejects it: the
// rejection arrives with an error event and a fresh snapshot, and the
// snapshot restores the confirmed state wholesale.
type Engine struct {
	sender Sender
}

// NewEngine creates a move engine. sender may be nil for offline play.
func NewEngine(sender Sender) *Engine {
	return &Engine{sender: sender}
}

// ProposeMove validates dropping a card onto the table. target names the
// open pair being covered; nil means a new attack. On rejection the state
// is returned unchanged and nothing is sent.
func (e *Engine) ProposeMove(s State, dropped card.Card, target *card.Card) (State, bool) {
	if target != nil {
		return e.proposeDefend(s, dropped, *target)
	}
	return e.proposeAttack(s, dropped)
}

func (e *Engine) proposeAttack(s State, dropped card.Card) (State, bool) {
	if !s.Allowed.Has(ActionAttack) || !s.HoldsCard(dropped) {
		return s, false
	}
	// A base card can appear on the table only once.
	for _, pair := range s.TablePairs {
		if pair.Base == dropped {
			return s, false
		}
	}

	if e.sender != nil {
		if err := e.sender.PlayCard(dropped, nil); err != nil {
			return s, false
		}
	}

	next := s
	next.SelfHand = removeCard(s.SelfHand, dropped)
	next.TablePairs = append(clonePairs(s.TablePairs), TablePair{Base: dropped})
	next.Players = syncSelfHandSize(s, len(next.SelfHand))
	return next, true
}

func (e *Engine) proposeDefend(s State, dropped, target card.Card) (State, bool) {
	if !s.Allowed.Has(ActionDefend) || !s.HoldsCard(dropped) {
		return s, false
	}
	idx := s.OpenPairIndex(target)
	if idx < 0 {
		return s, false
	}

	if e.sender != nil {
		attack := target
		defend := dropped
		if err := e.sender.PlayCard(attack, &defend); err != nil {
			return s, false
		}
	}

	next := s
	next.SelfHand = removeCard(s.SelfHand, dropped)
	pairs := clonePairs(s.TablePairs)
	cover := dropped
	pairs[idx].Cover = &cover
	next.TablePairs = pairs
	next.Players = syncSelfHandSize(s, len(next.SelfHand))
	return next, true
}

// ProposePass emits a pass_turn intent when passing is permitted. Passing
// has no optimistic effect: the outcome (cards leaving the table, roles
// rotating) is only knowable from the server's next snapshot.
func (e *Engine) ProposePass(s State) bool {
	if !s.Allowed.Has(ActionPass) {
		return false
	}
	if e.sender != nil {
		if err := e.sender.PassTurn(); err != nil {
			return false
		}
	}
	return true
}

// ToggleReady flips the local ready status when the lobby permits it and
// mirrors the change optimistically, the way the ready button behaves.
func (e *Engine) ToggleReady(s State) (State, bool) {
	var want Action
	var status PlayerStatus
	if s.SelfStatus == StatusReady {
		want, status = ActionUnready, StatusNotReady
	} else {
		want, status = ActionReady, StatusReady
	}
	if !s.Allowed.Has(want) {
		return s, false
	}

	if e.sender != nil {
		if err := e.sender.ChangeStatus(status.String()); err != nil {
			return s, false
		}
	}
	return reduceStatusChanged(s, StatusChanged{PlayerID: s.SelfID, Status: status}), true
}

func syncSelfHandSize(s State, size int) []Player {
	players := clonePlayers(s.Players)
	for i := range players {
		if players[i].ID == s.SelfID {
			players[i].HandSize = size
		}
	}
	return players
}
