// Package session holds the client-side game session core: the session
// state aggregate, the event-driven reducer that applies server messages,
// and the move engine that validates and optimistically applies local moves.
package session

import (
	"sort"
	"strings"

	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/game/card"
)

// Phase is the authoritative game phase as reported by the server.
type Phase int

const (
	PhaseUnknown Phase = iota
	PhaseLobby
	PhaseDealing
	PhaseDrawing
	PhasePlayRound
	PhaseFight
	PhaseGameOver
)

var phaseNames = map[string]Phase{
	"LobbyState":        PhaseLobby,
	"DealState":         PhaseDealing,
	"DrawingCardsState": PhaseDrawing,
	"PlayRoundState":    PhasePlayRound,
	"FightState":        PhaseFight,
	"GameOverState":     PhaseGameOver,
}

// ParsePhase maps a server state name to a Phase. Unknown names map to
// PhaseUnknown rather than failing; the server may grow states.
func ParsePhase(name string) Phase {
	if p, ok := phaseNames[name]; ok {
		return p
	}
	return PhaseUnknown
}

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseDealing:
		return "dealing"
	case PhaseDrawing:
		return "drawing"
	case PhasePlayRound:
		return "round"
	case PhaseFight:
		return "fight"
	case PhaseGameOver:
		return "game over"
	}
	return "unknown"
}

// InRound reports whether the phase is part of an active round, i.e. the
// attacker/defender roles are meaningful.
func (p Phase) InRound() bool {
	switch p {
	case PhaseDealing, PhaseDrawing, PhasePlayRound, PhaseFight:
		return true
	}
	return false
}

// Action is something the local player may currently be permitted to do.
type Action int

const (
	ActionAttack Action = iota
	ActionDefend
	ActionPass
	ActionReady
	ActionUnready
)

var actionNames = map[string]Action{
	"attack":    ActionAttack,
	"defend":    ActionDefend,
	"pass":      ActionPass,
	"ready":     ActionReady,
	"unready":   ActionUnready,
	"not_ready": ActionUnready,
}

func (a Action) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionDefend:
		return "defend"
	case ActionPass:
		return "pass"
	case ActionReady:
		return "ready"
	case ActionUnready:
		return "unready"
	}
	return "unknown"
}

// ActionSet is the set of currently permitted actions. It is only ever
// populated from authoritative server messages; the client never grants
// itself actions.
type ActionSet map[Action]struct{}

// ParseActions builds an ActionSet from the wire strings, dropping any
// action name the client does not know.
func ParseActions(names []string) ActionSet {
	set := make(ActionSet, len(names))
	for _, n := range names {
		if a, ok := actionNames[strings.ToLower(strings.TrimSpace(n))]; ok {
			set[a] = struct{}{}
		}
	}
	return set
}

// Has reports whether the action is permitted. Safe on a nil set.
func (s ActionSet) Has(a Action) bool {
	_, ok := s[a]
	return ok
}

func (s ActionSet) clone() ActionSet {
	if s == nil {
		return nil
	}
	out := make(ActionSet, len(s))
	for a := range s {
		out[a] = struct{}{}
	}
	return out
}

// PlayerStatus is a player's readiness state.
type PlayerStatus int

const (
	StatusNotReady PlayerStatus = iota
	StatusReady
	StatusDisconnected
)

// ParseStatus normalizes the wire status strings. Anything unrecognized
// counts as not ready.
func ParseStatus(s string) PlayerStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ready", "victory":
		return StatusReady
	case "disconnected", "leaved":
		return StatusDisconnected
	default:
		return StatusNotReady
	}
}

func (s PlayerStatus) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusDisconnected:
		return "disconnected"
	default:
		return "not_ready"
	}
}

// Player is one seat at the table, self included.
type Player struct {
	ID         string
	Name       string
	HandSize   int
	Position   int
	Status     PlayerStatus
	IsAttacker bool
	IsDefender bool
}

// TablePair is one attack card with its optional defending cover. A pair
// with a cover is closed and no further action targets it.
type TablePair struct {
	Base  card.Card
	Cover *card.Card
}

// Covered reports whether the pair is closed.
func (p TablePair) Covered() bool {
	return p.Cover != nil
}

// State is the single source of truth for one game session. It is treated
// as an immutable value: the reducer and the move engine return a new
// State and never mutate the one they were given.
type State struct {
	Phase        Phase
	SelfID       string
	SelfPosition int
	SelfStatus   PlayerStatus
	SelfHand     []card.Card

	// Players holds every seat, self included, unique by id and ordered
	// by position.
	Players []Player

	// TablePairs keeps insertion order. No two pairs share a base card.
	TablePairs []TablePair

	DeckSize  int
	RoomSize  int
	TrumpSuit card.Suit
	TrumpRank card.Rank
	HasTrump  bool

	// Allowed is the server-authorized action set for the local player.
	Allowed ActionSet

	WinnerID string
}

// NewState returns the empty state a freshly mounted session starts from.
func NewState(selfID string) State {
	return State{Phase: PhaseUnknown, SelfID: selfID, SelfPosition: -1}
}

// PlayerByID returns the seat with the given id.
func (s State) PlayerByID(id string) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Self returns the local player's seat, when present.
func (s State) Self() (Player, bool) {
	return s.PlayerByID(s.SelfID)
}

// Attacker returns the seat currently holding the attacker role.
func (s State) Attacker() (Player, bool) {
	for _, p := range s.Players {
		if p.IsAttacker {
			return p, true
		}
	}
	return Player{}, false
}

// Defender returns the seat currently holding the defender role.
func (s State) Defender() (Player, bool) {
	for _, p := range s.Players {
		if p.IsDefender {
			return p, true
		}
	}
	return Player{}, false
}

// OpenPairIndex finds the uncovered pair whose base matches the card.
func (s State) OpenPairIndex(base card.Card) int {
	for i, pair := range s.TablePairs {
		if pair.Base == base && !pair.Covered() {
			return i
		}
	}
	return -1
}

// HoldsCard reports whether the card is in the local hand.
func (s State) HoldsCard(c card.Card) bool {
	for _, h := range s.SelfHand {
		if h == c {
			return true
		}
	}
	return false
}

// TableCardCount counts every card on the table, bases and covers.
func (s State) TableCardCount() int {
	n := 0
	for _, pair := range s.TablePairs {
		n++
		if pair.Covered() {
			n++
		}
	}
	return n
}

// DiscardCount derives the size of the discard pile from the rest of the
// state. It is never stored, so it cannot diverge.
func (s State) DiscardCount() int {
	held := 0
	for _, p := range s.Players {
		held += p.HandSize
	}
	rest := held + s.TableCardCount() + s.DeckSize
	if rest >= card.TotalDeckCards {
		return 0
	}
	return card.TotalDeckCards - rest
}

func clonePlayers(players []Player) []Player {
	return append([]Player(nil), players...)
}

func clonePairs(pairs []TablePair) []TablePair {
	out := make([]TablePair, len(pairs))
	for i, p := range pairs {
		out[i] = p
		if p.Cover != nil {
			cover := *p.Cover
			out[i].Cover = &cover
		}
	}
	return out
}

func cloneHand(hand []card.Card) []card.Card {
	return append([]card.Card(nil), hand...)
}

// sortByPosition orders seats in place.
func sortByPosition(players []Player) {
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Position < players[j].Position
	})
}
