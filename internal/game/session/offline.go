package session

import (
	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/game/card"
)

// Scenario names a canned offline session. The offline provider stands in
// for a live connection when no endpoint is configured, reusing the same
// State shape so the rest of the client cannot tell the difference.
type Scenario string

const (
	ScenarioGameStart Scenario = "game_start"
	ScenarioMidGame   Scenario = "mid_game"
	ScenarioEndGame   Scenario = "end_game"
)

// OfflineSelfID is the local player's id in scripted sessions.
const OfflineSelfID = "offline-self"

var offlineRoster = []Player{
	{ID: "bot-1", Name: "Player 1", HandSize: 6, Position: 1, Status: StatusReady},
	{ID: "bot-2", Name: "Player 2", HandSize: 5, Position: 3, Status: StatusNotReady},
	{ID: "bot-3", Name: "Player 3", HandSize: 7, Position: 6, Status: StatusNotReady},
	{ID: "bot-4", Name: "Player 4", HandSize: 5, Position: 2, Status: StatusNotReady},
}

func offlineHand() []card.Card {
	return []card.Card{
		{Rank: card.RankA, Suit: card.Spades},
		{Rank: card.Rank6, Suit: card.Spades},
		{Rank: card.Rank7, Suit: card.Spades},
		{Rank: card.Rank8, Suit: card.Spades},
		{Rank: card.Rank9, Suit: card.Spades},
		{Rank: card.RankQ, Suit: card.Spades},
		{Rank: card.RankJ, Suit: card.Spades},
	}
}

// OfflineState builds the scripted session for a scenario. Unknown
// scenarios fall back to the mid-game table.
func OfflineState(sc Scenario) State {
	switch sc {
	case ScenarioGameStart:
		return offlineGameStart()
	case ScenarioEndGame:
		return offlineEndGame()
	default:
		return offlineMidGame()
	}
}

func offlineBase(phase Phase) State {
	s := NewState(OfflineSelfID)
	s.Phase = phase
	s.RoomSize = 6
	s.SelfPosition = 4
	s.TrumpSuit = card.Hearts
	s.TrumpRank = card.Rank6
	s.HasTrump = true
	return s
}

func offlineGameStart() State {
	s := offlineBase(PhaseLobby)
	s.HasTrump = false
	s.DeckSize = 24
	s.SelfHand = offlineHand()[:6]
	s.Allowed = ActionSet{ActionReady: {}}

	players := clonePlayers(offlineRoster)
	for i := range players {
		players[i].HandSize = 6
		players[i].Status = StatusNotReady
	}
	s.Players = withSelf(s, players)
	return s
}

func offlineMidGame() State {
	s := offlineBase(PhaseFight)
	s.DeckSize = 15
	s.SelfHand = offlineHand()
	s.Allowed = ActionSet{ActionAttack: {}, ActionPass: {}}
	s.TablePairs = []TablePair{
		{Base: card.Card{Rank: card.RankA, Suit: card.Diamonds}},
		{Base: card.Card{Rank: card.RankK, Suit: card.Hearts}},
	}
	s.Players = withSelf(s, clonePlayers(offlineRoster))
	applyRolesByPosition(s.Players, s.SelfPosition, 6)
	return s
}

func offlineEndGame() State {
	s := offlineBase(PhaseFight)
	s.DeckSize = 0
	s.SelfHand = offlineHand()[:1]
	s.Allowed = ActionSet{ActionAttack: {}, ActionPass: {}}
	s.TablePairs = []TablePair{
		{Base: card.Card{Rank: card.RankA, Suit: card.Diamonds}},
	}
	players := clonePlayers(offlineRoster)
	for i := range players {
		players[i].HandSize = 1
	}
	s.Players = withSelf(s, players)
	applyRolesByPosition(s.Players, s.SelfPosition, 6)
	return s
}

func withSelf(s State, others []Player) []Player {
	players := append(others, Player{
		ID:       s.SelfID,
		Name:     "You",
		HandSize: len(s.SelfHand),
		Position: s.SelfPosition,
		Status:   s.SelfStatus,
	})
	sortByPosition(players)
	return players
}
