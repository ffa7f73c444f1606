package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IlyaTakhtay/Fool-game-for-tg/internal/game/card"
)

// assertInvariants checks the structural invariants every reducer step
// must preserve.
func assertInvariants(t *testing.T, s State) {
	t.Helper()

	ids := make(map[string]bool)
	positions := make(map[int]bool)
	attackers, defenders := 0, 0
	var attackerID, defenderID string
	for _, p := range s.Players {
		assert.False(t, ids[p.ID], "duplicate player id %q", p.ID)
		ids[p.ID] = true
		assert.False(t, positions[p.Position], "duplicate position %d", p.Position)
		positions[p.Position] = true
		assert.GreaterOrEqual(t, p.HandSize, 0, "negative hand size for %q", p.ID)
		if p.IsAttacker {
			attackers++
			attackerID = p.ID
		}
		if p.IsDefender {
			defenders++
			defenderID = p.ID
		}
	}
	assert.LessOrEqual(t, attackers, 1, "more than one attacker")
	assert.LessOrEqual(t, defenders, 1, "more than one defender")
	if attackers == 1 && defenders == 1 {
		assert.NotEqual(t, attackerID, defenderID, "attacker and defender must differ")
	}

	bases := make(map[card.Card]bool)
	for _, pair := range s.TablePairs {
		assert.False(t, bases[pair.Base], "duplicate table base %v", pair.Base)
		bases[pair.Base] = true
	}

	held := 0
	for _, p := range s.Players {
		held += p.HandSize
	}
	assert.LessOrEqual(t, held+s.TableCardCount()+s.DeckSize+s.DiscardCount(),
		card.TotalDeckCards, "card accounting exceeds the deck")
}

func testSnapshot() Snapshot {
	return Snapshot{
		Phase:        PhaseFight,
		SelfStatus:   StatusReady,
		SelfPosition: 1,
		SelfHand: []card.Card{
			{Rank: card.RankA, Suit: card.Spades},
			{Rank: card.Rank7, Suit: card.Hearts},
		},
		Allowed:  ActionSet{ActionAttack: {}, ActionPass: {}},
		RoomSize: 6,
		Others: []Player{
			{ID: "p2", Name: "Vanya", HandSize: 6, Position: 2, Status: StatusReady},
			{ID: "p3", Name: "Petya", HandSize: 6, Position: 3, Status: StatusReady},
		},
		DeckSize:         20,
		TrumpSuit:        card.Hearts,
		TrumpRank:        card.Rank9,
		HasTrump:         true,
		AttackerPosition: 1,
		DefenderPosition: 2,
	}
}

func TestReduceSnapshot(t *testing.T) {
	s := NewState("self")
	next := Reduce(s, testSnapshot())
	assertInvariants(t, next)

	require.Len(t, next.Players, 3, "self must be merged into the roster")
	assert.Equal(t, []string{"self", "p2", "p3"}, playerIDs(next.Players),
		"roster must be position-sorted")

	self, ok := next.Self()
	require.True(t, ok)
	assert.True(t, self.IsAttacker, "role must be derived from position")
	assert.False(t, self.IsDefender)
	assert.Equal(t, 2, self.HandSize)

	defender, ok := next.Defender()
	require.True(t, ok)
	assert.Equal(t, "p2", defender.ID)

	assert.Equal(t, PhaseFight, next.Phase)
	assert.True(t, next.HasTrump)
	assert.Equal(t, card.Hearts, next.TrumpSuit)
	assert.True(t, next.Allowed.Has(ActionAttack))
	assert.False(t, next.Allowed.Has(ActionDefend))
}

func TestReduceSnapshotIdempotent(t *testing.T) {
	s := NewState("self")
	snap := testSnapshot()

	once := Reduce(s, snap)
	twice := Reduce(once, snap)

	assert.Equal(t, once, twice, "replaying the same snapshot must be a fixed point")
}

func TestReduceSnapshotDoesNotMutateInput(t *testing.T) {
	s := Reduce(NewState("self"), testSnapshot())
	before := Reduce(NewState("self"), testSnapshot())

	_ = Reduce(s, CardPlayed{
		PlayerID:   "self",
		Card:       &card.Card{Rank: card.RankA, Suit: card.Spades},
		CardsCount: 1,
	})
	_ = Reduce(s, PlayerLeft{PlayerID: "p2"})
	_ = Reduce(s, StatusChanged{PlayerID: "p3", Status: StatusDisconnected})

	assert.Equal(t, before, s, "Reduce must never mutate its input")
}

func TestReduceCardPlayed(t *testing.T) {
	base := Reduce(NewState("self"), testSnapshot())

	t.Run("authoritative table replace and hand size", func(t *testing.T) {
		played := card.Card{Rank: card.Rank6, Suit: card.Clubs}
		next := Reduce(base, CardPlayed{
			PlayerID:   "p2",
			Card:       &played,
			CardsCount: 5,
			TablePairs: []TablePair{{Base: played}},
		})
		assertInvariants(t, next)

		require.Len(t, next.TablePairs, 1)
		assert.Equal(t, played, next.TablePairs[0].Base)

		p2, ok := next.PlayerByID("p2")
		require.True(t, ok)
		assert.Equal(t, 5, p2.HandSize)
		assert.Len(t, next.SelfHand, 2, "another player's move must not touch the local hand")
	})

	t.Run("self play removes exactly one card", func(t *testing.T) {
		played := card.Card{Rank: card.RankA, Suit: card.Spades}
		next := Reduce(base, CardPlayed{
			PlayerID:   "self",
			Card:       &played,
			CardsCount: 1,
			TablePairs: []TablePair{{Base: played}},
		})
		assertInvariants(t, next)

		assert.Equal(t, []card.Card{{Rank: card.Rank7, Suit: card.Hearts}}, next.SelfHand)
		self, _ := next.Self()
		assert.Equal(t, 1, self.HandSize)
	})

	t.Run("card not held removes nothing", func(t *testing.T) {
		ghost := card.Card{Rank: card.RankK, Suit: card.Clubs}
		next := Reduce(base, CardPlayed{
			PlayerID:   "self",
			Card:       &ghost,
			CardsCount: 2,
			TablePairs: []TablePair{{Base: ghost}},
		})
		assertInvariants(t, next)
		assert.Equal(t, base.SelfHand, next.SelfHand)
	})
}

func TestReducePlayerJoined(t *testing.T) {
	base := Reduce(NewState("self"), testSnapshot())

	t.Run("append keeps position order", func(t *testing.T) {
		next := Reduce(base, PlayerJoined{Player: Player{
			ID: "p0", Name: "Noob", Position: 0, Status: StatusNotReady,
		}})
		assertInvariants(t, next)
		assert.Equal(t, []string{"p0", "self", "p2", "p3"}, playerIDs(next.Players))
	})

	t.Run("existing id updates in place", func(t *testing.T) {
		next := Reduce(base, PlayerJoined{Player: Player{
			ID: "p2", Name: "Vanya", HandSize: 4, Position: 2, Status: StatusNotReady,
		}})
		assertInvariants(t, next)
		require.Len(t, next.Players, 3)
		p2, _ := next.PlayerByID("p2")
		assert.Equal(t, 4, p2.HandSize)
		assert.Equal(t, StatusNotReady, p2.Status)
		assert.True(t, p2.IsDefender, "an upsert must not drop the role flag")
	})

	t.Run("self id is ignored", func(t *testing.T) {
		next := Reduce(base, PlayerJoined{Player: Player{ID: "self", Position: 5}})
		assert.Equal(t, base, next)
	})
}

func TestReducePlayerLeft(t *testing.T) {
	base := Reduce(NewState("self"), testSnapshot())

	t.Run("removes by id", func(t *testing.T) {
		next := Reduce(base, PlayerLeft{PlayerID: "p2"})
		assertInvariants(t, next)
		assert.Equal(t, []string{"self", "p3"}, playerIDs(next.Players))
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		next := Reduce(base, PlayerLeft{PlayerID: "nobody"})
		assert.Equal(t, playerIDs(base.Players), playerIDs(next.Players))
	})
}

func TestReduceStatusChanged(t *testing.T) {
	base := Reduce(NewState("self"), testSnapshot())

	t.Run("other player", func(t *testing.T) {
		next := Reduce(base, StatusChanged{PlayerID: "p3", Status: StatusDisconnected})
		assertInvariants(t, next)
		p3, _ := next.PlayerByID("p3")
		assert.Equal(t, StatusDisconnected, p3.Status)
		assert.Equal(t, base.SelfStatus, next.SelfStatus)
	})

	t.Run("self mirrors into the ready view", func(t *testing.T) {
		next := Reduce(base, StatusChanged{PlayerID: "self", Status: StatusNotReady})
		assert.Equal(t, StatusNotReady, next.SelfStatus)
		self, _ := next.Self()
		assert.Equal(t, StatusNotReady, self.Status)
	})
}

func TestReduceSelfStatus(t *testing.T) {
	base := Reduce(NewState("self"), testSnapshot())

	next := Reduce(base, SelfStatus{
		Status:  StatusNotReady,
		Allowed: ActionSet{ActionReady: {}},
	})
	assertInvariants(t, next)

	assert.Equal(t, StatusNotReady, next.SelfStatus)
	assert.True(t, next.Allowed.Has(ActionReady),
		"the server's explicit authorization list replaces the old set")
	assert.False(t, next.Allowed.Has(ActionAttack))
}

func TestReducePhaseChanged(t *testing.T) {
	base := Reduce(NewState("self"), testSnapshot())

	t.Run("round phase with positions recomputes roles", func(t *testing.T) {
		attacker, defender := 2, 3
		next := Reduce(base, PhaseChanged{
			Phase:            PhasePlayRound,
			AttackerPosition: &attacker,
			DefenderPosition: &defender,
		})
		assertInvariants(t, next)

		a, ok := next.Attacker()
		require.True(t, ok)
		assert.Equal(t, "p2", a.ID)
		d, ok := next.Defender()
		require.True(t, ok)
		assert.Equal(t, "p3", d.ID)
	})

	t.Run("positions omitted keeps roles", func(t *testing.T) {
		next := Reduce(base, PhaseChanged{Phase: PhaseDrawing})
		assertInvariants(t, next)
		a, ok := next.Attacker()
		require.True(t, ok)
		assert.Equal(t, "self", a.ID)
	})

	t.Run("lobby phase does not grant roles", func(t *testing.T) {
		attacker := 2
		next := Reduce(base, PhaseChanged{Phase: PhaseLobby, AttackerPosition: &attacker})
		assert.Equal(t, PhaseLobby, next.Phase)
		a, ok := next.Attacker()
		require.True(t, ok, "roles outside a round are left as they were")
		assert.Equal(t, "self", a.ID)
	})
}

func TestReduceServerErrorLeavesStateAlone(t *testing.T) {
	base := Reduce(NewState("self"), testSnapshot())
	next := Reduce(base, ServerError{})
	assert.Equal(t, base, next)
}

func TestReduceGameOver(t *testing.T) {
	base := Reduce(NewState("self"), testSnapshot())
	next := Reduce(base, GameOver{WinnerID: "p2"})
	assertInvariants(t, next)
	assert.Equal(t, PhaseGameOver, next.Phase)
	assert.Equal(t, "p2", next.WinnerID)
}

func TestDiscardCountDerivation(t *testing.T) {
	t.Run("everything accounted, nothing discarded", func(t *testing.T) {
		s := Reduce(NewState("self"), testSnapshot())
		// 2 + 6 + 6 in hands, 20 in deck, nothing on the table: 2 discarded.
		assert.Equal(t, 2, s.DiscardCount())
	})

	t.Run("empty endgame discards the whole deck", func(t *testing.T) {
		snap := Snapshot{
			Phase:            PhaseFight,
			SelfPosition:     1,
			DeckSize:         0,
			AttackerPosition: -1,
			DefenderPosition: -1,
		}
		s := Reduce(NewState("self"), snap)
		assert.Equal(t, card.TotalDeckCards, s.DiscardCount())
	})

	t.Run("never negative", func(t *testing.T) {
		s := State{DeckSize: card.TotalDeckCards + 5}
		assert.Equal(t, 0, s.DiscardCount())
	})
}

func playerIDs(players []Player) []string {
	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	return ids
}
