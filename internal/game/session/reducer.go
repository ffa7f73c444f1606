package session

import "github.com/IlyaTakhtay/Fool-game-for-tg/internal/game/card"

// Reduce applies one decoded event to the state and returns the next
// state. It is a pure function: deterministic, no side effects, and the
// input state is never mutated. Any user-facing reaction (a toast for a
// ServerError, say) is the caller's job, triggered by the event itself.
//
// The transport is trusted to deliver events in server-send order; the
// reducer performs no sequence-number reconciliation.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case Snapshot:
		return reduceSnapshot(s, e)
	case CardPlayed:
		return reduceCardPlayed(s, e)
	case PlayerJoined:
		return reducePlayerJoined(s, e)
	case PlayerLeft:
		return reducePlayerLeft(s, e)
	case StatusChanged:
		return reduceStatusChanged(s, e)
	case SelfStatus:
		return reduceSelfStatus(s, e)
	case PhaseChanged:
		return reducePhaseChanged(s, e)
	case GameOver:
		next := s
		next.Phase = PhaseGameOver
		next.WinnerID = e.WinnerID
		return next
	default:
		// ServerError and Unrecognized never touch the state.
		return s
	}
}

// reduceSnapshot replaces the whole state with the authoritative snapshot.
// Self and the other players arrive in different shapes and are reconciled
// into one position-sorted roster; roles are derived from positions, not
// identity.
func reduceSnapshot(s State, snap Snapshot) State {
	selfName := ""
	if self, ok := s.Self(); ok {
		selfName = self.Name
	}

	players := make([]Player, 0, len(snap.Others)+1)
	seen := map[string]bool{s.SelfID: true}
	for _, p := range snap.Others {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		players = append(players, p)
	}
	players = append(players, Player{
		ID:       s.SelfID,
		Name:     selfName,
		HandSize: len(snap.SelfHand),
		Position: snap.SelfPosition,
		Status:   snap.SelfStatus,
	})
	sortByPosition(players)
	applyRolesByPosition(players, snap.AttackerPosition, snap.DefenderPosition)

	return State{
		Phase:        snap.Phase,
		SelfID:       s.SelfID,
		SelfPosition: snap.SelfPosition,
		SelfStatus:   snap.SelfStatus,
		SelfHand:     cloneHand(snap.SelfHand),
		Players:      players,
		TablePairs:   clonePairs(snap.TablePairs),
		DeckSize:     snap.DeckSize,
		RoomSize:     snap.RoomSize,
		TrumpSuit:    snap.TrumpSuit,
		TrumpRank:    snap.TrumpRank,
		HasTrump:     snap.HasTrump,
		Allowed:      snap.Allowed.clone(),
	}
}

// reduceCardPlayed takes the server's table list wholesale instead of
// merging it with the local one.
func reduceCardPlayed(s State, e CardPlayed) State {
	next := s
	next.TablePairs = dedupeByBase(clonePairs(e.TablePairs))

	players := clonePlayers(s.Players)
	for i := range players {
		if players[i].ID == e.PlayerID {
			players[i].HandSize = e.CardsCount
		}
	}
	if e.AttackerID != "" || e.DefenderID != "" {
		applyRolesByID(players, e.AttackerID, e.DefenderID)
	}
	next.Players = players

	if e.PlayerID == s.SelfID && e.Card != nil {
		next.SelfHand = removeCard(s.SelfHand, *e.Card)
		for i := range players {
			if players[i].ID == s.SelfID {
				players[i].HandSize = len(next.SelfHand)
			}
		}
	}
	return next
}

func reducePlayerJoined(s State, e PlayerJoined) State {
	// Self never arrives through the public roster; the snapshot's
	// private fields are its only source.
	if e.Player.ID == s.SelfID {
		return s
	}

	next := s
	players := clonePlayers(s.Players)
	updated := false
	for i := range players {
		if players[i].ID == e.Player.ID {
			roles := players[i]
			players[i] = e.Player
			players[i].IsAttacker = roles.IsAttacker
			players[i].IsDefender = roles.IsDefender
			updated = true
			break
		}
	}
	if !updated {
		players = append(players, e.Player)
	}
	sortByPosition(players)
	next.Players = players
	return next
}

func reducePlayerLeft(s State, e PlayerLeft) State {
	next := s
	players := make([]Player, 0, len(s.Players))
	for _, p := range s.Players {
		if p.ID != e.PlayerID {
			players = append(players, p)
		}
	}
	next.Players = players
	return next
}

func reduceStatusChanged(s State, e StatusChanged) State {
	next := s
	players := clonePlayers(s.Players)
	for i := range players {
		if players[i].ID == e.PlayerID {
			players[i].Status = e.Status
		}
	}
	next.Players = players
	if e.PlayerID == s.SelfID {
		next.SelfStatus = e.Status
	}
	return next
}

// reduceSelfStatus applies the server's explicit authorization list; it
// takes precedence over anything inferred locally.
func reduceSelfStatus(s State, e SelfStatus) State {
	next := s
	next.SelfStatus = e.Status
	next.Allowed = e.Allowed.clone()
	players := clonePlayers(s.Players)
	for i := range players {
		if players[i].ID == s.SelfID {
			players[i].Status = e.Status
		}
	}
	next.Players = players
	return next
}

func reducePhaseChanged(s State, e PhaseChanged) State {
	next := s
	next.Phase = e.Phase
	if e.Phase.InRound() && (e.AttackerPosition != nil || e.DefenderPosition != nil) {
		attacker, defender := -1, -1
		if e.AttackerPosition != nil {
			attacker = *e.AttackerPosition
		}
		if e.DefenderPosition != nil {
			defender = *e.DefenderPosition
		}
		players := clonePlayers(s.Players)
		applyRolesByPosition(players, attacker, defender)
		next.Players = players
	}
	return next
}

// applyRolesByPosition derives the role flags from seat positions. A
// negative position means the role is vacant. Attacker and defender must
// differ; if the server ever reports the same seat for both, only the
// attacker flag is set.
func applyRolesByPosition(players []Player, attackerPos, defenderPos int) {
	if defenderPos == attackerPos {
		defenderPos = -1
	}
	for i := range players {
		players[i].IsAttacker = attackerPos >= 0 && players[i].Position == attackerPos
		players[i].IsDefender = defenderPos >= 0 && players[i].Position == defenderPos
	}
}

func applyRolesByID(players []Player, attackerID, defenderID string) {
	if defenderID == attackerID {
		defenderID = ""
	}
	for i := range players {
		players[i].IsAttacker = attackerID != "" && players[i].ID == attackerID
		players[i].IsDefender = defenderID != "" && players[i].ID == defenderID
	}
}

// removeCard removes at most one card matching by rank and suit.
func removeCard(hand []card.Card, c card.Card) []card.Card {
	out := make([]card.Card, 0, len(hand))
	removed := false
	for _, h := range hand {
		if !removed && h == c {
			removed = true
			continue
		}
		out = append(out, h)
	}
	return out
}

// dedupeByBase keeps the first pair for each base card. The server never
// sends duplicates; this only guards the local invariant.
func dedupeByBase(pairs []TablePair) []TablePair {
	seen := make(map[card.Card]bool, len(pairs))
	out := pairs[:0]
	for _, p := range pairs {
		if seen[p.Base] {
			continue
		}
		seen[p.Base] = true
		out = append(out, p)
	}
	return out
}
