package engine

import "sort"

// WinRound credits the current player's round score to their total and
// reveals the whole phrase. The round score stays visible until the next
// round starts.
func (g *GameState) WinRound() Outcome {
	var out Outcome
	if g.Phase != PhasePlaying || g.Phrase == nil || len(g.Players) == 0 {
		return out
	}
	p := g.player()
	p.TotalScore += p.RoundScore
	g.Revealed = LetterSet(PhraseLetters(g.Phrase.Text))
	g.Phase = PhaseRoundEnd
	g.Turn = TurnAwaitingAction
	g.PendingValue = 0
	g.Express = false
	g.JollyPending = false
	g.JollyReason = JollyNone
	g.AdvancePending = false
	g.clearSolve()
	g.Generation++

	out.Applied = true
	out.RoundWon = true
	out.event(Event{Kind: EventRoundWon, Player: g.Current, Points: p.RoundScore})
	return out
}

// Standings returns the players ordered by total score, highest first.
// Equal totals keep seating order.
func (g *GameState) Standings() []Player {
	out := append([]Player(nil), g.Players...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalScore > out[j].TotalScore
	})
	return out
}

// Winner returns the leading player, or false when there are no players.
func (g *GameState) Winner() (Player, bool) {
	i := g.winnerIndex()
	if i < 0 {
		return Player{}, false
	}
	return g.Players[i], true
}

// winnerIndex is the index of the first player with the highest total, or -1.
func (g *GameState) winnerIndex() int {
	best := -1
	for i, p := range g.Players {
		if best < 0 || p.TotalScore > g.Players[best].TotalScore {
			best = i
		}
	}
	return best
}
