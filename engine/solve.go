package engine

// Interactive solving: the player types the hidden letters one by one in
// board order. A wrong letter restores the board as it was when solving began.

func (g *GameState) clearSolve() {
	g.SolveSequence = nil
	g.SolveIndex = 0
	g.SolveSnapshot = nil
}

// StartSolving builds the ordered sequence of hidden letter cells and
// snapshots the revealed set. With nothing hidden the round is won at once.
func (g *GameState) StartSolving() Outcome {
	var out Outcome
	if !g.acceptsInput() || (g.Turn != TurnAwaitingAction && g.Turn != TurnExpressGuess) {
		return out
	}
	out.Applied = true

	var seq []BoardCell
	for _, cell := range Layout(g.Phrase.Text).LetterCells() {
		if guessable(cell) && !g.Revealed.Has(NormalizeRune(cell.Letter)) {
			seq = append(seq, cell)
		}
	}
	if len(seq) == 0 {
		out.merge(g.WinRound())
		return out
	}

	g.SolveSequence = seq
	g.SolveIndex = 0
	g.SolveSnapshot = g.Revealed.Clone()
	g.Turn = TurnSolvingInteractive
	out.event(Event{Kind: EventSolveStarted, Player: g.Current, Count: len(seq)})
	return out
}

// SolveLetterAttempt checks one typed letter against the next hidden cell.
func (g *GameState) SolveLetterAttempt(letter rune) Outcome {
	var out Outcome
	if !g.acceptsInput() || g.Turn != TurnSolvingInteractive || g.SolveIndex >= len(g.SolveSequence) {
		return out
	}
	out.Applied = true
	n := NormalizeRune(letter)
	want := NormalizeRune(g.SolveSequence[g.SolveIndex].Letter)

	if n != want {
		g.Revealed = g.SolveSnapshot
		g.clearSolve()
		g.Turn = TurnAwaitingAction
		out.cue(CueError)
		out.event(Event{Kind: EventSolveWrong, Player: g.Current, Letter: n})
		if g.Express {
			g.player().RoundScore = 0
			g.Express = false
			out.event(Event{Kind: EventExpressFailed, Player: g.Current})
		}
		g.scheduleAdvance(&out)
		return out
	}

	g.Revealed.Add(n)
	g.SolveIndex++
	out.cue(CueLetter)
	out.event(Event{Kind: EventSolveCorrect, Player: g.Current, Letter: n, Count: len(g.SolveSequence) - g.SolveIndex})
	if g.SolveIndex >= len(g.SolveSequence) {
		out.merge(g.WinRound())
	}
	return out
}

// CancelSolving abandons the attempt and restores the board.
func (g *GameState) CancelSolving() Outcome {
	var out Outcome
	if !g.acceptsInput() || g.Turn != TurnSolvingInteractive {
		return out
	}
	if g.SolveSnapshot != nil {
		g.Revealed = g.SolveSnapshot
	}
	g.clearSolve()
	g.Turn = g.restingTurn()
	out.Applied = true
	out.event(Event{Kind: EventSolveCancelled, Player: g.Current})
	return out
}
