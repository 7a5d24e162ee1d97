package engine

// acceptsInput reports whether a player command may run at all.
func (g *GameState) acceptsInput() bool {
	return g.Phase == PhasePlaying && g.Phrase != nil && !g.AdvancePending && len(g.Players) > 0
}

func (g *GameState) player() *Player { return &g.Players[g.Current] }

// jollyInPlay reports whether the single Jolly has left the wheel.
func (g *GameState) jollyInPlay() bool {
	if g.JollyClaimed {
		return true
	}
	for _, p := range g.Players {
		if p.HasJolly {
			return true
		}
	}
	return false
}

// scheduleAdvance defers the turn change to the host. Cues are played when
// the follow-up is applied.
func (g *GameState) scheduleAdvance(out *Outcome, cues ...Cue) {
	g.AdvancePending = true
	out.Followup = &Followup{
		After:      g.Rules.PenaltyDelay,
		Generation: g.Generation,
		Cues:       cues,
	}
}

func (g *GameState) promptJolly(out *Outcome, reason JollyReason) {
	g.JollyReason = reason
	g.Turn = TurnJollyPrompt
	out.event(Event{Kind: EventJollyPrompt, Player: g.Current, Reason: reason})
}

// penalize handles a turn-losing outcome: Jolly holders are asked first,
// Express players lose their round score, everyone else just loses the turn.
func (g *GameState) penalize(out *Outcome, reason JollyReason) {
	if g.player().HasJolly {
		g.promptJolly(out, reason)
		return
	}
	if g.Express {
		g.player().RoundScore = 0
		g.Express = false
		out.event(Event{Kind: EventExpressFailed, Player: g.Current})
		g.scheduleAdvance(out, CueBankrupt)
		return
	}
	out.event(Event{Kind: EventTurnLost, Player: g.Current, Reason: reason})
	g.scheduleAdvance(out)
}

// BeginSpin marks the wheel as spinning.
func (g *GameState) BeginSpin() Outcome {
	var out Outcome
	if !g.acceptsInput() || g.Turn != TurnAwaitingAction {
		return out
	}
	g.Turn = TurnSpinning
	out.Applied = true
	return out
}

// HandleWheelResult resolves a spin. segment is the landing index on the
// active wheel; the Jolly segment only matters for numeric prizes.
func (g *GameState) HandleWheelResult(v WheelValue, segment int) Outcome {
	var out Outcome
	if !g.acceptsInput() || (g.Turn != TurnAwaitingAction && g.Turn != TurnSpinning) {
		return out
	}
	if v.Kind() == WheelKindPrize && v.Amount() <= 0 {
		return out
	}
	out.Applied = true
	p := g.player()

	switch v.Kind() {
	case WheelKindBankrupt:
		out.cue(CueBankrupt)
		if p.HasJolly {
			g.promptJolly(&out, JollyBankrupt)
			return out
		}
		p.RoundScore = 0
		out.event(Event{Kind: EventBankrupt, Player: g.Current})
		g.scheduleAdvance(&out)

	case WheelKindPass:
		out.cue(CuePass)
		if p.HasJolly {
			g.promptJolly(&out, JollyPass)
			return out
		}
		out.event(Event{Kind: EventPass, Player: g.Current})
		g.scheduleAdvance(&out)

	case WheelKindExpress:
		out.cue(CuePrize)
		g.Express = true
		g.PendingValue = g.Rules.ExpressPrize
		g.Turn = TurnExpressGuess
		out.event(Event{Kind: EventExpress, Player: g.Current, Points: g.Rules.ExpressPrize})

	default:
		if segment == g.Rules.JollySegment && !g.jollyInPlay() {
			out.cue(PrizeCue(g.Rules.JollyPrize))
			g.JollyPending = true
			g.PendingValue = g.Rules.JollyPrize
			out.event(Event{Kind: EventJollyChance, Player: g.Current, Points: g.Rules.JollyPrize})
		} else {
			out.cue(PrizeCue(v.Amount()))
			g.PendingValue = v.Amount()
			out.event(Event{Kind: EventPrize, Player: g.Current, Points: v.Amount()})
		}
		g.Turn = TurnConsonantGuess
	}
	return out
}

// GuessConsonant scores a called consonant against the phrase. The caller
// is responsible for rejecting vowels.
func (g *GameState) GuessConsonant(letter rune) Outcome {
	var out Outcome
	if !g.AcceptsConsonant() {
		return out
	}
	out.Applied = true
	n := NormalizeRune(letter)
	if g.Revealed.Has(n) || g.UsedConsonants.Has(n) {
		g.usedLetter(&out, n)
		return out
	}

	count := CountLetter(g.Phrase.Text, n)
	g.UsedConsonants.Add(n)
	if count == 0 {
		out.cue(CueError)
		g.JollyPending = false
		out.event(Event{Kind: EventLetterMissing, Player: g.Current, Letter: n})
		g.penalize(&out, JollyWrongLetter)
		return out
	}

	p := g.player()
	value := g.PendingValue
	if g.Express {
		value = g.Rules.ExpressPrize
	}
	points := value * count
	p.RoundScore += points
	g.Revealed.Add(n)
	out.cue(CueLetter)
	out.event(Event{Kind: EventLetterFound, Player: g.Current, Letter: n, Count: count, Points: points})
	if g.JollyPending {
		p.HasJolly = true
		g.JollyClaimed = true
		out.cue(CueJolly)
		out.event(Event{Kind: EventJollyGained, Player: g.Current})
	}
	g.JollyPending = false
	if !g.Express {
		g.PendingValue = 0
		g.Turn = TurnAwaitingAction
	}
	if g.AllLettersRevealed() {
		out.merge(g.WinRound())
	}
	return out
}

// BeginVowelPurchase opens the vowel prompt when the player can afford one.
func (g *GameState) BeginVowelPurchase() Outcome {
	var out Outcome
	if !g.AcceptsVowelPurchase() || !g.CanBuyVowel() {
		return out
	}
	g.Turn = TurnVowelGuess
	out.Applied = true
	return out
}

// CancelVowelPurchase closes the vowel prompt without charging.
func (g *GameState) CancelVowelPurchase() Outcome {
	var out Outcome
	if !g.acceptsInput() || g.Turn != TurnVowelGuess {
		return out
	}
	g.Turn = g.restingTurn()
	out.Applied = true
	return out
}

// restingTurn is where a turn returns to after a side prompt.
func (g *GameState) restingTurn() TurnPhase {
	if g.Express {
		return TurnExpressGuess
	}
	return TurnAwaitingAction
}

// BuyVowel charges the vowel price and reveals the vowel. The price is paid
// even when the vowel was already used.
func (g *GameState) BuyVowel(letter rune) Outcome {
	var out Outcome
	if !g.AcceptsVowel() {
		return out
	}
	out.Applied = true
	n := NormalizeRune(letter)
	g.player().RoundScore -= g.Rules.VowelPrice
	if g.Revealed.Has(n) || g.UsedVowels.Has(n) {
		g.usedLetter(&out, n)
		return out
	}

	g.UsedVowels.Add(n)
	count := CountLetter(g.Phrase.Text, n)
	g.Turn = g.restingTurn()
	if count == 0 {
		out.cue(CueError)
		out.event(Event{Kind: EventLetterMissing, Player: g.Current, Letter: n, Points: -g.Rules.VowelPrice})
		return out
	}
	g.Revealed.Add(n)
	out.cue(CueLetter)
	out.event(Event{Kind: EventLetterFound, Player: g.Current, Letter: n, Count: count, Points: -g.Rules.VowelPrice})
	if g.AllLettersRevealed() {
		out.merge(g.WinRound())
	}
	return out
}

// usedLetter penalizes calling a letter that is already revealed or attempted.
func (g *GameState) usedLetter(out *Outcome, n rune) {
	out.cue(CueError)
	g.JollyPending = false
	out.event(Event{Kind: EventLetterUsed, Player: g.Current, Letter: n})
	g.penalize(out, JollyUsedLetter)
}

// UseJolly spends the current player's Jolly to keep the turn.
func (g *GameState) UseJolly() Outcome {
	var out Outcome
	if !g.acceptsInput() || g.Turn != TurnJollyPrompt || !g.player().HasJolly {
		return out
	}
	g.player().HasJolly = false
	out.event(Event{Kind: EventJollyUsed, Player: g.Current, Reason: g.JollyReason})
	g.JollyReason = JollyNone
	g.Turn = g.restingTurn()
	out.Applied = true
	return out
}

// DeclineJolly keeps the Jolly and accepts the penalty that opened the prompt.
func (g *GameState) DeclineJolly() Outcome {
	var out Outcome
	if !g.acceptsInput() || g.Turn != TurnJollyPrompt {
		return out
	}
	out.Applied = true
	reason := g.JollyReason
	g.JollyReason = JollyNone
	switch {
	case reason == JollyBankrupt:
		g.player().RoundScore = 0
		out.event(Event{Kind: EventBankrupt, Player: g.Current})
		g.scheduleAdvance(&out)
	case g.Express:
		g.player().RoundScore = 0
		g.Express = false
		out.event(Event{Kind: EventExpressFailed, Player: g.Current})
		g.scheduleAdvance(&out)
	default:
		out.merge(g.NextPlayer())
	}
	return out
}

// ExpireTurn ends the turn of a player who ran out of time. An open solve is
// cancelled first. A pending Jolly prompt counts as declined; otherwise the
// timeout is penalized like a missed letter, so a Jolly holder is asked and
// an Express player loses the round score.
func (g *GameState) ExpireTurn() Outcome {
	var out Outcome
	if !g.acceptsInput() {
		return out
	}
	if g.Turn == TurnSolvingInteractive {
		out.merge(g.CancelSolving())
	}
	if g.Turn == TurnJollyPrompt {
		out.merge(g.DeclineJolly())
		out.Applied = true
		return out
	}
	out.Applied = true
	g.JollyPending = false
	g.PendingValue = 0
	if !g.Express {
		g.Turn = TurnAwaitingAction
	}
	g.penalize(&out, JollyTimeout)
	return out
}

// NextPlayer hands the turn to the next player and clears turn state.
// Any outstanding Followup becomes void.
func (g *GameState) NextPlayer() Outcome {
	var out Outcome
	if g.Phase != PhasePlaying || len(g.Players) == 0 {
		return out
	}
	g.Current = (g.Current + 1) % len(g.Players)
	g.Turn = TurnAwaitingAction
	g.PendingValue = 0
	g.Express = false
	g.JollyPending = false
	g.JollyReason = JollyNone
	g.AdvancePending = false
	g.clearSolve()
	g.Generation++
	out.Applied = true
	out.event(Event{Kind: EventNextPlayer, Player: g.Current})
	return out
}

// ApplyFollowup performs a scheduled turn change. Stale follow-ups, from an
// earlier generation or after the round ended, are ignored.
func (g *GameState) ApplyFollowup(f Followup) Outcome {
	if f.Generation != g.Generation || !g.AdvancePending || g.Phase != PhasePlaying {
		return Outcome{}
	}
	out := Outcome{Cues: append([]Cue(nil), f.Cues...)}
	out.merge(g.NextPlayer())
	out.Applied = true
	return out
}
