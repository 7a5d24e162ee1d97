package engine

import "unicode"

// CurrentPlayer returns the player whose turn it is, or nil before the game starts.
func (g *GameState) CurrentPlayer() *Player {
	if g.Current < 0 || g.Current >= len(g.Players) {
		return nil
	}
	return &g.Players[g.Current]
}

// CurrentRoundConfig returns the active round's configuration.
func (g *GameState) CurrentRoundConfig() (RoundConfig, bool) {
	if g.CurrentRound < 0 || g.CurrentRound >= len(g.Rounds) {
		return RoundConfig{}, false
	}
	return g.Rounds[g.CurrentRound], true
}

// ActiveWheel returns the wheel for the current round type.
func (g *GameState) ActiveWheel() Wheel {
	if rc, ok := g.CurrentRoundConfig(); ok && rc.Type == RoundExpress {
		return ExpressWheel
	}
	return NormalWheel
}

// AllLettersRevealed reports whether every letter of the phrase is on the board.
func (g *GameState) AllLettersRevealed() bool {
	if g.Phrase == nil {
		return false
	}
	for r := range PhraseLetters(g.Phrase.Text) {
		if !g.Revealed.Has(r) {
			return false
		}
	}
	return true
}

// AllVowelsUsed reports whether every vowel has been revealed or bought.
func (g *GameState) AllVowelsUsed() bool {
	for _, v := range "AEIOU" {
		if !g.IsLetterUsed(v) {
			return false
		}
	}
	return true
}

// CanBuyVowel reports whether the current player may buy a vowel now.
func (g *GameState) CanBuyVowel() bool {
	p := g.CurrentPlayer()
	return p != nil && p.RoundScore >= g.Rules.VowelPrice && !g.AllVowelsUsed()
}

// AcceptsConsonant reports whether GuessConsonant would be considered now.
func (g *GameState) AcceptsConsonant() bool {
	if !g.acceptsInput() || (g.Turn != TurnConsonantGuess && g.Turn != TurnExpressGuess) {
		return false
	}
	return g.PendingValue != 0 || g.Express
}

// AcceptsVowelPurchase reports whether the vowel prompt may be opened now.
func (g *GameState) AcceptsVowelPurchase() bool {
	return g.acceptsInput() && (g.Turn == TurnAwaitingAction || g.Turn == TurnExpressGuess)
}

// AcceptsVowel reports whether BuyVowel would be considered now.
func (g *GameState) AcceptsVowel() bool {
	return g.AcceptsVowelPurchase() || (g.acceptsInput() && g.Turn == TurnVowelGuess)
}

// IsLetterUsed reports whether a normalized letter is revealed or already attempted.
func (g *GameState) IsLetterUsed(r rune) bool {
	return g.Revealed.Has(r) || g.UsedConsonants.Has(r) || g.UsedVowels.Has(r)
}

// IsRevealed reports whether a board cell is shown. Separators, lone
// apostrophes and punctuation are always shown.
func (g *GameState) IsRevealed(c BoardCell) bool {
	if !guessable(c) {
		return true
	}
	return g.Revealed.Has(NormalizeRune(c.Letter))
}

// guessable reports whether a cell hides a letter that can be called.
func guessable(c BoardCell) bool {
	return c.IsLetter() && unicode.IsLetter(NormalizeRune(c.Letter))
}

// SolveRemaining is the number of letters still to type while solving.
func (g *GameState) SolveRemaining() int {
	if g.Turn != TurnSolvingInteractive {
		return 0
	}
	return len(g.SolveSequence) - g.SolveIndex
}

// AvailableLetters returns the letters of the given class that have not been
// used this round, in alphabetical order.
func (g *GameState) AvailableLetters(vowels bool) []rune {
	var out []rune
	for r := 'A'; r <= 'Z'; r++ {
		if IsVowel(r) != vowels {
			continue
		}
		if !g.IsLetterUsed(r) {
			out = append(out, r)
		}
	}
	return out
}
