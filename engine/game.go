// Package engine implements the rules of the wheel-and-phrase guessing game.
//
// It holds two pieces: the board layout, a pure function from phrase text to
// a fixed 4-row grid with stable letter indices, and the game state machine,
// which owns every game, round and turn field and exposes commands that
// transition it. Nothing in this package blocks, sleeps or does I/O; pauses
// are returned to the host as Followup requests.
package engine

import "sort"

// LetterSet is a set of normalized letters.
type LetterSet map[rune]struct{}

// Has reports whether r is in the set.
func (s LetterSet) Has(r rune) bool {
	_, ok := s[r]
	return ok
}

// Add inserts r.
func (s LetterSet) Add(r rune) { s[r] = struct{}{} }

// Clone returns an independent copy.
func (s LetterSet) Clone() LetterSet {
	out := make(LetterSet, len(s))
	for r := range s {
		out[r] = struct{}{}
	}
	return out
}

// Sorted returns the letters in ascending order.
func (s LetterSet) Sorted() []rune {
	out := make([]rune, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// GameState is the aggregate root of one game. It is not safe for concurrent
// use; the host issues one command at a time.
type GameState struct {
	Phase GamePhase
	Turn  TurnPhase

	Players []Player
	Current int // index of the player whose turn it is

	Rounds       []RoundConfig
	CurrentRound int
	Phrases      []Phrase
	Phrase       *Phrase // active phrase, nil outside a round

	Revealed       LetterSet // letters shown on the board
	UsedConsonants LetterSet // consonants attempted this round, found or not
	UsedVowels     LetterSet // vowels bought this round, found or not

	PendingValue int  // wheel value awaiting a consonant; 0 when none
	Express      bool // Express mode is active for the current turn

	JollyReason  JollyReason
	JollyPending bool // a correct consonant now grants the Jolly
	JollyClaimed bool // some player has ever been granted the Jolly

	HideCalledLetters bool
	UsedPhraseIDs     map[int]struct{}

	SolveSequence []BoardCell
	SolveIndex    int
	SolveSnapshot LetterSet

	// Generation changes whenever a turn, round or game boundary is crossed;
	// a Followup stamped with an older generation is void.
	Generation     uint64
	AdvancePending bool // a Followup is outstanding; player commands are ignored

	RNG   uint64
	Rules HouseRules
}

// ---------------------------------------------------------------------------
// xorshift64 RNG, inline.
// ---------------------------------------------------------------------------

func (g *GameState) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

// randN returns a random number in [0, n).
func (g *GameState) randN(n uint64) uint64 {
	return g.nextRand() % n
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

// NewGame returns an empty game in the setup phase.
func NewGame(seed uint64, rules HouseRules) GameState {
	var g GameState
	g.RNG = seed
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}
	g.Rules = rules
	g.clear()
	return g
}

// clear drops everything except the RNG, rules and generation.
func (g *GameState) clear() {
	g.Phase = PhaseSetup
	g.Turn = TurnAwaitingAction
	g.Players = nil
	g.Current = 0
	g.Rounds = nil
	g.CurrentRound = 0
	g.Phrases = nil
	g.Phrase = nil
	g.Revealed = LetterSet{}
	g.UsedConsonants = LetterSet{}
	g.UsedVowels = LetterSet{}
	g.PendingValue = 0
	g.Express = false
	g.JollyReason = JollyNone
	g.JollyPending = false
	g.JollyClaimed = false
	g.HideCalledLetters = false
	g.UsedPhraseIDs = map[int]struct{}{}
	g.clearSolve()
	g.AdvancePending = false
}

// InitGame seeds players, rounds and phrases and loads the persisted set of
// used phrase ids. Player count is the caller's to validate.
func (g *GameState) InitGame(players []Player, rounds []RoundConfig, phrases []Phrase, hideCalledLetters bool, usedIDs []int) {
	g.clear()
	g.Players = append([]Player(nil), players...)
	g.Rounds = append([]RoundConfig(nil), rounds...)
	g.Phrases = append([]Phrase(nil), phrases...)
	g.HideCalledLetters = hideCalledLetters
	for _, id := range usedIDs {
		g.UsedPhraseIDs[id] = struct{}{}
	}
	g.Generation++
}

// Reset returns to setup, discarding players, rounds and all round state.
// Any outstanding Followup becomes void.
func (g *GameState) Reset() {
	g.clear()
	g.Generation++
}

// StartRound draws the phrase for the current round and resets the round
// trackers. forced selects a phrase by id when it exists.
func (g *GameState) StartRound(forced *int) Outcome {
	var out Outcome
	if g.Phase != PhaseSetup && g.Phase != PhaseRoundEnd {
		return out
	}
	if len(g.Phrases) == 0 || g.CurrentRound >= len(g.Rounds) || len(g.Players) == 0 {
		return out
	}

	var phrase *Phrase
	if forced != nil {
		for i := range g.Phrases {
			if g.Phrases[i].ID == *forced {
				phrase = &g.Phrases[i]
				break
			}
		}
	}
	if phrase == nil {
		phrase = g.selectPhrase(g.Rounds[g.CurrentRound].Category)
	}
	g.UsedPhraseIDs[phrase.ID] = struct{}{}

	p := *phrase
	g.Phrase = &p
	g.Phase = PhasePlaying
	g.Turn = TurnAwaitingAction
	g.Current = 0
	g.Revealed = LetterSet{}
	g.UsedConsonants = LetterSet{}
	g.UsedVowels = LetterSet{}
	g.PendingValue = 0
	g.Express = false
	g.JollyReason = JollyNone
	g.JollyPending = false
	g.AdvancePending = false
	g.clearSolve()
	for i := range g.Players {
		g.Players[i].RoundScore = 0
	}
	g.Generation++

	out.Applied = true
	out.event(Event{Kind: EventRoundStarted, Player: g.Current})
	return out
}

// selectPhrase picks uniformly from the unused phrases of category, widening
// the pool step by step: any unused phrase, then (after forgetting every used
// id) the category, then everything.
func (g *GameState) selectPhrase(category string) *Phrase {
	pool := g.pool(category, true)
	if len(pool) == 0 {
		pool = g.pool(AnyCategory, true)
	}
	if len(pool) == 0 {
		g.UsedPhraseIDs = map[int]struct{}{}
		pool = g.pool(category, false)
		if len(pool) == 0 {
			pool = g.pool(AnyCategory, false)
		}
	}
	return pool[g.randN(uint64(len(pool)))]
}

func (g *GameState) pool(category string, skipUsed bool) []*Phrase {
	var out []*Phrase
	for i := range g.Phrases {
		p := &g.Phrases[i]
		if category != AnyCategory && p.Category != category {
			continue
		}
		if skipUsed {
			if _, used := g.UsedPhraseIDs[p.ID]; used {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// NextRound moves past a finished round: game over when none remain,
// otherwise the next round starts.
func (g *GameState) NextRound() Outcome {
	var out Outcome
	if g.Phase != PhaseRoundEnd {
		return out
	}
	if g.CurrentRound+1 >= len(g.Rounds) {
		g.Phase = PhaseGameOver
		g.Generation++
		out.Applied = true
		out.event(Event{Kind: EventGameOver, Player: g.winnerIndex()})
		return out
	}
	g.CurrentRound++
	return g.StartRound(nil)
}

// UsedIDs returns the used phrase ids in ascending order, for persistence.
func (g *GameState) UsedIDs() []int {
	out := make([]int, 0, len(g.UsedPhraseIDs))
	for id := range g.UsedPhraseIDs {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Clone returns a deep copy that shares nothing mutable with g.
func (g *GameState) Clone() GameState {
	c := *g
	c.Players = append([]Player(nil), g.Players...)
	c.Rounds = append([]RoundConfig(nil), g.Rounds...)
	c.Phrases = append([]Phrase(nil), g.Phrases...)
	if g.Phrase != nil {
		p := *g.Phrase
		c.Phrase = &p
	}
	c.Revealed = g.Revealed.Clone()
	c.UsedConsonants = g.UsedConsonants.Clone()
	c.UsedVowels = g.UsedVowels.Clone()
	c.UsedPhraseIDs = make(map[int]struct{}, len(g.UsedPhraseIDs))
	for id := range g.UsedPhraseIDs {
		c.UsedPhraseIDs[id] = struct{}{}
	}
	c.SolveSequence = append([]BoardCell(nil), g.SolveSequence...)
	if g.SolveSnapshot != nil {
		c.SolveSnapshot = g.SolveSnapshot.Clone()
	}
	return c
}
