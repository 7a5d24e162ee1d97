package engine

import (
	"strconv"
	"time"
)

// Phrase is one entry of the phrase list. Immutable once loaded.
type Phrase struct {
	ID          int    `json:"id" yaml:"id"`
	Text        string `json:"phrase" yaml:"phrase"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
}

// Player holds one contestant's scores and Jolly token.
type Player struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	RoundScore int    `json:"roundScore"`
	TotalScore int    `json:"totalScore"`
	HasJolly   bool   `json:"hasJolly"`
}

// RoundType selects which wheel a round is played with.
type RoundType string

const (
	RoundNormal  RoundType = "normal"
	RoundExpress RoundType = "express"
)

// AnyCategory in a RoundConfig draws from every category.
const AnyCategory = "any"

// RoundConfig is supplied at game start and read-only during play.
type RoundConfig struct {
	Type     RoundType `json:"type" yaml:"type"`
	Category string    `json:"category" yaml:"category"`
}

// GamePhase is the overall position of the game.
type GamePhase string

const (
	PhaseSetup    GamePhase = "setup"
	PhasePlaying  GamePhase = "playing"
	PhaseRoundEnd GamePhase = "round-end"
	PhaseGameOver GamePhase = "game-over"
)

// TurnPhase is the position within a single player's turn.
type TurnPhase string

const (
	TurnAwaitingAction     TurnPhase = "awaiting-action"
	TurnSpinning           TurnPhase = "spinning"
	TurnConsonantGuess     TurnPhase = "consonant-guess"
	TurnVowelGuess         TurnPhase = "vowel-guess"
	TurnExpressGuess       TurnPhase = "express-guess"
	TurnJollyPrompt        TurnPhase = "jolly-prompt"
	TurnSolvingInteractive TurnPhase = "solving-interactive"
)

// JollyReason records which outcome opened the Jolly prompt.
type JollyReason uint8

const (
	JollyNone JollyReason = iota
	JollyBankrupt
	JollyPass
	JollyWrongLetter
	JollyUsedLetter
	JollyTimeout
)

func (r JollyReason) String() string {
	switch r {
	case JollyBankrupt:
		return "bankrupt"
	case JollyPass:
		return "pass"
	case JollyWrongLetter:
		return "wrong-letter"
	case JollyUsedLetter:
		return "used-letter"
	case JollyTimeout:
		return "timeout"
	default:
		return "none"
	}
}

// ---------------------------------------------------------------------------
// Wheel outcomes
// ---------------------------------------------------------------------------

// WheelKind discriminates the closed set of spin outcomes.
type WheelKind uint8

const (
	WheelKindPrize WheelKind = iota
	WheelKindBankrupt
	WheelKindPass
	WheelKindExpress
)

// WheelValue is a single spin outcome: a prize amount or one of the symbolic results.
type WheelValue struct {
	kind   WheelKind
	amount int
}

var (
	WheelBankrupt = WheelValue{kind: WheelKindBankrupt}
	WheelPass     = WheelValue{kind: WheelKindPass}
	WheelExpress  = WheelValue{kind: WheelKindExpress}
)

// WheelPrize returns a numeric prize outcome.
func WheelPrize(amount int) WheelValue {
	return WheelValue{kind: WheelKindPrize, amount: amount}
}

func (v WheelValue) Kind() WheelKind { return v.kind }

// Amount is the prize for WheelKindPrize and 0 otherwise.
func (v WheelValue) Amount() int { return v.amount }

func (v WheelValue) String() string {
	switch v.kind {
	case WheelKindBankrupt:
		return "BANKRUPT"
	case WheelKindPass:
		return "PASS"
	case WheelKindExpress:
		return "EXPRESS"
	default:
		return strconv.Itoa(v.amount)
	}
}

// ---------------------------------------------------------------------------
// Cues, events and follow-ups
// ---------------------------------------------------------------------------

// Cue is a fire-and-forget feedback key. Playback is the host's business.
type Cue string

const (
	CueBankrupt Cue = "bankrupt"
	CuePass     Cue = "pass"
	CueError    Cue = "error"
	CueLetter   Cue = "letter"
	CueJolly    Cue = "jolly"
	CuePrize    Cue = "prize"
	CueHigh     Cue = "high"
)

// PrizeCue returns the tier cue for a numeric prize ("s300", or "high" from 1000 up).
func PrizeCue(amount int) Cue {
	if amount >= 1000 {
		return CueHigh
	}
	return Cue("s" + strconv.Itoa(amount))
}

// EventKind classifies what a command did.
type EventKind string

const (
	EventRoundStarted   EventKind = "round-started"
	EventBankrupt       EventKind = "bankrupt"
	EventPass           EventKind = "pass"
	EventExpress        EventKind = "express"
	EventJollyChance    EventKind = "jolly-chance"
	EventPrize          EventKind = "prize"
	EventJollyPrompt    EventKind = "jolly-prompt"
	EventLetterFound    EventKind = "letter-found"
	EventLetterMissing  EventKind = "letter-missing"
	EventLetterUsed     EventKind = "letter-used"
	EventJollyGained    EventKind = "jolly-gained"
	EventJollyUsed      EventKind = "jolly-used"
	EventExpressFailed  EventKind = "express-failed"
	EventTurnLost       EventKind = "turn-lost"
	EventNextPlayer     EventKind = "next-player"
	EventRoundWon       EventKind = "round-won"
	EventGameOver       EventKind = "game-over"
	EventSolveStarted   EventKind = "solve-started"
	EventSolveCorrect   EventKind = "solve-correct"
	EventSolveWrong     EventKind = "solve-wrong"
	EventSolveCancelled EventKind = "solve-cancelled"
)

// Event is a structured description of a state change, formatted by the UI.
type Event struct {
	Kind   EventKind
	Player int // index into GameState.Players
	Letter rune
	Count  int
	Points int
	Reason JollyReason
}

// Followup asks the host to apply the next-player transition after a pause.
// It is void once Generation no longer matches the game's.
type Followup struct {
	After      time.Duration
	Generation uint64
	Cues       []Cue // played when the follow-up is applied
}

// Outcome is the result of a command. Applied is false for invalid-phase no-ops.
type Outcome struct {
	Applied  bool
	Cues     []Cue
	Events   []Event
	Followup *Followup
	RoundWon bool
}

func (o *Outcome) cue(c ...Cue) { o.Cues = append(o.Cues, c...) }

func (o *Outcome) event(e Event) { o.Events = append(o.Events, e) }

func (o *Outcome) merge(x Outcome) {
	o.Cues = append(o.Cues, x.Cues...)
	o.Events = append(o.Events, x.Events...)
	if x.Followup != nil {
		o.Followup = x.Followup
	}
	o.RoundWon = o.RoundWon || x.RoundWon
}
