// Package game hosts one Ruota della Fortuna game: it owns the engine state
// behind a mutex, runs the delayed turn changes and the optional turn timer,
// and reports what happened through callbacks.
package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bitblaster/ruotafortuna/engine"
	"github.com/bitblaster/ruotafortuna/internal/history"
	"github.com/bitblaster/ruotafortuna/internal/preset"
	"github.com/bitblaster/ruotafortuna/internal/storage"
	"github.com/bitblaster/ruotafortuna/internal/wheel"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Sentinel errors for commands the session refuses before they reach the engine.
var (
	ErrNoGame            = errors.New("no game in progress")
	ErrInvalidSetup      = errors.New("invalid game setup")
	ErrNotConsonant      = errors.New("not a consonant")
	ErrNotVowel          = errors.New("not a vowel")
	ErrNotLetter         = errors.New("not a letter")
	ErrInsufficientScore = errors.New("round score too low to buy a vowel")
	ErrNoVowelsLeft      = errors.New("every vowel has been used")
	ErrLetterUsed        = errors.New("letter already called")
)

// storeTimeout bounds every store and history call made from the session.
const storeTimeout = 2 * time.Second

// GameEventType names a broadcast event. Engine events are passed through
// with their engine kind as type.
type GameEventType string

const (
	EventGameStart   GameEventType = "game_start"
	EventSpinResult  GameEventType = "spin_result"
	EventTurnTimeout GameEventType = "turn_timeout"
	EventSyncState   GameEventType = "sync_state"
	EventGameEnd     GameEventType = "game_end"
	EventGameReset   GameEventType = "game_reset"
)

// EventPlayer identifies the player an event is about.
type EventPlayer struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// GameEvent is the structure handed to BroadcastFn.
type GameEvent struct {
	Type    GameEventType  `json:"type"`
	Player  *EventPlayer   `json:"player,omitempty"`
	Letter  string         `json:"letter,omitempty"`
	Count   int            `json:"count,omitempty"`
	Points  int            `json:"points,omitempty"`
	Reason  string         `json:"reason,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`

	State *View `json:"state,omitempty"` // set on sync events
}

// Config wires a session to its collaborators. Nil stores and recorder
// disable persistence and history.
type Config struct {
	Rules       engine.HouseRules
	Seed        uint64
	Phrases     []engine.Phrase
	Wheels      wheel.Tables
	Spinner     wheel.Spinner
	UsedPhrases storage.UsedPhraseStore
	Results     storage.ResultStore
	History     history.Recorder
	Logger      logrus.FieldLogger
	TurnTimeout time.Duration // 0 disables the turn timer
}

// Result reports what a session command did.
type Result struct {
	Applied bool
	Cues    []engine.Cue
	Events  []engine.Event
	Spin    *SpinResult // set by Spin
}

// SpinResult is where the wheel stopped.
type SpinResult struct {
	Value   engine.WheelValue
	Segment int
}

// Session is a single game instance. Callbacks run with Mu held and must not
// call back into the session.
type Session struct {
	ID     uuid.UUID
	Engine engine.GameState // authoritative state
	Mu     sync.Mutex

	BroadcastFn func(ev GameEvent)
	CueFn       func(c engine.Cue)
	OnGameEnd   func(r storage.GameResult)

	cfg    Config
	logger logrus.FieldLogger
	log    *logrus.Entry

	followTimer *time.Timer
	turnTimer   *time.Timer
	timerGen    uint64 // generation the turn timer was armed for
	actionIndex int
}

// NewSession returns an idle session in the setup phase.
func NewSession(cfg Config) *Session {
	if cfg.Rules == (engine.HouseRules{}) {
		cfg.Rules = engine.DefaultHouseRules()
	}
	if cfg.Wheels.Normal == nil || cfg.Wheels.Express == nil {
		cfg.Wheels = wheel.DefaultTables()
	}
	if cfg.Spinner == nil {
		cfg.Spinner = wheel.NewRandomSpinner(cfg.Seed)
	}
	if cfg.History == nil {
		cfg.History = history.Nop{}
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		cfg.Logger = l
	}
	s := &Session{
		ID:     uuid.New(),
		Engine: engine.NewGame(cfg.Seed, cfg.Rules),
		cfg:    cfg,
		logger: cfg.Logger,
	}
	s.log = s.logger.WithField("game_id", s.ID)
	return s
}

// StartGame validates the preset, loads the used phrase ids and starts the
// first round. forced picks the first phrase by id when it exists.
func (s *Session) StartGame(ctx context.Context, p preset.Preset, forced *int) error {
	p = p.Normalized()
	if err := p.Validate(s.cfg.Rules); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSetup, err)
	}
	if len(s.cfg.Phrases) == 0 {
		return fmt.Errorf("%w: no phrases loaded", ErrInvalidSetup)
	}
	used := s.loadUsedPhrases(ctx)

	s.Mu.Lock()
	defer s.Mu.Unlock()

	s.stopTimers()
	s.ID = uuid.New()
	s.log = s.logger.WithField("game_id", s.ID)
	s.actionIndex = 0

	s.Engine.InitGame(p.Players(), p.Rounds, s.cfg.Phrases, p.HideCalledLetters, used)
	s.log.WithFields(logrus.Fields{
		"preset":  p.Name,
		"players": len(p.PlayerNames),
		"rounds":  len(p.Rounds),
	}).Info("game started")
	s.logAction(-1, string(EventGameStart), map[string]any{
		"preset":  p.Name,
		"players": p.PlayerNames,
		"rounds":  len(p.Rounds),
	})
	s.fireEvent(GameEvent{Type: EventGameStart, Payload: map[string]any{"preset": p.Name}})

	out := s.Engine.StartRound(forced)
	if !out.Applied {
		return fmt.Errorf("%w: could not start the first round", ErrInvalidSetup)
	}
	s.apply("round_start", out, nil)
	return nil
}

// NextRound moves on from a won round, ending the game after the last one.
func (s *Session) NextRound() (Result, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if err := s.requireGame(); err != nil {
		return Result{}, err
	}
	return s.apply("next_round", s.Engine.NextRound(), nil), nil
}

// Reset abandons the game and returns to setup.
func (s *Session) Reset() {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.stopTimers()
	s.Engine.Reset()
	s.log.Info("game reset")
	s.logAction(-1, string(EventGameReset), nil)
	s.fireEvent(GameEvent{Type: EventGameReset})
}

// Close stops pending timers. The session must not be used afterwards.
func (s *Session) Close() {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.stopTimers()
}

// State returns a deep copy of the engine state.
func (s *Session) State() engine.GameState {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.Engine.Clone()
}

// requireGame fails when no game has been started. Assumes lock held.
func (s *Session) requireGame() error {
	if s.Engine.Phase == engine.PhaseSetup {
		return ErrNoGame
	}
	return nil
}

func (s *Session) loadUsedPhrases(ctx context.Context) []int {
	if s.cfg.UsedPhrases == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	ids, err := s.cfg.UsedPhrases.LoadUsedPhrases(ctx)
	if err != nil {
		s.log.WithError(err).Warn("loading used phrases failed, starting with an empty set")
		return nil
	}
	return ids
}

// persistUsedPhrases saves the used id set. Failures are logged only.
// Assumes lock held.
func (s *Session) persistUsedPhrases() {
	if s.cfg.UsedPhrases == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := s.cfg.UsedPhrases.SaveUsedPhrases(ctx, s.Engine.UsedIDs()); err != nil {
		s.log.WithError(err).Error("saving used phrases failed")
	}
}

// endGame records the final standings. Assumes lock held.
func (s *Session) endGame() {
	s.stopTimers()
	result := storage.GameResult{
		ID:         s.ID,
		FinishedAt: time.Now().UTC(),
		Standings:  s.Engine.Standings(),
	}
	winner, _ := result.Winner()
	s.log.WithFields(logrus.Fields{"winner": winner.Name, "total": winner.TotalScore}).Info("game over")

	if s.cfg.Results != nil {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := s.cfg.Results.SaveResult(ctx, result); err != nil {
			s.log.WithError(err).Error("saving game result failed")
		}
	}

	standings := make([]map[string]any, len(result.Standings))
	for i, p := range result.Standings {
		standings[i] = map[string]any{"name": p.Name, "total": p.TotalScore}
	}
	payload := map[string]any{"winner": winner.Name, "standings": standings}
	s.logAction(-1, string(EventGameEnd), payload)
	s.fireEvent(GameEvent{Type: EventGameEnd, Points: winner.TotalScore, Payload: payload})
	if s.OnGameEnd != nil {
		s.OnGameEnd(result)
	}
}

// logAction sends the action to the history recorder in the background.
// Assumes lock held.
func (s *Session) logAction(player int, action string, payload map[string]any) {
	s.actionIndex++
	if payload == nil {
		payload = make(map[string]any)
	}
	rec := history.Record{
		GameID:    s.ID,
		Index:     s.actionIndex,
		Player:    player,
		Action:    action,
		Payload:   payload,
		Timestamp: time.Now().UnixMilli(),
	}
	go func(rec history.Record) {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := s.cfg.History.Record(ctx, rec); err != nil {
			s.logger.WithFields(logrus.Fields{
				"game_id": rec.GameID,
				"index":   rec.Index,
				"action":  rec.Action,
			}).WithError(err).Warn("recording action failed")
		}
	}(rec)
}

func (s *Session) fireEvent(ev GameEvent) {
	if s.BroadcastFn != nil {
		s.BroadcastFn(ev)
	}
}

func (s *Session) playCues(cues []engine.Cue) {
	if s.CueFn == nil {
		return
	}
	for _, c := range cues {
		s.CueFn(c)
	}
}

func (s *Session) eventPlayer(i int) *EventPlayer {
	if i < 0 || i >= len(s.Engine.Players) {
		return nil
	}
	return &EventPlayer{Index: i, Name: s.Engine.Players[i].Name}
}
