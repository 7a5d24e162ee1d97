package game

import (
	"time"

	"github.com/bitblaster/ruotafortuna/engine"
	"github.com/sirupsen/logrus"
)

// apply pushes an engine outcome through the session: history, cues,
// events, the delayed turn change, persistence at round and game boundaries,
// and the turn timer. Assumes lock held.
func (s *Session) apply(action string, out engine.Outcome, payload map[string]any) Result {
	res := Result{Applied: out.Applied, Cues: out.Cues, Events: out.Events}
	if !out.Applied {
		s.log.WithFields(logrus.Fields{
			"action": action,
			"phase":  s.Engine.Phase,
			"turn":   s.Engine.Turn,
		}).Debug("command ignored")
		return res
	}

	s.logAction(s.Engine.Current, action, payload)
	s.playCues(out.Cues)
	for _, e := range out.Events {
		s.fireEvent(s.translateEvent(e))
	}
	if out.Followup != nil {
		s.scheduleFollowup(*out.Followup)
	}

	for _, e := range out.Events {
		switch e.Kind {
		case engine.EventRoundStarted:
			s.log.WithFields(logrus.Fields{
				"round":  s.Engine.CurrentRound + 1,
				"phrase": s.Engine.Phrase.ID,
			}).Info("round started")
			s.persistUsedPhrases()
		case engine.EventRoundWon:
			s.log.WithFields(logrus.Fields{
				"round":  s.Engine.CurrentRound + 1,
				"player": e.Player,
				"points": e.Points,
			}).Info("round won")
		case engine.EventGameOver:
			s.endGame()
		}
	}

	s.armTurnTimer()
	s.broadcastSyncState()
	return res
}

func (s *Session) translateEvent(e engine.Event) GameEvent {
	ev := GameEvent{
		Type:   GameEventType(e.Kind),
		Player: s.eventPlayer(e.Player),
		Count:  e.Count,
		Points: e.Points,
	}
	if e.Letter != 0 {
		ev.Letter = string(e.Letter)
	}
	if e.Reason != engine.JollyNone {
		ev.Reason = e.Reason.String()
	}
	return ev
}

func (s *Session) broadcastSyncState() {
	if s.BroadcastFn == nil {
		return
	}
	v := s.buildView()
	s.fireEvent(GameEvent{Type: EventSyncState, State: &v})
}

// scheduleFollowup applies the pending turn change after its delay unless
// the game has moved on. Assumes lock held.
func (s *Session) scheduleFollowup(f engine.Followup) {
	if s.followTimer != nil {
		s.followTimer.Stop()
	}
	s.followTimer = time.AfterFunc(f.After, func() {
		go func(expected uint64) {
			s.Mu.Lock()
			defer s.Mu.Unlock()

			if s.Engine.Generation != expected {
				s.log.WithField("generation", expected).Debug("stale follow-up dropped")
				return
			}
			s.apply("advance", s.Engine.ApplyFollowup(f), nil)
		}(f.Generation)
	})
}

// armTurnTimer starts the turn timer whenever a new turn begins and stops it
// while no player input is expected. Assumes lock held.
func (s *Session) armTurnTimer() {
	waiting := s.Engine.Phase == engine.PhasePlaying && !s.Engine.AdvancePending
	if !waiting || s.cfg.TurnTimeout <= 0 {
		s.stopTurnTimer()
		return
	}
	if s.turnTimer != nil && s.timerGen == s.Engine.Generation {
		return
	}
	s.stopTurnTimer()
	gen := s.Engine.Generation
	s.timerGen = gen
	s.turnTimer = time.AfterFunc(s.cfg.TurnTimeout, func() {
		go func(expected uint64) {
			s.Mu.Lock()
			defer s.Mu.Unlock()

			valid := s.Engine.Phase == engine.PhasePlaying &&
				!s.Engine.AdvancePending &&
				s.Engine.Generation == expected
			if !valid {
				s.log.WithField("generation", expected).Debug("stale turn timer ignored")
				return
			}
			s.handleTimeout()
		}(gen)
	})
}

// handleTimeout penalizes a player who took too long. Assumes lock held.
func (s *Session) handleTimeout() {
	s.turnTimer = nil
	cur := s.Engine.Current
	turn := s.Engine.Turn
	s.log.WithFields(logrus.Fields{"player": cur, "turn": turn}).Info("turn timed out")
	s.fireEvent(GameEvent{Type: EventTurnTimeout, Player: s.eventPlayer(cur)})
	s.apply(string(EventTurnTimeout), s.Engine.ExpireTurn(), map[string]any{"turn": string(turn)})
}

func (s *Session) stopTurnTimer() {
	if s.turnTimer != nil {
		s.turnTimer.Stop()
		s.turnTimer = nil
	}
}

func (s *Session) stopTimers() {
	if s.followTimer != nil {
		s.followTimer.Stop()
		s.followTimer = nil
	}
	s.stopTurnTimer()
}
