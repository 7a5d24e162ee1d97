package game

import (
	"unicode"

	"github.com/bitblaster/ruotafortuna/engine"
)

// UseJolly spends the current player's Jolly to cancel the loss that opened
// the prompt.
func (s *Session) UseJolly() (Result, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if err := s.requireGame(); err != nil {
		return Result{}, err
	}
	reason := s.Engine.JollyReason.String()
	return s.apply("jolly_use", s.Engine.UseJolly(), map[string]any{"reason": reason}), nil
}

// DeclineJolly keeps the Jolly and accepts the loss.
func (s *Session) DeclineJolly() (Result, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if err := s.requireGame(); err != nil {
		return Result{}, err
	}
	reason := s.Engine.JollyReason.String()
	return s.apply("jolly_decline", s.Engine.DeclineJolly(), map[string]any{"reason": reason}), nil
}

// StartSolving begins an interactive solve.
func (s *Session) StartSolving() (Result, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if err := s.requireGame(); err != nil {
		return Result{}, err
	}
	return s.apply("solve_start", s.Engine.StartSolving(), nil), nil
}

// SolveLetter types the next hidden letter of the solve. A wrong letter
// ends the attempt.
func (s *Session) SolveLetter(letter string) (Result, error) {
	n := engine.NormalizeLetter(letter)
	if !unicode.IsLetter(n) {
		return Result{}, ErrNotLetter
	}

	s.Mu.Lock()
	defer s.Mu.Unlock()
	if err := s.requireGame(); err != nil {
		return Result{}, err
	}
	return s.apply("solve_letter", s.Engine.SolveLetterAttempt(n), map[string]any{"letter": string(n)}), nil
}

// CancelSolving abandons the solve and restores the board.
func (s *Session) CancelSolving() (Result, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if err := s.requireGame(); err != nil {
		return Result{}, err
	}
	return s.apply("solve_cancel", s.Engine.CancelSolving(), nil), nil
}
