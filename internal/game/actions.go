package game

import (
	"github.com/bitblaster/ruotafortuna/engine"
	"github.com/bitblaster/ruotafortuna/internal/wheel"
)

// Spin turns the wheel of the current round and resolves where it stops.
func (s *Session) Spin() (Result, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if err := s.requireGame(); err != nil {
		return Result{}, err
	}

	begin := s.Engine.BeginSpin()
	if !begin.Applied {
		return s.apply("spin", begin, nil), nil
	}
	rc, _ := s.Engine.CurrentRoundConfig()
	v, seg := wheel.Land(s.cfg.Spinner, s.cfg.Wheels.For(rc.Type))
	payload := map[string]any{"value": v.String(), "segment": seg}
	s.fireEvent(GameEvent{
		Type:    EventSpinResult,
		Player:  s.eventPlayer(s.Engine.Current),
		Points:  v.Amount(),
		Payload: payload,
	})

	res := s.apply("spin", s.Engine.HandleWheelResult(v, seg), payload)
	res.Spin = &SpinResult{Value: v, Segment: seg}
	return res, nil
}

// GuessConsonant calls a consonant after a spin or during Express. Out of
// turn the call is ignored. Letters already called are refused unless the
// panel hides them, in which case the engine punishes the repeat.
func (s *Session) GuessConsonant(letter string) (Result, error) {
	n := engine.NormalizeLetter(letter)
	if !engine.IsConsonant(n) {
		return Result{}, ErrNotConsonant
	}

	s.Mu.Lock()
	defer s.Mu.Unlock()
	if err := s.requireGame(); err != nil {
		return Result{}, err
	}
	if s.Engine.AcceptsConsonant() && s.Engine.IsLetterUsed(n) && !s.Engine.HideCalledLetters {
		return Result{}, ErrLetterUsed
	}
	return s.apply("guess_consonant", s.Engine.GuessConsonant(n), map[string]any{"letter": string(n)}), nil
}

// BeginVowelPurchase opens the vowel prompt.
func (s *Session) BeginVowelPurchase() (Result, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if err := s.requireGame(); err != nil {
		return Result{}, err
	}
	if s.Engine.AcceptsVowelPurchase() {
		if err := s.checkVowelPurchase(); err != nil {
			return Result{}, err
		}
	}
	return s.apply("vowel_begin", s.Engine.BeginVowelPurchase(), nil), nil
}

// CancelVowelPurchase closes the vowel prompt without paying.
func (s *Session) CancelVowelPurchase() (Result, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if err := s.requireGame(); err != nil {
		return Result{}, err
	}
	return s.apply("vowel_cancel", s.Engine.CancelVowelPurchase(), nil), nil
}

// BuyVowel pays the vowel price and reveals the vowel. Out of turn the call
// is ignored; otherwise the score and used-letter guards apply.
func (s *Session) BuyVowel(letter string) (Result, error) {
	n := engine.NormalizeLetter(letter)
	if !engine.IsVowel(n) {
		return Result{}, ErrNotVowel
	}

	s.Mu.Lock()
	defer s.Mu.Unlock()
	if err := s.requireGame(); err != nil {
		return Result{}, err
	}
	if s.Engine.AcceptsVowel() {
		if p := s.Engine.CurrentPlayer(); p == nil || p.RoundScore < s.cfg.Rules.VowelPrice {
			return Result{}, ErrInsufficientScore
		}
		if s.Engine.IsLetterUsed(n) && !s.Engine.HideCalledLetters {
			return Result{}, ErrLetterUsed
		}
	}
	return s.apply("buy_vowel", s.Engine.BuyVowel(n), map[string]any{"letter": string(n)}), nil
}

// checkVowelPurchase applies the purchase guard. Assumes lock held.
func (s *Session) checkVowelPurchase() error {
	p := s.Engine.CurrentPlayer()
	if p == nil || p.RoundScore < s.cfg.Rules.VowelPrice {
		return ErrInsufficientScore
	}
	if s.Engine.AllVowelsUsed() {
		return ErrNoVowelsLeft
	}
	return nil
}
