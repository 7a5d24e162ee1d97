// Package preset defines named game configurations that can be saved and
// reloaded from the setup screen.
package preset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bitblaster/ruotafortuna/engine"
)

// ErrInvalid is returned by Validate for unusable presets.
var ErrInvalid = errors.New("invalid preset")

// Preset is a saved setup: who plays, which rounds, and how letters are shown.
type Preset struct {
	Name              string               `json:"name" yaml:"name"`
	PlayerNames       []string             `json:"playerNames" yaml:"playerNames"`
	Rounds            []engine.RoundConfig `json:"rounds" yaml:"rounds"`
	HideCalledLetters bool                 `json:"hideCalledLetters" yaml:"hideCalledLetters"`
}

// Validate checks the preset against the house rules player limits.
func (p Preset) Validate(rules engine.HouseRules) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if n := len(p.PlayerNames); n < rules.MinPlayers || n > rules.MaxPlayers {
		return fmt.Errorf("%w: %d players, want %d..%d", ErrInvalid, n, rules.MinPlayers, rules.MaxPlayers)
	}
	for i, name := range p.PlayerNames {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: player %d has no name", ErrInvalid, i+1)
		}
	}
	if len(p.Rounds) == 0 {
		return fmt.Errorf("%w: at least one round is required", ErrInvalid)
	}
	for i, r := range p.Rounds {
		if r.Type != engine.RoundNormal && r.Type != engine.RoundExpress {
			return fmt.Errorf("%w: round %d has type %q", ErrInvalid, i+1, r.Type)
		}
	}
	return nil
}

// Players builds fresh engine players from the preset names, numbered from 1.
func (p Preset) Players() []engine.Player {
	out := make([]engine.Player, len(p.PlayerNames))
	for i, name := range p.PlayerNames {
		out[i] = engine.Player{ID: i + 1, Name: strings.TrimSpace(name)}
	}
	return out
}

// Normalized returns a copy with trimmed names and empty categories set to any.
func (p Preset) Normalized() Preset {
	out := Preset{
		Name:              strings.TrimSpace(p.Name),
		PlayerNames:       make([]string, len(p.PlayerNames)),
		Rounds:            make([]engine.RoundConfig, len(p.Rounds)),
		HideCalledLetters: p.HideCalledLetters,
	}
	for i, n := range p.PlayerNames {
		out.PlayerNames[i] = strings.TrimSpace(n)
	}
	for i, r := range p.Rounds {
		if strings.TrimSpace(r.Category) == "" {
			r.Category = engine.AnyCategory
		}
		out.Rounds[i] = r
	}
	return out
}
