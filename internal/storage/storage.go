// Package storage defines the persistence contracts used by a game session.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/bitblaster/ruotafortuna/engine"
	"github.com/bitblaster/ruotafortuna/internal/preset"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a named record does not exist.
var ErrNotFound = errors.New("not found")

// UsedPhraseStore persists the set of phrase ids already played.
// Callers treat a failed load as an empty set.
type UsedPhraseStore interface {
	LoadUsedPhrases(ctx context.Context) ([]int, error)
	// SaveUsedPhrases overwrites the whole set.
	SaveUsedPhrases(ctx context.Context, ids []int) error
}

// PresetStore persists named setups. Saving replaces any preset with the same name.
type PresetStore interface {
	ListPresets(ctx context.Context) ([]preset.Preset, error)
	GetPreset(ctx context.Context, name string) (preset.Preset, error)
	SavePreset(ctx context.Context, p preset.Preset) error
	DeletePreset(ctx context.Context, name string) error
}

// GameResult is the final standing of a finished game.
type GameResult struct {
	ID         uuid.UUID       `json:"id"`
	FinishedAt time.Time       `json:"finishedAt"`
	Standings  []engine.Player `json:"standings"`
}

// Winner returns the first player of the standings.
func (r GameResult) Winner() (engine.Player, bool) {
	if len(r.Standings) == 0 {
		return engine.Player{}, false
	}
	return r.Standings[0], true
}

// ResultStore keeps finished games, newest first.
type ResultStore interface {
	SaveResult(ctx context.Context, r GameResult) error
	ListResults(ctx context.Context, limit int) ([]GameResult, error)
}

// Store is everything a host needs from one backend.
type Store interface {
	UsedPhraseStore
	PresetStore
	ResultStore
	Close() error
}
