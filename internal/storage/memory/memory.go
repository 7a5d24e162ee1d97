// Package memory provides an in-process Store, used for tests and when no
// database is configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bitblaster/ruotafortuna/internal/preset"
	"github.com/bitblaster/ruotafortuna/internal/storage"
)

// Store implements storage.Store with maps guarded by an RWMutex.
type Store struct {
	mu      sync.RWMutex
	used    []int
	presets map[string]preset.Preset
	results []storage.GameResult
}

var _ storage.Store = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{presets: make(map[string]preset.Preset)}
}

func (s *Store) LoadUsedPhrases(ctx context.Context) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]int(nil), s.used...), nil
}

func (s *Store) SaveUsedPhrases(ctx context.Context, ids []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.used = append([]int(nil), ids...)
	return nil
}

func (s *Store) ListPresets(ctx context.Context) ([]preset.Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]preset.Preset, 0, len(s.presets))
	for _, p := range s.presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetPreset(ctx context.Context, name string) (preset.Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.presets[name]
	if !ok {
		return preset.Preset{}, storage.ErrNotFound
	}
	return p, nil
}

func (s *Store) SavePreset(ctx context.Context, p preset.Preset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presets[p.Name] = p
	return nil
}

func (s *Store) DeletePreset(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.presets[name]; !ok {
		return storage.ErrNotFound
	}
	delete(s.presets, name)
	return nil
}

func (s *Store) SaveResult(ctx context.Context, r storage.GameResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
	return nil
}

// ListResults returns up to limit results, newest first. limit <= 0 means all.
func (s *Store) ListResults(ctx context.Context, limit int) ([]storage.GameResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]storage.GameResult, 0, len(s.results))
	for i := len(s.results) - 1; i >= 0; i-- {
		out = append(out, s.results[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *Store) Close() error { return nil }
