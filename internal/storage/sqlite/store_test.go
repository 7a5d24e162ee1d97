package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitblaster/ruotafortuna/engine"
	"github.com/bitblaster/ruotafortuna/internal/preset"
	"github.com/bitblaster/ruotafortuna/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "ruota.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ruota.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	var n int
	require.NoError(t, s.sqlDB.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestUsedPhrases(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	ids, err := s.LoadUsedPhrases(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, s.SaveUsedPhrases(ctx, []int{5, 1, 3}))
	require.NoError(t, s.SaveUsedPhrases(ctx, []int{3, 7}))
	ids, err = s.LoadUsedPhrases(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 7}, ids)
}

func TestPresets(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	p := preset.Preset{
		Name:        "Serata",
		PlayerNames: []string{"Anna", "Bruno"},
		Rounds:      []engine.RoundConfig{{Type: engine.RoundExpress, Category: "Cinema"}},
	}
	require.NoError(t, s.SavePreset(ctx, p))
	p.HideCalledLetters = true
	require.NoError(t, s.SavePreset(ctx, p))

	list, err := s.ListPresets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p, list[0])

	got, err := s.GetPreset(ctx, "Serata")
	require.NoError(t, err)
	assert.True(t, got.HideCalledLetters)

	require.NoError(t, s.DeletePreset(ctx, "Serata"))
	_, err = s.GetPreset(ctx, "Serata")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, s.DeletePreset(ctx, "Serata"), storage.ErrNotFound)
}

func TestResults(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	base := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.SaveResult(ctx, storage.GameResult{
			ID:         uuid.New(),
			FinishedAt: base.Add(time.Duration(i) * time.Hour),
			Standings:  []engine.Player{{ID: 1, Name: "Anna", TotalScore: 1000 * (i + 1)}},
		}))
	}

	all, err := s.ListResults(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 3000, all[0].Standings[0].TotalScore)
	assert.True(t, all[0].FinishedAt.Equal(base.Add(2*time.Hour)))

	top, err := s.ListResults(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
}
