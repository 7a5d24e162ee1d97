package memory

import (
	"context"
	"testing"
	"time"

	"github.com/bitblaster/ruotafortuna/engine"
	"github.com/bitblaster/ruotafortuna/internal/preset"
	"github.com/bitblaster/ruotafortuna/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsedPhrasesOverwrite(t *testing.T) {
	ctx := context.Background()
	s := New()
	ids, err := s.LoadUsedPhrases(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, s.SaveUsedPhrases(ctx, []int{1, 2, 3}))
	require.NoError(t, s.SaveUsedPhrases(ctx, []int{4}))
	ids, err = s.LoadUsedPhrases(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, ids)
}

func TestPresetsReplaceByName(t *testing.T) {
	ctx := context.Background()
	s := New()
	p := preset.Preset{Name: "Famiglia", PlayerNames: []string{"A"}}
	require.NoError(t, s.SavePreset(ctx, p))
	p.PlayerNames = []string{"A", "B"}
	require.NoError(t, s.SavePreset(ctx, p))
	require.NoError(t, s.SavePreset(ctx, preset.Preset{Name: "Amici"}))

	list, err := s.ListPresets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Amici", list[0].Name)

	got, err := s.GetPreset(ctx, "Famiglia")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, got.PlayerNames)

	require.NoError(t, s.DeletePreset(ctx, "Famiglia"))
	_, err = s.GetPreset(ctx, "Famiglia")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, s.DeletePreset(ctx, "Famiglia"), storage.ErrNotFound)
}

func TestResultsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()
	for i := 0; i < 3; i++ {
		require.NoError(t, s.SaveResult(ctx, storage.GameResult{
			ID:         uuid.New(),
			FinishedAt: time.Unix(int64(i), 0),
			Standings:  []engine.Player{{ID: i, Name: "P", TotalScore: i * 100}},
		}))
	}
	got, err := s.ListResults(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 200, got[0].Standings[0].TotalScore)
	w, ok := got[1].Winner()
	assert.True(t, ok)
	assert.Equal(t, 100, w.TotalScore)
}
