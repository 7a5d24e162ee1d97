package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/bitblaster/ruotafortuna/engine"
	"github.com/bitblaster/ruotafortuna/internal/config"
	"github.com/bitblaster/ruotafortuna/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRounds(t *testing.T) {
	got, err := parseRounds("normal:Cinema, express , NORMAL:")
	require.NoError(t, err)
	assert.Equal(t, []engine.RoundConfig{
		{Type: engine.RoundNormal, Category: "Cinema"},
		{Type: engine.RoundExpress, Category: engine.AnyCategory},
		{Type: engine.RoundNormal, Category: engine.AnyCategory},
	}, got)

	_, err = parseRounds("bonus:any")
	assert.Error(t, err)
	_, err = parseRounds(" , ")
	assert.Error(t, err)
}

func memoryApp(t *testing.T) *app {
	t.Helper()
	cfg := config.Config{StoreDriver: config.DriverMemory, Seed: 3}
	a, err := newApp(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestPresetLifecycle(t *testing.T) {
	a := memoryApp(t)
	ctx := context.Background()
	var out bytes.Buffer

	save := options{players: "Anna, Bruno", rounds: "normal:any,express:any", savePreset: "serata"}
	require.NoError(t, a.Run(ctx, save, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), `Preset "serata" salvato.`)

	out.Reset()
	require.NoError(t, a.Run(ctx, options{listPresets: true}, nil, &out))
	assert.Contains(t, out.String(), "serata: Anna, Bruno, 2 round")

	p, err := a.resolvePreset(ctx, options{presetName: "serata"})
	require.NoError(t, err)
	assert.Len(t, p.Rounds, 2)

	out.Reset()
	require.NoError(t, a.Run(ctx, options{deletePreset: "serata"}, nil, &out))
	_, err = a.resolvePreset(ctx, options{presetName: "serata"})
	assert.ErrorContains(t, err, "not found")
}

func TestRunPlaysUntilQuit(t *testing.T) {
	a := memoryApp(t)
	var out bytes.Buffer
	opts := options{players: "Anna", rounds: "normal", forcePhrase: 1}
	require.NoError(t, a.Run(context.Background(), opts, strings.NewReader("q\n"), &out))
	assert.Contains(t, out.String(), "Round 1/1")

	results, err := a.store.ListResults(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}
