package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bitblaster/ruotafortuna/engine"
	"github.com/bitblaster/ruotafortuna/internal/game"
	"github.com/bitblaster/ruotafortuna/internal/logging"
	"github.com/bitblaster/ruotafortuna/internal/preset"
	"github.com/bitblaster/ruotafortuna/internal/storage/memory"
	"github.com/bitblaster/ruotafortuna/internal/wheel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(t *testing.T, text string, spins ...int) (*console, *game.Session, *bytes.Buffer) {
	t.Helper()
	rules := engine.DefaultHouseRules()
	rules.PenaltyDelay = 10 * time.Millisecond
	store := memory.New()
	s := game.NewSession(game.Config{
		Rules:       rules,
		Phrases:     []engine.Phrase{{ID: 1, Text: text, Category: "Test"}},
		Spinner:     wheel.NewSequenceSpinner(spins...),
		UsedPhrases: store,
		Results:     store,
		Logger:      logging.Discard(),
	})
	t.Cleanup(s.Close)
	var out bytes.Buffer
	c := newConsole(s, &out, logging.Discard())
	p := preset.Preset{Name: "t", PlayerNames: []string{"Anna", "Bruno"}, Rounds: []engine.RoundConfig{{Type: engine.RoundNormal}}}
	require.NoError(t, s.StartGame(context.Background(), p, nil))
	return c, s, &out
}

func TestConsoleSpinAndBareLetter(t *testing.T) {
	c, s, out := newTestConsole(t, "CASA", 4) // 300

	quit, err := c.handle("g")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, engine.TurnConsonantGuess, s.State().Turn)

	// "c" is a letter here, not the consonant command.
	_, err = c.handle("c")
	require.NoError(t, err)
	st := s.State()
	assert.True(t, st.Revealed.Has('C'))
	assert.Equal(t, 300, st.Players[0].RoundScore)

	c.mu.Lock()
	text := out.String()
	c.mu.Unlock()
	assert.Contains(t, text, "C'è una C!")
	assert.Contains(t, text, "Anna")
}

func TestConsoleErrorsAreDescribed(t *testing.T) {
	c, _, _ := newTestConsole(t, "CASA")

	_, err := c.handle("v a")
	require.Error(t, err)
	assert.Contains(t, describe(err), "500 punti")

	_, err = c.handle("c a")
	assert.Contains(t, describe(err), "consonante")
}

func TestConsoleSolve(t *testing.T) {
	c, s, _ := newTestConsole(t, "TORO")

	_, err := c.handle("risolvi")
	require.NoError(t, err)
	for _, l := range []string{"t", "o", "r", "o"} {
		_, err = c.handle(l)
		require.NoError(t, err)
	}
	assert.Equal(t, engine.PhaseRoundEnd, s.State().Phase)

	_, err = c.handle("a")
	require.NoError(t, err)
	assert.Equal(t, engine.PhaseGameOver, s.State().Phase)
}

func TestConsoleQuitAndLoop(t *testing.T) {
	c, _, out := newTestConsole(t, "CASA")
	err := c.loop(context.Background(), strings.NewReader("?\nboh\nq\n"))
	require.NoError(t, err)
	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Contains(t, out.String(), "Comandi:")
	assert.Contains(t, out.String(), "Comando sconosciuto")
}
