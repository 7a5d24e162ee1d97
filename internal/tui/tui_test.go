package tui

import (
	"strings"
	"testing"

	"github.com/bitblaster/ruotafortuna/engine"
	"github.com/bitblaster/ruotafortuna/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleView() game.View {
	row := make([]game.CellView, 12)
	for i := range row {
		row[i] = game.CellView{Kind: "absent", Index: engine.NoIndex}
	}
	row[4] = game.CellView{Kind: "letter", Text: "C", Revealed: true, Index: 0}
	row[5] = game.CellView{Kind: "letter", Index: 1}
	row[6] = game.CellView{Kind: "space", Revealed: true, Index: engine.NoIndex}
	row[7] = game.CellView{Kind: "letter", Text: "L'", Revealed: true, Index: 2}

	board := [][]game.CellView{row, make([]game.CellView, 14), make([]game.CellView, 14), make([]game.CellView, 12)}
	return game.View{
		Phase:     "playing",
		Round:     2,
		Rounds:    3,
		RoundType: "express",
		Category:  "Cinema",
		Board:     board,
		Players: []game.PlayerView{
			{Name: "Anna", RoundScore: 300, TotalScore: 1200, Current: true},
			{Name: "Bruno", HasJolly: true},
		},
		Letters: []game.LetterView{{Letter: "A", Vowel: true, Used: true}, {Letter: "B"}},
	}
}

func TestBoardRows(t *testing.T) {
	out := Board(sampleView())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, engine.BoardRows+2, "four rows plus border")
	assert.Contains(t, out, "[C ]")
	assert.Contains(t, out, "[L']")
	assert.Contains(t, out, "[  ]")
}

func TestPlayersMarksCurrentAndJolly(t *testing.T) {
	out := Players(sampleView())
	assert.Contains(t, out, "▶ Anna")
	assert.Contains(t, out, "Bruno ★")
	assert.Contains(t, out, "1200")
}

func TestLettersStrikesUsed(t *testing.T) {
	out := Letters(sampleView())
	assert.Contains(t, out, "Consonanti: B")
	assert.NotContains(t, out, "Vocali:     A")
}

func TestScreen(t *testing.T) {
	out := Screen(sampleView())
	assert.Contains(t, out, "Round 2/3 · Express")
	assert.Contains(t, out, "Cinema")
	assert.Contains(t, out, "Vocali:")
}

func TestMessage(t *testing.T) {
	anna := &game.EventPlayer{Index: 0, Name: "Anna"}
	tests := []struct {
		ev   game.GameEvent
		want string
	}{
		{game.GameEvent{Type: game.GameEventType(engine.EventLetterFound), Letter: "T", Count: 2}, "Ci sono 2 T!"},
		{game.GameEvent{Type: game.GameEventType(engine.EventLetterFound), Letter: "T", Count: 1}, "C'è una T!"},
		{game.GameEvent{Type: game.GameEventType(engine.EventBankrupt), Player: anna}, "BANCAROTTA! Anna"},
		{game.GameEvent{Type: game.GameEventType(engine.EventJollyPrompt), Player: anna, Reason: "wrong-letter"}, "lettera sbagliata"},
		{game.GameEvent{Type: game.EventSpinResult, Player: anna, Payload: map[string]any{"value": "700"}}, "Anna gira la ruota: 700"},
		{game.GameEvent{Type: game.EventGameEnd, Points: 900, Payload: map[string]any{"winner": "Anna"}}, "Vince Anna con 900 punti"},
	}
	for _, tt := range tests {
		assert.Contains(t, Message(tt.ev), tt.want, string(tt.ev.Type))
	}
	assert.Empty(t, Message(game.GameEvent{Type: game.EventSyncState}))
}
