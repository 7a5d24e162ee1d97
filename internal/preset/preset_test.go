package preset

import (
	"testing"

	"github.com/bitblaster/ruotafortuna/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPreset() Preset {
	return Preset{
		Name:        "Sabato sera",
		PlayerNames: []string{"Anna", "Bruno"},
		Rounds: []engine.RoundConfig{
			{Type: engine.RoundNormal, Category: "Cinema"},
			{Type: engine.RoundExpress, Category: engine.AnyCategory},
		},
	}
}

func TestValidate(t *testing.T) {
	rules := engine.DefaultHouseRules()
	require.NoError(t, validPreset().Validate(rules))

	tests := []struct {
		name   string
		mutate func(p *Preset)
	}{
		{"blank name", func(p *Preset) { p.Name = "  " }},
		{"no players", func(p *Preset) { p.PlayerNames = nil }},
		{"too many players", func(p *Preset) { p.PlayerNames = []string{"a", "b", "c", "d", "e", "f", "g"} }},
		{"blank player", func(p *Preset) { p.PlayerNames[1] = "" }},
		{"no rounds", func(p *Preset) { p.Rounds = nil }},
		{"bad round type", func(p *Preset) { p.Rounds[0].Type = "bonus" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPreset()
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(rules), ErrInvalid)
		})
	}
}

func TestPlayers(t *testing.T) {
	p := validPreset()
	p.PlayerNames[0] = " Anna "
	players := p.Players()
	require.Len(t, players, 2)
	assert.Equal(t, engine.Player{ID: 1, Name: "Anna"}, players[0])
	assert.Equal(t, 2, players[1].ID)
}

func TestNormalized(t *testing.T) {
	p := validPreset()
	p.Rounds[0].Category = ""
	n := p.Normalized()
	assert.Equal(t, engine.AnyCategory, n.Rounds[0].Category)
	assert.Equal(t, "", p.Rounds[0].Category, "original must not change")
}
