package wheel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitblaster/ruotafortuna/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomSpinnerInRange(t *testing.T) {
	s := NewRandomSpinner(42)
	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		n := s.Spin(24)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 24)
		seen[n] = true
	}
	assert.Len(t, seen, 24)
}

func TestRandomSpinnerDeterministic(t *testing.T) {
	a, b := NewRandomSpinner(7), NewRandomSpinner(7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Spin(24), b.Spin(24))
	}
}

func TestSequenceSpinner(t *testing.T) {
	s := NewSequenceSpinner(20, 0, 25)
	assert.Equal(t, 20, s.Spin(24))
	assert.Equal(t, 0, s.Spin(24))
	assert.Equal(t, 1, s.Spin(24))
	assert.Equal(t, 20, s.Spin(24))
}

func TestLand(t *testing.T) {
	v, seg := Land(NewSequenceSpinner(8), engine.ExpressWheel)
	assert.Equal(t, 8, seg)
	assert.Equal(t, engine.WheelExpress, v)
}

func TestTablesFor(t *testing.T) {
	tables := DefaultTables()
	assert.Equal(t, engine.NormalWheel, tables.For(engine.RoundNormal))
	assert.Equal(t, engine.ExpressWheel, tables.For(engine.RoundExpress))
}

func TestLoadTables(t *testing.T) {
	rules := engine.DefaultHouseRules()
	rules.JollySegment = 3

	path := filepath.Join(t.TempDir(), "wheel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("normal: [bancarotta, 300, passa, 500]\n"), 0o644))
	tables, err := LoadTables(path, rules)
	require.NoError(t, err)
	assert.Equal(t, engine.Wheel{engine.WheelBankrupt, engine.WheelPrize(300), engine.WheelPass, engine.WheelPrize(500)}, tables.Normal)
	assert.Equal(t, engine.ExpressWheel, tables.Express)

	require.NoError(t, os.WriteFile(path, []byte("express: [bankrupt, 300]\n"), 0o644))
	_, err = LoadTables(path, rules)
	assert.Error(t, err, "too short for the Jolly segment")

	require.NoError(t, os.WriteFile(path, []byte("normal: [bankrupt, jackpot, 1, 2]\n"), 0o644))
	_, err = LoadTables(path, rules)
	assert.Error(t, err)

	tables, err = LoadTables("", rules)
	require.NoError(t, err)
	assert.Equal(t, DefaultTables(), tables)
}
