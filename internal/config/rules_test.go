package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactics-server/internal/domain"
)

func TestParseRules_OverlaysDefaults(t *testing.T) {
	data := []byte(`
ignoreAPs: true
zocPenalty: 3
terrainCosts:
  plains: 2.5
  Swamp: 5
combat:
  surroundBonus: 7
`)
	rules, err := ParseRules(data)
	require.NoError(t, err)

	assert.True(t, rules.IgnoreAPs)
	assert.False(t, rules.IgnoreFatigue)
	assert.Equal(t, 3.0, rules.ZoCPenalty)
	assert.Equal(t, 1.0, rules.UphillPenalty, "untouched keys keep defaults")
	assert.Equal(t, 2.5, rules.TerrainCost(domain.TerrainPlains))
	assert.Equal(t, 5.0, rules.TerrainCost(domain.TerrainSwamp))
	assert.Equal(t, 1.0, rules.TerrainCost(domain.TerrainRoad))
	assert.Equal(t, 7.0, rules.Combat.SurroundBonus)
	assert.Equal(t, 0.25, rules.Combat.CoverMissChance)
}

func TestParseRules_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown terrain": "terrainCosts:\n  lava: 3\n",
		"negative cost":   "terrainCosts:\n  road: -1\n",
		"cover > 1":       "combat:\n  coverMissChance: 1.5\n",
		"bad yaml":        "ignoreAPs: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRules([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestTerrainCost_MissingEntryIsPermissive(t *testing.T) {
	var r Rules
	assert.Equal(t, 1.0, r.TerrainCost(domain.TerrainForest))
}

func TestWithOverrides(t *testing.T) {
	r := DefaultRules()
	eff := r.WithOverrides(Overrides{IgnoreFatigue: true})
	assert.True(t, eff.IgnoreFatigue)
	assert.False(t, eff.IgnoreAPs)
	assert.False(t, r.IgnoreFatigue, "receiver is not modified")
}

func TestLoadRules(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRules().ZoCPenalty, rules.ZoCPenalty)

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("uphillPenalty: 2\n"), 0o644))
	rules, err = LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, rules.UphillPenalty)

	_, err = LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
