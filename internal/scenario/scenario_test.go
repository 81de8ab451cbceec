package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactics-server/internal/config"
	"tactics-server/internal/domain"
	"tactics-server/internal/engine"
	"tactics-server/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Silence()
	os.Exit(m.Run())
}

const sample = `
name: ford
radius: 2
cells:
  - {q: 0, r: 0, elevation: 1, terrain: Forest}
  - {q: 1, r: 0, terrain: water, marks: ["ZoC1_9", "ZoCx_9", "Active", "Bogus"]}
  - {q: 5, r: 5, terrain: road}
units:
  - {id: 1, team: 0, template: archer, q: -1, r: 0}
  - {id: 2, team: 1, name: Brute, q: 2, r: 0, stats: {HP: 80, MAT: 40, XYZ: 1}}
  - {id: 3, team: 1, template: swordsman, q: -2, r: 2, enabled: false, stats: {HP: 10}}
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "ford", s.Name)
	assert.Len(t, s.Grid.Cells(), 19+1)

	hill := s.Grid.CellAt(domain.Axial{Q: 0, R: 0})
	require.NotNil(t, hill)
	assert.Equal(t, 1.0, hill.Elevation)
	assert.Equal(t, domain.TerrainForest, hill.Terrain)
	assert.NotNil(t, s.Grid.CellAt(domain.Axial{Q: 5, R: 5}))

	ford := s.Grid.CellAt(domain.Axial{Q: 1, R: 0})
	assert.True(t, ford.Marks.Has(domain.MarkZoC, domain.Owner{Team: 1, Unit: 9}))
	assert.False(t, ford.Marks.Any(domain.MarkActive))
	assert.Equal(t, 1, ford.Marks.Len())
	assert.Equal(t, []domain.Mark{{Kind: domain.MarkZoC, Owner: domain.Owner{Team: 1, Unit: 9}}}, s.marks[ford.Coord])

	require.Len(t, s.Units, 3)
	archer := s.Units[0].Unit
	assert.Equal(t, "Archer", archer.Name)
	assert.Equal(t, 6, archer.Get(domain.StatRNG))

	brute := s.Units[1].Unit
	assert.Equal(t, "Brute", brute.Name)
	assert.Equal(t, 80, brute.Get(domain.StatHP))
	assert.Equal(t, domain.Axial{Q: 2, R: 0}, s.Units[1].At)

	guard := s.Units[2].Unit
	assert.False(t, guard.Enabled)
	assert.Equal(t, 10, guard.Get(domain.StatHP))
	assert.Equal(t, Swordsman.Stats[domain.StatMAT], guard.Get(domain.StatMAT))
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"bad yaml":         "cells: [",
		"no cells":         "name: empty\n",
		"unknown terrain":  "cells:\n  - {q: 0, r: 0, terrain: lava}\n",
		"unknown template": "radius: 1\nunits:\n  - {id: 1, template: wizard}\n",
		"duplicate id":     "radius: 1\nunits:\n  - {id: 1}\n  - {id: 1, q: 1}\n",
		"missing id":       "radius: 1\nunits:\n  - {team: 1}\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ford.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Units, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPopulate(t *testing.T) {
	s, err := Parse([]byte(sample))
	require.NoError(t, err)

	r := engine.NewRuleset(s.Grid, config.DefaultRules(), nil, nil)
	require.NoError(t, s.Populate(r))
	assert.Len(t, r.Units(), 3)

	require.NoError(t, r.StartCombat())
	// The disabled unit never gets a turn.
	assert.Equal(t, 1, r.Turns().Len())
}

func TestPopulate_DropsMarksOfAbsentUnits(t *testing.T) {
	s, err := Parse([]byte(`
radius: 2
cells:
  - {q: 1, r: 0, marks: ["Occupied1_9", "ZoC1_2"]}
  - {q: 0, r: 0, marks: ["ZoC1_2"]}
units:
  - {id: 1, team: 0, q: -1, r: 0}
  - {id: 2, team: 1, q: 2, r: 0, stats: {MAT: 10}}
`))
	require.NoError(t, err)

	r := engine.NewRuleset(s.Grid, config.DefaultRules(), nil, nil)
	require.NoError(t, s.Populate(r))

	ghost := s.Grid.CellAt(domain.Axial{Q: 1, R: 0})
	assert.False(t, ghost.IsOccupied())
	assert.False(t, ghost.Marks.Any(domain.MarkOccupied))
	assert.True(t, ghost.Marks.Has(domain.MarkZoC, domain.Owner{Team: 1, Unit: 2}))

	// Unit 2 stands two cells away from the origin.
	origin := s.Grid.CellAt(domain.Axial{Q: 0, R: 0})
	assert.False(t, origin.Marks.Has(domain.MarkZoC, domain.Owner{Team: 1, Unit: 2}))

	assert.Equal(t, []string{"Occupied1_9@(1,0)", "ZoC1_2@(0,0)"}, s.staleMarks())
}

func TestPopulate_OccupiedCell(t *testing.T) {
	s, err := Parse([]byte("radius: 1\nunits:\n  - {id: 1}\n  - {id: 2}\n"))
	require.NoError(t, err)

	r := engine.NewRuleset(s.Grid, config.DefaultRules(), nil, nil)
	assert.ErrorIs(t, s.Populate(r), engine.ErrInvalidInput)
}

func TestDefault(t *testing.T) {
	s := Default()
	r := engine.NewRuleset(s.Grid, config.DefaultRules(), nil, nil)
	require.NoError(t, s.Populate(r))
	require.NoError(t, r.StartCombat())

	// Archers have the highest initiative.
	require.NotNil(t, r.Turns().Active())
	assert.Equal(t, "Archer", r.Turns().Active().Name)
}
