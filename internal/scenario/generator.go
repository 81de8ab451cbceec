package scenario

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"tactics-server/internal/domain"
	"tactics-server/internal/grid"
	"tactics-server/pkg/logger"
	"tactics-server/pkg/utils"
)

const (
	minPatchRadius = 1
	maxPatchRadius = 2
	hillHeight     = 2
)

var patchTerrains = []domain.Terrain{
	domain.TerrainForest,
	domain.TerrainRough,
	domain.TerrainSwamp,
	domain.TerrainWater,
}

// GenSpec asks for random terrain on top of the base board. Seed 0 derives
// the seed from the scenario name.
type GenSpec struct {
	Seed    uint64 `yaml:"seed"`
	Patches int    `yaml:"patches"`
	Hills   int    `yaml:"hills"`
}

// Generate paints terrain patches on g, joins consecutive patch centers with
// roads and raises hills. The same seed on the same board gives the same
// result.
func Generate(g *grid.HexGrid, spec GenSpec, name string) {
	seed := spec.Seed
	if seed == 0 {
		seed = utils.StringToSeed(name)
	}
	rng := utils.NewRand(seed)

	cells := g.Cells()
	if len(cells) == 0 {
		return
	}

	var prev *domain.Cell
	for i := 0; i < spec.Patches; i++ {
		center := cells[rng.IntN(len(cells))]
		terrain := patchTerrains[rng.IntN(len(patchTerrains))]
		for _, c := range g.Range(center, randRange(rng, minPatchRadius, maxPatchRadius)) {
			c.Terrain = terrain
		}
		if prev != nil {
			for _, c := range g.Line(prev.Coord, center.Coord) {
				c.Terrain = domain.TerrainRoad
			}
		}
		prev = center
	}

	for i := 0; i < spec.Hills; i++ {
		top := cells[rng.IntN(len(cells))]
		for _, c := range g.Range(top, hillHeight-1) {
			raise := float64(hillHeight - g.Distance(top, c))
			c.Elevation = max(c.Elevation, raise)
		}
	}

	logger.Component("scenario").WithFields(logrus.Fields{
		"seed":    seed,
		"patches": spec.Patches,
		"hills":   spec.Hills,
	}).Debug("Terrain generated.")
}

func randRange(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}
