package systems

import (
	"tactics-server/internal/config"
	"tactics-server/internal/domain"
)

// Source is the random source for rolls. *rand.Rand from math/rand/v2
// satisfies it; tests use fixed sources.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// Env is passed into every rule evaluation. Rules already has the runtime
// overrides folded in, so a resolution depends only on Env and board state.
type Env struct {
	Grid   domain.Grid
	Rules  config.Rules
	Rng    Source
	Hooks  *domain.Hooks
	Active *domain.Unit
}

// roll draws from [0,1). Without a source every roll misses.
func (e Env) roll() float64 {
	if e.Rng == nil {
		return 1
	}
	return e.Rng.Float64()
}

func (e Env) intN(n int) int {
	if e.Rng == nil || n <= 0 {
		return 0
	}
	return e.Rng.IntN(n)
}

func (e Env) neighbors(c *domain.Cell) []*domain.Cell {
	if e.Grid == nil || c == nil {
		return nil
	}
	return e.Grid.Neighbors(c)
}

// distance between two cells. Unknown positions count as adjacent.
func (e Env) distance(a, b *domain.Cell) int {
	if a == nil || b == nil {
		return 1
	}
	if e.Grid != nil {
		return e.Grid.Distance(a, b)
	}
	return domain.HexDistance(a.Coord, b.Coord)
}
