package systems

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactics-server/internal/domain"
)

var melee = map[string]int{domain.StatMAT: 10}

func TestMoveCost_UphillPlains(t *testing.T) {
	b := newBoard(3, nil)
	u := b.spawn(1, 0, 0, 0, melee)
	b.cell(1, 0).Elevation = 1

	cost := MoveCost(b.env, u, b.cell(0, 0), b.cell(1, 0), b.cell(2, 0))
	assert.Equal(t, 3.0, cost)
}

func TestMoveCost_Forbidden(t *testing.T) {
	t.Run("cliff", func(t *testing.T) {
		b := newBoard(3, nil)
		u := b.spawn(1, 0, 0, 0, melee)
		b.cell(1, 0).Elevation = 2
		assert.True(t, math.IsInf(MoveCost(b.env, u, b.cell(0, 0), b.cell(1, 0), b.cell(2, 0)), 1))
	})

	t.Run("enemy on the way", func(t *testing.T) {
		b := newBoard(3, nil)
		u := b.spawn(1, 0, 0, 0, melee)
		b.spawn(2, 1, 1, 0, nil)
		assert.True(t, math.IsInf(MoveCost(b.env, u, b.cell(0, 0), b.cell(1, 0), b.cell(2, 0)), 1))
	})

	t.Run("teammate on target", func(t *testing.T) {
		b := newBoard(3, nil)
		u := b.spawn(1, 0, 0, 0, melee)
		b.spawn(2, 0, 1, 0, nil)
		assert.True(t, math.IsInf(MoveCost(b.env, u, b.cell(0, 0), b.cell(1, 0), b.cell(1, 0)), 1))
	})

	t.Run("nil cell", func(t *testing.T) {
		b := newBoard(3, nil)
		u := b.spawn(1, 0, 0, 0, melee)
		assert.True(t, math.IsInf(MoveCost(b.env, u, b.cell(0, 0), nil, nil), 1))
	})
}

func TestMoveCost_AttackMoveIsFree(t *testing.T) {
	b := newBoard(3, nil)
	u := b.spawn(1, 0, 0, 0, melee)
	b.spawn(2, 1, 1, 0, nil)

	assert.Equal(t, 0.0, MoveCost(b.env, u, b.cell(0, 0), b.cell(1, 0), b.cell(1, 0)))

	archer := b.spawn(3, 1, -1, 1, map[string]int{domain.StatRAT: 50})
	assert.True(t, math.IsInf(MoveCost(b.env, archer, b.cell(-1, 1), b.cell(0, 0), b.cell(0, 0)), 1))
}

func TestMoveCost_ZoneOfControl(t *testing.T) {
	b := newBoard(3, nil)
	u := b.spawn(1, 0, 0, 0, melee)
	b.spawn(2, 1, 2, 0, melee)

	// (1,0) borders the enemy: plains 2 + ZoC 2.
	assert.Equal(t, 4.0, MoveCost(b.env, u, b.cell(0, 0), b.cell(1, 0), b.cell(3, 0)))

	// A friend standing there waives the penalty.
	b.spawn(3, 0, 1, 0, nil)
	assert.Equal(t, 2.0, MoveCost(b.env, u, b.cell(0, 0), b.cell(1, 0), b.cell(3, -1)))
}

func TestTryMoveStep_Budget(t *testing.T) {
	b := newBoard(3, nil)

	tired := b.spawn(1, 0, 0, 0, melee)
	tired.SetStat(domain.StatAP, 1)
	v := TryMoveStep(b.env, tired, b.cell(0, 0), b.cell(1, 0), b.cell(1, 0))
	assert.Equal(t, domain.MoveInsufficientAP, v.Reason)

	b.env.Rules.IgnoreAPs = true
	v = TryMoveStep(b.env, tired, b.cell(0, 0), b.cell(1, 0), b.cell(1, 0))
	assert.True(t, v.OK())
	b.env.Rules.IgnoreAPs = false

	exhausted := b.spawn(2, 0, -2, 0, melee)
	exhausted.SetStat(domain.StatFAT, 99)
	v = TryMoveStep(b.env, exhausted, b.cell(-2, 0), b.cell(-2, 1), b.cell(-2, 1))
	assert.Equal(t, domain.MoveInsufficientFatigue, v.Reason)

	v = TryMoveStep(b.env, nil, b.cell(0, 0), b.cell(1, 0), nil)
	assert.Equal(t, domain.MoveInvalidInput, v.Reason)

	b.cell(0, -1).Elevation = 3
	v = TryMoveStep(b.env, tired, b.cell(0, 0), b.cell(0, -1), b.cell(0, -1))
	assert.Equal(t, domain.MoveUnreachable, v.Reason)
}

func TestTryMoveStep_AttackOfOpportunity(t *testing.T) {
	rng := &fixedSource{floats: []float64{0.0}, ints: []int{0}}
	b := newBoard(3, rng)
	attacked := 0
	b.hooks.Attacked = func(_, _ *domain.Unit) { attacked++ }

	u := b.spawn(1, 0, 0, 0, melee)
	enemy := b.spawn(2, 1, -1, 0, map[string]int{
		domain.StatMAT:  100,
		domain.StatDMIN: 5,
		domain.StatDMAX: 5,
	})

	v := TryMoveStep(b.env, u, b.cell(0, 0), b.cell(1, 0), b.cell(1, 0))
	require.Equal(t, domain.MoveStoppedByAttackOfOpportunity, v.Reason)
	assert.Same(t, enemy, v.Attacker)
	assert.Equal(t, 45, u.Get(domain.StatHP))
	assert.Equal(t, 1, attacked)
}

func TestTryMoveStep_AttackOfOpportunityMiss(t *testing.T) {
	rng := &fixedSource{floats: []float64{0.99}}
	b := newBoard(3, rng)

	u := b.spawn(1, 0, 0, 0, melee)
	b.spawn(2, 1, -1, 0, map[string]int{domain.StatMAT: 50, domain.StatDMIN: 5, domain.StatDMAX: 5})

	v := TryMoveStep(b.env, u, b.cell(0, 0), b.cell(1, 0), b.cell(1, 0))
	assert.True(t, v.OK())
	assert.Equal(t, 50, u.Get(domain.StatHP))
}

func TestMoveStopIndex(t *testing.T) {
	path := func(b *board) []*domain.Cell {
		return []*domain.Cell{b.cell(1, 0), b.cell(2, 0), b.cell(3, 0)}
	}

	t.Run("cut by AP", func(t *testing.T) {
		b := newBoard(3, nil)
		u := b.spawn(1, 0, 0, 0, melee)
		u.SetStat(domain.StatAP, 4)
		assert.Equal(t, 2, MoveStopIndex(b.env, u, path(b), b.cell(3, 0)))
	})

	t.Run("pulled back from a friend", func(t *testing.T) {
		b := newBoard(3, nil)
		u := b.spawn(1, 0, 0, 0, melee)
		u.SetStat(domain.StatAP, 4)
		b.spawn(2, 0, 2, 0, nil)
		assert.Equal(t, 1, MoveStopIndex(b.env, u, path(b), b.cell(3, 0)))
	})

	t.Run("falls back to one", func(t *testing.T) {
		b := newBoard(3, nil)
		u := b.spawn(1, 0, 0, 0, melee)
		u.SetStat(domain.StatAP, 4)
		b.spawn(2, 0, 1, 0, nil)
		b.spawn(3, 0, 2, 0, nil)
		assert.Equal(t, 1, MoveStopIndex(b.env, u, path(b), b.cell(3, 0)))
	})

	t.Run("ignore AP", func(t *testing.T) {
		b := newBoard(3, nil)
		u := b.spawn(1, 0, 0, 0, melee)
		u.SetStat(domain.StatAP, 0)
		b.env.Rules.IgnoreAPs = true
		assert.Equal(t, 3, MoveStopIndex(b.env, u, path(b), b.cell(3, 0)))
	})

	t.Run("empty", func(t *testing.T) {
		b := newBoard(3, nil)
		u := b.spawn(1, 0, 0, 0, melee)
		assert.Equal(t, 0, MoveStopIndex(b.env, u, nil, nil))
	})
}

func TestPerformMove(t *testing.T) {
	b := newBoard(3, nil)
	u := b.spawn(1, 0, 0, 0, melee)

	PerformMove(b.env, u, b.cell(0, 0), b.cell(1, 0))

	assert.Same(t, b.cell(1, 0), u.Cell())
	assert.Equal(t, 8, u.Get(domain.StatAP))
	assert.Equal(t, 2, u.Get(domain.StatFAT))
	assert.False(t, b.cell(0, 0).IsOccupied())
	assert.False(t, b.cell(0, 0).Marks.Has(domain.MarkOccupied, u.Owner()))
	assert.True(t, b.cell(1, 0).Marks.Has(domain.MarkOccupied, u.Owner()))
	assert.False(t, b.cell(-1, 0).Marks.Has(domain.MarkZoC, u.Owner()))
	assert.True(t, b.cell(2, 0).Marks.Has(domain.MarkZoC, u.Owner()))
}

func TestPerformMove_Overrides(t *testing.T) {
	b := newBoard(3, nil)
	b.env.Rules.IgnoreAPs = true
	b.env.Rules.IgnoreFatigue = true
	u := b.spawn(1, 0, 0, 0, melee)

	PerformMove(b.env, u, b.cell(0, 0), b.cell(1, 0))

	assert.Equal(t, 10, u.Get(domain.StatAP))
	assert.Equal(t, 0, u.Get(domain.StatFAT))
}
