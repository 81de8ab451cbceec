package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tactics-server/internal/domain"
)

func zocCount(b *board, o domain.Owner) int {
	n := 0
	for _, c := range b.grid.Cells() {
		if c.Marks.Has(domain.MarkZoC, o) {
			n++
		}
	}
	return n
}

func TestProjectInfluence(t *testing.T) {
	b := newBoard(3, nil)
	b.cell(1, 0).Elevation = 2

	u := b.spawn(1, 0, 0, 0, melee)

	assert.True(t, b.cell(0, 0).Marks.Has(domain.MarkOccupied, u.Owner()))
	assert.Equal(t, 5, zocCount(b, u.Owner()))
	assert.False(t, b.cell(1, 0).Marks.Has(domain.MarkZoC, u.Owner()))
	assert.False(t, b.cell(0, 0).Marks.Any(domain.MarkActive))
}

func TestProjectInfluence_RangedHasNoZoC(t *testing.T) {
	b := newBoard(3, nil)
	u := b.spawn(1, 0, 0, 0, map[string]int{domain.StatRAT: 40})

	assert.Equal(t, 0, zocCount(b, u.Owner()))
	assert.True(t, b.cell(0, 0).Marks.Has(domain.MarkOccupied, u.Owner()))
}

func TestProjectInfluence_Active(t *testing.T) {
	b := newBoard(3, nil)
	u := b.spawn(1, 0, 0, 0, melee)
	b.env.Active = u

	ProjectInfluence(b.env, u, u.Cell())
	assert.True(t, b.cell(0, 0).Marks.Has(domain.MarkActive, u.Owner()))

	SetActiveMark(u, false)
	assert.False(t, b.cell(0, 0).Marks.Any(domain.MarkActive))
}

func TestRetractInfluence(t *testing.T) {
	b := newBoard(3, nil)
	u := b.spawn(1, 0, 0, 0, melee)
	other := b.spawn(2, 1, 2, 0, melee)

	RetractInfluence(b.env, u, u.Cell())

	assert.Equal(t, 0, zocCount(b, u.Owner()))
	assert.False(t, b.cell(0, 0).Marks.Has(domain.MarkOccupied, u.Owner()))
	assert.Equal(t, 6, zocCount(b, other.Owner()))
}

func TestShowAoA(t *testing.T) {
	b := newBoard(3, nil)
	u := b.spawn(1, 0, 0, 0, map[string]int{domain.StatRAT: 40, domain.StatRNG: 2})

	ShowAoA(b.env, u, b.cell(1, 0))

	marked := 0
	for _, c := range b.grid.Cells() {
		if c.Marks.Has(domain.MarkAoA, u.Owner()) {
			marked++
		}
	}
	assert.Equal(t, 18, marked)
	assert.False(t, b.cell(1, 0).Marks.Has(domain.MarkAoA, u.Owner()))

	ClearAoA(b.env, u)
	for _, c := range b.grid.Cells() {
		assert.False(t, c.Marks.Any(domain.MarkAoA))
	}
}

func TestShowAoA_MeleeSkipsCliffs(t *testing.T) {
	b := newBoard(3, nil)
	b.cell(1, 0).Elevation = 3
	u := b.spawn(1, 0, 0, 0, melee)

	ShowAoA(b.env, u, b.cell(0, 0))

	assert.False(t, b.cell(1, 0).Marks.Has(domain.MarkAoA, u.Owner()))
	assert.True(t, b.cell(-1, 0).Marks.Has(domain.MarkAoA, u.Owner()))
}
