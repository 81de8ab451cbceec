package systems

import (
	"tactics-server/internal/domain"
)

// ProjectInfluence marks cell as occupied by u, puts u's zone of control on
// the reachable neighbors when u can melee, and flags the cell Active when u
// is the active unit.
func ProjectInfluence(env Env, u *domain.Unit, cell *domain.Cell) {
	if u == nil || cell == nil {
		return
	}
	owner := u.Owner()
	cell.Marks.Add(domain.MarkOccupied, owner)

	if u.CanMelee() {
		for _, n := range env.neighbors(cell) {
			if domain.ElevationDelta(cell, n) <= env.Rules.MaxElevationDelta {
				n.Marks.Add(domain.MarkZoC, owner)
			}
		}
	}

	if env.Active != nil && env.Active == u {
		cell.Marks.Add(domain.MarkActive, owner)
	}
}

// RetractInfluence removes everything ProjectInfluence put around cell for u.
// ZoC is removed from every neighbor regardless of elevation.
func RetractInfluence(env Env, u *domain.Unit, cell *domain.Cell) {
	if u == nil || cell == nil {
		return
	}
	owner := u.Owner()
	cell.Marks.Remove(domain.MarkOccupied, owner)
	cell.Marks.Remove(domain.MarkActive, owner)
	for _, n := range env.neighbors(cell) {
		n.Marks.Remove(domain.MarkZoC, owner)
	}
}

// SetActiveMark adds or removes the Active flag on u's current cell.
func SetActiveMark(u *domain.Unit, on bool) {
	if u == nil || u.Cell() == nil {
		return
	}
	if on {
		u.Cell().Marks.Add(domain.MarkActive, u.Owner())
		return
	}
	u.Cell().Marks.Remove(domain.MarkActive, u.Owner())
}

// ShowAoA previews the cells u could attack after stopping on stop. Any
// earlier preview is cleared first. Units that prefer melee skip cells
// beyond the elevation limit.
func ShowAoA(env Env, u *domain.Unit, stop *domain.Cell) {
	ClearAoA(env, u)
	if u == nil || stop == nil || env.Grid == nil {
		return
	}
	owner := u.Owner()
	melee := u.PrefersMelee()
	for _, c := range env.Grid.Range(stop, u.Get(domain.StatRNG)) {
		if c == stop {
			continue
		}
		if melee && domain.ElevationDelta(stop, c) > env.Rules.MaxElevationDelta {
			continue
		}
		c.Marks.Add(domain.MarkAoA, owner)
	}
}

// ClearAoA retracts u's preview from the whole board, wherever it was drawn.
func ClearAoA(env Env, u *domain.Unit) {
	if u == nil || env.Grid == nil {
		return
	}
	owner := u.Owner()
	for _, c := range env.Grid.Cells() {
		c.Marks.Remove(domain.MarkAoA, owner)
	}
}
