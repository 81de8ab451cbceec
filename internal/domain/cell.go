package domain

import "math"

// Cell is one grid cell. The occupant list is the authoritative location
// record; Unit.Cell is a cached back-pointer kept in sync by Place/Unplace.
type Cell struct {
	Coord     Axial   `json:"coord"`
	Elevation float64 `json:"elevation"`
	Terrain   Terrain `json:"terrain"`

	Marks MarkSet `json:"-"`

	occupants []*Unit
}

// NewCell creates an empty cell.
func NewCell(coord Axial, elevation float64, terrain Terrain) *Cell {
	return &Cell{Coord: coord, Elevation: elevation, Terrain: terrain}
}

// Occupants returns the units standing on the cell, in arrival order.
func (c *Cell) Occupants() []*Unit {
	out := make([]*Unit, len(c.occupants))
	copy(out, c.occupants)
	return out
}

// IsOccupied reports whether any unit stands here.
func (c *Cell) IsOccupied() bool {
	return len(c.occupants) > 0
}

// IsFreeFor reports whether the cell is empty or holds only u.
func (c *Cell) IsFreeFor(u *Unit) bool {
	for _, o := range c.occupants {
		if o != u {
			return false
		}
	}
	return true
}

// OtherOccupant returns the first occupant that is not u.
func (c *Cell) OtherOccupant(u *Unit) *Unit {
	for _, o := range c.occupants {
		if o != u {
			return o
		}
	}
	return nil
}

// ElevationDelta is the absolute height difference between two cells.
func ElevationDelta(a, b *Cell) float64 {
	return math.Abs(a.Elevation - b.Elevation)
}

// Place puts u on c and updates the back-pointer. A unit already on another
// cell is removed from it first.
func Place(u *Unit, c *Cell) {
	if u.cell == c {
		return
	}
	if u.cell != nil {
		Unplace(u)
	}
	c.occupants = append(c.occupants, u)
	u.cell = c
}

// Unplace removes u from its cell's occupant set.
func Unplace(u *Unit) {
	c := u.cell
	if c == nil {
		return
	}
	for i, o := range c.occupants {
		if o == u {
			c.occupants = append(c.occupants[:i], c.occupants[i+1:]...)
			break
		}
	}
	u.cell = nil
}
