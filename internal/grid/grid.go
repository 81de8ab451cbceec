// Package grid is an axial hex board implementing domain.Grid.
package grid

import (
	"sort"

	"tactics-server/internal/domain"
)

// HexGrid stores cells by axial coordinate.
type HexGrid struct {
	cells map[domain.Axial]*domain.Cell
	order []*domain.Cell
}

// New creates an empty board.
func New() *HexGrid {
	return &HexGrid{cells: make(map[domain.Axial]*domain.Cell)}
}

// NewHexagon creates a hexagon-shaped board of plains at elevation 0.
func NewHexagon(radius int) *HexGrid {
	g := New()
	for q := -radius; q <= radius; q++ {
		for r := max(-radius, -q-radius); r <= min(radius, -q+radius); r++ {
			g.Add(domain.NewCell(domain.Axial{Q: q, R: r}, 0, domain.TerrainPlains))
		}
	}
	return g
}

// Add inserts or replaces a cell.
func (g *HexGrid) Add(c *domain.Cell) {
	if old, ok := g.cells[c.Coord]; ok {
		for i, o := range g.order {
			if o == old {
				g.order[i] = c
				break
			}
		}
	} else {
		g.order = append(g.order, c)
	}
	g.cells[c.Coord] = c
	sort.SliceStable(g.order, func(i, j int) bool {
		a, b := g.order[i].Coord, g.order[j].Coord
		if a.R != b.R {
			return a.R < b.R
		}
		return a.Q < b.Q
	})
}

func (g *HexGrid) CellAt(c domain.Axial) *domain.Cell {
	return g.cells[c]
}

func (g *HexGrid) Cells() []*domain.Cell {
	out := make([]*domain.Cell, len(g.order))
	copy(out, g.order)
	return out
}

func (g *HexGrid) Neighbors(c *domain.Cell) []*domain.Cell {
	if c == nil {
		return nil
	}
	out := make([]*domain.Cell, 0, 6)
	for _, n := range c.Coord.Neighbors() {
		if cell, ok := g.cells[n]; ok {
			out = append(out, cell)
		}
	}
	return out
}

func (g *HexGrid) Range(c *domain.Cell, n int) []*domain.Cell {
	if c == nil || n < 0 {
		return nil
	}
	out := make([]*domain.Cell, 0)
	for dq := -n; dq <= n; dq++ {
		for dr := max(-n, -dq-n); dr <= min(n, -dq+n); dr++ {
			if cell, ok := g.cells[domain.Axial{Q: c.Coord.Q + dq, R: c.Coord.R + dr}]; ok {
				out = append(out, cell)
			}
		}
	}
	return out
}

func (g *HexGrid) Line(a, b domain.Axial) []*domain.Cell {
	out := make([]*domain.Cell, 0)
	for _, coord := range domain.LineCoords(a, b) {
		if cell, ok := g.cells[coord]; ok {
			out = append(out, cell)
		}
	}
	return out
}

func (g *HexGrid) Distance(a, b *domain.Cell) int {
	if a == nil || b == nil {
		return 0
	}
	return domain.HexDistance(a.Coord, b.Coord)
}
