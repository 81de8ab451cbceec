package domain

// Grid is the read/query surface of the board. The rules never mutate the
// board's shape, only occupants and marks on cells it returns.
type Grid interface {
	// CellAt returns nil for coordinates off the board.
	CellAt(c Axial) *Cell
	// Cells returns every cell in a stable order.
	Cells() []*Cell
	// Neighbors returns adjacent cells in HexDirections order, skipping
	// coordinates off the board.
	Neighbors(c *Cell) []*Cell
	// Range returns every cell within n steps of c, c included.
	Range(c *Cell, n int) []*Cell
	// Line returns the cells on the straight trace from a to b, both ends included.
	Line(a, b Axial) []*Cell
	// Distance is the step distance between two cells.
	Distance(a, b *Cell) int
}
