package domain

import (
	"fmt"
	"math"
)

// Axial is a hex coordinate in axial form. The third cube coordinate is -Q-R.
type Axial struct {
	Q int `json:"q" yaml:"q"`
	R int `json:"r" yaml:"r"`
}

// S returns the implicit cube coordinate.
func (a Axial) S() int {
	return -a.Q - a.R
}

// HexDirections lists neighbor offsets in the order every grid query uses:
// E, NE, NW, W, SW, SE.
var HexDirections = [6]Axial{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Add returns the sum of two coordinates.
func (a Axial) Add(o Axial) Axial {
	return Axial{Q: a.Q + o.Q, R: a.R + o.R}
}

// Neighbors returns the six adjacent coordinates in HexDirections order.
func (a Axial) Neighbors() [6]Axial {
	var out [6]Axial
	for i, d := range HexDirections {
		out[i] = a.Add(d)
	}
	return out
}

// HexDistance returns the number of steps between two coordinates.
func HexDistance(a, b Axial) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())
	return max(dq, dr, ds)
}

func (a Axial) String() string {
	return fmt.Sprintf("(%d,%d)", a.Q, a.R)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// lineEps nudges lerps off cell edges so ties always round the same way.
const lineEps = 1e-6

// LineCoords walks the straight trace from a to b by lerping in cube space.
// Both ends are included.
func LineCoords(a, b Axial) []Axial {
	n := HexDistance(a, b)
	if n == 0 {
		return []Axial{a}
	}
	aq, ar := float64(a.Q)+lineEps, float64(a.R)+lineEps
	bq, br := float64(b.Q)+lineEps, float64(b.R)+lineEps
	out := make([]Axial, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		out = append(out, CubeRound(lerp(aq, bq, t), lerp(ar, br, t)))
	}
	return out
}

// Extend returns the coordinate `steps` cells past b on the a->b line.
func Extend(a, b Axial, steps int) Axial {
	n := HexDistance(a, b)
	if n == 0 {
		return b
	}
	t := float64(n+steps) / float64(n)
	aq, ar := float64(a.Q)+lineEps, float64(a.R)+lineEps
	bq, br := float64(b.Q)+lineEps, float64(b.R)+lineEps
	return CubeRound(lerp(aq, bq, t), lerp(ar, br, t))
}

// CubeRound snaps fractional axial coordinates to the nearest cell.
func CubeRound(fq, fr float64) Axial {
	fs := -fq - fr
	q, r, s := math.Round(fq), math.Round(fr), math.Round(fs)
	dq, dr, ds := math.Abs(q-fq), math.Abs(r-fr), math.Abs(s-fs)
	switch {
	case dq > dr && dq > ds:
		q = -r - s
	case dr > ds:
		r = -q - s
	}
	return Axial{Q: int(q), R: int(r)}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
