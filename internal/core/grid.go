package core

import "math"

// Grid maps between world space and square grid cells of a fixed size.
type Grid struct {
	CellSize float64
}

// NewGrid returns a Grid with the given cell size. Non-positive sizes fall back to 1.
func NewGrid(cellSize float64) Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return Grid{CellSize: cellSize}
}

// ToCell returns the cell containing p. Flooring makes every world point
// belong to exactly one cell, including negative coordinates.
func (g Grid) ToCell(p Point) Coord {
	return Coord{
		X: int32(math.Floor(p.X / g.CellSize)),
		Y: int32(math.Floor(p.Y / g.CellSize)),
	}
}

// ToWorld returns the top left corner of the cell.
func (g Grid) ToWorld(c Coord) Point {
	return Point{X: float64(c.X) * g.CellSize, Y: float64(c.Y) * g.CellSize}
}

// ToWorldCentered returns the center of the cell.
func (g Grid) ToWorldCentered(c Coord) Point {
	return Point{
		X: (float64(c.X) + 0.5) * g.CellSize,
		Y: (float64(c.Y) + 0.5) * g.CellSize,
	}
}

// VisibleCells returns the inclusive cell range covering a w*h viewport whose
// top left corner sits at origin.
func (g Grid) VisibleCells(origin Point, w, h float64) (Coord, Coord) {
	min := g.ToCell(origin)
	max := g.ToCell(Point{X: origin.X + w, Y: origin.Y + h})
	return min, max
}
