package core

import "fmt"

// Coord is an integer grid cell coordinate. It is a value type compared with ==.
type Coord struct {
	X int32
	Y int32
}

// C is shorthand for Coord{X: x, Y: y}.
func C(x, y int32) Coord { return Coord{X: x, Y: y} }

// Add returns the component-wise sum of c and o.
func (c Coord) Add(o Coord) Coord { return Coord{X: c.X + o.X, Y: c.Y + o.Y} }

// Sub returns the component-wise difference c - o.
func (c Coord) Sub(o Coord) Coord { return Coord{X: c.X - o.X, Y: c.Y - o.Y} }

// Position lets a bare Coord be stored in a spatial index.
func (c Coord) Position() Coord { return c }

func (c Coord) String() string { return fmt.Sprintf("(%d, %d)", c.X, c.Y) }

// Point is a position in world (pixel) space.
type Point struct {
	X float64
	Y float64
}

// Positioned is implemented by anything that occupies exactly one grid cell.
type Positioned interface {
	Position() Coord
}
