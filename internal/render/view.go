package render

import (
	"math"

	"electron-architect/internal/circuit"
	"electron-architect/internal/core"
)

// View is the visible window onto the unbounded world. Origin is the world
// point drawn at the top left pixel of the screen.
type View struct {
	Origin core.Point
	Width  int
	Height int
}

// ToScreen converts a world point to screen pixels.
func (v View) ToScreen(p core.Point) (float64, float64) {
	return p.X - v.Origin.X, p.Y - v.Origin.Y
}

// ToWorld converts a screen pixel to a world point.
func (v View) ToWorld(x, y int) core.Point {
	return core.Point{X: v.Origin.X + float64(x), Y: v.Origin.Y + float64(y)}
}

// CellAt returns the grid cell under a screen pixel.
func (v View) CellAt(x, y int) core.Coord {
	return circuit.WorldToGrid(v.ToWorld(x, y))
}

// Pan moves the view by dx, dy screen pixels.
func (v *View) Pan(dx, dy float64) {
	v.Origin.X += dx
	v.Origin.Y += dy
}

// Cells returns the inclusive range of cells touching the view.
func (v View) Cells() (core.Coord, core.Coord) {
	return circuit.Grid().VisibleCells(v.Origin, float64(v.Width), float64(v.Height))
}

// Segment is a straight line in screen space.
type Segment struct {
	X1, Y1 float64
	X2, Y2 float64
}

// Length returns the euclidean length of the segment.
func (s Segment) Length() float64 {
	return math.Hypot(s.X2-s.X1, s.Y2-s.Y1)
}

// GridLines returns one vertical line per visible column boundary followed
// by one horizontal line per visible row boundary.
func (v View) GridLines() []Segment {
	min, max := v.Cells()
	w, h := float64(v.Width), float64(v.Height)
	lines := make([]Segment, 0, int(max.X-min.X)+int(max.Y-min.Y)+2)
	for x := min.X; x <= max.X; x++ {
		sx, _ := v.ToScreen(circuit.GridToWorld(core.C(x, min.Y)))
		if sx < 0 || sx > w {
			continue
		}
		lines = append(lines, Segment{X1: sx, Y1: 0, X2: sx, Y2: h})
	}
	for y := min.Y; y <= max.Y; y++ {
		_, sy := v.ToScreen(circuit.GridToWorld(core.C(min.X, y)))
		if sy < 0 || sy > h {
			continue
		}
		lines = append(lines, Segment{X1: 0, Y1: sy, X2: w, Y2: sy})
	}
	return lines
}

// WireSegments returns the screen polyline of a wire through the centers of
// its cells. Dangling wires have nothing to draw.
func (v View) WireSegments(w circuit.WireInfo) []Segment {
	path := w.Path()
	if len(path) < 2 {
		return nil
	}
	segments := make([]Segment, 0, len(path)-1)
	x1, y1 := v.ToScreen(circuit.GridToWorldCentered(path[0]))
	for _, c := range path[1:] {
		x2, y2 := v.ToScreen(circuit.GridToWorldCentered(c))
		if x1 != x2 || y1 != y2 {
			segments = append(segments, Segment{X1: x1, Y1: y1, X2: x2, Y2: y2})
		}
		x1, y1 = x2, y2
	}
	return segments
}
