package circuit

import "electron-architect/internal/core"

// Wire carries the output of an upstream node into a downstream node. The
// downstream node owns the wire; the upstream reference is a handle and does
// not keep that node alive.
type Wire struct {
	From NodeID
	To   NodeID

	// Elbows are routing waypoints for drawing only.
	Elbows []core.Coord
}

// WireInfo is a drawing view of a wire with its endpoints resolved.
type WireInfo struct {
	From NodeID
	To   NodeID

	// FromPosition is only meaningful when Live is true.
	FromPosition core.Coord
	ToPosition   core.Coord
	Live         bool

	Elbows []core.Coord
}

// Path returns the cells a drawn wire passes through: the upstream node, each
// elbow, then the downstream node. A dangling wire has no path.
func (w WireInfo) Path() []core.Coord {
	if !w.Live {
		return nil
	}
	path := make([]core.Coord, 0, len(w.Elbows)+2)
	path = append(path, w.FromPosition)
	path = append(path, w.Elbows...)
	path = append(path, w.ToPosition)
	return path
}

// elbowFor routes a wire horizontally out of from and vertically into to.
func elbowFor(from, to core.Coord) core.Coord {
	return core.Coord{X: to.X, Y: from.Y}
}
