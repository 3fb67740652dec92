package render

import (
	"image/color"

	"electron-architect/internal/circuit"
	"electron-architect/internal/core"
)

// Cell values stored in a CellLayer.
const (
	CellEmpty uint8 = iota
	CellLow
	CellHigh
	CellCursor
)

// CellLayer rasterizes the visible cells into one byte per cell so the whole
// node layer can be uploaded as a single image and scaled by the cell size.
type CellLayer struct {
	min   core.Coord
	w, h  int
	cells []uint8
	buf   []byte
}

// Reset resizes the layer to cover min..max inclusive and clears it.
func (l *CellLayer) Reset(min, max core.Coord) {
	l.min = min
	l.w = int(max.X-min.X) + 1
	l.h = int(max.Y-min.Y) + 1
	if l.w < 0 {
		l.w = 0
	}
	if l.h < 0 {
		l.h = 0
	}
	n := l.w * l.h
	if cap(l.cells) < n {
		l.cells = make([]uint8, n)
		l.buf = make([]byte, 4*n)
	}
	l.cells = l.cells[:n]
	l.buf = l.buf[:4*n]
	clear(l.cells)
}

// Origin is the cell drawn at the top left pixel of the layer.
func (l *CellLayer) Origin() core.Coord { return l.min }

// Size returns the layer dimensions in cells.
func (l *CellLayer) Size() (int, int) { return l.w, l.h }

// Set stores v for c. Cells outside the layer are ignored.
func (l *CellLayer) Set(c core.Coord, v uint8) {
	x := int(c.X - l.min.X)
	y := int(c.Y - l.min.Y)
	if x < 0 || y < 0 || x >= l.w || y >= l.h {
		return
	}
	l.cells[y*l.w+x] = v
}

// At returns the value stored for c.
func (l *CellLayer) At(c core.Coord) uint8 {
	x := int(c.X - l.min.X)
	y := int(c.Y - l.min.Y)
	if x < 0 || y < 0 || x >= l.w || y >= l.h {
		return CellEmpty
	}
	return l.cells[y*l.w+x]
}

// Fill marks every node by its evaluated state.
func (l *CellLayer) Fill(states []circuit.NodeState) {
	for _, s := range states {
		v := CellLow
		if s.State {
			v = CellHigh
		}
		l.Set(s.Position, v)
	}
}

// RGBA converts the layer into RGBA pixels, one per cell.
func (l *CellLayer) RGBA(palette []color.RGBA) []byte {
	fillPaletteRGBA(l.buf, l.cells, palette)
	return l.buf
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
