//go:build ebiten

package render

import (
	"image/color"
	"math"

	"electron-architect/internal/circuit"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	gridThickness = 2
	wireThickness = 2
)

// Painter draws the grid, wires and node layer onto the screen.
type Painter struct {
	palette Palette
	pixel   *ebiten.Image

	layerImg *ebiten.Image
	layerW   int
	layerH   int
}

// NewPainter allocates a painter using the given palette.
func NewPainter(palette Palette) *Painter {
	p := &Painter{palette: palette}
	p.pixel = ebiten.NewImage(1, 1)
	p.pixel.Fill(color.White)
	return p
}

// Draw paints one frame.
func (p *Painter) Draw(screen *ebiten.Image, view View, layer *CellLayer, wires []circuit.WireInfo) {
	screen.Fill(p.palette.Background)

	for _, s := range view.GridLines() {
		p.Line(screen, s, gridThickness, p.palette.Grid)
	}

	for _, w := range wires {
		for _, s := range view.WireSegments(w) {
			p.Line(screen, s, wireThickness, p.palette.Wire)
		}
	}

	p.blit(screen, view, layer)
}

// blit uploads the cell layer and draws it scaled to the cell size.
func (p *Painter) blit(screen *ebiten.Image, view View, layer *CellLayer) {
	w, h := layer.Size()
	if w <= 0 || h <= 0 {
		return
	}
	if p.layerImg == nil || p.layerW != w || p.layerH != h {
		p.layerImg = ebiten.NewImage(w, h)
		p.layerW, p.layerH = w, h
	}
	p.layerImg.WritePixels(layer.RGBA(p.palette.Cells))

	x, y := view.ToScreen(circuit.GridToWorld(layer.Origin()))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(circuit.CellSize, circuit.CellSize)
	op.GeoM.Translate(x, y)
	screen.DrawImage(p.layerImg, op)
}

// Line draws a segment of the given thickness.
func (p *Painter) Line(dst *ebiten.Image, s Segment, thickness float64, col color.RGBA) {
	length := s.Length()
	if thickness <= 0 || length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length+thickness, thickness)
	op.GeoM.Translate(-thickness/2, -thickness/2)
	op.GeoM.Rotate(math.Atan2(s.Y2-s.Y1, s.X2-s.X1))
	op.GeoM.Translate(s.X1, s.Y1)
	op.ColorScale.ScaleWithColor(col)
	dst.DrawImage(p.pixel, op)
}

// Rect fills an axis aligned rectangle.
func (p *Painter) Rect(dst *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	dst.DrawImage(p.pixel, op)
}

// Point fills a square of the given size centered on x, y.
func (p *Painter) Point(dst *ebiten.Image, x, y, size float64, col color.RGBA) {
	p.Rect(dst, x-size/2, y-size/2, size, size, col)
}
