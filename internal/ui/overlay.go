//go:build ebiten

package ui

import (
	"image/color"
	"iter"

	"electron-architect/internal/circuit"
	"electron-architect/internal/core"
	"electron-architect/internal/quadtree"
	"electron-architect/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const branchMarkerSize = 5

var (
	hoverColor     = color.RGBA{R: 255, G: 255, B: 255, A: 60}
	hoverTextColor = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	quadrantColor  = color.RGBA{R: 60, G: 120, B: 200, A: 90}
)

// Overlay draws optional debugging visuals on top of the editor.
type Overlay struct {
	painter      *render.Painter
	showBranches bool
	showHover    bool
}

// NewOverlay constructs an overlay drawing with p.
func NewOverlay(p *render.Painter) *Overlay {
	return &Overlay{painter: p, showHover: true}
}

// Update toggles layers: 1 for spatial index branches, 2 for the hovered cell.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showBranches = !o.showBranches
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showHover = !o.showHover
	}
}

// DrawBranches marks every branch center and the quadrant boundaries through
// it, shaded by depth.
func (o *Overlay) DrawBranches(screen *ebiten.Image, view render.View, branches iter.Seq[quadtree.BranchInfo], maxDepth int) {
	if !o.showBranches {
		return
	}
	w, h := float64(view.Width), float64(view.Height)
	for b := range branches {
		// Quadrant boundaries sit on the far edge of the center cell since
		// the center belongs to the lower quadrants on both axes.
		x, y := view.ToScreen(circuit.GridToWorld(b.Center.Add(core.C(1, 1))))
		if x >= 0 && x <= w {
			o.painter.Line(screen, render.Segment{X1: x, Y1: 0, X2: x, Y2: h}, 1, quadrantColor)
		}
		if y >= 0 && y <= h {
			o.painter.Line(screen, render.Segment{X1: 0, Y1: y, X2: w, Y2: y}, 1, quadrantColor)
		}

		cx, cy := view.ToScreen(circuit.GridToWorldCentered(b.Center))
		o.painter.Point(screen, cx, cy, branchMarkerSize, branchColor(b.Depth, maxDepth))
	}
}

// DrawHover outlines cell and prints label next to it.
func (o *Overlay) DrawHover(screen *ebiten.Image, view render.View, cell core.Coord, label string) {
	if !o.showHover {
		return
	}
	x, y := view.ToScreen(circuit.GridToWorld(cell))
	o.painter.Rect(screen, x, y, circuit.CellSize, circuit.CellSize, hoverColor)
	text.Draw(screen, label, basicfont.Face7x13, int(x+circuit.CellSize+4), int(y+circuit.CellSize-3), hoverTextColor)
}
