//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"electron-architect/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var (
	panelColor    = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	headerColor   = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor    = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	disabledColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

// HUD renders the parameter panel to the right of the editor view.
type HUD struct {
	source     core.ParameterProvider
	setter     core.IntParameterSetter
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	controls     []controlState
	panelOffsetX int
	title        string

	pixel *ebiten.Image
}

// NewHUD constructs a HUD showing the parameters of source.
func NewHUD(source core.ParameterProvider, title string, width int) *HUD {
	if width <= 0 {
		return nil
	}
	h := &HUD{source: source, width: width, title: title}
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)
	if provider, ok := source.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			h.controls = append(h.controls, controlState{control: ctrl})
		}
	}
	if setter, ok := source.(core.IntParameterSetter); ok {
		h.setter = setter
	}
	return h
}

// Width returns the panel width.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the snapshot and handles clicks. It reports whether the
// cursor is over the panel so the editor can ignore that click.
func (h *HUD) Update(panelOffsetX int) bool {
	if h == nil {
		return false
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = h.source.Parameters()
	refreshControls(h.controls, h.snapshot)

	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return false
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.click(mx-h.panelOffsetX, my)
	}
	return true
}

func (h *HUD) click(x, y int) {
	if h.setter == nil {
		return
	}
	for i := range h.controls {
		state := &h.controls[i]
		direction := 0
		switch {
		case pointInRect(x, y, state.minus):
			direction = -1
		case pointInRect(x, y, state.plus):
			direction = 1
		default:
			continue
		}
		if v, ok := adjusted(*state, direction); ok && h.setter.SetIntParameter(state.control.Key, v) {
			state.value = v
		}
		return
	}
}

// Draw paints the panel anchored at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, headerColor)

	rows, bottom := snapshotRows(h.snapshot, panelPadding+headerBaseline)
	for _, r := range rows {
		if r.Header {
			text.Draw(h.panel, r.Label, face, panelPadding, r.Y, headerColor)
			continue
		}
		text.Draw(h.panel, r.Label, face, panelPadding+8, r.Y, labelColor)
		w := text.BoundString(face, r.Value).Dx()
		text.Draw(h.panel, r.Value, face, h.width-panelPadding-w, r.Y, labelColor)
	}

	layoutControls(h.controls, h.width, bottom+groupGap)
	for i := range h.controls {
		h.drawControl(&h.controls[i])
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawControl(state *controlState) {
	face := basicfont.Face7x13
	y := state.top + labelBaseline
	text.Draw(h.panel, state.control.Label, face, panelPadding, y, labelColor)

	valueColor := labelColor
	if !state.hasValue {
		valueColor = disabledColor
	}
	value := state.display()
	w := text.BoundString(face, value).Dx()
	text.Draw(h.panel, value, face, state.minus.Min.X-buttonGap-w, y, valueColor)

	_, canLower := adjusted(*state, -1)
	_, canRaise := adjusted(*state, 1)
	h.drawButton(state.minus, "-", canLower && h.setter != nil)
	h.drawButton(state.plus, "+", canRaise && h.setter != nil)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}
