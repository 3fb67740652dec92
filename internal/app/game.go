//go:build ebiten

package app

import (
	"electron-architect/internal/circuit"
	"electron-architect/internal/layout"
	"electron-architect/internal/render"
	"electron-architect/internal/ui"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const panStep = circuit.CellSize

// Game adapts the editor to the ebiten.Game interface.
type Game struct {
	cfg     *Config
	editor  *Editor
	painter *render.Painter
	hud     *ui.HUD
	overlay *ui.Overlay

	view  render.View
	layer render.CellLayer
}

// New constructs a Game driving editor.
func New(cfg *Config, editor *Editor) *Game {
	painter := render.NewPainter(render.DefaultPalette())
	return &Game{
		cfg:     cfg,
		editor:  editor,
		painter: painter,
		hud:     ui.NewHUD(editor, "Electron Architect", cfg.PanelWidth()),
		overlay: ui.NewOverlay(painter),
		view:    render.View{Width: cfg.Width, Height: cfg.Height},
	}
}

// Update handles input and advances evaluation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.editor.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.editor.Resume()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.editor.StepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.editor.CycleGate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.editor.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.editor.Save(); err != nil {
			logs.Warn(err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) && g.cfg.Layout != "" {
		g.reopen()
	}
	g.pan()

	g.overlay.Update()
	overPanel := g.hud.Update(g.view.Width)

	mx, my := ebiten.CursorPosition()
	inView := !overPanel && mx >= 0 && my >= 0 && mx < g.view.Width && my < g.view.Height
	cell := g.view.CellAt(mx, my)
	g.editor.SetHover(cell, inView)
	if inView && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.editor.Place(cell)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.editor.Detach()
	}

	g.editor.Update()
	return nil
}

func (g *Game) pan() {
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx -= panStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx += panStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy -= panStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy += panStep
	}
	g.view.Pan(dx, dy)
}

func (g *Game) reopen() {
	l, err := layout.Load(g.cfg.Layout)
	if err != nil {
		logs.Warn(err)
		return
	}
	if err := g.editor.Open(l); err != nil {
		logs.Warn(err)
	}
}

// Draw renders the grid, wires, nodes, overlay and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	min, max := g.view.Cells()
	g.layer.Reset(min, max)
	g.layer.Fill(g.editor.Snapshot())
	hover, hovering := g.editor.Hover()
	if hovering && g.layer.At(hover.Cell) == render.CellEmpty {
		g.layer.Set(hover.Cell, render.CellCursor)
	}
	g.painter.Draw(screen, g.view, &g.layer, g.editor.Wires())

	c := g.editor.Circuit()
	g.overlay.DrawBranches(screen, g.view, c.Branches(), c.Stats().Index.MaxDepth)
	if hovering {
		label := ui.HoverLabel(hover.Cell, hover.Node.Gate.String(), hover.Found, hover.State, hover.Path)
		g.overlay.DrawHover(screen, g.view, hover.Cell, label)
	}

	g.hud.Draw(screen, g.view.Width, g.view.Height)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.view.Width + g.hud.Width(), g.view.Height
}
