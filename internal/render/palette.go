package render

import (
	"image/color"
	"math"
)

// Palette holds the editor colors.
type Palette struct {
	Background color.RGBA
	Grid       color.RGBA
	Wire       color.RGBA

	// Cells is indexed by the CellLayer values.
	Cells []color.RGBA
}

// DefaultPalette returns the editor colors.
func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{A: 255},
		Grid:       color.RGBA{R: 16, G: 16, B: 16, A: 255},
		Wire:       color.RGBA{R: 235, G: 235, B: 235, A: 255},
		Cells: []color.RGBA{
			CellEmpty:  {},
			CellLow:    {R: 90, G: 90, B: 100, A: 255},
			CellHigh:   {R: 250, G: 70, B: 60, A: 255},
			CellCursor: {R: 255, G: 255, B: 255, A: 70},
		},
	}
}

// Lerp blends a toward b by t in [0, 1].
func Lerp(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
