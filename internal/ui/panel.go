package ui

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"electron-architect/internal/core"
	"electron-architect/internal/render"
)

const (
	panelPadding   = 12
	lineHeight     = 36
	rowHeight      = 16
	groupGap       = 8
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
)

// panelRow is one line of read-only text on the HUD.
type panelRow struct {
	Label  string
	Value  string
	Header bool
	Y      int
}

// snapshotRows lays out every parameter group starting at top and returns
// the rows with the y coordinate just below the last one.
func snapshotRows(s core.ParameterSnapshot, top int) ([]panelRow, int) {
	var rows []panelRow
	y := top
	for i, g := range s.Groups {
		if i > 0 {
			y += groupGap
		}
		y += rowHeight
		rows = append(rows, panelRow{Label: g.Name, Header: true, Y: y})
		for _, p := range g.Params {
			y += rowHeight
			rows = append(rows, panelRow{Label: p.Label, Value: p.Value, Y: y})
		}
	}
	return rows, y
}

// controlState tracks one adjustable value on the HUD.
type controlState struct {
	control  core.ParameterControl
	value    int
	hasValue bool

	top   int
	minus image.Rectangle
	plus  image.Rectangle
}

// layoutControls stacks the controls below top, with +/- buttons flush to
// the right edge of a panel of the given width.
func layoutControls(controls []controlState, width, top int) {
	for i := range controls {
		rowTop := top + i*lineHeight
		buttonY := rowTop + (lineHeight-buttonSize)/2
		plus := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		controls[i].top = rowTop
		controls[i].minus = minus
		controls[i].plus = plus
	}
}

// refreshControls reads the current control values out of the snapshot.
func refreshControls(controls []controlState, s core.ParameterSnapshot) {
	for i := range controls {
		state := &controls[i]
		state.hasValue = false
		p, ok := s.Lookup(state.control.Key)
		if !ok || p.Type != core.ParamTypeInt {
			continue
		}
		v, err := strconv.Atoi(p.Value)
		if err != nil {
			continue
		}
		state.value = v
		state.hasValue = true
	}
}

// adjusted returns the value one step in direction and whether it differs
// from the current one once bounds are applied.
func adjusted(state controlState, direction int) (int, bool) {
	if !state.hasValue || direction == 0 {
		return state.value, false
	}
	step := state.control.Step
	if step <= 0 {
		step = 1
	}
	target := state.control.Clamp(state.value + direction*step)
	return target, target != state.value
}

func (s controlState) display() string {
	if !s.hasValue {
		return "--"
	}
	return strconv.Itoa(s.value)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}

var (
	shallowBranch = color.RGBA{R: 80, G: 170, B: 230, A: 150}
	deepBranch    = color.RGBA{R: 250, G: 100, B: 60, A: 240}
)

// branchColor shades branch markers from shallow (cool) to deep (warm).
func branchColor(depth, maxDepth int) color.RGBA {
	t := 0.0
	if maxDepth > 0 {
		t = float64(depth) / float64(maxDepth)
	}
	return render.Lerp(shallowBranch, deepBranch, t)
}

// HoverLabel describes the hovered cell and the index path leading to it.
func HoverLabel(cell core.Coord, gate string, found, state bool, path []int) string {
	var b strings.Builder
	b.WriteString(cell.String())
	if found {
		level := "low"
		if state {
			level = "high"
		}
		fmt.Fprintf(&b, " %s %s", gate, level)
	}
	if len(path) > 0 {
		parts := make([]string, len(path))
		for i, q := range path {
			parts[i] = strconv.Itoa(q)
		}
		fmt.Fprintf(&b, " q[%s]", strings.Join(parts, " "))
	}
	return b.String()
}
