package app

import (
	"os"
	"strconv"

	"electron-architect/internal/circuit"
	"electron-architect/internal/core"
	"electron-architect/internal/layout"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
)

const (
	minTPS = 1
	maxTPS = 240

	tpsKey = "tps"
)

// Editor is the input-independent state of the circuit editor. Each click
// places the selected gate and wires it from the previously placed node.
type Editor struct {
	circuit *circuit.Circuit
	gate    circuit.Gate
	last    circuit.NodeID

	paused   bool
	tickOnce bool
	timer    *core.FixedStep
	states   map[circuit.NodeID]bool
	passes   int

	hover    core.Coord
	hovering bool
	savePath string
}

// NewEditor constructs an editor with an empty circuit.
func NewEditor(cfg *Config) *Editor {
	return newEditor(cfg, core.NewFixedStep(cfg.TPS))
}

func newEditor(cfg *Config, timer *core.FixedStep) *Editor {
	return &Editor{
		circuit:  circuit.New(),
		gate:     circuit.Always,
		timer:    timer,
		states:   make(map[circuit.NodeID]bool),
		savePath: cfg.SavePath,
	}
}

// Circuit returns the circuit being edited.
func (e *Editor) Circuit() *circuit.Circuit { return e.circuit }

// Gate returns the gate placed by the next click.
func (e *Editor) Gate() circuit.Gate { return e.gate }

// CycleGate selects the next gate of the palette.
func (e *Editor) CycleGate() { e.gate = e.gate.Next() }

// Paused reports whether evaluation ticks are suspended.
func (e *Editor) Paused() bool { return e.paused }

// TogglePause suspends or resumes evaluation ticks.
func (e *Editor) TogglePause() {
	e.paused = !e.paused
	if !e.paused {
		e.timer.Reset()
	}
}

// Resume restarts evaluation ticks.
func (e *Editor) Resume() {
	if e.paused {
		e.TogglePause()
	}
}

// StepOnce requests a single evaluation on the next Update.
func (e *Editor) StepOnce() { e.tickOnce = true }

// Place puts the selected gate on cell and wires it from the previously
// placed node when that node is still there.
func (e *Editor) Place(cell core.Coord) circuit.NodeID {
	id := e.circuit.PlaceNode(e.gate, cell)
	if _, ok := e.circuit.Node(e.last); ok {
		if err := e.circuit.Connect(e.last, id); err != nil {
			logs.Warn(errors.New("wiring placed node failed").Wrap(err))
		}
	}
	e.last = id
	return id
}

// Detach ends the current chain so the next placed node is not wired.
func (e *Editor) Detach() { e.last = circuit.NodeID{} }

// Update runs an evaluation pass when one is due and reports whether it did.
func (e *Editor) Update() bool {
	due := !e.paused && e.timer.ShouldStep()
	if !due && !e.tickOnce {
		return false
	}
	e.tickOnce = false
	e.Evaluate()
	return true
}

// Evaluate recomputes the state of every node.
func (e *Editor) Evaluate() {
	clear(e.states)
	for _, s := range e.circuit.EvaluateAll() {
		e.states[s.ID] = s.State
	}
	e.passes++
}

// Snapshot returns every node with its state from the last evaluation. Nodes
// placed since then read low.
func (e *Editor) Snapshot() []circuit.NodeState {
	out := make([]circuit.NodeState, 0, e.circuit.Len())
	for n := range e.circuit.Nodes() {
		out = append(out, circuit.NodeState{NodeInfo: n, State: e.states[n.ID]})
	}
	return out
}

// Wires returns every wire of the circuit for drawing.
func (e *Editor) Wires() []circuit.WireInfo {
	out := make([]circuit.WireInfo, 0, e.circuit.WireCount())
	for w := range e.circuit.AllWires() {
		out = append(out, w)
	}
	return out
}

// SetHover records the cell under the cursor.
func (e *Editor) SetHover(cell core.Coord, ok bool) {
	e.hover = cell
	e.hovering = ok
}

// Hover describes the cell under the cursor.
type Hover struct {
	Cell  core.Coord
	Node  circuit.NodeInfo
	Found bool
	State bool
	Path  []int
}

// Hover returns the hovered cell, if any.
func (e *Editor) Hover() (Hover, bool) {
	if !e.hovering {
		return Hover{}, false
	}
	h := Hover{Cell: e.hover, Path: e.circuit.IndexPath(e.hover)}
	if id, ok := e.circuit.FindNodeAt(e.hover); ok {
		h.Node, h.Found = e.circuit.Node(id)
		h.State = e.states[id]
	}
	return h, true
}

// Clear drops the whole circuit.
func (e *Editor) Clear() {
	e.circuit = circuit.New()
	e.last = circuit.NodeID{}
	clear(e.states)
	logs.WithTag("circuit_id", e.circuit.ID().String()).Info("circuit cleared")
}

// Open replaces the circuit with the one described by l.
func (e *Editor) Open(l *layout.Layout) error {
	c := circuit.New()
	if _, err := l.Build(c); err != nil {
		return errors.New("opening layout failed").
			WithType(errors.Type(err)).
			WithTag("layout", l.Name).
			Wrap(err)
	}
	e.circuit = c
	e.last = circuit.NodeID{}
	e.Evaluate()
	logs.WithTag("circuit_id", c.ID().String()).
		WithTag("layout", l.Name).
		Info("layout opened")
	return nil
}

// Save writes the circuit as a YAML layout to the configured path.
func (e *Editor) Save() error {
	f, err := os.Create(e.savePath)
	if err != nil {
		return errors.New("creating layout file failed").
			WithTag("path", e.savePath).
			Wrap(err)
	}
	defer f.Close()

	l := layout.FromCircuit(e.circuit.ID().String(), e.circuit)
	if err := l.Encode(f); err != nil {
		return err
	}

	logs.WithTag("circuit_id", e.circuit.ID().String()).
		WithTag("path", e.savePath).
		WithTag("nodes", len(l.Nodes)).
		Info("layout saved")
	return f.Close()
}

// Parameters reports the editor state followed by the circuit counters.
func (e *Editor) Parameters() core.ParameterSnapshot {
	status := "running"
	if e.paused {
		status = "paused"
	}
	snap := e.circuit.Parameters()
	editor := core.ParameterGroup{
		Name: "Editor",
		Params: []core.Parameter{
			{Key: "gate", Label: "Gate", Type: core.ParamTypeText, Value: e.gate.String()},
			{Key: "status", Label: "Status", Type: core.ParamTypeText, Value: status},
			{Key: tpsKey, Label: "Ticks/s", Type: core.ParamTypeInt, Value: strconv.Itoa(e.timer.TPS())},
			{Key: "passes", Label: "Passes", Type: core.ParamTypeInt, Value: strconv.Itoa(e.passes)},
		},
	}
	snap.Groups = append([]core.ParameterGroup{editor}, snap.Groups...)
	return snap
}

// ParameterControls lists the values adjustable from the HUD.
func (e *Editor) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: tpsKey, Label: "Ticks/s", Step: 5, Min: minTPS, Max: maxTPS, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates an adjustable value.
func (e *Editor) SetIntParameter(key string, value int) bool {
	switch key {
	case tpsKey:
		if value < minTPS || value > maxTPS {
			return false
		}
		e.timer.SetTPS(value)
		return true
	default:
		return false
	}
}
