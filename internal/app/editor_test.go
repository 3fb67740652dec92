package app

import (
	"flag"
	"path/filepath"
	"testing"
	"time"

	"electron-architect/internal/circuit"
	"electron-architect/internal/core"
	"electron-architect/internal/layout"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestEditor(t *testing.T) (*Editor, *fakeClock) {
	t.Helper()
	cfg := NewConfig()
	cfg.SavePath = filepath.Join(t.TempDir(), "saved.yaml")
	clock := &fakeClock{now: time.Unix(100, 0)}
	return newEditor(cfg, core.NewFixedStepWithClock(cfg.TPS, clock.Now)), clock
}

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("architect", flag.ContinueOnError)
	cfg.Bind(fs)

	require.NoError(t, fs.Parse([]string{"-tps", "30", "-hud=false", "-layout", "adder.yaml", "-width", "800"}))
	assert.Equal(t, 30, cfg.TPS)
	assert.False(t, cfg.HUD)
	assert.Equal(t, 0, cfg.PanelWidth())
	assert.Equal(t, "adder.yaml", cfg.Layout)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 720, cfg.Height)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tps too low", func(c *Config) { c.TPS = 0 }},
		{"tps too high", func(c *Config) { c.TPS = 1000 }},
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"hud width", func(c *Config) { c.HUDWidth = -1 }},
		{"save path", func(c *Config) { c.SavePath = "" }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := NewConfig()
			test.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsType(err, ErrTypeInvalidConfig))
		})
	}

	cfg := NewConfig()
	cfg.HUD = false
	cfg.HUDWidth = 0
	require.NoError(t, cfg.Validate())
}

func TestPlaceChainsFromPreviousNode(t *testing.T) {
	e, _ := newTestEditor(t)
	c := e.Circuit()

	src := e.Place(core.C(0, 0))
	e.CycleGate()
	e.CycleGate()
	require.Equal(t, circuit.Not, e.Gate())
	mid := e.Place(core.C(3, 0))
	out := e.Place(core.C(3, 4))

	require.Equal(t, 2, c.WireCount())
	for w := range c.Wires(mid) {
		assert.Equal(t, src, w.From)
	}
	for w := range c.Wires(out) {
		assert.Equal(t, mid, w.From)
	}

	e.Detach()
	lone := e.Place(core.C(9, 9))
	info, ok := c.Node(lone)
	require.True(t, ok)
	assert.Zero(t, info.Inputs)
}

func TestPlaceOnPreviousCellDoesNotWire(t *testing.T) {
	e, _ := newTestEditor(t)
	e.Place(core.C(1, 1))
	e.Place(core.C(1, 1))
	assert.Equal(t, 1, e.Circuit().Len())
	assert.Equal(t, 0, e.Circuit().WireCount())
}

func TestUpdateFollowsTimerAndPause(t *testing.T) {
	e, clock := newTestEditor(t)
	e.Place(core.C(0, 0))

	require.True(t, e.Update())
	require.False(t, e.Update())

	clock.Advance(100 * time.Millisecond)
	require.True(t, e.Update())

	e.TogglePause()
	require.True(t, e.Paused())
	clock.Advance(time.Second)
	require.False(t, e.Update())

	e.StepOnce()
	require.True(t, e.Update())
	require.False(t, e.Update())

	e.Resume()
	require.False(t, e.Paused())
	require.False(t, e.Update())
	clock.Advance(100 * time.Millisecond)
	require.True(t, e.Update())
}

func TestSnapshotReflectsLastEvaluation(t *testing.T) {
	e, _ := newTestEditor(t)
	e.Place(core.C(0, 0))
	e.CycleGate()
	e.CycleGate()
	e.Place(core.C(2, 0))

	for _, s := range e.Snapshot() {
		assert.False(t, s.State, "not evaluated yet")
	}

	e.Evaluate()
	states := map[core.Coord]bool{}
	for _, s := range e.Snapshot() {
		states[s.Position] = s.State
	}
	assert.Equal(t, map[core.Coord]bool{core.C(0, 0): true, core.C(2, 0): false}, states)
	assert.Len(t, e.Wires(), 1)
}

func TestHover(t *testing.T) {
	e, _ := newTestEditor(t)
	_, ok := e.Hover()
	require.False(t, ok)

	e.Place(core.C(4, 4))
	e.Evaluate()

	e.SetHover(core.C(4, 4), true)
	h, ok := e.Hover()
	require.True(t, ok)
	assert.True(t, h.Found)
	assert.True(t, h.State)
	assert.Equal(t, circuit.Always, h.Node.Gate)

	e.SetHover(core.C(5, 4), true)
	h, ok = e.Hover()
	require.True(t, ok)
	assert.False(t, h.Found)
	assert.Equal(t, core.C(5, 4), h.Cell)
}

func TestParametersAndControls(t *testing.T) {
	e, _ := newTestEditor(t)
	e.Place(core.C(0, 0))

	snap := e.Parameters()
	require.NotEmpty(t, snap.Groups)
	assert.Equal(t, "Editor", snap.Groups[0].Name)

	p, ok := snap.Lookup("gate")
	require.True(t, ok)
	assert.Equal(t, "always", p.Value)

	p, ok = snap.Lookup("nodes")
	require.True(t, ok)
	assert.Equal(t, "1", p.Value)

	controls := e.ParameterControls()
	require.Len(t, controls, 1)
	assert.Equal(t, "tps", controls[0].Key)

	require.True(t, e.SetIntParameter("tps", 30))
	p, _ = e.Parameters().Lookup("tps")
	assert.Equal(t, "30", p.Value)

	assert.False(t, e.SetIntParameter("tps", 0))
	assert.False(t, e.SetIntParameter("unknown", 1))

	e.TogglePause()
	p, _ = e.Parameters().Lookup("status")
	assert.Equal(t, "paused", p.Value)
}

func TestSaveAndOpen(t *testing.T) {
	e, _ := newTestEditor(t)
	e.Place(core.C(0, 0))
	e.CycleGate()
	e.CycleGate()
	e.Place(core.C(5, 0))
	require.NoError(t, e.Save())

	l, err := layout.Load(e.savePath)
	require.NoError(t, err)
	assert.Len(t, l.Nodes, 2)
	assert.Len(t, l.Wires, 1)

	e.Clear()
	assert.Zero(t, e.Circuit().Len())

	require.NoError(t, e.Open(l))
	assert.Equal(t, 2, e.Circuit().Len())
	assert.Equal(t, 1, e.Circuit().WireCount())

	id, ok := e.Circuit().FindNodeAt(core.C(5, 0))
	require.True(t, ok)
	state, _ := e.Circuit().Evaluate(id)
	assert.False(t, state)
}

func TestOpenRejectsInvalidLayout(t *testing.T) {
	e, _ := newTestEditor(t)
	before := e.Circuit()

	err := e.Open(&layout.Layout{Name: "broken"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, layout.ErrTypeInvalidLayout))
	assert.Same(t, before, e.Circuit())
}
