package circuit

import (
	"fmt"
	"strings"
	"testing"

	"electron-architect/internal/core"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func mustEvaluate(t *testing.T, c *Circuit, id NodeID) bool {
	t.Helper()
	state, ok := c.Evaluate(id)
	require.True(t, ok, "%s does not resolve", id)
	return state
}

func TestWorldGridConversion(t *testing.T) {
	tests := []struct {
		point core.Point
		cell  core.Coord
	}{
		{core.Point{X: 0, Y: 0}, core.C(0, 0)},
		{core.Point{X: 14.9, Y: 14.9}, core.C(0, 0)},
		{core.Point{X: 15, Y: 30}, core.C(1, 2)},
		{core.Point{X: -0.1, Y: -15}, core.C(-1, -1)},
		{core.Point{X: -15.1, Y: 7}, core.C(-2, 0)},
	}

	for _, test := range tests {
		t.Run(fmt.Sprint(test.point), func(t *testing.T) {
			cell := WorldToGrid(test.point)
			require.Equal(t, test.cell, cell)

			origin := GridToWorld(cell)
			require.Equal(t, cell, WorldToGrid(origin))
			require.LessOrEqual(t, origin.X, test.point.X)
			require.LessOrEqual(t, origin.Y, test.point.Y)
		})
	}

	require.Equal(t, core.Point{X: 22.5, Y: -7.5}, GridToWorldCentered(core.C(1, -1)))
}

func TestPlaceAndFind(t *testing.T) {
	c := New()
	id := c.PlaceNode(And, core.C(3, -4))
	require.False(t, id.IsZero())
	require.Equal(t, 1, c.Len())

	found, ok := c.FindNodeAt(core.C(3, -4))
	require.True(t, ok)
	require.Equal(t, id, found)

	info, ok := c.Node(id)
	require.True(t, ok)
	require.Equal(t, NodeInfo{ID: id, Gate: And, Position: core.C(3, -4)}, info)

	_, ok = c.FindNodeAt(core.C(4, -4))
	require.False(t, ok)

	_, ok = c.Node(NodeID{})
	require.False(t, ok)
	_, ok = c.Evaluate(NodeID{})
	require.False(t, ok)
}

func TestEvaluationPullsThroughChain(t *testing.T) {
	c := New()
	a := c.PlaceNode(Not, core.C(0, 0))
	b := c.PlaceNode(Not, core.C(1, 0))
	src := c.PlaceNode(Always, core.C(2, 0))

	require.NoError(t, c.Connect(src, b))
	require.NoError(t, c.Connect(b, a))

	require.True(t, mustEvaluate(t, c, src))
	require.False(t, mustEvaluate(t, c, b))
	require.True(t, mustEvaluate(t, c, a))
}

func TestConnectRoutesThroughElbow(t *testing.T) {
	c := New()
	in := c.PlaceNode(Always, core.C(1, 2))
	out := c.PlaceNode(Or, core.C(7, -3))
	require.NoError(t, c.Connect(in, out))

	var wires []WireInfo
	for w := range c.Wires(out) {
		wires = append(wires, w)
	}
	require.Len(t, wires, 1)

	w := wires[0]
	require.True(t, w.Live)
	require.Equal(t, in, w.From)
	require.Equal(t, out, w.To)
	require.Equal(t, []core.Coord{core.C(7, 2)}, w.Elbows)
	require.Equal(t, []core.Coord{core.C(1, 2), core.C(7, 2), core.C(7, -3)}, w.Path())

	require.Empty(t, collectWires(c, in))
	require.Equal(t, 1, c.WireCount())
}

func collectWires(c *Circuit, id NodeID) []WireInfo {
	var out []WireInfo
	for w := range c.Wires(id) {
		out = append(out, w)
	}
	return out
}

func TestReplaceLeavesWiresDangling(t *testing.T) {
	tests := []struct {
		gate Gate
		want bool
	}{
		{Not, true},
		{Xor, false},
		{And, true},
		{Nand, false},
		{Or, false},
		{Nor, true},
	}

	for _, test := range tests {
		t.Run(test.gate.String(), func(t *testing.T) {
			c := New()
			up := c.PlaceNode(Always, core.C(0, 0))
			down := c.PlaceNode(test.gate, core.C(0, 1))
			require.NoError(t, c.Connect(up, down))

			replacement := c.PlaceNode(Never, core.C(0, 0))
			require.NotEqual(t, up, replacement)

			_, ok := c.Node(up)
			require.False(t, ok)

			found, ok := c.FindNodeAt(core.C(0, 0))
			require.True(t, ok)
			require.Equal(t, replacement, found)

			require.Equal(t, test.want, mustEvaluate(t, c, down))

			wires := collectWires(c, down)
			require.Len(t, wires, 1)
			require.False(t, wires[0].Live)
			require.Nil(t, wires[0].Path())
			require.Equal(t, 1, c.Stats().Dangling)
		})
	}
}

func TestReplacedHandleIsNotRevivedBySlotReuse(t *testing.T) {
	c := New()
	first := c.PlaceNode(Always, core.C(5, 5))
	c.PlaceNode(Never, core.C(5, 5))
	reused := c.PlaceNode(Or, core.C(9, 9))

	_, ok := c.Node(first)
	require.False(t, ok)

	info, ok := c.Node(reused)
	require.True(t, ok)
	require.Equal(t, Or, info.Gate)
	require.Equal(t, 2, c.Len())
}

func TestReplacingDownstreamDropsItsWires(t *testing.T) {
	c := New()
	up := c.PlaceNode(Always, core.C(0, 0))
	down := c.PlaceNode(Not, core.C(1, 1))
	require.NoError(t, c.Connect(up, down))
	require.Equal(t, 1, c.WireCount())

	c.PlaceNode(Not, core.C(1, 1))
	require.Equal(t, 0, c.WireCount())
}

func TestConnectRejectsDeadNodes(t *testing.T) {
	c := New()
	live := c.PlaceNode(Or, core.C(0, 0))
	dead := c.PlaceNode(Always, core.C(4, 4))
	c.PlaceNode(Never, core.C(4, 4))

	before := testutil.ToFloat64(wiresRejectedTotal)

	err := c.Connect(dead, live)
	require.Error(t, err)
	require.True(t, errors.IsType(err, ErrTypeDeadNode))
	require.Equal(t, ErrTypeDeadNode, errors.Type(err))

	err = c.Connect(live, NodeID{})
	require.Error(t, err)
	require.True(t, errors.IsType(err, ErrTypeDeadNode))

	require.Empty(t, collectWires(c, live))
	require.Equal(t, 0, c.WireCount())
	require.Equal(t, before+2, testutil.ToFloat64(wiresRejectedTotal))
}

func TestSelfCycleTerminates(t *testing.T) {
	for _, g := range []Gate{And, Or, Not, Xor, Nand, Nor} {
		t.Run(g.String(), func(t *testing.T) {
			c := New()
			n := c.PlaceNode(g, core.C(0, 0))
			require.NoError(t, c.Connect(n, n))

			want := g.Evaluate(func(yield func(bool) bool) { yield(false) })
			require.Equal(t, want, mustEvaluate(t, c, n))
		})
	}
}

func TestMutualCycleTerminates(t *testing.T) {
	c := New()
	a := c.PlaceNode(Or, core.C(0, 0))
	b := c.PlaceNode(And, core.C(1, 0))
	src := c.PlaceNode(Always, core.C(2, 0))

	require.NoError(t, c.Connect(b, a))
	require.NoError(t, c.Connect(a, b))
	require.NoError(t, c.Connect(src, b))

	before := testutil.ToFloat64(cycleCutsTotal)

	// b pulls a, which reaches b again and reads false; a is Or(false) so b
	// is And(false, true).
	require.False(t, mustEvaluate(t, c, b))
	// a pulls b = And(a=false, true) = false, so a is false.
	require.False(t, mustEvaluate(t, c, a))

	require.Equal(t, before+2, testutil.ToFloat64(cycleCutsTotal))
}

func TestDiamondSharesUpstreamWithinAPass(t *testing.T) {
	c := New()
	src := c.PlaceNode(Always, core.C(0, 0))
	left := c.PlaceNode(Or, core.C(-1, 1))
	right := c.PlaceNode(Or, core.C(1, 1))
	sink := c.PlaceNode(And, core.C(0, 2))

	require.NoError(t, c.Connect(src, left))
	require.NoError(t, c.Connect(src, right))
	require.NoError(t, c.Connect(left, sink))
	require.NoError(t, c.Connect(right, sink))

	before := testutil.ToFloat64(cycleCutsTotal)
	require.True(t, mustEvaluate(t, c, sink))
	require.Equal(t, before, testutil.ToFloat64(cycleCutsTotal))

	for _, s := range c.EvaluateAll() {
		require.True(t, s.State, "%s at %s", s.Gate, s.Position)
	}
}

func TestEvaluationIsNotCachedAcrossPasses(t *testing.T) {
	c := New()
	src := c.PlaceNode(Always, core.C(0, 0))
	out := c.PlaceNode(Not, core.C(3, 0))
	require.NoError(t, c.Connect(src, out))
	require.False(t, mustEvaluate(t, c, out))

	c.PlaceNode(Never, core.C(0, 0))
	require.True(t, mustEvaluate(t, c, out))

	src = c.PlaceNode(Never, core.C(1, 0))
	require.NoError(t, c.Connect(src, out))
	require.True(t, mustEvaluate(t, c, out))
}

func TestEvaluateAllMatchesEvaluate(t *testing.T) {
	c := New()
	ids := []NodeID{
		c.PlaceNode(Always, core.C(0, 0)),
		c.PlaceNode(Not, core.C(1, 0)),
		c.PlaceNode(Xor, core.C(2, 0)),
		c.PlaceNode(Nor, core.C(3, 0)),
		c.PlaceNode(Nand, core.C(4, 4)),
		c.PlaceNode(Never, core.C(-4, 4)),
	}
	require.NoError(t, c.Connect(ids[0], ids[1]))
	require.NoError(t, c.Connect(ids[0], ids[2]))
	require.NoError(t, c.Connect(ids[1], ids[2]))
	require.NoError(t, c.Connect(ids[2], ids[3]))
	require.NoError(t, c.Connect(ids[3], ids[4]))
	require.NoError(t, c.Connect(ids[5], ids[4]))

	states := c.EvaluateAll()
	require.Len(t, states, len(ids))

	var i int
	for n := range c.Nodes() {
		require.Equal(t, n, states[i].NodeInfo)
		require.Equal(t, mustEvaluate(t, c, n.ID), states[i].State)
		i++
	}
}

func TestAllWiresVisitsEveryNode(t *testing.T) {
	c := New()
	a := c.PlaceNode(Always, core.C(0, 0))
	b := c.PlaceNode(Or, core.C(2, 0))
	d := c.PlaceNode(And, core.C(0, 2))
	require.NoError(t, c.Connect(a, b))
	require.NoError(t, c.Connect(a, d))
	require.NoError(t, c.Connect(b, d))

	count := 0
	for w := range c.AllWires() {
		require.True(t, w.Live)
		count++
	}
	require.Equal(t, 3, count)

	for range c.AllWires() {
		break
	}
}

func TestPlaceNodeMetricsAndLogs(t *testing.T) {
	var b strings.Builder
	logs.SetInlineEncoder()
	logs.SetLevel(logs.ParseLevel("debug"))
	logs.SetLogger(func(e logs.Entry) {
		fmt.Fprint(&b, e)
	})
	defer logs.SetLevel(logs.InfoLevel)

	placed := nodesPlacedTotal.WithLabelValues(Xor.String())
	before := testutil.ToFloat64(placed)
	replacedBefore := testutil.ToFloat64(nodesReplacedTotal)

	c := New()
	c.PlaceNode(Xor, core.C(1, 1))
	c.PlaceNode(Xor, core.C(1, 1))

	require.Equal(t, before+2, testutil.ToFloat64(placed))
	require.Equal(t, replacedBefore+1, testutil.ToFloat64(nodesReplacedTotal))

	out := b.String()
	require.Contains(t, out, "node replaced")
	require.Contains(t, out, c.ID().String())
}

func TestStats(t *testing.T) {
	c := New()
	for i := range int32(10) {
		c.PlaceNode(Or, core.C(i, i*i))
	}
	first, _ := c.FindNodeAt(core.C(0, 0))
	last, _ := c.FindNodeAt(core.C(9, 81))
	require.NoError(t, c.Connect(first, last))

	s := c.Stats()
	require.Equal(t, 10, s.Nodes)
	require.Equal(t, 1, s.Wires)
	require.Equal(t, 0, s.Dangling)
	require.Equal(t, 10, s.Index.Items)
	require.GreaterOrEqual(t, s.Index.Branches, 1)

	branches := 0
	for range c.Branches() {
		branches++
	}
	require.Equal(t, s.Index.Branches, branches)
}

func TestParameters(t *testing.T) {
	c := New()
	a := c.PlaceNode(Always, core.C(0, 0))
	b := c.PlaceNode(Not, core.C(1, 0))
	require.NoError(t, c.Connect(a, b))
	c.PlaceNode(Never, core.C(0, 0))

	snap := c.Parameters()
	for key, want := range map[string]string{
		"nodes":     "2",
		"wires":     "1",
		"dangling":  "1",
		"cell_size": "15",
		"branches":  "0",
	} {
		p, ok := snap.Lookup(key)
		require.True(t, ok, key)
		require.Equal(t, want, p.Value, key)
	}
}
