// Package circuit models logic gates placed on an unbounded grid and wired
// into a directed graph that is evaluated on demand.
//
// Nodes are owned by a Circuit and stored in an arena; callers hold NodeID
// handles that must be resolved before use. Replacing a node invalidates its
// handles, and any wire still pointing at it behaves as if it were absent.
package circuit

import (
	"iter"
	"strconv"

	"electron-architect/internal/core"
	"electron-architect/internal/quadtree"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/google/uuid"
)

// CellSize is the edge length of a grid cell in world units.
const CellSize = 15.0

// ErrTypeDeadNode is the error type returned when an operation refers to a
// node that is no longer placed.
const ErrTypeDeadNode = "circuit-dead-node"

var grid = core.NewGrid(CellSize)

// WorldToGrid returns the cell containing p.
func WorldToGrid(p core.Point) core.Coord { return grid.ToCell(p) }

// GridToWorld returns the top left corner of the cell.
func GridToWorld(c core.Coord) core.Point { return grid.ToWorld(c) }

// GridToWorldCentered returns the center of the cell.
func GridToWorldCentered(c core.Coord) core.Point { return grid.ToWorldCentered(c) }

// Grid returns the world/grid mapping used by every circuit.
func Grid() core.Grid { return grid }

// nodeRef is what the spatial index stores for each placed node.
type nodeRef struct {
	pos core.Coord
	id  NodeID
}

func (r nodeRef) Position() core.Coord { return r.pos }

// Circuit owns a set of placed nodes and the wires between them.
//
// A Circuit is driven by a single owner and is not safe for concurrent use.
type Circuit struct {
	id    uuid.UUID
	slots []slot
	free  []uint32
	index *quadtree.Tree[nodeRef]
	wires int

	epoch uint64
	cuts  int
}

// New returns an empty circuit.
func New() *Circuit {
	return &Circuit{
		id:    uuid.New(),
		index: quadtree.New[nodeRef](),
	}
}

// ID identifies the circuit in logs and reports.
func (c *Circuit) ID() uuid.UUID { return c.id }

// Len returns the number of live nodes.
func (c *Circuit) Len() int { return c.index.Len() }

// WireCount returns the number of wires owned by live nodes, dangling or not.
func (c *Circuit) WireCount() int { return c.wires }

// PlaceNode puts a new node with the given gate on cell and returns a handle
// to it. A node already on that cell is dropped: its handles stop resolving
// and wires fed by it dangle.
func (c *Circuit) PlaceNode(g Gate, cell core.Coord) NodeID {
	id := c.alloc(Node{gate: g, position: cell})
	instrumentNodePlaced(g)

	prev, replaced := c.index.Insert(nodeRef{pos: cell, id: id})
	if replaced {
		old, _ := c.resolve(prev.id)
		logs.WithTag("circuit_id", c.id.String()).
			WithTag("cell", cell.String()).
			WithTag("old_gate", old.gate.String()).
			WithTag("new_gate", g.String()).
			Debug("node replaced")
		c.release(prev.id)
		instrumentNodeReplaced()
	}
	return id
}

// Connect wires the output of input into output. The wire is routed through
// a single elbow at (output.X, input.Y). Both handles must resolve; otherwise
// nothing is created and an ErrTypeDeadNode error is returned.
func (c *Circuit) Connect(input, output NodeID) error {
	in, inOK := c.resolve(input)
	out, outOK := c.resolve(output)
	if !inOK || !outOK {
		err := errors.New("cannot wire a node that is no longer placed").
			WithType(ErrTypeDeadNode).
			WithTag("circuit_id", c.id.String()).
			WithTag("input", input.String()).
			WithTag("input_live", strconv.FormatBool(inOK)).
			WithTag("output", output.String()).
			WithTag("output_live", strconv.FormatBool(outOK))
		logs.Warn(err)
		instrumentWireRejected()
		return err
	}

	out.inputs = append(out.inputs, Wire{
		From:   input,
		To:     output,
		Elbows: []core.Coord{elbowFor(in.position, out.position)},
	})
	c.wires++
	instrumentWire()
	return nil
}

// FindNodeAt returns the handle of the node on cell.
func (c *Circuit) FindNodeAt(cell core.Coord) (NodeID, bool) {
	ref, ok := c.index.Lookup(cell)
	if !ok {
		return NodeID{}, false
	}
	return ref.id, true
}

// Node resolves a handle into a read-only view.
func (c *Circuit) Node(id NodeID) (NodeInfo, bool) {
	n, ok := c.resolve(id)
	if !ok {
		return NodeInfo{}, false
	}
	return n.info(id), true
}

// Nodes yields every live node in spatial index order.
func (c *Circuit) Nodes() iter.Seq[NodeInfo] {
	return func(yield func(NodeInfo) bool) {
		for ref := range c.index.All() {
			n, ok := c.resolve(ref.id)
			if !ok {
				panic("circuit: spatial index holds a dead node " + ref.id.String())
			}
			if !yield(n.info(ref.id)) {
				return
			}
		}
	}
}

// Wires yields the incoming wires of a node with their endpoints resolved.
// A handle that does not resolve yields nothing.
func (c *Circuit) Wires(id NodeID) iter.Seq[WireInfo] {
	return func(yield func(WireInfo) bool) {
		n, ok := c.resolve(id)
		if !ok {
			return
		}
		for _, w := range n.inputs {
			info := WireInfo{From: w.From, To: w.To, ToPosition: n.position, Elbows: w.Elbows}
			if up, live := c.resolve(w.From); live {
				info.Live = true
				info.FromPosition = up.position
			}
			if !yield(info) {
				return
			}
		}
	}
}

// AllWires yields the incoming wires of every live node.
func (c *Circuit) AllWires() iter.Seq[WireInfo] {
	return func(yield func(WireInfo) bool) {
		for n := range c.Nodes() {
			for w := range c.Wires(n.ID) {
				if !yield(w) {
					return
				}
			}
		}
	}
}

// Evaluate computes the output of a node by pulling its inputs through the
// graph. Nothing is cached between calls. When evaluation loops back to a
// node that is still being evaluated, that input reads as false.
func (c *Circuit) Evaluate(id NodeID) (state bool, ok bool) {
	if _, ok := c.resolve(id); !ok {
		return false, false
	}
	c.beginPass()
	state = c.evaluate(id.index)
	c.endPass(1)
	return state, true
}

// EvaluateAll evaluates every node in a single pass, so shared upstream nodes
// are computed once, and returns the states in spatial index order.
func (c *Circuit) EvaluateAll() []NodeState {
	c.beginPass()
	states := make([]NodeState, 0, c.Len())
	for ref := range c.index.All() {
		n := &c.slots[ref.id.index].node
		states = append(states, NodeState{NodeInfo: n.info(ref.id), State: c.evaluate(ref.id.index)})
	}
	c.endPass(len(states))
	return states
}

// beginPass clears every evaluation mark by moving to a new epoch.
func (c *Circuit) beginPass() {
	c.epoch++
	c.cuts = 0
}

func (c *Circuit) endPass(roots int) {
	if c.cuts > 0 {
		logs.WithTag("circuit_id", c.id.String()).
			WithTag("roots", roots).
			WithTag("cycle_cuts", c.cuts).
			Debug("evaluation reached a cycle")
	}
	instrumentEvaluation(c.cuts)
}

func (c *Circuit) evaluate(index uint32) bool {
	n := &c.slots[index].node
	if n.markEpoch == c.epoch {
		if n.markDone {
			return n.markValue
		}
		c.cuts++
		return false
	}
	n.markEpoch = c.epoch
	n.markDone = false

	v := n.gate.Evaluate(c.inputs(n))

	n.markDone = true
	n.markValue = v
	return v
}

// inputs yields the state of every live upstream node of n. Dangling wires
// contribute nothing.
func (c *Circuit) inputs(n *Node) iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for _, w := range n.inputs {
			if _, ok := c.resolve(w.From); !ok {
				continue
			}
			if !yield(c.evaluate(w.From.index)) {
				return
			}
		}
	}
}

// DanglingWires counts wires whose upstream node is gone.
func (c *Circuit) DanglingWires() int {
	count := 0
	for w := range c.AllWires() {
		if !w.Live {
			count++
		}
	}
	return count
}

// Stats summarizes the circuit and its spatial index.
type Stats struct {
	Nodes    int
	Wires    int
	Dangling int
	Index    quadtree.Stats
}

// Stats reports the current size of the circuit.
func (c *Circuit) Stats() Stats {
	return Stats{
		Nodes:    c.Len(),
		Wires:    c.wires,
		Dangling: c.DanglingWires(),
		Index:    c.index.Stats(),
	}
}

// Branches exposes the spatial index branch centers for debug drawing.
func (c *Circuit) Branches() iter.Seq[quadtree.BranchInfo] {
	return c.index.Branches()
}

// IndexPath returns the quadrants the spatial index descends for cell.
func (c *Circuit) IndexPath(cell core.Coord) []int {
	return c.index.Path(cell)
}

func (c *Circuit) alloc(n Node) NodeID {
	if k := len(c.free); k > 0 {
		index := c.free[k-1]
		c.free = c.free[:k-1]
		s := &c.slots[index]
		s.node = n
		s.live = true
		return NodeID{index: index, generation: s.generation}
	}
	c.slots = append(c.slots, slot{node: n, generation: 1, live: true})
	return NodeID{index: uint32(len(c.slots) - 1), generation: 1}
}

func (c *Circuit) release(id NodeID) {
	s := &c.slots[id.index]
	if !s.live || s.generation != id.generation {
		panic("circuit: releasing a node that is not live " + id.String())
	}
	c.wires -= len(s.node.inputs)
	s.node = Node{}
	s.live = false
	s.generation++
	c.free = append(c.free, id.index)
}

func (c *Circuit) resolve(id NodeID) (*Node, bool) {
	if id.IsZero() || int(id.index) >= len(c.slots) {
		return nil, false
	}
	s := &c.slots[id.index]
	if !s.live || s.generation != id.generation {
		return nil, false
	}
	return &s.node, true
}
