package circuit

import (
	"fmt"

	"electron-architect/internal/core"
)

// NodeID is a non-owning handle to a placed node. It stays valid until the
// node is replaced, after which it resolves to nothing. The zero NodeID never
// resolves.
type NodeID struct {
	index      uint32
	generation uint32
}

// IsZero reports whether id is the zero handle.
func (id NodeID) IsZero() bool { return id == NodeID{} }

func (id NodeID) String() string {
	if id.IsZero() {
		return "node(-)"
	}
	return fmt.Sprintf("node(%d#%d)", id.index, id.generation)
}

// Node is a gate placed on a grid cell together with the wires feeding it.
type Node struct {
	gate     Gate
	position core.Coord
	inputs   []Wire

	// evaluation mark, valid only while markEpoch matches the circuit epoch
	markEpoch uint64
	markDone  bool
	markValue bool
}

// NodeInfo is a read-only view of a live node.
type NodeInfo struct {
	ID       NodeID
	Gate     Gate
	Position core.Coord
	Inputs   int
}

func (n *Node) info(id NodeID) NodeInfo {
	return NodeInfo{ID: id, Gate: n.gate, Position: n.position, Inputs: len(n.inputs)}
}

// NodeState pairs a node with its evaluated output.
type NodeState struct {
	NodeInfo
	State bool
}

// slot is one arena entry. A slot's generation is bumped every time its node
// dies, which invalidates every NodeID minted for the previous occupant.
type slot struct {
	node       Node
	generation uint32
	live       bool
}
