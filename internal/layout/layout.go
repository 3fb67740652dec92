// Package layout reads and writes circuits as YAML documents.
//
// A layout names its nodes so wires can refer to them:
//
//	name: inverter
//	nodes:
//	  - name: src
//	    gate: always
//	    at: [0, 0]
//	  - name: out
//	    gate: not
//	    at: [4, 0]
//	wires:
//	  - from: src
//	    to: out
package layout

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"electron-architect/internal/circuit"
	"electron-architect/internal/core"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"gopkg.in/yaml.v3"
)

const (
	// ErrTypeInvalidLayout is returned for documents that cannot be parsed or
	// that violate layout rules.
	ErrTypeInvalidLayout = "layout-invalid"

	// ErrTypeUnknownNode is returned when a wire names a node that is not
	// declared.
	ErrTypeUnknownNode = "layout-unknown-node"
)

// Layout is a named circuit description.
type Layout struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Nodes       []Node `yaml:"nodes"`
	Wires       []Wire `yaml:"wires,omitempty"`
}

// Node places a gate on a cell.
type Node struct {
	Name string   `yaml:"name"`
	Gate string   `yaml:"gate"`
	At   [2]int32 `yaml:"at,flow"`
}

// Cell returns the grid cell the node is placed on.
func (n Node) Cell() core.Coord { return core.C(n.At[0], n.At[1]) }

// Wire feeds the output of From into To.
type Wire struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Load reads and validates the layout file at path.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("reading layout file failed").
			WithTag("path", path).
			Wrap(err)
	}

	l, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.New("loading layout failed").
			WithType(errors.Type(err)).
			WithTag("path", path).
			Wrap(err)
	}

	logs.WithTag("path", path).
		WithTag("layout", l.Name).
		WithTag("nodes", len(l.Nodes)).
		WithTag("wires", len(l.Wires)).
		Info("layout loaded")
	return l, nil
}

// Decode parses a layout document. Unknown fields are rejected.
func Decode(r io.Reader) (*Layout, error) {
	var l Layout
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&l); err != nil {
		return nil, errors.New("parsing layout yaml failed").
			WithType(ErrTypeInvalidLayout).
			Wrap(err)
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Encode writes the layout as YAML.
func (l *Layout) Encode(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(l); err != nil {
		return errors.New("encoding layout failed").Wrap(err)
	}
	return encoder.Close()
}

// Validate checks that node names and cells are unique, gates exist and
// wires refer to declared nodes.
func (l *Layout) Validate() error {
	if l.Name == "" {
		return errors.New("name is required").WithType(ErrTypeInvalidLayout)
	}
	if len(l.Nodes) == 0 {
		return errors.New("nodes list is required and must be non-empty").WithType(ErrTypeInvalidLayout)
	}

	names := make(map[string]struct{}, len(l.Nodes))
	cells := make(map[core.Coord]string, len(l.Nodes))
	for i, n := range l.Nodes {
		if n.Name == "" {
			return errors.New("node name is required").WithType(ErrTypeInvalidLayout).WithTag("index", i)
		}
		if _, dup := names[n.Name]; dup {
			return errors.New("duplicate node name").WithType(ErrTypeInvalidLayout).WithTag("node", n.Name)
		}
		names[n.Name] = struct{}{}

		if _, err := circuit.ParseGate(n.Gate); err != nil {
			return errors.New("unknown gate").WithType(ErrTypeInvalidLayout).
				WithTag("node", n.Name).
				WithTag("gate", n.Gate).
				Wrap(err)
		}

		if other, dup := cells[n.Cell()]; dup {
			return errors.New("two nodes share a cell").WithType(ErrTypeInvalidLayout).
				WithTag("node", n.Name).
				WithTag("other", other).
				WithTag("cell", n.Cell().String())
		}
		cells[n.Cell()] = n.Name
	}

	for i, w := range l.Wires {
		for _, end := range []string{w.From, w.To} {
			if _, ok := names[end]; !ok {
				return errors.New("wire refers to an undeclared node").
					WithType(ErrTypeUnknownNode).
					WithTag("wire", i).
					WithTag("node", end)
			}
		}
	}
	return nil
}

// Build places every node of the layout on c and connects the wires in
// declaration order. It returns the handle of each named node.
func (l *Layout) Build(c *circuit.Circuit) (map[string]circuit.NodeID, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	ids := make(map[string]circuit.NodeID, len(l.Nodes))
	for _, n := range l.Nodes {
		g, err := circuit.ParseGate(n.Gate)
		if err != nil {
			return nil, err
		}
		ids[n.Name] = c.PlaceNode(g, n.Cell())
	}

	for _, w := range l.Wires {
		if err := c.Connect(ids[w.From], ids[w.To]); err != nil {
			return nil, errors.New("connecting layout wire failed").
				WithType(errors.Type(err)).
				WithTag("from", w.From).
				WithTag("to", w.To).
				Wrap(err)
		}
	}
	return ids, nil
}

// FromCircuit captures the live nodes and wires of c. Nodes are named after
// their cell; dangling wires are omitted.
func FromCircuit(name string, c *circuit.Circuit) *Layout {
	l := &Layout{Name: name}
	names := make(map[circuit.NodeID]string, c.Len())
	for n := range c.Nodes() {
		key := nodeName(n.Position)
		names[n.ID] = key
		l.Nodes = append(l.Nodes, Node{
			Name: key,
			Gate: n.Gate.String(),
			At:   [2]int32{n.Position.X, n.Position.Y},
		})
	}

	for n := range c.Nodes() {
		for w := range c.Wires(n.ID) {
			if !w.Live {
				continue
			}
			l.Wires = append(l.Wires, Wire{From: names[w.From], To: names[w.To]})
		}
	}
	return l
}

func nodeName(p core.Coord) string {
	return fmt.Sprintf("n_%d_%d", p.X, p.Y)
}
