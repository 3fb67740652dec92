package cli

import (
	"fmt"
	"io"

	"electron-architect/internal/circuit"
	"electron-architect/internal/layout"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/spf13/cobra"
)

// EvalOptions holds flags of the eval command.
type EvalOptions struct {
	// Expect names nodes that must evaluate high; any low one fails the run.
	Expect []string
}

// EvalReport is the result of evaluating a layout.
type EvalReport struct {
	Layout   string       `json:"layout"`
	Nodes    []NodeReport `json:"nodes"`
	Wires    int          `json:"wires"`
	Dangling int          `json:"dangling"`
	High     int          `json:"high"`
}

// NodeReport is the evaluated state of one named node.
type NodeReport struct {
	Name   string   `json:"name"`
	Gate   string   `json:"gate"`
	At     [2]int32 `json:"at"`
	Inputs int      `json:"inputs"`
	State  bool     `json:"state"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{}

	cmd := &cobra.Command{
		Use:   "eval <layout.yaml>",
		Short: "Evaluate every node of a circuit layout",
		Long: `Load a YAML circuit layout, evaluate all nodes in a single pass and
print each node's state in declaration order.

Nodes that feed back into themselves read their own pending output as low.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Expect, "expect-high", nil, "node names that must evaluate high")

	return cmd
}

func runEval(rootOpts *RootOptions, opts *EvalOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	l, err := layout.Load(path)
	if err != nil {
		_ = formatter.Error(errors.Type(err), err.Error())
		return WrapExitError(ExitCommandError, "loading layout failed", err)
	}

	c := circuit.New()
	ids, err := l.Build(c)
	if err != nil {
		_ = formatter.Error(errors.Type(err), err.Error())
		return WrapExitError(ExitCommandError, "building circuit failed", err)
	}
	formatter.VerboseLog("circuit %s: %d nodes, %d wires", c.ID(), c.Len(), c.WireCount())

	report := evaluate(l, c, ids)

	logs.WithTag("circuit_id", c.ID().String()).
		WithTag("layout", l.Name).
		WithTag("high", report.High).
		Info("layout evaluated")

	if err := formatter.Success(report); err != nil {
		return err
	}

	for _, name := range opts.Expect {
		n, ok := report.node(name)
		if !ok {
			return NewExitError(ExitCommandError, fmt.Sprintf("expected node %q is not declared", name))
		}
		if !n.State {
			return NewExitError(ExitFailure, fmt.Sprintf("node %q evaluated low", name))
		}
	}
	return nil
}

// evaluate runs one pass over c and reports nodes in layout order.
func evaluate(l *layout.Layout, c *circuit.Circuit, ids map[string]circuit.NodeID) EvalReport {
	states := make(map[circuit.NodeID]circuit.NodeState, c.Len())
	for _, s := range c.EvaluateAll() {
		states[s.ID] = s
	}

	stats := c.Stats()
	report := EvalReport{
		Layout:   l.Name,
		Nodes:    make([]NodeReport, 0, len(l.Nodes)),
		Wires:    stats.Wires,
		Dangling: stats.Dangling,
	}
	for _, n := range l.Nodes {
		s, ok := states[ids[n.Name]]
		if !ok {
			continue
		}
		report.Nodes = append(report.Nodes, NodeReport{
			Name:   n.Name,
			Gate:   s.Gate.String(),
			At:     [2]int32{s.Position.X, s.Position.Y},
			Inputs: s.Inputs,
			State:  s.State,
		})
		if s.State {
			report.High++
		}
	}
	return report
}

func (r EvalReport) node(name string) (NodeReport, bool) {
	for _, n := range r.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return NodeReport{}, false
}

// WriteText prints the report as a table.
func (r EvalReport) WriteText(w io.Writer) {
	fmt.Fprintf(w, "layout %s\n", r.Layout)
	fmt.Fprintf(w, "%d nodes, %d wires, %d dangling, %d high\n\n", len(r.Nodes), r.Wires, r.Dangling, r.High)
	fmt.Fprintf(w, "%-12s %-7s %-12s %3s  %s\n", "NODE", "GATE", "CELL", "IN", "STATE")
	for _, n := range r.Nodes {
		cell := fmt.Sprintf("(%d, %d)", n.At[0], n.At[1])
		fmt.Fprintf(w, "%-12s %-7s %-12s %3d  %s\n", n.Name, n.Gate, cell, n.Inputs, level(n.State))
	}
}

func level(state bool) string {
	if state {
		return "high"
	}
	return "low"
}
