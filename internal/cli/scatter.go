package cli

import (
	"fmt"
	"io"

	"electron-architect/internal/circuit"
	"electron-architect/internal/core"
	pcore "electron-architect/pkg/core"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/spf13/cobra"
)

// ScatterOptions holds flags of the scatter command.
type ScatterOptions struct {
	Count  int
	Radius int
	Seed   int64
	Chain  bool
}

// ScatterReport summarizes a random placement run.
type ScatterReport struct {
	Seed         int64 `json:"seed"`
	Placed       int   `json:"placed"`
	Nodes        int   `json:"nodes"`
	Replaced     int   `json:"replaced"`
	Wires        int   `json:"wires"`
	Dangling     int   `json:"dangling"`
	High         int   `json:"high"`
	Buckets      int   `json:"buckets"`
	Branches     int   `json:"branches"`
	MaxDepth     int   `json:"max_depth"`
	Subdivisions int   `json:"subdivisions"`
}

// NewScatterCommand creates the scatter command.
func NewScatterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScatterOptions{}

	cmd := &cobra.Command{
		Use:   "scatter",
		Short: "Place random gates and report spatial index statistics",
		Long: `Place --count random gates on cells within --radius of the origin,
optionally wiring each node from the previous one as the editor does, then
evaluate the circuit and report its size and the shape of the spatial index.

Runs with the same seed are identical.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScatter(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Count, "count", "n", 1000, "number of nodes to place")
	cmd.Flags().IntVarP(&opts.Radius, "radius", "r", 100, "cells are drawn from [-radius, radius] on both axes")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "random seed")
	cmd.Flags().BoolVar(&opts.Chain, "chain", true, "wire each node from the previously placed one")

	return cmd
}

func runScatter(rootOpts *RootOptions, opts *ScatterOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	if opts.Count < 0 {
		_ = formatter.Error("", "count must not be negative")
		return NewExitError(ExitCommandError, "count must not be negative")
	}
	if opts.Radius < 0 {
		_ = formatter.Error("", "radius must not be negative")
		return NewExitError(ExitCommandError, "radius must not be negative")
	}

	c := Scatter(opts)
	formatter.VerboseLog("circuit %s: %d nodes", c.ID(), c.Len())

	report := ScatterReport{Seed: opts.Seed, Placed: opts.Count}
	for _, s := range c.EvaluateAll() {
		if s.State {
			report.High++
		}
	}

	stats := c.Stats()
	report.Nodes = stats.Nodes
	report.Replaced = opts.Count - stats.Nodes
	report.Wires = stats.Wires
	report.Dangling = stats.Dangling
	report.Buckets = stats.Index.Buckets
	report.Branches = stats.Index.Branches
	report.MaxDepth = stats.Index.MaxDepth
	report.Subdivisions = stats.Index.Subdivisions

	logs.WithTag("circuit_id", c.ID().String()).
		WithTag("seed", opts.Seed).
		WithTag("nodes", report.Nodes).
		WithTag("max_depth", report.MaxDepth).
		Info("scatter finished")

	return formatter.Success(report)
}

// Scatter builds a circuit of random gates. Placement and wiring follow the
// editor: each node is wired from the one placed before it.
func Scatter(opts *ScatterOptions) *circuit.Circuit {
	rng := pcore.NewRNG(opts.Seed)
	gates := circuit.Gates()
	r := int32(opts.Radius)

	c := circuit.New()
	var prev circuit.NodeID
	for range opts.Count {
		cell := core.C(rng.Int32Range(-r, r), rng.Int32Range(-r, r))
		id := c.PlaceNode(gates[rng.IntN(len(gates))], cell)
		if opts.Chain && !prev.IsZero() {
			// prev may have just been replaced; a refused wire is fine here.
			_ = c.Connect(prev, id)
		}
		prev = id
	}
	return c
}

// WriteText prints the report as aligned key/value lines.
func (r ScatterReport) WriteText(w io.Writer) {
	rows := []struct {
		key   string
		value int64
	}{
		{"seed", r.Seed},
		{"placed", int64(r.Placed)},
		{"nodes", int64(r.Nodes)},
		{"replaced", int64(r.Replaced)},
		{"wires", int64(r.Wires)},
		{"dangling", int64(r.Dangling)},
		{"high", int64(r.High)},
		{"buckets", int64(r.Buckets)},
		{"branches", int64(r.Branches)},
		{"max depth", int64(r.MaxDepth)},
		{"subdivisions", int64(r.Subdivisions)},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%-13s %d\n", row.key, row.value)
	}
}
