package circuit

import (
	"strconv"

	"electron-architect/internal/core"
)

// Parameters reports the circuit and index counters shown on the HUD.
func (c *Circuit) Parameters() core.ParameterSnapshot {
	s := c.Stats()
	return core.ParameterSnapshot{
		Groups: []core.ParameterGroup{
			{
				Name: "Circuit",
				Params: []core.Parameter{
					intParam("nodes", "Nodes", s.Nodes),
					intParam("wires", "Wires", s.Wires),
					intParam("dangling", "Dangling wires", s.Dangling),
					floatParam("cell_size", "Cell size", CellSize),
				},
			},
			{
				Name: "Index",
				Params: []core.Parameter{
					intParam("buckets", "Buckets", s.Index.Buckets),
					intParam("branches", "Branches", s.Index.Branches),
					intParam("max_depth", "Max depth", s.Index.MaxDepth),
					intParam("subdivisions", "Subdivisions", s.Index.Subdivisions),
				},
			},
		},
	}
}

func intParam(key, label string, v int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(v)}
}

func floatParam(key, label string, v float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(v, 'g', -1, 64)}
}
