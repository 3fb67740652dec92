package circuit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const gateLabel = "gate"

var (
	nodesPlacedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "circuit_nodes_placed_total",
		Help: "The total number of nodes placed.",
	}, []string{gateLabel})

	nodesReplacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "circuit_nodes_replaced_total",
		Help: "The total number of nodes dropped because another node took their cell.",
	})

	wiresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "circuit_wires_total",
		Help: "The total number of wires created.",
	})

	wiresRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "circuit_wires_rejected_total",
		Help: "The total number of wires refused because an endpoint was gone.",
	})

	evaluationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "circuit_evaluations_total",
		Help: "The total number of evaluation passes.",
	})

	cycleCutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "circuit_cycle_cuts_total",
		Help: "The total number of times evaluation reached a node already being evaluated.",
	})
)

func instrumentNodePlaced(g Gate) {
	nodesPlacedTotal.
		With(prometheus.Labels{gateLabel: g.String()}).
		Inc()
}

func instrumentNodeReplaced() {
	nodesReplacedTotal.Inc()
}

func instrumentWire() {
	wiresTotal.Inc()
}

func instrumentWireRejected() {
	wiresRejectedTotal.Inc()
}

func instrumentEvaluation(cuts int) {
	evaluationsTotal.Inc()
	if cuts > 0 {
		cycleCutsTotal.Add(float64(cuts))
	}
}
