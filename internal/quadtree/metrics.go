package quadtree

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var subdivisionsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "quadtree_subdivisions_total",
	Help: "The total number of buckets converted into branches.",
})

func instrumentSubdivision() {
	subdivisionsTotal.Inc()
}
