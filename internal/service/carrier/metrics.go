package carrier

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carrier_operations_total",
			Help: "Total number of carrier operations by result",
		},
		[]string{"operation", "result"},
	)

	PINRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carrier_pin_rejections_total",
			Help: "Total number of update/delete attempts rejected due to a wrong PIN",
		},
		[]string{"operation"},
	)
)

const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
	opSeed   = "seed"
)

func observe(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	OperationsTotal.WithLabelValues(operation, result).Inc()
}
