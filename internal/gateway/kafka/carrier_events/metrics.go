package carrier_events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "carrier_events_published_total",
		Help: "Total number of carrier change events sent to Kafka",
	},
	[]string{"type", "status"},
)
