package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coffeepoint_orders_placed_total",
		Help: "Total number of orders successfully persisted.",
	})

	OrderSaveFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coffeepoint_order_save_failures_total",
		Help: "Total number of failed order persistence attempts.",
	})

	EventsProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coffeepoint_flow_events_total",
		Help: "Total number of conversation events processed, by event kind.",
	},
		[]string{"event"},
	)

	RejectedInputsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coffeepoint_rejected_inputs_total",
		Help: "Total number of user inputs rejected by validation.",
	})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "coffeepoint_active_sessions",
		Help: "Current number of live conversation sessions.",
	})
)
