package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lifecycle counters exposed on /metrics.
var (
	PickupsScheduled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ecopickup_pickups_scheduled_total",
		Help: "Pickups created in scheduled state.",
	})
	PickupsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ecopickup_pickups_cancelled_total",
		Help: "Pickups transitioned to cancelled.",
	})
	PickupsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ecopickup_pickups_completed_total",
		Help: "Pickups transitioned to completed.",
	})
	Logins = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ecopickup_logins_total",
		Help: "Successful login and register calls.",
	})
)
