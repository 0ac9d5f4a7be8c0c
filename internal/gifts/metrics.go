package gifts

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the business metrics of the service. They are registered
// together with the HTTP metrics by the router.
var Metrics = []prometheus.Collector{
	giftsCreated,
	checkoutsStarted,
	contributionsConfirmed,
	contributionsRejected,
	amountConfirmed,
}

var giftsCreated = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "gifts_created_total",
		Help: "How many gifts have been created.",
	},
)

var checkoutsStarted = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "checkouts_started_total",
		Help: "How many checkout sessions have been created for contributions.",
	},
)

var contributionsConfirmed = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "contributions_confirmed_total",
		Help: "How many contributions have been paid and credited to a gift.",
	},
)

var contributionsRejected = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "contributions_rejected_total",
		Help: "How many paid contributions could not be credited and need a refund, partitioned by rule.",
	},
	[]string{"kind"},
)

var amountConfirmed = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "contributions_amount_confirmed_total",
		Help: "The sum of all credited contribution amounts.",
	},
)
