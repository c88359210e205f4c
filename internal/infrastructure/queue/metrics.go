package queue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	noticesQueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notices_queued_total",
		Help: "Password reset notices accepted by the dispatcher.",
	})

	noticesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notices_dropped_total",
		Help: "Password reset notices rejected because the worker buffer was full.",
	})

	noticesDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notices_delivered_total",
		Help: "Password reset notices handed to the notifier successfully.",
	})

	noticesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notices_failed_total",
		Help: "Password reset notices the notifier failed to deliver.",
	})
)
