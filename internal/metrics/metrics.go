package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the front-desk mutations and the insights boundary. Exposed
// through the /metrics endpoint.
var (
	CheckinsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "librarydesk_checkins_accepted_total",
		Help: "Check-ins appended to the attendance log.",
	})

	CheckinsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "librarydesk_checkins_rejected_total",
		Help: "Check-ins rejected before any state change.",
	}, []string{"reason"})

	CamerasAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "librarydesk_cameras_added_total",
		Help: "Camera units registered.",
	})

	CamerasRemoved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "librarydesk_cameras_removed_total",
		Help: "Camera removal requests, including idempotent repeats.",
	})

	InsightRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "librarydesk_insight_requests_total",
		Help: "Insights gateway requests by outcome.",
	}, []string{"outcome"})
)

// Outcome labels for InsightRequests.
const (
	OutcomeAnswered = "answered"
	OutcomeFallback = "fallback"
	OutcomeBusy     = "busy"
)
