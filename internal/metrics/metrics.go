package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	assignmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_assignments_total",
			Help: "Total table assignment attempts by outcome",
		},
		[]string{"outcome"},
	)

	availabilityChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_availability_checks_total",
			Help: "Total availability checks by result source",
		},
		[]string{"source"},
	)

	suggestionScansTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_suggestion_scans_total",
			Help: "Total alternate-time scans executed",
		},
	)

	waitlistExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_waitlist_expired_total",
			Help: "Total waitlist entries expired by the sweeper",
		},
	)

	waitlistOffersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_waitlist_offers_total",
			Help: "Total waitlist offers made",
		},
	)
)

// Assignment outcomes.
const (
	OutcomeAssigned    = "assigned"
	OutcomeConflict    = "conflict_detected"
	OutcomeUnavailable = "no_availability"
)

// Availability check sources.
const (
	SourceCache = "cache"
	SourceStore = "store"
)

func RecordAssignment(outcome string)      { assignmentsTotal.WithLabelValues(outcome).Inc() }
func RecordAvailabilityCheck(source string) { availabilityChecksTotal.WithLabelValues(source).Inc() }
func RecordSuggestionScan()                { suggestionScansTotal.Inc() }
func RecordWaitlistExpired(n int)          { waitlistExpiredTotal.Add(float64(n)) }
func RecordWaitlistOffer()                 { waitlistOffersTotal.Inc() }

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler { return promhttp.Handler() }
