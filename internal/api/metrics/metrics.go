// Package metrics defines all custom Prometheus metrics for the booking API.
// It is the single source of truth for metric names, labels, and help strings.
//
// The promauto constructors register with the default registry at package
// init; the /metrics endpoint is served by the echoprometheus handler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking"

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// AppointmentsBookedTotal counts created appointments.
// Label:
//   - replayed: "true" when the Idempotency-Key matched a previous booking
var AppointmentsBookedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_booked_total",
		Help:      "Total number of appointment bookings, labelled by idempotent replay.",
	},
	[]string{"replayed"},
)

// AvailabilityChecksTotal counts slot availability checks.
// Label:
//   - result: "available" or "unavailable"
var AvailabilityChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "availability_checks_total",
		Help:      "Total number of slot availability checks, labelled by result.",
	},
	[]string{"result"},
)

// DoctorDecisionsTotal counts admin decisions on doctor applications.
// Label:
//   - status: "approved" or "rejected"
var DoctorDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "doctor_decisions_total",
		Help:      "Total number of admin decisions on doctor applications.",
	},
	[]string{"status"},
)
