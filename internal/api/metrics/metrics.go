// Package metrics defines the custom Prometheus metrics of both odontocare
// services. HTTP request metrics come from echoprometheus; everything here
// describes domain outcomes.
//
// Metrics register with the default registry on package init through
// promauto, so importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "odontocare"

// ── Appointment metrics ──────────────────────────────────────────────────────

// AppointmentsCreatedTotal counts booked appointments.
// Label:
//   - role: the role that booked it ("patient" or "admin")
var AppointmentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_created_total",
		Help:      "Total number of appointments booked, by booking role.",
	},
	[]string{"role"},
)

// AppointmentConflictsTotal counts bookings rejected because the slot was
// held by a live appointment or by a concurrent booking.
var AppointmentConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointment_conflicts_total",
		Help:      "Total number of bookings rejected for an occupied slot.",
	},
)

// AppointmentsCancelledTotal counts cancel requests that found their appointment.
// Label:
//   - outcome: "cancelled" or "already_cancelled"
var AppointmentsCancelledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_cancelled_total",
		Help:      "Total number of cancel requests, by outcome.",
	},
	[]string{"outcome"},
)

// AppointmentSearchDuration measures appointment searches.
var AppointmentSearchDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "appointment_search_duration_seconds",
		Help:      "Duration of appointment searches, by caller role.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"role"},
)

// ── Identity metrics ─────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ServiceTokensMintedTotal counts service tokens signed by the appointments
// service. A healthy cache mints about once per TTL per proxied role.
var ServiceTokensMintedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "service_tokens_minted_total",
		Help:      "Total number of service tokens minted, by proxied role.",
	},
	[]string{"proxied_role"},
)

// LookupFailuresTotal counts identity lookups that were reported as "not
// found" because of a transport or protocol failure.
// Labels:
//   - entity: "doctor", "patient" or "clinic"
//   - reason: "token", "request", "transport", "status" or "decode"
var LookupFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookup_failures_total",
		Help:      "Total number of identity lookups that failed closed.",
	},
	[]string{"entity", "reason"},
)
