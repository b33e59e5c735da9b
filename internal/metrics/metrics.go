// Package metrics holds the domain counters exported on /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appointment_transitions_total",
			Help: "Appointment state changes by origin and destination state.",
		},
		[]string{"from", "to"},
	)

	conflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appointment_conflicts_total",
			Help: "Bookings rejected for colliding with another appointment.",
		},
		[]string{"code"},
	)
)

func init() {
	prometheus.MustRegister(transitions, conflicts)
}

// Transition counts a state change; from is empty on creation.
func Transition(from, to string) {
	if from == "" {
		from = "none"
	}
	transitions.WithLabelValues(from, to).Inc()
}

func Conflict(code string) {
	conflicts.WithLabelValues(code).Inc()
}
