// Package metrics exposes the assistant's Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all custom Prometheus metrics for the application
type Metrics struct {
	// Commands processed, labelled by resolved intent
	CommandsTotal *prometheus.CounterVec

	// Reminder lifecycle
	RemindersScheduled prometheus.Counter
	RemindersFired     prometheus.Counter

	// Collaborator failures by collaborator name (email, weather, knowledge, speech)
	CollaboratorErrors *prometheus.CounterVec
}

var globalMetrics *Metrics

// Init initializes the Prometheus metrics. Call once at startup.
func Init() *Metrics {
	globalMetrics = &Metrics{
		CommandsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aria_commands_total",
			Help: "Total number of commands processed by intent",
		}, []string{"intent"}),

		RemindersScheduled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aria_reminders_scheduled_total",
			Help: "Total number of reminders scheduled",
		}),

		RemindersFired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "aria_reminders_fired_total",
			Help: "Total number of reminder notifications fired",
		}),

		CollaboratorErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "aria_collaborator_errors_total",
			Help: "Total number of collaborator failures by collaborator",
		}, []string{"collaborator"}),
	}
	return globalMetrics
}

// Get returns the global metrics instance (nil before Init)
func Get() *Metrics {
	return globalMetrics
}
