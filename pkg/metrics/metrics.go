package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Submission outcomes
const (
	OutcomeAccepted      = "accepted"
	OutcomeInvalid       = "invalid"
	OutcomeMisconfigured = "misconfigured"
	OutcomeFailed        = "failed"
)

// Delivery statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

// IntakeMetrics exposes counters/histograms for the appointment intake flow.
type IntakeMetrics struct {
	submissionsTotal *prometheus.CounterVec
	deliveriesTotal  *prometheus.CounterVec
	deliveryLatency  *prometheus.HistogramVec
}

// NewIntakeMetrics registers the intake collectors on reg, or on the default
// registerer when reg is nil.
func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "appointment",
			Subsystem: "intake",
			Name:      "submissions_total",
			Help:      "Total appointment request submissions by outcome",
		}, []string{"outcome"}),
		deliveriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "appointment",
			Subsystem: "intake",
			Name:      "deliveries_total",
			Help:      "Total destination deliveries by destination and status",
		}, []string{"destination", "status"}),
		deliveryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "appointment",
			Subsystem: "intake",
			Name:      "delivery_latency_seconds",
			Help:      "Latency of outbound destination calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"destination"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.deliveriesTotal, m.deliveryLatency)
	return m
}

// ObserveSubmission counts one submission by outcome. Safe on a nil receiver.
func (m *IntakeMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

// ObserveDelivery counts one destination attempt and records its latency.
// Disabled destinations are counted without latency. Safe on a nil receiver.
func (m *IntakeMetrics) ObserveDelivery(destination, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.deliveriesTotal.WithLabelValues(destination, status).Inc()
	if status != StatusDisabled {
		m.deliveryLatency.WithLabelValues(destination).Observe(elapsed.Seconds())
	}
}
