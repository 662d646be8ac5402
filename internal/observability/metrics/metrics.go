package metrics

import "github.com/prometheus/client_golang/prometheus"

// IntakeMetrics exposes counters/histograms for the intake submission flow.
type IntakeMetrics struct {
	submissionsTotal   *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	webhookResponses   *prometheus.CounterVec
	webhookLatency     prometheus.Histogram
}

func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "intake",
			Subsystem: "gateway",
			Name:      "submissions_total",
			Help:      "Total booking form submissions by outcome",
		}, []string{"outcome"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "intake",
			Subsystem: "gateway",
			Name:      "validation_failures_total",
			Help:      "Total field validation failures by field",
		}, []string{"field"}),
		webhookResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "intake",
			Subsystem: "gateway",
			Name:      "webhook_responses_total",
			Help:      "Webhook responses by HTTP status (or transport_error)",
		}, []string{"status"}),
		webhookLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "intake",
			Subsystem: "gateway",
			Name:      "webhook_latency_seconds",
			Help:      "Latency of outbound webhook submissions",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.validationFailures, m.webhookResponses, m.webhookLatency)
	return m
}

// Submission outcomes.
const (
	OutcomeAccepted         = "accepted"
	OutcomeBadRequest       = "bad_request"
	OutcomeValidationFailed = "validation_failed"
	OutcomeWebhookFailed    = "webhook_failed"
)

func (m *IntakeMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *IntakeMetrics) ObserveValidationFailure(field string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(field).Inc()
}

func (m *IntakeMetrics) ObserveWebhookResponse(status string) {
	if m == nil {
		return
	}
	m.webhookResponses.WithLabelValues(status).Inc()
}

func (m *IntakeMetrics) ObserveWebhookLatency(seconds float64) {
	if m == nil {
		return
	}
	m.webhookLatency.Observe(seconds)
}
