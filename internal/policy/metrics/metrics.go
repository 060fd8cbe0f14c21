package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the policy module.
type Metrics struct {
	// Policies created, by coverage name
	PoliciesCreated *prometheus.CounterVec

	// Payment outcomes: completed or failed
	PaymentOutcome *prometheus.CounterVec

	// Completed payment volume in currency units
	PaymentVolume prometheus.Counter

	PoliciesCancelled prometheus.Counter
	PoliciesRenewed   prometheus.Counter

	// Quoted premiums
	QuotedPremium prometheus.Histogram

	// Latency of service operations by name
	OperationLatency *prometheus.HistogramVec
}

// New registers the policy metrics on reg, or on the default registry when reg is nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		PoliciesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "insurecar_policies_created_total",
			Help: "Total policies created by coverage",
		}, []string{"coverage"}),

		PaymentOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "insurecar_payments_total",
			Help: "Total processed payments by outcome",
		}, []string{"outcome"}), // outcome: "completed", "failed"

		PaymentVolume: factory.NewCounter(prometheus.CounterOpts{
			Name: "insurecar_payment_volume_total",
			Help: "Sum of completed payment amounts",
		}),

		PoliciesCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name: "insurecar_policies_cancelled_total",
			Help: "Total policies cancelled",
		}),

		PoliciesRenewed: factory.NewCounter(prometheus.CounterOpts{
			Name: "insurecar_policies_renewed_total",
			Help: "Total policies renewed",
		}),

		QuotedPremium: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "insurecar_quoted_premium",
			Help:    "Distribution of quoted premiums",
			Buckets: []float64{100, 250, 500, 750, 1000, 1500, 2500, 5000, 10000},
		}),

		OperationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "insurecar_policy_operation_duration_seconds",
			Help:    "Duration of policy service operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncrementPoliciesCreated(coverage string) {
	if m != nil {
		m.PoliciesCreated.WithLabelValues(coverage).Inc()
	}
}

// ObservePayment records a payment outcome; amount counts only for completed payments.
func (m *Metrics) ObservePayment(completed bool, amount float64) {
	if m == nil {
		return
	}
	if completed {
		m.PaymentOutcome.WithLabelValues("completed").Inc()
		m.PaymentVolume.Add(amount)
		return
	}
	m.PaymentOutcome.WithLabelValues("failed").Inc()
}

func (m *Metrics) IncrementCancelled() {
	if m != nil {
		m.PoliciesCancelled.Inc()
	}
}

func (m *Metrics) IncrementRenewed() {
	if m != nil {
		m.PoliciesRenewed.Inc()
	}
}

func (m *Metrics) ObserveQuote(premium float64) {
	if m != nil {
		m.QuotedPremium.Observe(premium)
	}
}

func (m *Metrics) ObserveOperation(operation string, d time.Duration) {
	if m != nil {
		m.OperationLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}
