package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementPoliciesCreated("basic")
		m.ObservePayment(true, 10)
		m.IncrementCancelled()
		m.IncrementRenewed()
		m.ObserveQuote(100)
		m.ObserveOperation("create_policy", time.Millisecond)
	})
}

func TestPaymentOutcomes(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObservePayment(true, 500)
	m.ObservePayment(true, 250.5)
	m.ObservePayment(false, 999)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PaymentOutcome.WithLabelValues("completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PaymentOutcome.WithLabelValues("failed")))
	assert.Equal(t, 750.5, testutil.ToFloat64(m.PaymentVolume))
}
