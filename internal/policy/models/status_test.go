package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "insurecar/pkg/domain-errors"
)

func TestParsePaymentStatus(t *testing.T) {
	for _, in := range []string{"completed", "COMPLETED", "Completed", " completed "} {
		status, err := ParsePaymentStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, PaymentStatusCompleted, status)
	}

	status, err := ParsePaymentStatus("FAILED")
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusFailed, status)

	_, err = ParsePaymentStatus("refunded")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestParsePaymentMethod(t *testing.T) {
	method, err := ParsePaymentMethod(" Card ")
	require.NoError(t, err)
	assert.Equal(t, PaymentMethodCard, method)

	_, err = ParsePaymentMethod("")
	require.Error(t, err)

	_, err = ParsePaymentMethod("bitcoin")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestPolicyStatusText(t *testing.T) {
	assert.Equal(t, "PARTIALLY_PAID", PolicyStatusPartiallyPaid.String())
	assert.True(t, PolicyStatusCancelled.IsTerminal())
	assert.False(t, PolicyStatusPaid.IsTerminal())

	raw, err := json.Marshal(struct {
		Status PolicyStatus `json:"status"`
	}{PolicyStatusCancelled})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"CANCELLED"}`, string(raw))

	var decoded struct {
		Status PolicyStatus `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"paid"}`), &decoded))
	assert.Equal(t, PolicyStatusPaid, decoded.Status)

	require.Error(t, json.Unmarshal([]byte(`{"status":"LAPSED"}`), &decoded))
}
