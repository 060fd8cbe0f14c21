//go:build integration

package audit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"insurecar/pkg/testutil/containers"
)

func TestKafkaPublisherRoundTrip(t *testing.T) {
	kc := containers.NewKafkaContainer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	const topic = "insurecar.audit.test"
	producer, err := NewKafkaClient(kc.Brokers, topic)
	require.NoError(t, err)
	defer producer.Close()

	require.NoError(t, EnsureTopic(ctx, producer, topic, 1, 1))
	require.NoError(t, EnsureTopic(ctx, producer, topic, 1, 1), "existing topic is not an error")

	pub := NewKafkaPublisher(producer, topic)
	sent := Event{
		Timestamp:    time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC),
		Action:       ActionPaymentCompleted,
		PolicyID:     "9b4c1e0e-8a51-4c39-9f35-2f1f3d1c0a11",
		PolicyNumber: "POL-000777",
		Amount:       decimal.RequireFromString("250.50"),
		Status:       "PARTIALLY_PAID",
	}
	require.NoError(t, pub.Emit(ctx, sent))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(kc.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.Empty(t, fetches.Errors())

	var records []*kgo.Record
	fetches.EachRecord(func(r *kgo.Record) { records = append(records, r) })
	require.Len(t, records, 1)
	assert.Equal(t, sent.PolicyID, string(records[0].Key))

	var got Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, sent.Action, got.Action)
	assert.Equal(t, sent.PolicyNumber, got.PolicyNumber)
	assert.True(t, sent.Amount.Equal(got.Amount))
}
