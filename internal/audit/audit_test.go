package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (r *recordingSink) Emit(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestLogPublisherWritesAuditRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	pub := NewLogPublisher(logger)

	err := pub.Emit(context.Background(), Event{
		Action:       ActionPaymentCompleted,
		PolicyID:     "p-1",
		PolicyNumber: "POL-000001",
		Amount:       decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "payment_completed", line["msg"])
	assert.Equal(t, "audit", line["log_type"])
	assert.Equal(t, "500.00", line["amount"])
	assert.Equal(t, "POL-000001", line["policy_number"])
}

func TestFanoutJoinsErrors(t *testing.T) {
	ok := &recordingSink{}
	failing := &recordingSink{err: errors.New("broker down")}
	err := Fanout{failing, ok}.Emit(context.Background(), Event{Action: ActionPolicyCreated})
	require.ErrorContains(t, err, "broker down")
	assert.Equal(t, 1, ok.count(), "later sinks still receive the event")
}

func TestWorkerDeliversQueuedEvents(t *testing.T) {
	sink := &recordingSink{}
	w := NewWorker(sink, 8, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for range 3 {
		require.NoError(t, w.Emit(ctx, Event{Action: ActionPolicyCancelled}))
	}
	assert.Eventually(t, func() bool { return sink.count() == 3 }, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWorkerFlushesOnShutdown(t *testing.T) {
	sink := &recordingSink{}
	w := NewWorker(sink, 4, nil)
	ctx := context.Background()
	for range 4 {
		require.NoError(t, w.Emit(ctx, Event{Action: ActionPolicyRenewed}))
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	require.ErrorIs(t, w.Run(cancelled), context.Canceled)
	assert.Equal(t, 4, sink.count())
}

func TestWorkerDropsWhenFull(t *testing.T) {
	sink := &recordingSink{}
	w := NewWorker(sink, 1, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	ctx := context.Background()
	require.NoError(t, w.Emit(ctx, Event{Action: ActionPolicyCreated}))
	require.NoError(t, w.Emit(ctx, Event{Action: ActionPolicyCreated}))
	assert.Len(t, w.inbox, 1)
}
