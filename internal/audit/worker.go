package audit

import (
	"context"
	"log/slog"
)

// Publisher is any audit sink.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// Worker decouples request handling from slow sinks: Emit enqueues, Run drains
// the queue into the sink. Events are dropped (and logged) when the queue is full.
type Worker struct {
	sink   Publisher
	inbox  chan Event
	logger *slog.Logger
}

func NewWorker(sink Publisher, buffer int, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{sink: sink, inbox: make(chan Event, buffer), logger: logger}
}

// Emit enqueues without blocking.
func (w *Worker) Emit(ctx context.Context, event Event) error {
	select {
	case w.inbox <- event:
	default:
		w.logger.WarnContext(ctx, "audit queue full, dropping event",
			"action", event.Action,
			"policy_id", event.PolicyID,
		)
	}
	return nil
}

// Run delivers queued events until ctx is cancelled, then flushes what is left
// with a detached context.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain(context.WithoutCancel(ctx))
			return ctx.Err()
		case event := <-w.inbox:
			w.deliver(ctx, event)
		}
	}
}

func (w *Worker) drain(ctx context.Context) {
	for {
		select {
		case event := <-w.inbox:
			w.deliver(ctx, event)
		default:
			return
		}
	}
}

func (w *Worker) deliver(ctx context.Context, event Event) {
	if err := w.sink.Emit(ctx, event); err != nil {
		w.logger.ErrorContext(ctx, "failed to publish audit event",
			"error", err,
			"action", event.Action,
			"policy_id", event.PolicyID,
		)
	}
}
