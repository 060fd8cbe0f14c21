package service

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	id "insurecar/pkg/domain"
	dErrors "insurecar/pkg/domain-errors"
)

// PolicyTx is the transactional boundary for mutations of one policy.
// Implementations may wrap a database transaction or, in memory, a per-policy lock.
// Stores called with the ctx passed to fn join the transaction.
type PolicyTx interface {
	RunInTx(ctx context.Context, policyID id.PolicyID, fn func(ctx context.Context) error) error
}

// numPolicyShards spreads policies across independent locks so unrelated
// policies do not contend.
const numPolicyShards = 128

// DefaultTxTimeout bounds a policy transaction when the caller set no deadline.
const DefaultTxTimeout = 5 * time.Second

// ShardedTx serializes work per policy with sharded mutexes. It provides isolation
// but no rollback, which is enough for the in-memory stores.
type ShardedTx struct {
	shards  [numPolicyShards]sync.Mutex
	timeout time.Duration
}

// NewShardedTx builds an in-process boundary. A zero timeout uses DefaultTxTimeout.
func NewShardedTx(timeout time.Duration) *ShardedTx {
	return &ShardedTx{timeout: timeout}
}

func (t *ShardedTx) RunInTx(ctx context.Context, policyID id.PolicyID, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = DefaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	shard := &t.shards[shardFor(policyID)]
	shard.Lock()
	defer shard.Unlock()

	// The wait for the lock may have outlived the deadline.
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	return fn(ctx)
}

func shardFor(policyID id.PolicyID) uint32 {
	h := fnv.New32a()
	b, _ := policyID.MarshalText()
	_, _ = h.Write(b)
	return h.Sum32() % numPolicyShards
}
