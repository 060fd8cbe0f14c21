// Package numbers reserves policy numbers so two policies never share one.
package numbers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	id "insurecar/pkg/domain"
)

const keyPrefix = "insurecar:policy_number:"

// MemoryRegistry keeps reservations in process.
type MemoryRegistry struct {
	mu       sync.Mutex
	reserved map[id.PolicyNumber]struct{}
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{reserved: make(map[id.PolicyNumber]struct{})}
}

// Reserve claims number. It returns false when the number is already taken.
func (r *MemoryRegistry) Reserve(_ context.Context, number id.PolicyNumber) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.reserved[number]; taken {
		return false, nil
	}
	r.reserved[number] = struct{}{}
	return true, nil
}

// Release frees a reservation whose policy was never persisted.
func (r *MemoryRegistry) Release(_ context.Context, number id.PolicyNumber) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reserved, number)
	return nil
}

// RedisRegistry shares reservations across instances with SETNX.
type RedisRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRegistry builds a registry. A zero ttl keeps reservations forever.
func NewRedisRegistry(client *redis.Client, ttl time.Duration) *RedisRegistry {
	return &RedisRegistry{client: client, ttl: ttl}
}

func (r *RedisRegistry) Reserve(ctx context.Context, number id.PolicyNumber) (bool, error) {
	ok, err := r.client.SetNX(ctx, keyPrefix+number.String(), time.Now().UTC().Format(time.RFC3339), r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reserve policy number: %w", err)
	}
	return ok, nil
}

func (r *RedisRegistry) Release(ctx context.Context, number id.PolicyNumber) error {
	if err := r.client.Del(ctx, keyPrefix+number.String()).Err(); err != nil {
		return fmt.Errorf("release policy number: %w", err)
	}
	return nil
}
