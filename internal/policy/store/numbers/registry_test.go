package numbers

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRegistry(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRegistry()

	ok, err := r.Reserve(ctx, "POL-000001")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Reserve(ctx, "POL-000001")
	require.NoError(t, err)
	assert.False(t, ok, "second reservation must fail")

	require.NoError(t, r.Release(ctx, "POL-000001"))
	ok, err = r.Reserve(ctx, "POL-000001")
	require.NoError(t, err)
	assert.True(t, ok, "released number can be reserved again")
}

func TestMemoryRegistryConcurrentReserve(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRegistry()
	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := r.Reserve(ctx, "POL-123456"); ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}
