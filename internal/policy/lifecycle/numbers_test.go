package lifecycle

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "insurecar/pkg/domain"
)

func TestSequenceNumbers(t *testing.T) {
	src := NewSequenceNumbers(id.MaxPolicySerial - 1)
	assert.Equal(t, id.PolicyNumber("POL-999998"), src.Next())
	assert.Equal(t, id.PolicyNumber("POL-999999"), src.Next())
	assert.Equal(t, id.PolicyNumber("POL-000000"), src.Next())
}

func TestSeededNumbersAreReproducible(t *testing.T) {
	a := NewSeededNumbers(7, 11)
	b := NewSeededNumbers(7, 11)
	for range 20 {
		n := a.Next()
		require.True(t, n.IsValid(), "%s", n)
		assert.Equal(t, n, b.Next())
	}
}

func TestRandomNumbersConcurrentUse(t *testing.T) {
	src := NewRandomNumbers()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				n := src.Next()
				assert.True(t, n.IsValid(), "%s", n)
			}
		}()
	}
	wg.Wait()
}
