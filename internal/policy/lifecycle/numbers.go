package lifecycle

import (
	"math/rand/v2"
	"sync"

	id "insurecar/pkg/domain"
)

// NumberSource hands out candidate policy numbers. Uniqueness across the book of
// policies is not its job; the service reserves each candidate before use.
type NumberSource interface {
	Next() id.PolicyNumber
}

// RandomNumbers draws serials uniformly from [0, MaxPolicySerial]. Safe for
// concurrent use.
type RandomNumbers struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomNumbers seeds from the runtime's random source.
func NewRandomNumbers() *RandomNumbers {
	return NewSeededNumbers(rand.Uint64(), rand.Uint64())
}

// NewSeededNumbers returns a reproducible source, mainly for tests and the CLI.
func NewSeededNumbers(seed1, seed2 uint64) *RandomNumbers {
	return &RandomNumbers{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

func (r *RandomNumbers) Next() id.PolicyNumber {
	r.mu.Lock()
	defer r.mu.Unlock()
	return id.FormatPolicyNumber(r.rng.IntN(id.MaxPolicySerial + 1))
}

// SequenceNumbers counts up from a starting serial and wraps after MaxPolicySerial.
type SequenceNumbers struct {
	mu   sync.Mutex
	next int
}

func NewSequenceNumbers(start int) *SequenceNumbers {
	return &SequenceNumbers{next: start}
}

func (s *SequenceNumbers) Next() id.PolicyNumber {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := id.FormatPolicyNumber(s.next)
	s.next = (s.next + 1) % (id.MaxPolicySerial + 1)
	return n
}
