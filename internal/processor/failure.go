package processor

import (
	"math/rand"
	"sync"
	"time"
)

// FailureSource abstracts the nondeterminism the simulated gateways need:
// random decline injection, simulated latency, and number draws. Production
// wiring uses a seeded RNG; tests supply a scripted source so both the
// success and failure branch can be forced.
type FailureSource interface {
	// ShouldFail reports whether an injected failure fires for the given
	// rate in [0,1).
	ShouldFail(rate float64) bool
	// Latency runs the simulated processing delay and returns its length
	// in milliseconds.
	Latency(minMs, maxMs int) int
	// IntBetween draws an integer in [min, max].
	IntBetween(min, max int) int
}

// RandomSource is the production FailureSource. rand.Rand is not safe for
// concurrent use, so draws are serialized behind a mutex.
type RandomSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomSource(seed int64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *RandomSource) ShouldFail(rate float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < rate
}

func (s *RandomSource) Latency(minMs, maxMs int) int {
	ms := s.IntBetween(minMs, maxMs)
	time.Sleep(time.Duration(ms) * time.Millisecond)
	return ms
}

func (s *RandomSource) IntBetween(min, max int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if max <= min {
		return min
	}
	return min + s.rng.Intn(max-min+1)
}

// StaticSource is a deterministic FailureSource for tests and no-flake
// development wiring. It never sleeps.
type StaticSource struct {
	Fail bool
}

func (s StaticSource) ShouldFail(float64) bool   { return s.Fail }
func (s StaticSource) Latency(minMs, _ int) int  { return minMs }
func (s StaticSource) IntBetween(min, _ int) int { return min }
