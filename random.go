package coredsa

import (
	"math/rand"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════════
// SAMPLER: Decoupling SkipList From The Process RNG
// ═══════════════════════════════════════════════════════════════════════════════
// SkipList's tower heights come from a sequence of coin flips (see
// skiplist.go). Wiring that directly to math/rand, the way a quick demo would,
// makes height growth untestable: a deterministic test suite needs to dictate
// exactly which flips come up heads.
//
// Sampler is the seam: production code uses defaultSampler (backed by
// math/rand), tests inject a scripted or constant-returning Sampler so S1/S2
// style scenarios ("every node stays at height 0", "heights grow then the
// list compresses back down") are reproducible.
// ═══════════════════════════════════════════════════════════════════════════════

// Sampler produces uniformly distributed floats in [0, 1).
type Sampler interface {
	Sample() float64
}

// defaultSampler is the production Sampler, backed by a process-local
// math/rand generator seeded once at construction.
type defaultSampler struct {
	rng *rand.Rand
}

// NewDefaultSampler returns a Sampler seeded from the current time, suitable
// for production use where determinism isn't required.
func NewDefaultSampler() Sampler {
	return &defaultSampler{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (s *defaultSampler) Sample() float64 {
	return s.rng.Float64()
}

// ConstantSampler always returns the same value. Pairing it with a
// SkipList's promotion probability p lets tests pin every node to a
// predictable height: a constant >= p never promotes past height 0, a
// constant < p always promotes (up to MaxLevel).
type ConstantSampler float64

func (c ConstantSampler) Sample() float64 { return float64(c) }

// ScriptedSampler replays a fixed sequence of values, one per Sample call,
// and then repeats the last value forever once the script is exhausted.
// Used to pin exact tower heights across a sequence of inserts (spec
// scenario S2 needs node-by-node control that a single constant can't give).
type ScriptedSampler struct {
	values []float64
	next   int
}

// NewScriptedSampler builds a Sampler that yields values in order.
func NewScriptedSampler(values ...float64) *ScriptedSampler {
	return &ScriptedSampler{values: values}
}

func (s *ScriptedSampler) Sample() float64 {
	if len(s.values) == 0 {
		return 0
	}
	if s.next >= len(s.values) {
		return s.values[len(s.values)-1]
	}
	v := s.values[s.next]
	s.next++
	return v
}
