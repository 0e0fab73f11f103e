package rdt

import (
	"hash/fnv"
	"math/rand"
)

// SubsystemCore is the only RNG subsystem this simulator draws from. The
// simulator's PRNG contract (spec §4.3/§4.5) requires a single shared draw
// order across loss rolls, corruption rolls, corruption sub-case rolls, and
// arrival jitter; partitioning those into independent streams (as the
// PartitionedRNG type below would otherwise encourage) would break that
// invariant. See DESIGN.md for the full rationale.
const SubsystemCore = "core"

// PartitionedRNG provides deterministic, isolated RNG instances per named
// subsystem, derived from a single master seed.
//
// Thread-safety: not thread-safe, matching the single-threaded cooperative
// scheduling model the simulator runs under.
type PartitionedRNG struct {
	masterSeed int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a master seed.
func NewPartitionedRNG(masterSeed int64) *PartitionedRNG {
	return &PartitionedRNG{
		masterSeed: masterSeed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded *rand.Rand for the named
// subsystem. The same name always returns the same cached instance.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	seed := p.masterSeed ^ fnv1a64(name)
	rng := rand.New(rand.NewSource(seed))
	p.subsystems[name] = rng
	return rng
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
