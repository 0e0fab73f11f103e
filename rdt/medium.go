package rdt

import (
	"math"

	"github.com/sirupsen/logrus"
)

// ToLayer3 implements the medium model of spec §4.3: loss, then corruption
// (with its three sub-cases), then non-reordering delayed delivery to the
// peer. Every roll comes from the single core RNG stream in the order
// loss → corruption → corruption-sub-case[,bit-index] → arrival-jitter, so
// that a fixed seed reproduces byte-identical runs (spec §9's PRNG
// contract).
func (s *Simulator) ToLayer3(entity Entity, p *Packet) {
	if !entity.valid() {
		logrus.Warnf("toLayer3: invalid entity %v", entity)
		return
	}
	if err := p.validate(s.opts.SeqnumLimit); err != nil {
		logrus.Warnf("toLayer3: %v", err)
		return
	}

	switch entity {
	case EntityA:
		s.metrics.NToLayer3A++
	case EntityB:
		s.metrics.NToLayer3B++
	}

	rng := s.rand()

	if rng.Float64() < s.opts.LossProb {
		s.metrics.NLost++
		logrus.Debugf("medium: dropped packet from %s: %s", entity, p)
		return
	}

	pkt := p.Clone()

	if rng.Float64() < s.opts.CorruptProb {
		s.metrics.NCorrupt++
		x := rng.Float64()
		switch {
		case x < 0.75 || s.seqnumLimitNBits == 0:
			pkt.Payload[0] = 'Z'
		case x < 0.875:
			k := int(rng.Float64() * float64(s.seqnumLimitNBits))
			pkt.Seqnum ^= 1 << uint(k)
		default:
			k := int(rng.Float64() * float64(s.seqnumLimitNBits))
			pkt.Acknum ^= 1 << uint(k)
		}
		logrus.Debugf("medium: corrupted packet from %s: %s", entity, p)
	}

	peer := entity.Peer()
	arrival := math.Max(s.clock, s.lastArrival[peer]) + 1.0 + 8.0*rng.Float64()
	s.lastArrival[peer] = arrival

	s.eventQueue.Schedule(s.newEvent(EventFromLayer3, arrival, peer, pkt))
}
