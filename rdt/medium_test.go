package rdt

import "testing"

func newTestSimulator(t *testing.T, opts SimulationOptions) *Simulator {
	t.Helper()
	s, err := NewSimulator(opts, nil, nil)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return s
}

// newRawSimulator builds a Simulator bypassing SimulationOptions.Validate, for
// tests that need to exercise the medium model at probability 1.0 — a value
// the CLI-facing Validate rejects (loss_prob/corrupt_prob are documented as
// half-open [0,1)) but the medium model itself handles correctly.
func newRawSimulator(opts SimulationOptions) *Simulator {
	seed := deriveSeed(opts.RandomSeed)
	s := &Simulator{
		opts:             opts,
		rng:              NewPartitionedRNG(seed),
		seqnumLimitNBits: seqnumLimitNBits(opts.SeqnumLimit),
		eventQueue:       NewEventHeap(),
		timerArmed:       make(map[Entity]bool, 2),
		lastArrival:      make(map[Entity]float64, 2),
		handlers:         make(map[Entity]Handler, 2),
		metrics:          NewMetrics(),
	}
	switch opts.Protocol {
	case ProtocolGBN:
		s.handlers[EntityA] = NewGBNSender(s, opts.SeqnumLimit)
		s.handlers[EntityB] = NewGBNReceiver(s, opts.SeqnumLimit)
	default:
		s.handlers[EntityA] = NewABPSender(s)
		s.handlers[EntityB] = NewABPReceiver(s)
	}
	return s
}

func validPacket(seqnum, acknum int) *Packet {
	p := NewPacket(seqnum, acknum, make([]byte, MsgSize))
	InsertChecksum(p)
	return p
}

func TestToLayer3_LossProbOneAlwaysDrops(t *testing.T) {
	opts := DefaultOptions()
	opts.LossProb = 1.0
	seed := int64(1)
	opts.RandomSeed = &seed
	s := newRawSimulator(opts)

	s.ToLayer3(EntityA, validPacket(0, 0))

	if s.eventQueue.Len() != 0 {
		t.Error("with lossProb=1, no FromLayer3 event should ever be scheduled")
	}
	if s.metrics.NLost != 1 {
		t.Errorf("nLost = %d, want 1", s.metrics.NLost)
	}
	if s.metrics.NToLayer3A != 1 {
		t.Errorf("nToLayer3A = %d, want 1", s.metrics.NToLayer3A)
	}
}

func TestToLayer3_ZeroLossZeroCorruptAlwaysDelivers(t *testing.T) {
	opts := DefaultOptions()
	seed := int64(1)
	opts.RandomSeed = &seed
	s := newTestSimulator(t, opts)

	for i := 0; i < 10; i++ {
		s.ToLayer3(EntityA, validPacket(0, 0))
	}

	if s.eventQueue.Len() != 10 {
		t.Fatalf("expected 10 scheduled FromLayer3 events, got %d", s.eventQueue.Len())
	}
	if s.metrics.NLost != 0 || s.metrics.NCorrupt != 0 {
		t.Errorf("expected no loss/corruption, got nLost=%d nCorrupt=%d", s.metrics.NLost, s.metrics.NCorrupt)
	}
}

// TestToLayer3_NonReordering covers testable property 6: across repeated
// calls targeting the same peer, scheduled arrival times are non-decreasing.
func TestToLayer3_NonReordering(t *testing.T) {
	opts := DefaultOptions()
	seed := int64(99)
	opts.RandomSeed = &seed
	s := newTestSimulator(t, opts)

	for i := 0; i < 50; i++ {
		s.ToLayer3(EntityA, validPacket(0, 0))
	}

	var last float64 = -1
	for s.eventQueue.Len() > 0 {
		ev := s.eventQueue.PopNext()
		if ev.Timestamp() < last {
			t.Fatalf("arrival time decreased: %g after %g", ev.Timestamp(), last)
		}
		last = ev.Timestamp()
	}
}

func TestToLayer3_InvalidPacketIgnored(t *testing.T) {
	opts := DefaultOptions()
	s := newTestSimulator(t, opts)

	bad := NewPacket(0, 0, []byte("too short"))
	s.ToLayer3(EntityA, bad)

	if s.eventQueue.Len() != 0 {
		t.Error("an invalid packet must not be scheduled for delivery")
	}
	if s.metrics.NToLayer3A != 0 {
		t.Error("an invalid packet must not even count toward nToLayer3A")
	}
}

func TestSeqnumLimitNBits(t *testing.T) {
	cases := map[int]int{
		1:  0,
		2:  1,
		3:  2,
		4:  2,
		8:  3,
		16: 4,
	}
	for limit, want := range cases {
		if got := seqnumLimitNBits(limit); got != want {
			t.Errorf("seqnumLimitNBits(%d) = %d, want %d", limit, got, want)
		}
	}
}
