package rdt

import (
	"math/bits"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// Simulator is the discrete-event kernel described in spec §4.5: it owns
// virtual time, the seeded PRNG, the event queue, and the EndpointAPI
// surface the two protocol entities call into. Endpoints hold a reference
// to it only through the narrower EndpointAPI interface; the simulator in
// turn drives each endpoint through its Handler interface.
type Simulator struct {
	clock float64
	opts  SimulationOptions
	rng   *PartitionedRNG

	seqnumLimitNBits int

	eventQueue  *EventHeap
	nextEventID uint64

	timerArmed  map[Entity]bool
	lastArrival map[Entity]float64

	handlers map[Entity]Handler

	cbA, cbB func([]byte)

	metrics *Metrics
	nSim    int
}

// NewSimulator validates opts and constructs a Simulator wired with ABP or
// GBN entities per opts.Protocol.
func NewSimulator(opts SimulationOptions, cbA, cbB func([]byte)) (*Simulator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	seed := deriveSeed(opts.RandomSeed)

	s := &Simulator{
		opts:             opts,
		rng:              NewPartitionedRNG(seed),
		seqnumLimitNBits: seqnumLimitNBits(opts.SeqnumLimit),
		eventQueue:       NewEventHeap(),
		timerArmed:       make(map[Entity]bool, 2),
		lastArrival:      make(map[Entity]float64, 2),
		handlers:         make(map[Entity]Handler, 2),
		cbA:              cbA,
		cbB:              cbB,
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

	logrus.Infof("rdt: seeded run %s (protocol=%s, seed=%d)", s.metrics.RunID, opts.Protocol, seed)
	return s, nil
}

func deriveSeed(configured *int64) int64 {
	if configured != nil {
		return *configured
	}
	return time.Now().UnixNano()
}

// seqnumLimitNBits is ceil(log2(seqnumLimit)) for seqnumLimit >= 2, else 0.
// The original Python computes this via (seqnumLimit-1).bit_length(); bits.Len
// is its Go equivalent.
func seqnumLimitNBits(seqnumLimit int) int {
	if seqnumLimit < 2 {
		return 0
	}
	return bits.Len(uint(seqnumLimit - 1))
}

func (s *Simulator) rand() *rand.Rand {
	return s.rng.ForSubsystem(SubsystemCore)
}

func (s *Simulator) newEvent(kind EventKind, t float64, entity Entity, packet *Packet) *Event {
	s.nextEventID++
	return &Event{time: t, kind: kind, entity: entity, packet: packet, eventID: s.nextEventID}
}

func (s *Simulator) scheduleNextArrival(from float64) {
	gap := s.rand().Float64() * 2 * s.opts.InterarrivalTime
	s.metrics.ArrivalGaps = append(s.metrics.ArrivalGaps, gap)
	s.eventQueue.Schedule(s.newEvent(EventFromLayer5, from+gap, EntityA, nil))
}

// Run drives the event loop until the queue empties or nSimMax synthetic
// messages have been injected (spec §4.5) — whichever comes first. Pending
// FromLayer3/TimerInterrupt events past that point are deliberately not
// drained; see spec §4.5's edge-case note.
func (s *Simulator) Run() *Metrics {
	logrus.Infof("===== SIMULATION BEGINS (run %s)", s.metrics.RunID)

	s.scheduleNextArrival(s.clock)

	for s.eventQueue.Len() > 0 && s.nSim < s.opts.NumMsgs {
		ev := s.eventQueue.PopNext()
		s.clock = ev.Timestamp()

		logrus.Tracef("[t=%010.3f] dispatching %s for %s", s.clock, ev.Kind(), ev.Entity())

		switch ev.Kind() {
		case EventFromLayer5:
			s.scheduleNextArrival(s.clock)
			payload := make([]byte, MsgSize)
			for i := range payload {
				payload[i] = byte('a' + (s.nSim % 26))
			}
			s.nSim++
			s.handlers[EntityA].Output(&Message{Data: payload})

		case EventFromLayer3:
			s.handlers[ev.Entity()].Input(ev.Packet().Clone())

		case EventTimerInterrupt:
			s.timerArmed[ev.Entity()] = false
			s.handlers[ev.Entity()].TimerInterrupt()
		}
	}

	logrus.Infof("===== SIMULATION ENDS (run %s, nSim=%d)", s.metrics.RunID, s.nSim)
	return s.metrics
}

// Metrics returns the simulator's live metrics object (useful for tests that
// want to peek mid-run).
func (s *Simulator) Metrics() *Metrics { return s.metrics }

// --- EndpointAPI ---

func (s *Simulator) StartTimer(entity Entity, increment float64) {
	if !entity.valid() {
		logrus.Warnf("startTimer: invalid entity %v", entity)
		return
	}
	if increment < 0 {
		logrus.Warnf("startTimer: negative increment %g for entity %s", increment, entity)
		return
	}
	if s.timerArmed[entity] {
		logrus.Warnf("startTimer: entity %s already has a pending timer", entity)
		return
	}
	s.eventQueue.Schedule(s.newEvent(EventTimerInterrupt, s.clock+increment, entity, nil))
	s.timerArmed[entity] = true
}

func (s *Simulator) StopTimer(entity Entity) {
	if !entity.valid() {
		logrus.Warnf("stopTimer: invalid entity %v", entity)
		return
	}
	if !s.timerArmed[entity] {
		logrus.Warnf("stopTimer: entity %s has no pending timer", entity)
		return
	}
	s.eventQueue.RemoveWhere(func(e *Event) bool {
		return e.Kind() == EventTimerInterrupt && e.Entity() == entity
	})
	s.timerArmed[entity] = false
}

func (s *Simulator) ToLayer5(entity Entity, m *Message) {
	if !entity.valid() {
		logrus.Warnf("toLayer5: invalid entity %v", entity)
		return
	}
	if len(m.Data) != MsgSize {
		logrus.Warnf("toLayer5: message from %s has invalid length %d", entity, len(m.Data))
		return
	}
	switch entity {
	case EntityA:
		s.metrics.NToLayer5A++
		if s.cbA != nil {
			s.cbA(m.Data)
		}
	case EntityB:
		s.metrics.NToLayer5B++
		s.metrics.DeliveredToB = append(s.metrics.DeliveredToB, m.Data)
		if s.cbB != nil {
			s.cbB(m.Data)
		}
	}
}

func (s *Simulator) GetTime(entity Entity) float64 {
	return s.clock
}
