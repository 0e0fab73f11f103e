package rdt

import "github.com/sirupsen/logrus"

// ABPSenderState is entity A's FSM state under the Alternating-Bit Protocol.
// The original Python reassigns a bound method to move between states
// (self.handleEvent = self.handleEventWaitForAck); per spec §9's design
// note, that becomes an explicit enum dispatched through a switch.
type ABPSenderState int

const (
	ABPWaitForCall ABPSenderState = iota
	ABPWaitForAck
)

// abpWaitTime is the fixed retransmission timeout (spec §3).
const abpWaitTime = 10.0

type abpEventKind int

const (
	abpOutput abpEventKind = iota
	abpInput
	abpTimer
)

// ABPSender is entity A under ABP: stop-and-wait with a single alternating
// sequence bit.
type ABPSender struct {
	api   EndpointAPI
	state ABPSenderState
	bit   int

	pending []*Message
	sentPkt *Packet
}

// NewABPSender constructs entity A's ABP sender bound to the given
// simulator handle.
func NewABPSender(api EndpointAPI) *ABPSender {
	return &ABPSender{api: api, state: ABPWaitForCall}
}

func (a *ABPSender) Output(msg *Message) {
	a.pending = append(a.pending, msg)
	a.dispatch(abpOutput, nil)
}

func (a *ABPSender) Input(p *Packet) {
	a.dispatch(abpInput, p)
}

func (a *ABPSender) TimerInterrupt() {
	a.dispatch(abpTimer, nil)
}

func (a *ABPSender) dispatch(ev abpEventKind, pkt *Packet) {
	switch a.state {
	case ABPWaitForCall:
		a.handleWaitForCall(ev, pkt)
	case ABPWaitForAck:
		a.handleWaitForAck(ev, pkt)
	}
}

func (a *ABPSender) handleWaitForCall(ev abpEventKind, _ *Packet) {
	switch ev {
	case abpOutput:
		if len(a.pending) == 0 {
			return
		}
		m := a.pending[0]
		a.pending = a.pending[1:]

		p := NewPacket(a.bit, 0, m.Data)
		InsertChecksum(p)
		a.api.ToLayer3(EntityA, p)
		a.sentPkt = p
		a.api.StartTimer(EntityA, abpWaitTime)
		a.state = ABPWaitForAck

	case abpInput:
		// Stray ACK while nothing is outstanding; ignore.

	case abpTimer:
		logrus.Warn("ABP entity A: ignoring unexpected timeout")
	}
}

func (a *ABPSender) handleWaitForAck(ev abpEventKind, p *Packet) {
	switch ev {
	case abpOutput:
		// Buffer grows; drained once the outstanding packet is ACKed.

	case abpInput:
		if IsCorrupt(p) || p.Acknum != a.bit {
			return
		}
		a.api.StopTimer(EntityA)
		a.bit = 1 - a.bit
		a.state = ABPWaitForCall
		a.dispatch(abpOutput, nil)

	case abpTimer:
		a.api.ToLayer3(EntityA, a.sentPkt)
		a.api.StartTimer(EntityA, abpWaitTime)
	}
}

// ABPReceiver is entity B under ABP.
type ABPReceiver struct {
	api          EndpointAPI
	expectingBit int
}

// NewABPReceiver constructs entity B's ABP receiver bound to the given
// simulator handle.
func NewABPReceiver(api EndpointAPI) *ABPReceiver {
	return &ABPReceiver{api: api}
}

func (b *ABPReceiver) Output(*Message) {}

func (b *ABPReceiver) Input(p *Packet) {
	if IsCorrupt(p) || p.Seqnum != b.expectingBit {
		ack := NewPacket(0, 1-b.expectingBit, p.Payload)
		InsertChecksum(ack)
		b.api.ToLayer3(EntityB, ack)
		return
	}

	b.api.ToLayer5(EntityB, &Message{Data: p.Payload})

	ack := NewPacket(0, b.expectingBit, p.Payload)
	InsertChecksum(ack)
	b.api.ToLayer3(EntityB, ack)

	b.expectingBit = 1 - b.expectingBit
}

func (b *ABPReceiver) TimerInterrupt() {}
