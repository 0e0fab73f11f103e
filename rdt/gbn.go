package rdt

import "github.com/sirupsen/logrus"

// gbnWaitTime is the fixed base timeout for entity A's single retransmission
// timer, independent of how far nNoProgress has backed it off.
func gbnWaitTime(seqnumLimit int) float64 {
	return 10.0 + 2.0*float64(seqnumLimit)
}

// GBNSender is entity A under Go-Back-N: a sliding window of up to
// windowSize unacknowledged packets, a single timer running against the
// oldest unacknowledged packet (the base), and cumulative ACKs.
type GBNSender struct {
	api         EndpointAPI
	seqnumLimit int
	windowSize  int
	waitTime    float64

	base     int // monotone count of ACKed packets; seqnum is base mod seqnumLimit
	inFlight []*Packet // FIFO, oldest (base) first

	pending []*Message

	// madeProgress/nNoProgress track whether the last timer interval saw a
	// useful (window-advancing) ACK. nNoProgress scales the next timeout;
	// spec leaves it deliberately unbounded (see DESIGN.md).
	madeProgress bool
	nNoProgress  int
}

// NewGBNSender constructs entity A's GBN sender with a window half the
// sequence space wide. madeProgress starts true so the very first timeout,
// even if unproductive, is absorbed without incrementing nNoProgress; only a
// second consecutive unproductive timeout starts the backoff.
func NewGBNSender(api EndpointAPI, seqnumLimit int) *GBNSender {
	return &GBNSender{
		api:          api,
		seqnumLimit:  seqnumLimit,
		windowSize:   seqnumLimit / 2,
		waitTime:     gbnWaitTime(seqnumLimit),
		madeProgress: true,
	}
}

func (g *GBNSender) Output(msg *Message) {
	g.pending = append(g.pending, msg)
	g.maybeSend()
}

func (g *GBNSender) maybeSend() {
	for len(g.pending) > 0 && len(g.inFlight) < g.windowSize {
		seq := (g.base + len(g.inFlight)) % g.seqnumLimit

		m := g.pending[0]
		g.pending = g.pending[1:]

		p := NewPacket(seq, 0, m.Data)
		InsertChecksum(p)

		wasEmpty := len(g.inFlight) == 0
		g.inFlight = append(g.inFlight, p)
		g.api.ToLayer3(EntityA, p)

		if wasEmpty {
			g.api.StartTimer(EntityA, g.waitTime)
		}
	}
}

func (g *GBNSender) Input(p *Packet) {
	if IsCorrupt(p) {
		return
	}

	idx := -1
	for i, outstanding := range g.inFlight {
		if outstanding.Seqnum == p.Acknum {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}

	g.inFlight = g.inFlight[idx+1:]
	g.base += idx + 1
	g.madeProgress = true
	g.nNoProgress = 0

	g.api.StopTimer(EntityA)
	if len(g.inFlight) > 0 {
		g.api.StartTimer(EntityA, g.waitTime)
	}
	g.maybeSend()
}

func (g *GBNSender) TimerInterrupt() {
	if !g.madeProgress {
		g.nNoProgress++
	}
	g.madeProgress = false

	if len(g.inFlight) == 0 {
		logrus.Warn("GBN entity A: timer fired with empty window")
		return
	}

	for _, p := range g.inFlight {
		g.api.ToLayer3(EntityA, p)
	}
	g.api.StartTimer(EntityA, g.waitTime*float64(g.nNoProgress+1))
}

// GBNReceiver is entity B under Go-Back-N: strictly in-order delivery,
// cumulative re-ACK of the last correctly received in-order seqnum on
// anything out of order or corrupt.
type GBNReceiver struct {
	api            EndpointAPI
	seqnumLimit    int
	expectedSeqnum int
	lastAcked      int
}

// NewGBNReceiver constructs entity B's GBN receiver.
func NewGBNReceiver(api EndpointAPI, seqnumLimit int) *GBNReceiver {
	return &GBNReceiver{
		api:         api,
		seqnumLimit: seqnumLimit,
		lastAcked:   seqnumLimit - 1,
	}
}

func (b *GBNReceiver) Output(*Message) {}

func (b *GBNReceiver) Input(p *Packet) {
	if IsCorrupt(p) || p.Seqnum != b.expectedSeqnum {
		b.sendAck(b.lastAcked, p.Payload)
		return
	}

	b.api.ToLayer5(EntityB, &Message{Data: p.Payload})
	b.lastAcked = b.expectedSeqnum
	b.expectedSeqnum = (b.expectedSeqnum + 1) % b.seqnumLimit
	b.sendAck(b.lastAcked, p.Payload)
}

func (b *GBNReceiver) sendAck(acknum int, payload []byte) {
	ack := NewPacket(0, acknum, payload)
	InsertChecksum(ack)
	b.api.ToLayer3(EntityB, ack)
}

func (b *GBNReceiver) TimerInterrupt() {}
