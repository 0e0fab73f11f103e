package rdt

import "testing"

func TestGBNSender_WindowBound(t *testing.T) {
	ep := newFakeEndpoint()
	g := NewGBNSender(ep, 8) // windowSize = 4

	for i := 0; i < 10; i++ {
		g.Output(msgOf(byte('a' + i)))
	}

	if len(g.inFlight) != g.windowSize {
		t.Fatalf("inFlight = %d, want windowSize = %d", len(g.inFlight), g.windowSize)
	}
	if len(ep.toLayer3) != g.windowSize {
		t.Errorf("sent %d packets, want exactly windowSize = %d before any ack", len(ep.toLayer3), g.windowSize)
	}
}

func TestGBNSender_CumulativeAckSlidesWindow(t *testing.T) {
	ep := newFakeEndpoint()
	g := NewGBNSender(ep, 8) // windowSize = 4

	for i := 0; i < 4; i++ {
		g.Output(msgOf(byte('a' + i)))
	}
	g.Output(msgOf('z')) // buffered, window full

	ack := NewPacket(0, 1, make([]byte, MsgSize)) // cumulative ack of seqnums 0,1
	InsertChecksum(ack)
	g.Input(ack)

	if g.base != 2 {
		t.Errorf("base after cumulative ack of 1 = %d, want 2", g.base)
	}
	if len(g.inFlight) != 3 {
		t.Fatalf("inFlight after ack = %d, want 3 (2 remaining + 1 newly sent)", len(g.inFlight))
	}
	if len(ep.toLayer3) != 5 {
		t.Errorf("expected 5 total sends (4 initial + 1 freed by the ack), got %d", len(ep.toLayer3))
	}
}

func TestGBNSender_DuplicateOrOutOfWindowAckIgnored(t *testing.T) {
	ep := newFakeEndpoint()
	g := NewGBNSender(ep, 8)
	g.Output(msgOf('a'))

	bogus := NewPacket(0, 5, make([]byte, MsgSize)) // no packet with seqnum 5 in flight
	InsertChecksum(bogus)
	g.Input(bogus)

	if g.base != 0 {
		t.Error("an ack matching nothing in flight must not advance base")
	}
	if len(g.inFlight) != 1 {
		t.Error("inFlight must be untouched by a non-matching ack")
	}
}

func TestGBNSender_TimerRetransmitsEntireWindow(t *testing.T) {
	ep := newFakeEndpoint()
	g := NewGBNSender(ep, 8)
	for i := 0; i < 3; i++ {
		g.Output(msgOf(byte('a' + i)))
	}

	sentBefore := len(ep.toLayer3)
	ep.armed[EntityA] = false
	g.TimerInterrupt()

	if len(ep.toLayer3) != sentBefore*2 {
		t.Errorf("expected every in-flight packet retransmitted, got %d new sends", len(ep.toLayer3)-sentBefore)
	}
	if g.nNoProgress != 0 {
		t.Errorf("nNoProgress = %d, want 0: madeProgress starts true, so the first timeout is absorbed", g.nNoProgress)
	}

	ep.armed[EntityA] = false
	g.TimerInterrupt()
	if g.nNoProgress != 1 {
		t.Errorf("nNoProgress = %d, want 1 after the second consecutive unproductive timeout", g.nNoProgress)
	}
}

func TestGBNReceiver_InOrderDeliveryAdvancesExpected(t *testing.T) {
	ep := newFakeEndpoint()
	b := NewGBNReceiver(ep, 8)

	p := NewPacket(0, 0, msgOf('a').Data)
	InsertChecksum(p)
	b.Input(p)

	if len(ep.toLayer5) != 1 {
		t.Fatalf("expected delivery, got %d", len(ep.toLayer5))
	}
	if b.expectedSeqnum != 1 {
		t.Errorf("expectedSeqnum = %d, want 1", b.expectedSeqnum)
	}
	if ep.toLayer3[0].Acknum != 0 {
		t.Errorf("ack acknum = %d, want 0", ep.toLayer3[0].Acknum)
	}
}

func TestGBNReceiver_OutOfOrderReAcksLastGood(t *testing.T) {
	ep := newFakeEndpoint()
	b := NewGBNReceiver(ep, 8)

	// expectedSeqnum starts at 0; deliver seqnum 2 instead (a gap).
	p := NewPacket(2, 0, msgOf('a').Data)
	InsertChecksum(p)
	b.Input(p)

	if len(ep.toLayer5) != 0 {
		t.Error("out-of-order packet must not be delivered")
	}
	if ep.toLayer3[0].Acknum != b.seqnumLimit-1 {
		t.Errorf("re-ack acknum = %d, want lastAcked = seqnumLimit-1 = %d", ep.toLayer3[0].Acknum, b.seqnumLimit-1)
	}
}
