package rdt

import "fmt"

// Packet is the tuple layer 4 hands to layer 3: a sequence number, an
// acknowledgment number, a checksum, and a fixed-size payload.
//
// Packets are value objects. Anything that schedules a packet for delivery
// must Clone it first so the receiver never observes a later mutation.
type Packet struct {
	Seqnum   int
	Acknum   int
	Checksum uint32
	Payload  []byte
}

// NewPacket builds a packet with a zero checksum; call InsertChecksum before
// handing it to ToLayer3.
func NewPacket(seqnum, acknum int, payload []byte) *Packet {
	return &Packet{Seqnum: seqnum, Acknum: acknum, Payload: payload}
}

// Clone returns a deep copy of the packet.
func (p *Packet) Clone() *Packet {
	payload := make([]byte, len(p.Payload))
	copy(payload, p.Payload)
	return &Packet{
		Seqnum:   p.Seqnum,
		Acknum:   p.Acknum,
		Checksum: p.Checksum,
		Payload:  payload,
	}
}

func (p *Packet) String() string {
	return fmt.Sprintf("Pkt(seqnum=%d, acknum=%d, checksum=%d, payload=%q)",
		p.Seqnum, p.Acknum, p.Checksum, p.Payload)
}

// validate checks the field-level contract toLayer3 enforces on whatever an
// endpoint hands it, before the medium model (which may intentionally push
// seqnum/acknum out of range) ever runs.
func (p *Packet) validate(seqnumLimit int) error {
	if p.Seqnum < 0 || p.Seqnum >= seqnumLimit {
		return fmt.Errorf("rdt: packet seqnum %d out of range [0, %d)", p.Seqnum, seqnumLimit)
	}
	if p.Acknum < 0 || p.Acknum >= seqnumLimit {
		return fmt.Errorf("rdt: packet acknum %d out of range [0, %d)", p.Acknum, seqnumLimit)
	}
	if len(p.Payload) != MsgSize {
		return fmt.Errorf("rdt: packet payload must be %d bytes, got %d", MsgSize, len(p.Payload))
	}
	return nil
}
