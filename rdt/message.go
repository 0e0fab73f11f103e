package rdt

import "fmt"

// MsgSize is the fixed length, in bytes, of every application-layer payload.
const MsgSize = 20

// Message is the unit handed between layer 5 (the application) and layer 4
// (the transport endpoint).
type Message struct {
	Data []byte
}

// NewMessage builds a Message, rejecting any payload that isn't exactly
// MsgSize bytes long.
func NewMessage(data []byte) (*Message, error) {
	if len(data) != MsgSize {
		return nil, fmt.Errorf("rdt: message payload must be %d bytes, got %d", MsgSize, len(data))
	}
	return &Message{Data: data}, nil
}

func (m *Message) String() string {
	return fmt.Sprintf("Msg(data=%q)", m.Data)
}
