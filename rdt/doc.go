// Package rdt implements a deterministic, discrete-event simulator for a
// reliable data transport protocol running over an unreliable network layer
// that can lose, corrupt, and delay packets.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - message.go, packet.go: the fixed-size application payload and the
//     wire-level packet that carries it
//   - event.go, event_heap.go: the time-ordered event queue endpoints and the
//     medium schedule work onto
//   - medium.go: the loss/corruption/delay model inside toLayer3
//   - simulator.go: the event loop and the EndpointAPI surface endpoints call
//
// Two protocol personalities implement the Handler interface on top of that
// kernel:
//   - abp.go: Alternating-Bit Protocol (stop-and-wait)
//   - gbn.go: Go-Back-N (sliding window, cumulative ACK)
//
// Neither protocol file reaches into simulator internals directly; they only
// call methods on the EndpointAPI handle they are constructed with.
package rdt
