package rdt

import "container/heap"

// EventHeap is a time-ordered priority queue of *Event with a stable FIFO
// tie-break among events scheduled for the same time, implemented via a
// monotonically increasing eventID assigned at Schedule time.
type EventHeap struct {
	events []*Event
}

// NewEventHeap creates an empty event heap.
func NewEventHeap() *EventHeap {
	h := &EventHeap{events: make([]*Event, 0)}
	heap.Init(h)
	return h
}

// Len implements heap.Interface.
func (h *EventHeap) Len() int { return len(h.events) }

// Less implements heap.Interface: earlier timestamp first, ties broken by
// insertion order (lower eventID first).
func (h *EventHeap) Less(i, j int) bool {
	ei, ej := h.events[i], h.events[j]
	if ei.time != ej.time {
		return ei.time < ej.time
	}
	return ei.eventID < ej.eventID
}

// Swap implements heap.Interface.
func (h *EventHeap) Swap(i, j int) {
	h.events[i], h.events[j] = h.events[j], h.events[i]
}

// Push implements heap.Interface. Use Schedule, not Push, from outside the
// package.
func (h *EventHeap) Push(x any) {
	h.events = append(h.events, x.(*Event))
}

// Pop implements heap.Interface. Use PopNext, not Pop, from outside the
// package.
func (h *EventHeap) Pop() any {
	old := h.events
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	h.events = old[:n-1]
	return item
}

// Schedule inserts an event into the heap.
func (h *EventHeap) Schedule(e *Event) {
	heap.Push(h, e)
}

// PopNext removes and returns the earliest-scheduled event, or nil if the
// heap is empty.
func (h *EventHeap) PopNext() *Event {
	if h.Len() == 0 {
		return nil
	}
	return heap.Pop(h).(*Event)
}

// Peek returns the earliest-scheduled event without removing it, or nil if
// the heap is empty.
func (h *EventHeap) Peek() *Event {
	if h.Len() == 0 {
		return nil
	}
	return h.events[0]
}

// RemoveWhere deletes the first event matching pred and reports whether it
// found one. Used by stopTimer to cancel the pending TimerInterrupt for an
// entity.
func (h *EventHeap) RemoveWhere(pred func(*Event) bool) bool {
	for i, e := range h.events {
		if pred(e) {
			heap.Remove(h, i)
			return true
		}
	}
	return false
}

// AnyWhere reports whether any scheduled event matches pred.
func (h *EventHeap) AnyWhere(pred func(*Event) bool) bool {
	for _, e := range h.events {
		if pred(e) {
			return true
		}
	}
	return false
}
