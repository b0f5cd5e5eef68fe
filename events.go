package klangkit

import (
	"sync"
	"sync/atomic"
)

const maxQueuedEvents = 1024

// EventKind identifies the ingress event types a Synth accepts from a
// producer thread (UI or host) ahead of the next audio block.
type EventKind int

const (
	EventNoteOn EventKind = iota
	EventNoteOff
	EventPitchWheel
	EventControlChange
)

// Event is one queued MIDI-like message. Not every field applies to
// every Kind: NoteOn carries Pitch/Velocity; NoteOff/PitchWheel address
// an already-allocated voice by VoiceIndex (the index NoteOn returned);
// ControlChange carries Controller and Value.
type Event struct {
	Kind       EventKind
	Pitch      Pitch
	Velocity   Velocity
	Value      float32
	Controller int
	VoiceIndex int
}

// eventQueue is a bounded, non-reallocating event buffer: its backing
// array is sized to maxQueuedEvents once and push never grows it, so an
// overflowing producer silently drops events instead of allocating on
// what may be the audio thread.
type eventQueue struct {
	mu     sync.Mutex
	events []Event
}

func newEventQueue() *eventQueue {
	return &eventQueue{events: make([]Event, 0, maxQueuedEvents)}
}

func (q *eventQueue) push(e Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) >= maxQueuedEvents {
		return
	}
	q.events = append(q.events, e)
}

// drain returns the queue's events and empties it. Only ever called by
// the side that exclusively owns this queue instance at the time (the
// audio thread, after a swap has taken this queue out of producer
// reach).
func (q *eventQueue) drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Event, len(q.events))
	copy(out, q.events)
	q.events = q.events[:0]
	return out
}

// eventSwap is the double-buffered MIDI ingress described in the
// concurrency model: producers push into whichever queue `target`
// currently points at; the audio thread atomically swaps in its private
// spare queue at the start of each block (a release on the producer
// side, an acquire on the consumer side via atomic.Pointer) and then
// drains the queue it swapped out, in insertion order, before producing
// any samples for that block.
type eventSwap struct {
	target atomic.Pointer[eventQueue]
	spare  *eventQueue // touched only by the audio thread
}

func newEventSwap() *eventSwap {
	s := &eventSwap{spare: newEventQueue()}
	s.target.Store(newEventQueue())
	return s
}

// Push enqueues an event onto the current producer-side queue. Safe to
// call concurrently from any goroutine; it never blocks the audio
// thread.
func (s *eventSwap) Push(e Event) {
	s.target.Load().push(e)
}

// swapAndDrain exchanges the producer-facing queue for the audio
// thread's spare and returns the events accumulated since the previous
// call, in insertion order. Must only be called from the audio thread.
func (s *eventSwap) swapAndDrain() []Event {
	fresh := s.spare
	old := s.target.Swap(fresh)
	s.spare = old
	return old.drain()
}
