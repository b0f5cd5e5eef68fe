package klangkit

import (
	"math"
	"sync/atomic"

	"github.com/gosynth/klangkit/internal/voice"
)

// Voice is the capability a Synth's pooled voices must expose beyond
// voice.Handle: a Render call that produces the voice's next stereo
// frame. A voice that wants to self-terminate calls Stop from within
// Render, the Go form of "voices may self-terminate by calling stop()
// from within their own process()".
type Voice interface {
	voice.Handle
	Render() Signals2
}

// Synth drains its queued events, renders every live voice into the
// destination buffer, sums them, then runs its own post-process effect
// (itself an Effect, since the synth-level stage is "just another
// effect" over the summed voice output).
type Synth struct {
	sampleRate float64
	notes      *voice.Notes[Voice]
	events     *eventSwap
	gainBits   atomic.Uint64
	post       *Effect
}

// NewSynth builds a Synth over an already-constructed, fixed-size pool
// of voices. The pool size is the synth's polyphony; it never grows.
func NewSynth(sampleRate float64, voices []Voice, post *Effect) *Synth {
	s := &Synth{
		sampleRate: sampleRate,
		notes:      voice.New[Voice](voices),
		events:     newEventSwap(),
		post:       post,
	}
	s.SetMasterGain(1)
	return s
}

// SampleRate returns the process-wide sample rate, fixed at
// construction and never mutated during streaming.
func (s *Synth) SampleRate() float64 { return s.sampleRate }

// SetMasterGain sets the linear output gain. Safe to call from any
// goroutine; readers on the audio thread see the new value via a
// lock-free atomic load, matching the donor engines' bit-pattern gain
// idiom.
func (s *Synth) SetMasterGain(gain float64) {
	s.gainBits.Store(math.Float64bits(gain))
}

// MasterGain returns the current linear output gain.
func (s *Synth) MasterGain() float64 {
	return math.Float64frombits(s.gainBits.Load())
}

// PushEvent enqueues an ingress event for consumption at the start of
// the next block. Safe to call from any goroutine.
func (s *Synth) PushEvent(e Event) { s.events.Push(e) }

// NoteOn immediately allocates and starts a voice, returning its slot
// index (the VoiceIndex later ingress events address it by). Call this
// directly from the audio thread; route cross-thread note-ons through
// PushEvent with EventNoteOn instead.
func (s *Synth) NoteOn(pitch Pitch, velocity Velocity) int {
	return s.notes.NoteOn(float32(pitch), float32(velocity))
}

// NoteOff releases the voice at idx.
func (s *Synth) NoteOff(idx int, velocity Velocity) {
	s.notes.NoteOff(idx, float32(velocity))
}

// ActiveVoiceCount returns the number of voices not in Off.
func (s *Synth) ActiveVoiceCount() int {
	n := 0
	for i := 0; i < s.notes.Len(); i++ {
		if s.notes.Slot(i).Stage() != voice.Off {
			n++
		}
	}
	return n
}

// applyEvent dispatches one drained ingress event to the voice pool.
func (s *Synth) applyEvent(e Event) {
	switch e.Kind {
	case EventNoteOn:
		s.NoteOn(e.Pitch, e.Velocity)
	case EventNoteOff:
		s.NoteOff(e.VoiceIndex, e.Velocity)
	case EventPitchWheel, EventControlChange:
		// Reserved for voice/control-specific handling by embedding
		// synths; the base Synth only drains these out of the queue so
		// block ordering holds.
	}
}

// RenderBlock drains queued ingress events in insertion order, then
// renders every live voice into buf (summed), then runs the post-process
// effect over the result. buf is overwritten, not accumulated into.
func (s *Synth) RenderBlock(buf []Signals2) {
	for _, e := range s.events.swapAndDrain() {
		s.applyEvent(e)
	}
	gain := s.MasterGain()
	for i := range buf {
		var sum Signals2
		for idx := 0; idx < s.notes.Len(); idx++ {
			sum = sum.Add(s.renderVoice(s.notes.Slot(idx)))
		}
		buf[i] = sum.Scale(float32(gain))
	}
	if s.post != nil {
		s.post.ProcessBuffer(buf)
	}
}

func (s *Synth) renderVoice(v Voice) Signals2 {
	if v.Stage() == voice.Off {
		return Signals2{}
	}
	return v.Render()
}
