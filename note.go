package klangkit

import (
	"github.com/gosynth/klangkit/internal/envelope"
	"github.com/gosynth/klangkit/internal/voice"
)

// NoteBase is the shared voice-lifecycle state every Note embeds: it
// implements voice.Handle so a Synth's voice.Notes pool can manage it
// directly. The back-reference to the owning Synth is a non-owning
// borrow — the Synth owns the slice of Notes, a Note only holds a
// pointer valid for the Synth's lifetime, so there is no ownership
// cycle to break at teardown.
type NoteBase struct {
	synth *Synth
	env   *envelope.ADSR
	stage voice.Stage
	pitch Pitch
	vel   Velocity
}

// Synth returns the owning Synth. Valid only while the Synth that
// allocated this Note is alive.
func (n *NoteBase) Synth() *Synth { return n.synth }

// Pitch returns the pitch this voice was last started with.
func (n *NoteBase) Pitch() Pitch { return n.pitch }

// Velocity returns the velocity this voice was last started with.
func (n *NoteBase) Velocity() Velocity { return n.vel }

// Stage reports the voice's lifecycle stage, satisfying voice.Handle.
func (n *NoteBase) Stage() voice.Stage { return n.stage }

// Start begins a new note-on, satisfying voice.Handle. Subtypes
// embedding NoteBase should call NoteBase.Start from their own Start to
// pick up the shared envelope/bookkeeping, then layer on their own
// oscillator retriggering.
func (n *NoteBase) Start(pitch, velocity float32) {
	n.pitch = Pitch(pitch)
	n.vel = Velocity(velocity)
	n.stage = voice.Onset
	if n.env != nil {
		n.env.SetStage(envelope.Sustain)
		n.env.Initialise()
	}
}

// Release begins the release phase, satisfying voice.Handle.
func (n *NoteBase) Release(velocity float32) {
	n.stage = voice.Release
	if n.env != nil {
		n.env.Release(0, 0)
	}
}

// Stop forces the voice to Off, satisfying voice.Handle. A voice may
// also call this from within its own Render to self-terminate once its
// envelope finishes Release.
func (n *NoteBase) Stop() { n.stage = voice.Off }

// advance steps the envelope one sample and auto-transitions Release
// voices to Off once the envelope reaches it, the Go equivalent of a
// voice calling stop() from inside process() per the source library's
// contract.
func (n *NoteBase) advance() float32 {
	if n.env == nil {
		return 0
	}
	out := float32(n.env.Advance())
	if n.stage == voice.Release && n.env.Stage() == envelope.Off {
		n.stage = voice.Off
	}
	return out
}
