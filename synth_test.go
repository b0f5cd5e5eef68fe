package klangkit

import (
	"testing"

	"github.com/gosynth/klangkit/internal/voice"
)

// testVoice is a minimal Voice for exercising Synth without pulling in
// a concrete oscillator engine.
type testVoice struct {
	stage voice.Stage
	pitch float32
	level float32
}

func (v *testVoice) Stage() voice.Stage         { return v.stage }
func (v *testVoice) Start(pitch, vel float32)   { v.pitch = pitch; v.level = vel; v.stage = voice.Sustain }
func (v *testVoice) Release(vel float32)        { v.stage = voice.Release }
func (v *testVoice) Stop()                      { v.stage = voice.Off }
func (v *testVoice) Render() Signals2           { return Mono(v.level) }

func newTestVoices(n int) []Voice {
	voices := make([]Voice, n)
	for i := range voices {
		voices[i] = &testVoice{stage: voice.Off}
	}
	return voices
}

func TestSynthRendersSummedVoices(t *testing.T) {
	s := NewSynth(48000, newTestVoices(2), nil)
	s.NoteOn(60, 0.5)
	s.NoteOn(64, 0.25)

	buf := make([]Signals2, 1)
	s.RenderBlock(buf)

	want := float32(0.75)
	if buf[0].L != want {
		t.Errorf("expected summed level %v, got %v", want, buf[0].L)
	}
}

func TestSynthMasterGainScalesOutput(t *testing.T) {
	s := NewSynth(48000, newTestVoices(1), nil)
	s.NoteOn(60, 1)
	s.SetMasterGain(0.5)

	buf := make([]Signals2, 1)
	s.RenderBlock(buf)

	if buf[0].L != 0.5 {
		t.Errorf("expected gain-scaled output 0.5, got %v", buf[0].L)
	}
}

func TestSynthDrainsQueuedEventsBeforeRendering(t *testing.T) {
	s := NewSynth(48000, newTestVoices(1), nil)
	s.PushEvent(Event{Kind: EventNoteOn, Pitch: 60, Velocity: 0.9})

	buf := make([]Signals2, 1)
	s.RenderBlock(buf)

	if buf[0].L != 0.9 {
		t.Errorf("expected queued NoteOn to take effect before rendering, got %v", buf[0].L)
	}
}

func TestSynthNoteOffReleasesNotStops(t *testing.T) {
	s := NewSynth(48000, newTestVoices(1), nil)
	idx := s.NoteOn(60, 1)
	s.NoteOff(idx, 0)

	if s.ActiveVoiceCount() != 1 {
		t.Errorf("expected released voice to still count as active, got %d", s.ActiveVoiceCount())
	}
}

func TestPipeChainsModifiers(t *testing.T) {
	src := constGen(0.5)
	add := &addModifier{amount: 0.25}
	got := Pipe(src, add)
	if got != 0.75 {
		t.Errorf("expected piped result 0.75, got %v", got)
	}
}

type constGen float32

func (c constGen) Output() Signal { return float32(c) }

type addModifier struct {
	amount Signal
	in     Signal
}

func (m *addModifier) SetInput(v Signal) { m.in = v }
func (m *addModifier) Output() Signal    { return m.in + m.amount }
