// Package main implements cmd/klangdemo: a small demonstration host
// that plays a handful of example Note patches through klangkit's core
// packages. These patches are not part of the core — spec section 1
// calls "sample example patches" an out-of-scope glue concern — they
// exist only to give the oscillator/filter/envelope/delay packages a
// concrete, runnable consumer.
package main

import (
	"github.com/gosynth/klangkit"
	"github.com/gosynth/klangkit/internal/delay"
	"github.com/gosynth/klangkit/internal/envelope"
	"github.com/gosynth/klangkit/internal/filter"
	"github.com/gosynth/klangkit/internal/osc"
	"github.com/gosynth/klangkit/internal/voice"
)

// harmonics sums n harmonic sine partials with a 1/n falloff, silencing
// any partial at or above Nyquist. This stands in for the source
// library's Harmonics<N> oscillator template.
type harmonics struct {
	osc    [8]osc.Sine
	freqHz [8]float64
	n      int
}

func newHarmonics(n int) *harmonics {
	if n > 8 {
		n = 8
	}
	return &harmonics{n: n}
}

func (h *harmonics) setFrequency(freqHz, sampleRate float64) {
	for i := 0; i < h.n; i++ {
		h.freqHz[i] = freqHz * float64(i+1)
		h.osc[i].SetFrequency(h.freqHz[i], sampleRate)
	}
}

func (h *harmonics) process(sampleRate float64) float32 {
	var mix float32
	for i := 0; i < h.n; i++ {
		if h.freqHz[i] >= sampleRate*0.5 {
			continue
		}
		mix += h.osc[i].Process() / float32(i+1)
	}
	return mix
}

// voiceBase holds the lifecycle bookkeeping every demo patch shares:
// stage, last-triggered pitch/velocity, and the sample rate it was
// built at.
type voiceBase struct {
	stage      voice.Stage
	pitch      klangkit.Pitch
	velocity   klangkit.Velocity
	sampleRate float64
}

func (v *voiceBase) Stage() voice.Stage { return v.stage }
func (v *voiceBase) Stop()              { v.stage = voice.Off }

func (v *voiceBase) start(pitch, vel float32) {
	v.pitch = klangkit.Pitch(pitch)
	v.velocity = klangkit.Velocity(vel)
	v.stage = voice.Onset
}

// Stab is a short plucked harmonic stack: examples.h's `Stab`, an
// 8-partial Harmonics oscillator through a fast ADSR.
type Stab struct {
	voiceBase
	osc  *harmonics
	adsr *envelope.ADSR
}

func newStab(sampleRate float64) *Stab {
	return &Stab{
		voiceBase: voiceBase{sampleRate: sampleRate, stage: voice.Off},
		osc:       newHarmonics(8),
		adsr:      envelope.NewADSR(0.01, 0.05, 0.05, 0.25, sampleRate),
	}
}

func (s *Stab) Start(pitch, vel float32) {
	s.start(pitch, vel)
	s.stage = voice.Sustain
	freq := s.pitch.ToFrequency()
	s.osc.setFrequency(float64(freq), s.sampleRate)
	s.adsr.Set(0.01, 0.05, 0.05, 0.25)
}

func (s *Stab) Release(vel float32) {
	s.stage = voice.Release
	s.adsr.Release(0, 0)
}

func (s *Stab) Render() klangkit.Signals2 {
	mix := s.osc.process(s.sampleRate) * float32(s.adsr.Advance())
	if s.adsr.Finished() {
		s.stage = voice.Off
	}
	return klangkit.Mono(mix * float32(s.velocity))
}

// Delay1 is Stab's longer-release cousin with a single half-second echo
// (only the dry signal is written into the delay line, so the echo does
// not repeat): examples.h's `Delay1`.
type Delay1 struct {
	voiceBase
	osc   *harmonics
	adsr  *envelope.ADSR
	delay *delay.Line
}

func newDelay1(sampleRate float64) *Delay1 {
	return &Delay1{
		voiceBase: voiceBase{sampleRate: sampleRate, stage: voice.Off},
		osc:       newHarmonics(8),
		adsr:      envelope.NewADSR(0.01, 0.05, 0.01, 3.0, sampleRate),
		delay:     delay.New(int(sampleRate)), // up to 1s of echo
	}
}

func (d *Delay1) Start(pitch, vel float32) {
	d.start(pitch, vel)
	d.stage = voice.Sustain
	freq := d.pitch.ToFrequency()
	d.osc.setFrequency(float64(freq), d.sampleRate)
	d.adsr.Set(0.01, 0.05, 0.01, 3.0)
	d.delay.Reset()
}

func (d *Delay1) Release(vel float32) {
	d.stage = voice.Release
	d.adsr.Release(0, 0)
}

func (d *Delay1) Render() klangkit.Signals2 {
	mix := d.osc.process(d.sampleRate) * float32(d.adsr.Advance())
	echo, _ := d.delay.Tap(float32(0.5 * d.sampleRate))
	d.delay.Write(mix)
	if d.adsr.Finished() {
		d.stage = voice.Off
	}
	out := (mix + echo*0.5) * float32(d.velocity)
	return klangkit.Mono(out)
}

// Subtractive1 is a detuned two-saw unison through a modulated LPF,
// itself amplitude-modulated by a slow LFO: examples.h's `Subtractive1`.
// It never stops on its own (no envelope) — NoteOff silences it via its
// Stage transition only, matching the source's lack of an off() hook.
type Subtractive1 struct {
	voiceBase
	osc1, osc2 osc.Saw
	lpf        filter.OnePole
	lfo1, lfo2 osc.Sine
}

func newSubtractive1(sampleRate float64) *Subtractive1 {
	return &Subtractive1{voiceBase: voiceBase{sampleRate: sampleRate, stage: voice.Off}}
}

func (s *Subtractive1) Start(pitch, vel float32) {
	s.start(pitch, vel)
	s.stage = voice.Sustain
	f := float64(s.pitch.ToFrequency())
	s.osc1.SetFrequency(f*0.99, s.sampleRate)
	s.osc2.SetFrequency(f*1.01, s.sampleRate)
	s.lfo1.SetFrequency(6, s.sampleRate)
	s.lfo2.SetFrequency(1, s.sampleRate)
}

func (s *Subtractive1) Release(vel float32) { s.stage = voice.Off }

func (s *Subtractive1) Render() klangkit.Signals2 {
	if s.stage == voice.Off {
		return klangkit.Signals2{}
	}
	mod := s.lfo1.Process()*0.5 + 0.5
	s.lpf.SetLPF(20+float64(mod)*4000, s.sampleRate)
	mix := float32(s.lpf.Process(float64((s.osc1.Process()+s.osc2.Process())*0.5)))
	out := mix * s.lfo2.Process() * float32(s.velocity)
	return klangkit.Mono(out)
}

// Subtractive2 drives a single saw through a four-point breakpoint
// envelope rather than an ADSR: examples.h's `Subtractive2`. The envelope
// has no loop, so the voice goes Off once it passes the last point.
type Subtractive2 struct {
	voiceBase
	osc osc.Saw
	env *envelope.Envelope
}

func newSubtractive2(sampleRate float64) *Subtractive2 {
	return &Subtractive2{
		voiceBase: voiceBase{sampleRate: sampleRate, stage: voice.Off},
		env: envelope.New([]envelope.Point{
			{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0.1}, {X: 3, Y: 1},
		}, sampleRate),
	}
}

func (s *Subtractive2) Start(pitch, vel float32) {
	s.start(pitch, vel)
	s.stage = voice.Sustain
	f := float64(s.pitch.ToFrequency())
	s.osc.SetFrequency(f, s.sampleRate)
	s.env.Set([]envelope.Point{
		{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0.1}, {X: 3, Y: 1},
	})
}

func (s *Subtractive2) Release(vel float32) {
	s.stage = voice.Release
	s.env.Release(0.2, 0)
}

func (s *Subtractive2) Render() klangkit.Signals2 {
	mix := s.osc.Process() * float32(s.env.Advance())
	if s.env.Finished() {
		s.stage = voice.Off
	}
	return klangkit.Mono(mix * float32(s.velocity))
}

// Subtractive3 is an 8-partial Harmonics pad through two cascaded LPFs
// modulated by a slow LFO, gated by an ADSR: examples.h's `Subtractive3`.
type Subtractive3 struct {
	voiceBase
	osc        *harmonics
	adsr       *envelope.ADSR
	lpf1, lpf2 filter.OnePole
	lfo        osc.Sine
}

func newSubtractive3(sampleRate float64) *Subtractive3 {
	return &Subtractive3{
		voiceBase: voiceBase{sampleRate: sampleRate, stage: voice.Off},
		osc:       newHarmonics(8),
		adsr:      envelope.NewADSR(0.25, 0.25, 0.5, 5.0, sampleRate),
	}
}

func (s *Subtractive3) Start(pitch, vel float32) {
	s.start(pitch, vel)
	s.stage = voice.Sustain
	f := float64(s.pitch.ToFrequency())
	s.osc.setFrequency(f, s.sampleRate)
	s.adsr.Set(0.25, 0.25, 0.5, 5.0)
	s.lfo.SetFrequency(3, s.sampleRate)
}

func (s *Subtractive3) Release(vel float32) {
	s.stage = voice.Release
	s.adsr.Release(0, 0)
}

func (s *Subtractive3) Render() klangkit.Signals2 {
	mod := s.lfo.Process()*0.5 + 0.5
	cutoff := 20 + float64(mod)*6000
	s.lpf1.SetLPF(cutoff, s.sampleRate)
	s.lpf2.SetLPF(cutoff, s.sampleRate)
	mix := s.osc.process(s.sampleRate) * float32(s.adsr.Advance())
	stage1 := s.lpf1.Process(float64(mix))
	stage2 := float32(s.lpf2.Process(stage1))
	if s.adsr.Finished() {
		s.stage = voice.Off
	}
	return klangkit.Mono(stage2 * float32(s.velocity))
}

// Physical is a Karplus-Strong plucked string: an impulse exciter fed
// through a short delay, feeding back into a longer resonator delay
// damped by a one-pole lowpass, with an output DC-blocking highpass:
// examples.h's `Physical`.
type Physical struct {
	voiceBase
	exciterImpulse *envelope.Envelope
	exciterDelay   *delay.Line
	resonatorDelay *delay.Line
	resonatorLPF   filter.OnePole
	amp            *envelope.Envelope
	dcBlock        filter.OnePole
	delaySamples   float32
}

func newPhysical(sampleRate float64) *Physical {
	return &Physical{
		voiceBase:      voiceBase{sampleRate: sampleRate, stage: voice.Off},
		exciterDelay:   delay.New(int(sampleRate)),
		resonatorDelay: delay.New(int(sampleRate)),
	}
}

func (p *Physical) Start(pitch, vel float32) {
	p.start(pitch, vel)
	p.stage = voice.Sustain
	freq := float64((p.pitch - 12).ToFrequency())
	if freq < 1 {
		freq = 1
	}
	p.delaySamples = float32(p.sampleRate/freq - 2)

	p.exciterImpulse = envelope.New([]envelope.Point{
		{X: 0, Y: 0}, {X: 0.001, Y: 1}, {X: 0.003, Y: -1}, {X: 0.004, Y: 0},
	}, p.sampleRate)
	p.exciterDelay.Reset()
	p.resonatorDelay.Reset()

	p.amp = envelope.New([]envelope.Point{{X: 0, Y: 0}, {X: 0.001, Y: 1}}, p.sampleRate)
	p.amp.SetLoop(1, 1)
	p.resonatorLPF.SetLPF(3000, p.sampleRate)
	p.dcBlock.SetHPF(20, p.sampleRate)
}

func (p *Physical) Release(vel float32) {
	p.stage = voice.Release
	p.amp.Release(1.0, 0)
}

func (p *Physical) excite() float32 {
	imp := float32(p.exciterImpulse.Advance())
	tap, _ := p.exciterDelay.Tap(p.delaySamples * 0.5)
	imp -= tap
	p.exciterDelay.Write(imp)
	return imp
}

func (p *Physical) feedback() float32 {
	tap, _ := p.resonatorDelay.Tap(p.delaySamples)
	return float32(p.resonatorLPF.Process(float64(tap * 0.999)))
}

func (p *Physical) Render() klangkit.Signals2 {
	mix := p.excite() + p.feedback()
	p.resonatorDelay.Write(mix)
	if p.amp.Finished() {
		p.stage = voice.Off
	}
	out := float32(p.dcBlock.Process(float64(mix * float32(p.amp.Advance()) * 0.5)))
	return klangkit.Mono(out * float32(p.velocity))
}
